package chat

import (
	"sync"
	"time"
)

// ReadCursors holds the per-conversation "last read" timestamps. It is
// session-scoped client state, never sent to the backend: selecting a
// conversation advances its cursor to now, and the unread flag falls out of
// comparing the cursor against the conversation's last-message time. The map
// is shared between the poll goroutine and the UI goroutine, hence the lock.
type ReadCursors struct {
	mu     sync.Mutex
	byConv map[int64]time.Time
}

func NewReadCursors() *ReadCursors {
	return &ReadCursors{byConv: make(map[int64]time.Time)}
}

// Get returns the read cursor for the conversation, if one was set this
// session.
func (c *ReadCursors) Get(id int64) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	at, ok := c.byConv[id]
	return at, ok
}

// MarkRead advances the conversation's cursor. Cursors only move forward;
// a stale mark cannot resurrect an unread flag.
func (c *ReadCursors) MarkRead(id int64, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prior, ok := c.byConv[id]; ok && prior.After(at) {
		return
	}
	c.byConv[id] = at
}
