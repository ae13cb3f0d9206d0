package chat

import (
	"encoding/json"
	"strings"
	"time"
)

// ConversationSummary is one entry of the admin conversation list as the
// backend returns it. Timestamps arrive as ISO strings, sometimes without a
// zone, so they are kept raw and parsed on demand.
type ConversationSummary struct {
	ID              int64  `json:"id"`
	CustomerName    string `json:"customerName"`
	LastMessage     string `json:"lastMessage"`
	LastMessageTime string `json:"lastMessageTime"`
	UnreadCount     *int   `json:"unreadCount,omitempty"`
}

// LastMessageAt parses the last-message timestamp. ok is false when the
// conversation has no message yet or the backend sent something unparsable.
func (c ConversationSummary) LastMessageAt() (time.Time, bool) {
	return parseWireTime(c.LastMessageTime)
}

const (
	SenderCustomer = "customer"
	SenderStaff    = "staff"
)

// Message is one chat message. Either Content or ImageURL may be empty, but
// the backend never stores both empty.
type Message struct {
	ID        int64  `json:"id"`
	Sender    string `json:"senderType"`
	Content   string `json:"content"`
	ImageURL  string `json:"image"`
	CreatedAt string `json:"createdAt"`
}

// UnmarshalJSON tolerates the snake_case sender field older backend builds
// emitted alongside the camelCase one.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	aux := struct {
		*alias
		SenderSnake string `json:"sender_type"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if m.Sender == "" {
		m.Sender = aux.SenderSnake
	}
	return nil
}

// FromStaff reports whether the admin side sent this message. Anything the
// backend did not explicitly mark as staff renders on the customer side.
func (m Message) FromStaff() bool {
	sender := strings.ToLower(strings.TrimSpace(m.Sender))
	return sender == SenderStaff || sender == "客服"
}

// CreatedAtTime parses the message timestamp; ok is false for missing or
// malformed values.
func (m Message) CreatedAtTime() (time.Time, bool) {
	return parseWireTime(m.CreatedAt)
}

var wireTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseWireTime(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range wireTimeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil && !t.IsZero() {
			return t, true
		}
	}
	return time.Time{}, false
}
