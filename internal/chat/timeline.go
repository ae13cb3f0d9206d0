package chat

import "time"

// DefaultSeparatorThreshold matches the WeChat-style grouping the admin UI
// used: a centered time bar at most every five minutes.
const DefaultSeparatorThreshold = 5 * time.Minute

type TimelineKind int

const (
	KindSeparator TimelineKind = iota
	KindMessage
)

// TimelineItem is one rendered element of a conversation history: either a
// centered time separator or a message bubble.
type TimelineItem struct {
	Kind    TimelineKind
	At      time.Time
	Message Message
}

// BuildTimeline interleaves time separators into a server-ordered message
// sequence. This is a single stateful pass, not bucketing: a separator is
// emitted before the first message with a usable timestamp and again
// whenever a message lands at least threshold after the last separator that
// was actually emitted. Messages without a parsable timestamp never get a
// separator and do not advance the threshold.
func BuildTimeline(messages []Message, threshold time.Duration) []TimelineItem {
	if threshold <= 0 {
		threshold = DefaultSeparatorThreshold
	}
	items := make([]TimelineItem, 0, len(messages)*2)
	var lastShown time.Time
	for _, msg := range messages {
		at, ok := msg.CreatedAtTime()
		if ok && (lastShown.IsZero() || at.Sub(lastShown) >= threshold) {
			items = append(items, TimelineItem{Kind: KindSeparator, At: at})
			lastShown = at
		}
		items = append(items, TimelineItem{Kind: KindMessage, At: at, Message: msg})
	}
	return items
}
