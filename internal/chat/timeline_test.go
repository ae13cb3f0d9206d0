package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msgAt(id int64, at time.Time) Message {
	return Message{
		ID:        id,
		Sender:    SenderCustomer,
		Content:   "hi",
		CreatedAt: at.Format(time.RFC3339),
	}
}

func kinds(items []TimelineItem) []TimelineKind {
	out := make([]TimelineKind, len(items))
	for i, item := range items {
		out[i] = item.Kind
	}
	return out
}

func TestSeparatorPlacement(t *testing.T) {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	messages := []Message{
		msgAt(1, base),
		msgAt(2, base.Add(1*time.Minute)),
		msgAt(3, base.Add(6*time.Minute)),
		msgAt(4, base.Add(7*time.Minute)),
	}

	items := BuildTimeline(messages, 5*time.Minute)
	require.Len(t, items, 6)
	assert.Equal(t, []TimelineKind{
		KindSeparator, KindMessage, // before message 1
		KindMessage,                // message 2: only 1min after last separator
		KindSeparator, KindMessage, // message 3: 6min >= 5min
		KindMessage, // message 4: 1min after last separator
	}, kinds(items))

	assert.Equal(t, base, items[0].At)
	assert.Equal(t, base.Add(6*time.Minute), items[3].At)
}

func TestSeparatorThresholdResetsOnlyWhenEmitted(t *testing.T) {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	// Messages drift 3 minutes apart: pairwise always under the threshold,
	// but cumulative drift from the last separator crosses it.
	messages := []Message{
		msgAt(1, base),
		msgAt(2, base.Add(3*time.Minute)),
		msgAt(3, base.Add(6*time.Minute)),
	}

	items := BuildTimeline(messages, 5*time.Minute)
	assert.Equal(t, []TimelineKind{
		KindSeparator, KindMessage,
		KindMessage,
		KindSeparator, KindMessage,
	}, kinds(items))
}

func TestMessagesWithoutTimestampGetNoSeparator(t *testing.T) {
	items := BuildTimeline([]Message{
		{ID: 1, Content: "no time"},
		{ID: 2, Content: "still no time"},
	}, 5*time.Minute)
	assert.Equal(t, []TimelineKind{KindMessage, KindMessage}, kinds(items))
}

func TestEmptyTimeline(t *testing.T) {
	assert.Empty(t, BuildTimeline(nil, 0))
}

func TestSenderSideMapping(t *testing.T) {
	assert.True(t, Message{Sender: "staff"}.FromStaff())
	assert.True(t, Message{Sender: " Staff "}.FromStaff())
	assert.True(t, Message{Sender: "客服"}.FromStaff())
	assert.False(t, Message{Sender: "customer"}.FromStaff())
	assert.False(t, Message{Sender: ""}.FromStaff())
	assert.False(t, Message{Sender: "anything-else"}.FromStaff())
}

func TestWireTimeParsing(t *testing.T) {
	// Django isoformat() omits the zone for naive datetimes.
	m := Message{CreatedAt: "2026-08-30T10:00:00.123456"}
	at, ok := m.CreatedAtTime()
	require.True(t, ok)
	assert.Equal(t, 2026, at.Year())

	_, ok = Message{CreatedAt: ""}.CreatedAtTime()
	assert.False(t, ok)
	_, ok = Message{CreatedAt: "yesterday"}.CreatedAtTime()
	assert.False(t, ok)
}
