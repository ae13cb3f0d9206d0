package chat

// ConversationView is a list entry with its client-derived unread flag.
type ConversationView struct {
	ConversationSummary
	HasNew bool
	Active bool
}

// DeriveUnread computes per-conversation unread flags and the aggregate
// badge count. A conversation is flagged when it has a last-message time,
// is not the one currently open, and that time is past the session's read
// cursor (or no cursor exists). Flagged conversations contribute
// max(1, unreadCount) to the total, or 1 when the backend sent no count.
func DeriveUnread(items []ConversationSummary, cursors *ReadCursors, activeID int64) ([]ConversationView, int) {
	views := make([]ConversationView, 0, len(items))
	total := 0
	for _, item := range items {
		view := ConversationView{
			ConversationSummary: item,
			Active:              item.ID == activeID,
		}
		lastAt, hasTime := item.LastMessageAt()
		if hasTime && !view.Active {
			readAt, seen := cursors.Get(item.ID)
			if !seen || lastAt.After(readAt) {
				view.HasNew = true
			}
		}
		if view.HasNew {
			weight := 1
			if item.UnreadCount != nil && *item.UnreadCount > weight {
				weight = *item.UnreadCount
			}
			total += weight
		}
		views = append(views, view)
	}
	return views, total
}
