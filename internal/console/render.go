package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/freshmart/admin-console/internal/chat"
)

// RenderSnapshot writes one panel snapshot as plain text. Each snapshot is
// rendered whole; the previous frame is simply scrolled away.
func RenderSnapshot(w io.Writer, snap chat.Snapshot) {
	switch snap.State {
	case chat.PanelUnavailable:
		fmt.Fprintln(w, "customer service is not available on this backend")
		if snap.Notice != "" {
			fmt.Fprintf(w, "  %s\n", snap.Notice)
		}
		return
	case chat.PanelInactive:
		fmt.Fprintln(w, "customer service panel closed")
		return
	}

	if snap.Notice != "" {
		fmt.Fprintf(w, "! %s\n", snap.Notice)
	}
	fmt.Fprintf(w, "conversations (%d unread)\n", snap.TotalUnread)
	for _, c := range snap.Conversations {
		marker := "  "
		if c.Active {
			marker = "> "
		}
		name := c.CustomerName
		if name == "" {
			name = fmt.Sprintf("#%d", c.ID)
		}
		line := fmt.Sprintf("%s[%d] %s", marker, c.ID, name)
		if c.HasNew {
			line += " *"
		}
		if c.LastMessage != "" {
			line += "  " + truncate(c.LastMessage, 40)
		}
		fmt.Fprintln(w, line)
	}

	if snap.ActiveID == 0 {
		return
	}
	fmt.Fprintf(w, "--- %s ---\n", snap.ActiveName)
	for _, item := range snap.Timeline {
		if item.Kind == chat.KindSeparator {
			fmt.Fprintf(w, "    ·· %s ··\n", RenderClock(item.At))
			continue
		}
		side := "customer"
		if item.Message.FromStaff() {
			side = "staff"
		}
		body := item.Message.Content
		if body == "" && item.Message.ImageURL != "" {
			body = "[image] " + item.Message.ImageURL
		}
		fmt.Fprintf(w, "  %s: %s\n", side, body)
	}
}

// RenderClock formats a separator timestamp the way the panel shows it.
func RenderClock(at time.Time) string {
	return at.Format("01-02 15:04")
}

func truncate(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "…"
}
