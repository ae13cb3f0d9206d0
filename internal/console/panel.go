package console

import (
	"context"

	"github.com/freshmart/admin-console/internal/chat"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
)

// Panel gates the customer-service poller behind an explicit open/close
// lifecycle: the poll loop runs only while the panel is open, and a backend
// without the chat feature keeps it permanently closed.
type Panel struct {
	poller *chat.Poller
}

// NewPanel wraps a poller in its lifecycle gate.
func NewPanel(poller *chat.Poller) (*Panel, error) {
	if poller == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "poller required")
	}
	return &Panel{poller: poller}, nil
}

// Activate opens the panel and starts polling.
func (p *Panel) Activate(ctx context.Context) error {
	return p.poller.Start(ctx)
}

// Deactivate closes the panel; the poll ticker stops until the next
// Activate.
func (p *Panel) Deactivate() {
	p.poller.Stop()
}

// Select switches the open conversation.
func (p *Panel) Select(ctx context.Context, conversationID int64) error {
	return p.poller.Select(ctx, conversationID)
}

// Send posts a staff message to the open conversation.
func (p *Panel) Send(ctx context.Context, content, imageURL string) error {
	return p.poller.Send(ctx, content, imageURL)
}

// Available reports whether the chat feature exists on this backend.
func (p *Panel) Available() bool {
	return p.poller.State() != chat.PanelUnavailable
}
