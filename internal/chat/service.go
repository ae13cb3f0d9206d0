package chat

import (
	"context"
	"strconv"
	"strings"

	"github.com/freshmart/admin-console/pkg/api"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
)

const (
	conversationsPath = "/api/admin/customer/conversations"
	messagesPath      = "/api/admin/customer/messages/"
)

// Service drives the customer-service endpoints. A 404 from the conversation
// list means the whole feature is absent from the deployed backend and is
// promoted to a terminal error; a 404 from the per-conversation message
// endpoint is an ordinary inline failure.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "api client required")
	}
	return &Service{client: client}, nil
}

type conversationsResponse struct {
	api.Status
	Items []ConversationSummary `json:"items"`
}

type messagesResponse struct {
	api.Status
	Items []Message `json:"items"`
}

// Conversations fetches the admin conversation list.
func (s *Service) Conversations(ctx context.Context) ([]ConversationSummary, error) {
	var resp conversationsResponse
	if err := s.client.Get(ctx, "admin/customer.conversations", conversationsPath, nil, &resp); err != nil {
		if pkgerrors.CodeOf(err) == pkgerrors.CodeNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeFeatureMissing, err, "customer service api not deployed")
		}
		return nil, err
	}
	return resp.Items, nil
}

// Messages fetches the full history of one conversation in server order.
func (s *Service) Messages(ctx context.Context, conversationID int64) ([]Message, error) {
	var resp messagesResponse
	path := messagesPath + strconv.FormatInt(conversationID, 10)
	if err := s.client.Get(ctx, "admin/customer.messages", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

type sendRequest struct {
	Content string  `json:"content"`
	Image   *string `json:"image"`
}

// Send posts a staff reply. Content and image may not both be empty; the
// check happens client-side so no request is issued for a blank send. The
// caller re-fetches the message and conversation lists on success instead of
// appending locally.
func (s *Service) Send(ctx context.Context, conversationID int64, content, imageURL string) error {
	content = strings.TrimSpace(content)
	imageURL = strings.TrimSpace(imageURL)
	if content == "" && imageURL == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "message needs text or an image")
	}

	body := sendRequest{Content: content}
	if imageURL != "" {
		body.Image = &imageURL
	}

	var resp api.Status
	path := messagesPath + strconv.FormatInt(conversationID, 10)
	return s.client.Post(ctx, "admin/customer.send", path, body, &resp)
}
