package activities

import (
	"context"
	"net/url"

	"github.com/freshmart/admin-console/pkg/api"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const basePath = "/api/admin/activities"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service drives the admin campaign endpoints.
type Service struct {
	client *api.Client
}

// NewService builds a campaign service over the backend client.
func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "api client required")
	}
	return &Service{client: client}, nil
}

type listResponse struct {
	api.Status
	Items []Activity `json:"items"`
}

type itemResponse struct {
	api.Status
	Item Activity `json:"item"`
}

type createResponse struct {
	api.Status
	ID string `json:"id"`
}

// List fetches every campaign, newest start date first.
func (s *Service) List(ctx context.Context) ([]Activity, error) {
	var resp listResponse
	if err := s.client.Get(ctx, "admin/activities.list", basePath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Get fetches one campaign by id.
func (s *Service) Get(ctx context.Context, id string) (*Activity, error) {
	var resp itemResponse
	if err := s.client.Get(ctx, "admin/activities.get", basePath+"/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// Create adds a campaign and returns the backend-assigned id.
func (s *Service) Create(ctx context.Context, input SaveActivityInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}
	var resp createResponse
	if err := s.client.Post(ctx, "admin/activities.create", basePath, input, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Update overwrites a campaign's fields.
func (s *Service) Update(ctx context.Context, id string, input SaveActivityInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	var resp api.Status
	return s.client.Put(ctx, "admin/activities.update", basePath+"/"+url.PathEscape(id), input, &resp)
}

// Delete removes a campaign.
func (s *Service) Delete(ctx context.Context, id string) error {
	var resp api.Status
	return s.client.Delete(ctx, "admin/activities.delete", basePath+"/"+url.PathEscape(id), &resp)
}

func validateInput(input SaveActivityInput) error {
	if err := validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "campaign title and date range are required")
	}
	return nil
}
