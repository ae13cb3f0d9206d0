package users

import (
	"context"
	"strconv"

	"github.com/freshmart/admin-console/pkg/api"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const basePath = "/api/admin/users"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service drives the admin account endpoints. The backend exposes no detail
// fetch for a single user, only list, create, update and delete.
type Service struct {
	client *api.Client
}

// NewService builds a user service over the backend client.
func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "api client required")
	}
	return &Service{client: client}, nil
}

type listResponse struct {
	api.Status
	Items []User `json:"items"`
}

type createResponse struct {
	api.Status
	ID int64 `json:"id"`
}

// List fetches every account, newest registration first.
func (s *Service) List(ctx context.Context) ([]User, error) {
	var resp listResponse
	if err := s.client.Get(ctx, "admin/users.list", basePath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Create registers an account and returns the backend-assigned id. A
// duplicate phone number comes back as an application error.
func (s *Service) Create(ctx context.Context, input CreateUserInput) (int64, error) {
	if err := validate.Struct(input); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "phone and password are required")
	}
	var resp createResponse
	if err := s.client.Post(ctx, "admin/users.create", basePath, input, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// Update applies a partial change to one account. Guard rails on the
// backend reject self-demotion and self-disabling.
func (s *Service) Update(ctx context.Context, id int64, input UpdateUserInput) error {
	var resp api.Status
	return s.client.Put(ctx, "admin/users.update", detailPath(id), input, &resp)
}

// Delete removes an account. Deleting the logged-in account is refused by
// the backend.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var resp api.Status
	return s.client.Delete(ctx, "admin/users.delete", detailPath(id), &resp)
}

func detailPath(id int64) string {
	return basePath + "/" + strconv.FormatInt(id, 10)
}
