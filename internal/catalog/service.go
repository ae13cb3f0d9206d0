package catalog

import (
	"context"
	"net/url"

	"github.com/freshmart/admin-console/pkg/api"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const basePath = "/api/admin/products"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service drives the admin product endpoints.
type Service struct {
	client *api.Client
}

// NewService builds a product service over the backend client.
func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "api client required")
	}
	return &Service{client: client}, nil
}

type listResponse struct {
	api.Status
	Items []Product `json:"items"`
}

type itemResponse struct {
	api.Status
	Item Product `json:"item"`
}

// List fetches every product.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	var resp listResponse
	if err := s.client.Get(ctx, "admin/products.list", basePath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Get fetches one product by id.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	var resp itemResponse
	if err := s.client.Get(ctx, "admin/products.get", basePath+"/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// Create publishes a new product. Validation failures never reach the wire.
func (s *Service) Create(ctx context.Context, input SaveProductInput) (*Product, error) {
	prepared, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	var resp itemResponse
	if err := s.client.Post(ctx, "admin/products.create", basePath, prepared, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// Update overwrites an existing product.
func (s *Service) Update(ctx context.Context, input SaveProductInput) (*Product, error) {
	prepared, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	var resp itemResponse
	if err := s.client.Put(ctx, "admin/products.update", basePath+"/"+url.PathEscape(prepared.ID), prepared, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// Delete removes a product by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	var resp api.Status
	return s.client.Delete(ctx, "admin/products.delete", basePath+"/"+url.PathEscape(id), &resp)
}

// prepare normalizes the payload the way the editor did before saving: specs
// are trimmed/filtered, and the SKU list collapses to nothing when no row
// carries an override, signaling "single base price/stock" to the backend.
func (s *Service) prepare(input SaveProductInput) (SaveProductInput, error) {
	if err := validate.Struct(input); err != nil {
		return input, validationError(err)
	}
	if input.Price.IsNegative() {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	input.Specs = NormalizeSpecs(input.Specs)
	input.Skus = SerializeRows(input.Skus)
	return input, nil
}

func validationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = fieldErr.Tag()
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "id, title and price are required").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}
