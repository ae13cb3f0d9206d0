package stores

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/freshmart/admin-console/pkg/api"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	basePath    = "/api/admin/stores"
	geocodePath = "/api/admin/geocode"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service drives the admin store endpoints.
type Service struct {
	client *api.Client
}

// NewService builds a store service over the backend client.
func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "api client required")
	}
	return &Service{client: client}, nil
}

type listResponse struct {
	api.Status
	Items []Store `json:"items"`
}

type itemResponse struct {
	api.Status
	Item Store `json:"item"`
}

type geocodeResponse struct {
	api.Status
	Lng       float64 `json:"lng"`
	Lat       float64 `json:"lat"`
	Location  string  `json:"location"`
	Formatted string  `json:"formatted"`
}

// List fetches every store, open and closed alike.
func (s *Service) List(ctx context.Context) ([]Store, error) {
	var resp listResponse
	if err := s.client.Get(ctx, "admin/stores.list", basePath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Get fetches one store by id.
func (s *Service) Get(ctx context.Context, id int64) (*Store, error) {
	var resp itemResponse
	if err := s.client.Get(ctx, "admin/stores.get", detailPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// Create adds a store and returns the backend-assigned id.
func (s *Service) Create(ctx context.Context, input SaveStoreInput) (int64, error) {
	if err := validateInput(input); err != nil {
		return 0, err
	}
	var resp itemResponse
	if err := s.client.Post(ctx, "admin/stores.create", basePath, input, &resp); err != nil {
		return 0, err
	}
	return resp.Item.ID, nil
}

// Update overwrites a store's fields. The backend replies with a bare ok.
func (s *Service) Update(ctx context.Context, id int64, input SaveStoreInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	var resp api.Status
	return s.client.Put(ctx, "admin/stores.update", detailPath(id), input, &resp)
}

// Delete removes a store.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var resp api.Status
	return s.client.Delete(ctx, "admin/stores.delete", detailPath(id), &resp)
}

// Geocode resolves a street address to coordinates via the backend's lookup
// proxy. City narrows the search and may be empty. An empty address is
// rejected before any request goes out.
func (s *Service) Geocode(ctx context.Context, address, city string) (*GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}

	query := url.Values{"address": []string{address}}
	if city = strings.TrimSpace(city); city != "" {
		query.Set("city", city)
	}

	var resp geocodeResponse
	if err := s.client.Get(ctx, "admin/stores.geocode", geocodePath, query, &resp); err != nil {
		return nil, err
	}
	return &GeocodeResult{
		Lng:       resp.Lng,
		Lat:       resp.Lat,
		Location:  resp.Location,
		Formatted: resp.Formatted,
	}, nil
}

func detailPath(id int64) string {
	return basePath + "/" + strconv.FormatInt(id, 10)
}

func validateInput(input SaveStoreInput) error {
	if err := validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "store name, address and city are required")
	}
	return nil
}
