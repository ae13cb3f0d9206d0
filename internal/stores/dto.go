package stores

// Store is one pickup location as the admin endpoints return it. Coordinates
// are optional until the address has been geocoded, so they stay pointers.
type Store struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	City    string   `json:"city"`
	Lng     *float64 `json:"lng"`
	Lat     *float64 `json:"lat"`
	Hours   string   `json:"hours"`
	Phone   string   `json:"phone"`
	Status  int      `json:"status"`
}

// Open reports whether the store is accepting orders. The backend encodes
// status as 1 for open, 0 for closed.
func (s Store) Open() bool {
	return s.Status == 1
}

// SaveStoreInput is the create/update payload. The backend assigns the id on
// create and echoes it back.
type SaveStoreInput struct {
	Name    string   `json:"name" validate:"required"`
	Address string   `json:"address" validate:"required"`
	City    string   `json:"city" validate:"required"`
	Lng     *float64 `json:"lng,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Hours   string   `json:"hours,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Status  *int     `json:"status,omitempty"`
}

// GeocodeResult is the coordinate lookup answer for a store address.
type GeocodeResult struct {
	Lng       float64
	Lat       float64
	Location  string
	Formatted string
}
