package catalog

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The backend reads prices as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// SpecValue is one selectable value on a spec group. The image is optional
// and rides along for value-level preview pictures.
type SpecValue struct {
	Value    string `json:"value"`
	ImageURL string `json:"img,omitempty"`
}

// SpecGroup is a named attribute axis ("重量", "口味") with its values.
// Group order is author order and drives combination order.
type SpecGroup struct {
	Name   string      `json:"name"`
	Values []SpecValue `json:"values"`
}

// CombinationPart pins one group to one value.
type CombinationPart struct {
	GroupName string `json:"groupName"`
	Value     string `json:"value"`
}

// Combination selects exactly one value per spec group, in group order.
type Combination []CombinationPart

// SkuRow holds the per-combination overrides. A row whose every field is at
// its default carries no information and is dropped on serialization.
type SkuRow struct {
	Values   Combination      `json:"values"`
	Stock    int              `json:"stock"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	ImageURL string           `json:"img,omitempty"`
	Code     string           `json:"skuCode,omitempty"`
}

// DetailAttribute is one row of the product detail table.
type DetailAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is the admin product payload as the backend returns it.
type Product struct {
	ID               string            `json:"id"`
	Category         string            `json:"category"`
	Tag              string            `json:"tag"`
	Title            string            `json:"title"`
	Desc             string            `json:"desc"`
	Price            decimal.Decimal   `json:"price"`
	ImageURL         string            `json:"img"`
	Images           []string          `json:"images"`
	DetailAttributes []DetailAttribute `json:"detailAttributes"`
	DetailImages     []string          `json:"detailImages"`
	TaobaoURL        string            `json:"taobaoUrl"`
	Stock            int               `json:"stock"`
	Sales            int               `json:"sales"`
	Status           int               `json:"status"`
	Specs            []SpecGroup       `json:"specs"`
	Skus             []SkuRow          `json:"skus"`
}

// SaveProductInput is the create/update request body. The detail table
// travels as `detailTable` on the way in even though reads surface it as
// `detailAttributes`; both names are the backend's.
type SaveProductInput struct {
	ID               string            `json:"id" validate:"required"`
	Title            string            `json:"title" validate:"required"`
	Category         string            `json:"category,omitempty"`
	Tag              string            `json:"tag,omitempty"`
	Price            decimal.Decimal   `json:"price"`
	Stock            int               `json:"stock" validate:"gte=0"`
	Status           int               `json:"status"`
	ImageURL         string            `json:"img,omitempty"`
	Images           []string          `json:"images,omitempty"`
	TaobaoURL        string            `json:"taobaoUrl,omitempty"`
	Desc             string            `json:"desc,omitempty"`
	Specs            []SpecGroup       `json:"specs"`
	DetailAttributes []DetailAttribute `json:"detailTable"`
	DetailImages     []string          `json:"detailImages"`
	Skus             []SkuRow          `json:"skus,omitempty"`
}
