package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeSpecs trims and filters author-entered spec groups: values with
// neither text nor image are dropped, and groups with a blank name or no
// surviving values are dropped entirely. Order is preserved.
func NormalizeSpecs(groups []SpecGroup) []SpecGroup {
	normalized := make([]SpecGroup, 0, len(groups))
	for _, group := range groups {
		name := strings.TrimSpace(group.Name)
		if name == "" {
			continue
		}
		values := make([]SpecValue, 0, len(group.Values))
		for _, v := range group.Values {
			value := strings.TrimSpace(v.Value)
			img := strings.TrimSpace(v.ImageURL)
			if value == "" && img == "" {
				continue
			}
			values = append(values, SpecValue{Value: value, ImageURL: img})
		}
		if len(values) == 0 {
			continue
		}
		normalized = append(normalized, SpecGroup{Name: name, Values: values})
	}
	return normalized
}

// CartesianProduct expands spec groups into every value combination. The
// first group varies slowest. Values whose text trims to empty contribute
// nothing, so a group reduced to zero usable values collapses the whole
// product to no combinations.
func CartesianProduct(groups []SpecGroup) []Combination {
	if len(groups) == 0 {
		return nil
	}
	var result []Combination
	path := make(Combination, 0, len(groups))

	var collect func(index int)
	collect = func(index int) {
		if index == len(groups) {
			combo := make(Combination, len(path))
			copy(combo, path)
			result = append(result, combo)
			return
		}
		group := groups[index]
		for _, v := range group.Values {
			value := strings.TrimSpace(v.Value)
			if value == "" {
				continue
			}
			path = append(path, CombinationPart{GroupName: group.Name, Value: value})
			collect(index + 1)
			path = path[:len(path)-1]
		}
	}
	collect(0)
	return result
}

// RowKey renders a combination as its canonical identity: group:value pairs
// joined by "|" in group order. Rebuilding the product from scratch yields
// the same key for the same combination, which is what lets saved SKU rows
// find their matrix row again after an edit round-trip.
func RowKey(combo Combination) string {
	parts := make([]string, len(combo))
	for i, part := range combo {
		parts[i] = part.GroupName + ":" + part.Value
	}
	return strings.Join(parts, "|")
}

// ParseRowKey inverts RowKey. Malformed segments (no colon) are skipped, the
// same way the original editor tolerated them.
func ParseRowKey(key string) Combination {
	if key == "" {
		return nil
	}
	var combo Combination
	for _, segment := range strings.Split(key, "|") {
		i := strings.Index(segment, ":")
		if i < 0 {
			continue
		}
		combo = append(combo, CombinationPart{
			GroupName: segment[:i],
			Value:     segment[i+1:],
		})
	}
	return combo
}

// RowsByKey indexes saved SKU rows by their combination key, the lookup side
// of the round-trip (saved payload back into an editable matrix).
func RowsByKey(rows []SkuRow) map[string]SkuRow {
	index := make(map[string]SkuRow, len(rows))
	for _, row := range rows {
		index[RowKey(row.Values)] = row
	}
	return index
}

// BuildMatrix produces one editable row per combination. Rows present in
// existing (keyed by RowKey) keep their stock/price/image/code; everything
// else is seeded from the product-level defaults. Regeneration after a spec
// change therefore only resets rows whose combination actually changed.
func BuildMatrix(combinations []Combination, existing map[string]SkuRow, defaultPrice *decimal.Decimal, defaultStock int) []SkuRow {
	matrix := make([]SkuRow, 0, len(combinations))
	for _, combo := range combinations {
		if prior, ok := existing[RowKey(combo)]; ok {
			matrix = append(matrix, SkuRow{
				Values:   combo,
				Stock:    prior.Stock,
				Price:    prior.Price,
				ImageURL: prior.ImageURL,
				Code:     prior.Code,
			})
			continue
		}
		matrix = append(matrix, SkuRow{
			Values: combo,
			Stock:  defaultStock,
			Price:  defaultPrice,
		})
	}
	return matrix
}

// SerializeRows applies the retention rule: a row survives only if it has
// stock above zero, a parsed price, an image, or a code. An all-default row
// means "no SKU-level override" and is omitted so the product falls back to
// its base price and stock.
func SerializeRows(matrix []SkuRow) []SkuRow {
	var out []SkuRow
	for _, row := range matrix {
		if row.Stock <= 0 && row.Price == nil && row.ImageURL == "" && row.Code == "" {
			continue
		}
		kept := row
		if kept.Stock < 0 {
			kept.Stock = 0
		}
		out = append(out, kept)
	}
	return out
}

// ApplyBulk overwrites the given fields on every matrix row; nil arguments
// leave the corresponding field untouched.
func ApplyBulk(matrix []SkuRow, stock *int, price *decimal.Decimal, imageURL *string) {
	for i := range matrix {
		if stock != nil {
			matrix[i].Stock = *stock
		}
		if price != nil {
			p := *price
			matrix[i].Price = &p
		}
		if imageURL != nil {
			matrix[i].ImageURL = *imageURL
		}
	}
}

// ParsePrice parses an operator-entered price string. Empty or unparsable
// input yields nil, never zero: an absent price means "use the base price".
func ParsePrice(raw string) *decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	price, err := decimal.NewFromString(trimmed)
	if err != nil || price.IsNegative() {
		return nil
	}
	return &price
}
