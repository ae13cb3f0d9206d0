package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groups2x3() []SpecGroup {
	return []SpecGroup{
		{Name: "颜色", Values: []SpecValue{{Value: "红"}, {Value: "绿"}}},
		{Name: "重量", Values: []SpecValue{{Value: "1kg"}, {Value: "2kg"}, {Value: "5kg"}}},
	}
}

func TestNormalizeSpecsDropsEmpties(t *testing.T) {
	groups := []SpecGroup{
		{Name: "  口味 ", Values: []SpecValue{
			{Value: " 原味 "},
			{Value: "", ImageURL: ""},
			{Value: "", ImageURL: " http://img/x.png "},
		}},
		{Name: "", Values: []SpecValue{{Value: "幽灵"}}},
		{Name: "空组", Values: []SpecValue{{Value: "  "}}},
	}

	normalized := NormalizeSpecs(groups)
	require.Len(t, normalized, 1)
	assert.Equal(t, "口味", normalized[0].Name)
	require.Len(t, normalized[0].Values, 2)
	assert.Equal(t, "原味", normalized[0].Values[0].Value)
	assert.Equal(t, "http://img/x.png", normalized[0].Values[1].ImageURL)
}

func TestCartesianProductOrderAndCount(t *testing.T) {
	combos := CartesianProduct(groups2x3())
	require.Len(t, combos, 6)

	want := [][2]string{
		{"红", "1kg"}, {"红", "2kg"}, {"红", "5kg"},
		{"绿", "1kg"}, {"绿", "2kg"}, {"绿", "5kg"},
	}
	for i, combo := range combos {
		require.Len(t, combo, 2)
		assert.Equal(t, "颜色", combo[0].GroupName)
		assert.Equal(t, want[i][0], combo[0].Value)
		assert.Equal(t, "重量", combo[1].GroupName)
		assert.Equal(t, want[i][1], combo[1].Value)
	}
}

func TestCartesianProductEmptyGroupCollapses(t *testing.T) {
	assert.Nil(t, CartesianProduct(nil))

	groups := append(groups2x3(), SpecGroup{Name: "规格", Values: []SpecValue{{Value: "  "}}})
	assert.Empty(t, CartesianProduct(groups))
}

func TestRowKeyIsOrderSensitive(t *testing.T) {
	combo := Combination{{GroupName: "颜色", Value: "红"}, {GroupName: "尺寸", Value: "M"}}
	assert.Equal(t, "颜色:红|尺寸:M", RowKey(combo))

	reversed := Combination{{GroupName: "尺寸", Value: "M"}, {GroupName: "颜色", Value: "红"}}
	assert.NotEqual(t, RowKey(combo), RowKey(reversed))

	// Rebuilt value objects produce the same key.
	rebuilt := CartesianProduct([]SpecGroup{
		{Name: "颜色", Values: []SpecValue{{Value: "红"}}},
		{Name: "尺寸", Values: []SpecValue{{Value: "M"}}},
	})
	require.Len(t, rebuilt, 1)
	assert.Equal(t, RowKey(combo), RowKey(rebuilt[0]))
}

func TestParseRowKeyRoundTrip(t *testing.T) {
	combo := Combination{{GroupName: "颜色", Value: "红"}, {GroupName: "尺寸", Value: "M"}}
	assert.Equal(t, combo, ParseRowKey(RowKey(combo)))
	assert.Nil(t, ParseRowKey(""))
	assert.Empty(t, ParseRowKey("no-colon-here"))
}

func TestBuildMatrixCarriesOverEdits(t *testing.T) {
	combos := CartesianProduct(groups2x3())
	price := decimal.RequireFromString("9.90")

	matrix := BuildMatrix(combos, nil, &price, 10)
	require.Len(t, matrix, 6)
	for _, row := range matrix {
		assert.Equal(t, 10, row.Stock)
		assert.True(t, row.Price.Equal(price))
	}

	// Edit one row, then regenerate with an extra value in group 2.
	edited := decimal.RequireFromString("12.50")
	matrix[2].Stock = 3
	matrix[2].Price = &edited
	matrix[2].Code = "RED-5KG"

	snapshot := RowsByKey(matrix)
	bigger := groups2x3()
	bigger[1].Values = append(bigger[1].Values, SpecValue{Value: "10kg"})

	regenerated := BuildMatrix(CartesianProduct(bigger), snapshot, &price, 10)
	require.Len(t, regenerated, 8)

	byKey := RowsByKey(regenerated)
	kept := byKey["颜色:红|重量:5kg"]
	assert.Equal(t, 3, kept.Stock)
	assert.Equal(t, "RED-5KG", kept.Code)
	assert.True(t, kept.Price.Equal(edited))

	fresh := byKey["颜色:红|重量:10kg"]
	assert.Equal(t, 10, fresh.Stock)
	assert.True(t, fresh.Price.Equal(price))
}

func TestSerializeRowsRetentionRule(t *testing.T) {
	combo := Combination{{GroupName: "颜色", Value: "红"}}

	allDefault := SkuRow{Values: combo}
	withCode := SkuRow{Values: combo, Code: "ABC"}
	withStock := SkuRow{Values: combo, Stock: 7}
	price := decimal.RequireFromString("3.50")
	withPrice := SkuRow{Values: combo, Price: &price}
	withImage := SkuRow{Values: combo, ImageURL: "http://img/1.png"}

	out := SerializeRows([]SkuRow{allDefault, withCode, withStock, withPrice, withImage})
	require.Len(t, out, 4)
	assert.Equal(t, "ABC", out[0].Code)
	assert.Equal(t, 7, out[1].Stock)
	assert.True(t, out[2].Price.Equal(price))
	assert.Equal(t, "http://img/1.png", out[3].ImageURL)

	assert.Nil(t, SerializeRows([]SkuRow{allDefault}))
}

func TestRoundTripIdempotence(t *testing.T) {
	groups := groups2x3()
	combos := CartesianProduct(groups)

	price := decimal.RequireFromString("8.00")
	matrix := BuildMatrix(combos, nil, &price, 5)
	for i := range matrix {
		matrix[i].Code = RowKey(matrix[i].Values)
	}
	saved := SerializeRows(matrix)
	require.Len(t, saved, 6)

	// Same groups, rebuilt from the saved payload: every retained field
	// must reproduce exactly.
	rebuilt := BuildMatrix(CartesianProduct(groups), RowsByKey(saved), nil, 0)
	assert.Equal(t, saved, SerializeRows(rebuilt))
}

func TestApplyBulk(t *testing.T) {
	matrix := BuildMatrix(CartesianProduct(groups2x3()), nil, nil, 0)

	stock := 99
	price := decimal.RequireFromString("6.60")
	ApplyBulk(matrix, &stock, &price, nil)

	for _, row := range matrix {
		assert.Equal(t, 99, row.Stock)
		assert.True(t, row.Price.Equal(price))
		assert.Empty(t, row.ImageURL)
	}

	img := "http://img/bulk.png"
	ApplyBulk(matrix, nil, nil, &img)
	for _, row := range matrix {
		assert.Equal(t, 99, row.Stock)
		assert.Equal(t, img, row.ImageURL)
	}
}

func TestParsePrice(t *testing.T) {
	assert.Nil(t, ParsePrice(""))
	assert.Nil(t, ParsePrice("abc"))
	assert.Nil(t, ParsePrice("-1"))

	p := ParsePrice(" 12.50 ")
	require.NotNil(t, p)
	assert.True(t, p.Equal(decimal.RequireFromString("12.5")))
}
