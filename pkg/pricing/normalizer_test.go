package pricing

import (
	"math"
	"testing"

	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supplierWithPrices(unit, bag float64) *datastructure.Supplier {
	return &datastructure.Supplier{
		CompanyName: "Werk",
		UnitPrice:   unit,
		BagPrice:    bag,
		Dataset:     datastructure.DatasetPellets,
	}
}

func TestTierForPriceBoundaries(t *testing.T) {
	testCases := []struct {
		name    string
		price   float64
		imputed bool
		want    datastructure.PriceTier
	}{
		{name: "exactly low threshold", price: 260.00, want: datastructure.TierLow},
		{name: "just above low threshold", price: 260.01, want: datastructure.TierMedium},
		{name: "just below high threshold", price: 284.99, want: datastructure.TierMedium},
		{name: "exactly high threshold", price: 285.00, want: datastructure.TierHigh},
		{name: "zero price", price: 0, want: datastructure.TierNeutral},
		{name: "negative price", price: -10, want: datastructure.TierNeutral},
		{name: "nan price", price: math.NaN(), want: datastructure.TierNeutral},
		{name: "imputed overrides numeric tier", price: 300, imputed: true, want: datastructure.TierNeutral},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierForPrice(tt.price, tt.imputed))
		})
	}
}

func TestNormalizeImputesAverage(t *testing.T) {
	rows := []*datastructure.Supplier{
		supplierWithPrices(0, 0),
		supplierWithPrices(300, 0),
	}

	out := Normalize(rows)
	require.Len(t, out, 2)

	// the only valid unit price is 300, so the missing one becomes 300
	// but stays neutral
	assert.Equal(t, 300.0, out[0].UnitPrice)
	assert.True(t, out[0].PriceIsImputed)
	assert.Equal(t, datastructure.TierNeutral, out[0].ColorTierUnit)

	assert.Equal(t, 300.0, out[1].UnitPrice)
	assert.False(t, out[1].PriceIsImputed)
	assert.Equal(t, datastructure.TierHigh, out[1].ColorTierUnit)

	// no bag price anywhere: average is 0, rows are imputed to 0 and neutral
	assert.True(t, out[0].BagPriceIsImputed)
	assert.Equal(t, 0.0, out[0].BagPrice)
	assert.Equal(t, datastructure.TierNeutral, out[0].ColorTierBag)
}

func TestNormalizeNeverLeavesInvalidUnimputedPrices(t *testing.T) {
	rows := []*datastructure.Supplier{
		supplierWithPrices(math.NaN(), 42),
		supplierWithPrices(-5, 0),
		supplierWithPrices(259.5, 285),
		supplierWithPrices(280, math.Inf(1)),
	}

	for _, row := range Normalize(rows) {
		if !row.PriceIsImputed {
			assert.Greater(t, row.UnitPrice, 0.0)
			assert.False(t, math.IsNaN(row.UnitPrice) || math.IsInf(row.UnitPrice, 0))
		}
		if !row.BagPriceIsImputed {
			assert.Greater(t, row.BagPrice, 0.0)
			assert.False(t, math.IsNaN(row.BagPrice) || math.IsInf(row.BagPrice, 0))
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rows := Normalize([]*datastructure.Supplier{
		supplierWithPrices(0, 0),
		supplierWithPrices(250, 300),
		supplierWithPrices(290, 0),
	})

	snapshot := make([]datastructure.Supplier, len(rows))
	for i, row := range rows {
		snapshot[i] = *row
	}

	again := Normalize(rows)
	for i, row := range again {
		assert.Equal(t, snapshot[i].UnitPrice, row.UnitPrice)
		assert.Equal(t, snapshot[i].BagPrice, row.BagPrice)
		assert.Equal(t, snapshot[i].ColorTierUnit, row.ColorTierUnit)
		assert.Equal(t, snapshot[i].ColorTierBag, row.ColorTierBag)
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	rows := []*datastructure.Supplier{
		{CompanyName: "A", UnitPrice: 100},
		{CompanyName: "B", UnitPrice: 200},
		{CompanyName: "C"},
	}
	out := Normalize(rows)
	require.Len(t, out, 3)
	assert.Equal(t, "A", out[0].CompanyName)
	assert.Equal(t, "B", out[1].CompanyName)
	assert.Equal(t, "C", out[2].CompanyName)
}
