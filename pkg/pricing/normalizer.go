package pricing

import (
	"math"

	"github.com/angiepellets-dev/Holz-Markt/pkg"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
)

// TierForPrice buckets a price against the fixed thresholds. Imputed,
// non-finite and non-positive prices always land in the neutral tier, the
// imputation flag overrides the numeric value.
func TierForPrice(price float64, imputed bool) datastructure.PriceTier {
	if imputed || !isValidPrice(price) {
		return datastructure.TierNeutral
	}
	if price <= pkg.LOW_TIER_MAX_PRICE {
		return datastructure.TierLow
	}
	if price < pkg.HIGH_TIER_MIN_PRICE {
		return datastructure.TierMedium
	}
	return datastructure.TierHigh
}

func isValidPrice(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price > 0
}

func averagePrice(rows []*datastructure.Supplier, price func(*datastructure.Supplier) float64) float64 {
	var sum float64
	var n int
	for _, row := range rows {
		if p := price(row); isValidPrice(p) {
			sum += p
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Normalize fills missing prices with the dataset average and assigns the
// color tiers for both price modes. Rows are updated in place and returned
// in their input order. Feeding the output back in is stable: already
// imputed rows keep their substituted price and stay neutral.
func Normalize(rows []*datastructure.Supplier) []*datastructure.Supplier {
	avgUnit := averagePrice(rows, func(s *datastructure.Supplier) float64 { return s.UnitPrice })
	avgBag := averagePrice(rows, func(s *datastructure.Supplier) float64 { return s.BagPrice })

	for _, row := range rows {
		if !isValidPrice(row.UnitPrice) {
			row.UnitPrice = avgUnit
			row.PriceIsImputed = true
		}
		if !isValidPrice(row.BagPrice) {
			row.BagPrice = avgBag
			row.BagPriceIsImputed = true
		}

		row.ColorTierUnit = TierForPrice(row.UnitPrice, row.PriceIsImputed)
		row.ColorTierBag = TierForPrice(row.BagPrice, row.BagPriceIsImputed)
	}

	return rows
}
