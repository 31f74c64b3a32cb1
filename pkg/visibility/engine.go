package visibility

import (
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
)

// Catalog is the entity source the engine projects markers from.
type Catalog interface {
	Suppliers() []*datastructure.Supplier
	Customers() []*datastructure.Customer
}

// marker colors of the non-tier variants
const (
	customerColor        = "blue"
	bagCustomerColor     = "purple"
	offtakerVariantColor = "#fff9c4"
)

// ComputeVisible reconciles every filter dimension into the set of markers
// to render. Pure over its inputs: the caller supplies a fresh
// configuration snapshot after every toggle change and calling twice with
// unchanged inputs yields an identical set.
//
// Per supplier the predicates short-circuit in a fixed order: dataset
// toggles, bag-type keywords (bag mode only), certificate, color tier,
// country. Customers are an accessory layer of the primary dataset and only
// check country and customer class.
func ComputeVisible(cat Catalog, cfg datastructure.FilterConfiguration,
	mode datastructure.PriceMode) []datastructure.VisibleMarker {

	markers := make([]datastructure.VisibleMarker, 0,
		len(cat.Suppliers())+len(cat.Customers()))

	for _, s := range cat.Suppliers() {
		if m, ok := supplierMarker(s, cfg, mode); ok {
			markers = append(markers, m)
		}
	}

	for _, k := range cat.Customers() {
		if m, ok := customerMarker(k, cfg); ok {
			markers = append(markers, m)
		}
	}

	return markers
}

func supplierMarker(s *datastructure.Supplier, cfg datastructure.FilterConfiguration,
	mode datastructure.PriceMode) (datastructure.VisibleMarker, bool) {

	none := datastructure.VisibleMarker{}
	if s.Location == nil {
		return none, false
	}

	// dataset toggles, with the cross-dataset offtaker exception
	offtakerException := s.IsResidualWoodOfftaker && cfg.ShowResidualWood
	switch s.Dataset {
	case datastructure.DatasetResidualWood:
		if !cfg.ShowResidualWood {
			return none, false
		}
	default:
		if !cfg.ShowPellets && !offtakerException {
			return none, false
		}
	}

	if mode == datastructure.PriceModeBag && cfg.AnyBagTypeEnabled() &&
		!cfg.BagTypeMatches(s.BagType) {
		return none, false
	}

	if !cfg.CertificateMatches(s.Certificate) {
		return none, false
	}

	if !cfg.TierEnabled(s.TierFor(mode)) {
		return none, false
	}

	if cfg.CountryFilterActive() && !cfg.CountryEnabled(s.Location.CountryCode) {
		return none, false
	}

	kind := datastructure.MarkerSupplier
	color := s.TierFor(mode).Color()
	if s.IsResidualWoodOfftaker && !cfg.ShowPellets && cfg.ShowResidualWood {
		kind = datastructure.MarkerOfftakerVariant
		color = offtakerVariantColor
	}

	return datastructure.VisibleMarker{
		Kind:         kind,
		Label:        s.CompanyName,
		Position:     s.Location.Coordinate(),
		DisplayColor: color,
		Tooltip:      s.Tooltip(mode),
	}, true
}

func customerMarker(k *datastructure.Customer,
	cfg datastructure.FilterConfiguration) (datastructure.VisibleMarker, bool) {

	none := datastructure.VisibleMarker{}
	if k.Location == nil {
		return none, false
	}

	if !cfg.ShowPellets {
		return none, false
	}

	if cfg.CountryFilterActive() && !cfg.CountryEnabled(k.Location.CountryCode) {
		return none, false
	}

	kind := datastructure.MarkerCustomer
	color := customerColor
	if k.IsBagOnly() {
		kind = datastructure.MarkerBagCustomer
		color = bagCustomerColor
	}

	if kind == datastructure.MarkerBagCustomer && !cfg.ShowBagCustomers {
		return none, false
	}
	if kind == datastructure.MarkerCustomer && !cfg.ShowPlainCustomers {
		return none, false
	}

	return datastructure.VisibleMarker{
		Kind:         kind,
		Label:        k.Name,
		Position:     k.Location.Coordinate(),
		DisplayColor: color,
		Tooltip:      k.Tooltip(),
	}, true
}

// Viewport computes the padded bounding rect of the visible set, the value
// a map client fits its view to after a filter change.
func Viewport(markers []datastructure.VisibleMarker) geo.Viewport {
	coords := make([]geo.Coordinate, len(markers))
	for i, m := range markers {
		coords[i] = m.Position
	}
	return geo.ViewportFromCoords(coords, 0.15)
}
