package datastructure

import (
	"fmt"

	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
)

// Dataset names the feed a supplier row originated from.
type Dataset string

const (
	DatasetPellets      Dataset = "pellets"
	DatasetResidualWood Dataset = "saegerestholz"
)

// PriceMode selects which of the two supplier prices is active, the loose
// per-unit works price or the bagged-goods price.
type PriceMode string

const (
	PriceModeUnit PriceMode = "unit"
	PriceModeBag  PriceMode = "bag"
)

// PriceTier buckets a price against the fixed business thresholds. It drives
// both the marker color and a filter dimension.
type PriceTier string

const (
	TierNeutral PriceTier = "neutral"
	TierLow     PriceTier = "low"
	TierMedium  PriceTier = "medium"
	TierHigh    PriceTier = "high"
)

func (t PriceTier) Color() string {
	switch t {
	case TierLow:
		return "green"
	case TierMedium:
		return "orange"
	case TierHigh:
		return "red"
	default:
		return "#9e9e9e"
	}
}

// Location is the resolved position of one unique query string. Immutable
// after creation.
type Location struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"` // lowercase ISO-3166 alpha-2, or empty
}

func NewLocation(lat, lon float64, country, countryCode string) *Location {
	return &Location{
		Lat:         lat,
		Lon:         lon,
		Country:     country,
		CountryCode: countryCode,
	}
}

func (l *Location) Coordinate() geo.Coordinate {
	return geo.NewCoordinate(l.Lat, l.Lon)
}

// Supplier is one "Werk" row, normalized and classified. Location is
// attached after geocoding and nil when the geocoder had no match.
type Supplier struct {
	CompanyName  string
	LocationText string

	UnitPrice float64
	BagPrice  float64

	Certificate string
	BagType     string
	ProductText string
	BuyerText   string

	Dataset                Dataset
	IsResidualWoodOfftaker bool

	PriceIsImputed    bool
	BagPriceIsImputed bool

	ColorTierUnit PriceTier
	ColorTierBag  PriceTier

	Location *Location
}

// PriceFor returns the price the active mode sells at.
func (s *Supplier) PriceFor(mode PriceMode) float64 {
	if mode == PriceModeBag {
		return s.BagPrice
	}
	return s.UnitPrice
}

// TierFor returns the color tier computed for the active mode.
func (s *Supplier) TierFor(mode PriceMode) PriceTier {
	if mode == PriceModeBag {
		return s.ColorTierBag
	}
	return s.ColorTierUnit
}

// Tooltip is the display text of the supplier marker, built from structured
// fields rather than rendered markup.
func (s *Supplier) Tooltip(mode PriceMode) string {
	return fmt.Sprintf("%s\n%s\n%.2f €\n%s", s.CompanyName, s.LocationText, s.PriceFor(mode), s.ProductText)
}

// Customer is one "Kunde" row.
type Customer struct {
	Name         string
	LocationText string

	AcceptsLooseLoad   bool
	AcceptsBaggedGoods bool

	Location *Location
}

// IsBagOnly reports the bag-only customer class: accepts bagged goods and
// no loose load.
func (c *Customer) IsBagOnly() bool {
	return c.AcceptsBaggedGoods && !c.AcceptsLooseLoad
}

func (c *Customer) Tooltip() string {
	return fmt.Sprintf("%s\n%s", c.Name, c.LocationText)
}

// MarkerKind selects the visual variant an entity renders with.
type MarkerKind string

const (
	MarkerSupplier        MarkerKind = "supplier"
	MarkerOfftakerVariant MarkerKind = "offtaker"
	MarkerCustomer        MarkerKind = "customer"
	MarkerBagCustomer     MarkerKind = "bag_customer"
)

// VisibleMarker is the rendering-ready projection of one entity. Ephemeral,
// recomputed on every filter change.
type VisibleMarker struct {
	Kind         MarkerKind     `json:"kind"`
	Label        string         `json:"label"`
	Position     geo.Coordinate `json:"position"`
	DisplayColor string         `json:"color"`
	Tooltip      string         `json:"tooltip"`
}
