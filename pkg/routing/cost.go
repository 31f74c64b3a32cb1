package routing

import (
	"context"
	"strings"

	"github.com/angiepellets-dev/Holz-Markt/pkg"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
	"go.uber.org/zap"
)

// Router is the external routing provider.
type Router interface {
	DrivingRoute(ctx context.Context, a, b geo.Coordinate) (*Route, error)
}

// SupplierLookup resolves a selected marker label back to a priced
// supplier.
type SupplierLookup interface {
	FindSupplierByName(name string) *datastructure.Supplier
}

// product-text keywords of the bulk residue branch, matched after
// diacritic folding ("Sägespäne" -> "sagespane")
var bulkProductKeywords = []string{"sagespane", "saegespaene", "saegespane", "hackschnitzel"}

// PricingModel names which of the two mutually exclusive cost formulas
// priced a route.
type PricingModel string

const (
	PricingStandard PricingModel = "standard"
	PricingBulk     PricingModel = "bulk"
)

// CostBreakdown carries every intermediate figure of the applied formula so
// the client can render it.
type CostBreakdown struct {
	Model     PricingModel `json:"model"`
	UnitPrice float64      `json:"unit_price"`
	PerKmRate float64      `json:"per_km_rate"`

	// standard branch
	DistanceCost float64 `json:"distance_cost,omitempty"`

	// bulk branch, per truckload before normalization
	LoadBaseCost  float64 `json:"load_base_cost,omitempty"`
	TransportCost float64 `json:"transport_cost,omitempty"`

	// final reported cost: standard = per delivery, bulk = per volume-unit
	Total float64 `json:"total"`
}

// RouteResult is the summary emitted for display after a successful route.
type RouteResult struct {
	FromLabel string `json:"from_label"`
	ToLabel   string `json:"to_label"`

	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	DurationText    string  `json:"duration_text"`

	Polyline string         `json:"polyline"`
	Midpoint geo.Coordinate `json:"midpoint"`

	SupplierName string        `json:"supplier_name"`
	Cost         CostBreakdown `json:"cost"`
}

// Engine computes the transport cost estimate between two selected
// entities. It is stateless, the selection buffer lives with the caller
// and must be cleared after every terminal state.
type Engine struct {
	router  Router
	catalog SupplierLookup
	log     *zap.Logger
}

func NewEngine(router Router, catalog SupplierLookup, log *zap.Logger) *Engine {
	return &Engine{
		router:  router,
		catalog: catalog,
		log:     log,
	}
}

// ComputeRoute asks the router for the driving route between the two
// selected points and prices it with one of the two cost formulas. Either
// endpoint's label may resolve the supplier, the first match wins; when
// neither does the operation fails with ErrNoSupplierForCost and no cost is
// computed.
func (e *Engine) ComputeRoute(ctx context.Context, a, b SelectedPoint,
	mode datastructure.PriceMode) (*RouteResult, error) {

	route, err := e.router.DrivingRoute(ctx, a.Position, b.Position)
	if err != nil {
		return nil, err
	}

	distanceKm := route.DistanceMeters / 1000
	durationMin := util.SecondsToMinutes(route.DurationSeconds)

	supplier := e.catalog.FindSupplierByName(a.Label)
	if supplier == nil {
		supplier = e.catalog.FindSupplierByName(b.Label)
	}
	if supplier == nil {
		return nil, util.WrapErrorf(nil, util.ErrNoSupplierForCost,
			"no supplier for %q or %q", a.Label, b.Label)
	}

	unitPrice := supplier.PriceFor(mode)

	var cost CostBreakdown
	if isBulkResidue(supplier) {
		cost = bulkCost(unitPrice, distanceKm)
	} else {
		cost = standardCost(unitPrice, distanceKm)
	}

	result := &RouteResult{
		FromLabel:       a.Label,
		ToLabel:         b.Label,
		DistanceKm:      util.RoundFloat(distanceKm, 1),
		DurationMinutes: durationMin,
		DurationText:    util.FormatMinutes(durationMin),
		Polyline:        geo.PolylineFromCoords(route.Geometry),
		Midpoint:        midpoint(route.Geometry, a.Position),
		SupplierName:    supplier.CompanyName,
		Cost:            cost,
	}

	e.log.Info("route computed",
		zap.String("from", a.Label), zap.String("to", b.Label),
		zap.Float64("distance_km", result.DistanceKm),
		zap.String("duration", result.DurationText),
		zap.String("pricing_model", string(cost.Model)),
		zap.Float64("total", cost.Total))

	return result, nil
}

// isBulkResidue gates the bulk branch: only residual-wood suppliers whose
// product text names a sawdust/wood-chip residue.
func isBulkResidue(s *datastructure.Supplier) bool {
	if s.Dataset != datastructure.DatasetResidualWood {
		return false
	}
	product := util.FoldDiacritics(s.ProductText)
	for _, keyword := range bulkProductKeywords {
		if strings.Contains(product, keyword) {
			return true
		}
	}
	return false
}

// standardCost prices a pellet delivery: the distance share of one truck
// over the payload divisor, a tiered long-haul rate, plus the works price,
// with the flat surcharge on top.
func standardCost(unitPrice, distanceKm float64) CostBreakdown {
	rate := pkg.SHORT_HAUL_RATE_PER_KM
	if distanceKm >= pkg.LONG_HAUL_THRESHOLD_KM {
		rate = pkg.LONG_HAUL_RATE_PER_KM
	}
	distanceCost := distanceKm / pkg.TRUCK_PAYLOAD_DIVISOR * rate

	return CostBreakdown{
		Model:        PricingStandard,
		UnitPrice:    unitPrice,
		PerKmRate:    rate,
		DistanceCost: distanceCost,
		Total:        (distanceCost + unitPrice) * pkg.TRANSPORT_SURCHARGE,
	}
}

// bulkCost prices a full residue truckload and normalizes the total back to
// a per-volume-unit figure.
func bulkCost(unitPrice, distanceKm float64) CostBreakdown {
	loadBase := unitPrice * pkg.BULK_LOAD_CAPACITY
	transport := pkg.BULK_RATE_PER_KM * distanceKm
	withSurcharge := (loadBase + transport) * pkg.TRANSPORT_SURCHARGE

	return CostBreakdown{
		Model:         PricingBulk,
		UnitPrice:     unitPrice,
		PerKmRate:     pkg.BULK_RATE_PER_KM,
		LoadBaseCost:  loadBase,
		TransportCost: transport,
		Total:         withSurcharge / pkg.BULK_LOAD_CAPACITY,
	}
}

func midpoint(geometry []geo.Coordinate, fallback geo.Coordinate) geo.Coordinate {
	if len(geometry) == 0 {
		return fallback
	}
	return geometry[len(geometry)/2]
}
