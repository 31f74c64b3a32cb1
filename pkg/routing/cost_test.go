package routing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRouter struct {
	route *Route
	err   error
}

func (r *stubRouter) DrivingRoute(_ context.Context, _, _ geo.Coordinate) (*Route, error) {
	return r.route, r.err
}

type stubLookup map[string]*datastructure.Supplier

func (l stubLookup) FindSupplierByName(name string) *datastructure.Supplier {
	return l[name]
}

func routeOfKm(km float64) *Route {
	return &Route{
		DistanceMeters:  km * 1000,
		DurationSeconds: 3900, // 65 min
		Geometry: []geo.Coordinate{
			geo.NewCoordinate(50, 10),
			geo.NewCoordinate(50.5, 10.5),
			geo.NewCoordinate(51, 11),
		},
	}
}

func point(label string) SelectedPoint {
	return SelectedPoint{Label: label, Position: geo.NewCoordinate(50, 10)}
}

func TestComputeRouteStandardCost(t *testing.T) {
	lookup := stubLookup{
		"Werk A": {CompanyName: "Werk A", Dataset: datastructure.DatasetPellets, UnitPrice: 250},
	}
	engine := NewEngine(&stubRouter{route: routeOfKm(100)}, lookup, zap.NewNop())

	result, err := engine.ComputeRoute(context.Background(), point("Werk A"), point("Kunde"),
		datastructure.PriceModeUnit)
	require.NoError(t, err)

	assert.Equal(t, PricingStandard, result.Cost.Model)
	assert.Equal(t, 2.15, result.Cost.PerKmRate, "short haul below 250 km")
	assert.InDelta(t, 8.96, result.Cost.DistanceCost, 0.01)
	assert.InDelta(t, (100.0/24*2.15+250)*1.05, result.Cost.Total, 0.001)
	assert.Equal(t, 100.0, result.DistanceKm)
	assert.Equal(t, "1h 5min", result.DurationText)
	assert.NotEmpty(t, result.Polyline)
}

func TestComputeRouteLongHaulRate(t *testing.T) {
	lookup := stubLookup{
		"Werk A": {CompanyName: "Werk A", Dataset: datastructure.DatasetPellets, UnitPrice: 250},
	}
	engine := NewEngine(&stubRouter{route: routeOfKm(250)}, lookup, zap.NewNop())

	result, err := engine.ComputeRoute(context.Background(), point("Werk A"), point("Kunde"),
		datastructure.PriceModeUnit)
	require.NoError(t, err)
	assert.Equal(t, 1.85, result.Cost.PerKmRate, "250 km is already long haul")
}

func TestComputeRouteBulkResidueCost(t *testing.T) {
	lookup := stubLookup{
		"Späne AG": {CompanyName: "Späne AG", Dataset: datastructure.DatasetResidualWood,
			ProductText: "Sägespäne, trocken", UnitPrice: 20},
	}
	engine := NewEngine(&stubRouter{route: routeOfKm(50)}, lookup, zap.NewNop())

	result, err := engine.ComputeRoute(context.Background(), point("Späne AG"), point("Kunde"),
		datastructure.PriceModeUnit)
	require.NoError(t, err)

	cost := result.Cost
	assert.Equal(t, PricingBulk, cost.Model)
	assert.Equal(t, 1700.0, cost.LoadBaseCost)
	assert.Equal(t, 125.0, cost.TransportCost)
	assert.InDelta(t, 22.54, cost.Total, 0.01, "normalized back to a per-volume-unit figure")
}

func TestBulkBranchNeedsResidualWoodDatasetAndResidueProduct(t *testing.T) {
	testCases := []struct {
		name     string
		supplier *datastructure.Supplier
		want     PricingModel
	}{
		{
			name: "sawdust product in pellets dataset stays standard",
			supplier: &datastructure.Supplier{CompanyName: "W", UnitPrice: 20,
				Dataset: datastructure.DatasetPellets, ProductText: "Sägespäne"},
			want: PricingStandard,
		},
		{
			name: "residual-wood dataset without residue product stays standard",
			supplier: &datastructure.Supplier{CompanyName: "W", UnitPrice: 20,
				Dataset: datastructure.DatasetResidualWood, ProductText: "Rinde"},
			want: PricingStandard,
		},
		{
			name: "ascii spelling triggers bulk",
			supplier: &datastructure.Supplier{CompanyName: "W", UnitPrice: 20,
				Dataset: datastructure.DatasetResidualWood, ProductText: "Saegespaene lose"},
			want: PricingBulk,
		},
		{
			name: "wood chips trigger bulk",
			supplier: &datastructure.Supplier{CompanyName: "W", UnitPrice: 20,
				Dataset: datastructure.DatasetResidualWood, ProductText: "Hackschnitzel G30"},
			want: PricingBulk,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(&stubRouter{route: routeOfKm(50)},
				stubLookup{"W": tt.supplier}, zap.NewNop())
			result, err := engine.ComputeRoute(context.Background(), point("W"), point("Kunde"),
				datastructure.PriceModeUnit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Cost.Model)
		})
	}
}

func TestComputeRouteNoRouteFound(t *testing.T) {
	router := &stubRouter{err: util.WrapErrorf(fmt.Errorf("router code %q", "NoRoute"),
		util.ErrNoRouteFound, "no route")}
	engine := NewEngine(router, stubLookup{}, zap.NewNop())

	selection := NewSelection()
	selection.Add(point("Werk A"))
	a, b, ready := selection.Add(point("Kunde"))
	require.True(t, ready)

	_, err := engine.ComputeRoute(context.Background(), a, b, datastructure.PriceModeUnit)
	require.Error(t, err)

	var domainErr *util.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, util.ErrNoRouteFound, domainErr.Code())

	// terminal state, the caller clears the buffer regardless of outcome
	selection.Clear()
	assert.Zero(t, selection.Len())
}

func TestComputeRouteNoSupplierForCost(t *testing.T) {
	engine := NewEngine(&stubRouter{route: routeOfKm(10)}, stubLookup{}, zap.NewNop())

	_, err := engine.ComputeRoute(context.Background(), point("Niemand"), point("Keiner"),
		datastructure.PriceModeUnit)
	require.Error(t, err)

	var domainErr *util.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, util.ErrNoSupplierForCost, domainErr.Code())
}

func TestComputeRouteBagModeUsesBagPrice(t *testing.T) {
	lookup := stubLookup{
		"Werk A": {CompanyName: "Werk A", Dataset: datastructure.DatasetPellets,
			UnitPrice: 250, BagPrice: 300},
	}
	engine := NewEngine(&stubRouter{route: routeOfKm(100)}, lookup, zap.NewNop())

	result, err := engine.ComputeRoute(context.Background(), point("Werk A"), point("Kunde"),
		datastructure.PriceModeBag)
	require.NoError(t, err)
	assert.Equal(t, 300.0, result.Cost.UnitPrice)
}

func TestSelectionBuffer(t *testing.T) {
	s := NewSelection()

	_, _, ready := s.Add(point("A"))
	assert.False(t, ready)
	assert.Equal(t, 1, s.Len())

	a, b, ready := s.Add(point("B"))
	require.True(t, ready)
	assert.Equal(t, "A", a.Label)
	assert.Equal(t, "B", b.Label)

	s.Clear()
	assert.Zero(t, s.Len())
}
