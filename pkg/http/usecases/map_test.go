package usecases

import (
	"context"
	"testing"

	"github.com/angiepellets-dev/Holz-Markt/pkg/catalog"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	locations map[string]*datastructure.Location
}

func (r *stubResolver) Resolve(_ context.Context, query string) (*datastructure.Location, error) {
	return r.locations[query], nil
}

func newMapService(t *testing.T) *MapService {
	t.Helper()

	resolver := &stubResolver{locations: map[string]*datastructure.Location{
		"Hamburg": datastructure.NewLocation(53.55, 9.99, "Deutschland", "de"),
		"Graz":    datastructure.NewLocation(47.07, 15.44, "Österreich", "at"),
	}}
	suppliers := []*datastructure.Supplier{
		{CompanyName: "Werk Nord", LocationText: "Hamburg",
			Dataset: datastructure.DatasetPellets, UnitPrice: 250},
		{CompanyName: "Werk Süd", LocationText: "Graz",
			Dataset: datastructure.DatasetPellets, UnitPrice: 250},
	}
	pricing.Normalize(suppliers)

	cat := catalog.Build(context.Background(), suppliers, nil, resolver, zap.NewNop())
	return NewMapService(zap.NewNop(), cat)
}

func TestNearestEntityPicksClosestWithinRadius(t *testing.T) {
	ms := newMapService(t)

	label, pos, ok := ms.NearestEntity(53.5, 10.0, 25)
	require.True(t, ok)
	assert.Equal(t, "Werk Nord", label)
	assert.InDelta(t, 53.55, pos.Lat, 0.001)

	// a click in the open sea resolves nothing
	_, _, ok = ms.NearestEntity(56.0, 3.0, 25)
	assert.False(t, ok)
}

func TestVisibleMarkersComputesViewport(t *testing.T) {
	ms := newMapService(t)

	cfg := datastructure.FilterConfiguration{
		ShowPellets:        true,
		AllowNoCertificate: true,
		Tiers:              []datastructure.PriceTier{datastructure.TierLow},
	}
	markers, viewport := ms.VisibleMarkers(cfg, datastructure.PriceModeUnit)
	require.Len(t, markers, 2)
	assert.True(t, viewport.Valid)
	assert.LessOrEqual(t, viewport.MinLat, 47.07)
	assert.GreaterOrEqual(t, viewport.MaxLat, 53.55)
}
