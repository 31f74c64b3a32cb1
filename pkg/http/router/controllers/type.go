package controllers

import (
	"context"

	"github.com/angiepellets-dev/Holz-Markt/pkg/catalog"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
	"github.com/angiepellets-dev/Holz-Markt/pkg/routing"
)

type MapService interface {
	VisibleMarkers(cfg datastructure.FilterConfiguration,
		mode datastructure.PriceMode) ([]datastructure.VisibleMarker, geo.Viewport)
	Search(q string) []catalog.SearchHit
	Countries() []string
	NearestEntity(lat, lon, radiusKm float64) (string, geo.Coordinate, bool)
}

type RouteService interface {
	Route(ctx context.Context, a, b routing.SelectedPoint,
		mode datastructure.PriceMode) (*routing.RouteResult, error)
}
