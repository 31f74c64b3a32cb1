package usecases

import (
	"github.com/angiepellets-dev/Holz-Markt/pkg/catalog"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
	"github.com/angiepellets-dev/Holz-Markt/pkg/visibility"
	"go.uber.org/zap"
)

// MapService answers every marker-facing query of the serving surface over
// one catalog snapshot.
type MapService struct {
	log     *zap.Logger
	catalog EntityCatalog
}

func NewMapService(log *zap.Logger, cat EntityCatalog) *MapService {
	return &MapService{log: log, catalog: cat}
}

func (ms *MapService) VisibleMarkers(cfg datastructure.FilterConfiguration,
	mode datastructure.PriceMode) ([]datastructure.VisibleMarker, geo.Viewport) {

	markers := visibility.ComputeVisible(ms.catalog, cfg, mode)
	return markers, visibility.Viewport(markers)
}

func (ms *MapService) Search(q string) []catalog.SearchHit {
	return ms.catalog.Search(q)
}

func (ms *MapService) Countries() []string {
	return ms.catalog.Countries()
}

// NearestEntity resolves a bare map click to the closest positioned entity
// within radiusKm. The spatial index narrows to a candidate box, the exact
// haversine distance picks the winner.
func (ms *MapService) NearestEntity(lat, lon, radiusKm float64) (string, geo.Coordinate, bool) {
	var (
		bestLabel string
		bestPos   geo.Coordinate
		bestDist  = radiusKm
		found     bool
	)
	for _, entry := range ms.catalog.Nearby(lat, lon, radiusKm) {
		d := geo.CalculateHaversineDistance(lat, lon, entry.GetLat(), entry.GetLon())
		if d <= bestDist {
			bestLabel = entry.GetLabel()
			bestPos = geo.NewCoordinate(entry.GetLat(), entry.GetLon())
			bestDist = d
			found = true
		}
	}
	return bestLabel, bestPos, found
}
