package usecases

import (
	"github.com/angiepellets-dev/Holz-Markt/pkg/catalog"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/spatialindex"
)

type EntityCatalog interface {
	Suppliers() []*datastructure.Supplier
	Customers() []*datastructure.Customer
	Search(q string) []catalog.SearchHit
	Nearby(lat, lon, radiusKm float64) []spatialindex.Entry
	Countries() []string
}
