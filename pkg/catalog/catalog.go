package catalog

import (
	"context"
	"strings"

	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/spatialindex"
	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// LocationResolver fills entity coordinates, usually the cached geocoder.
type LocationResolver interface {
	Resolve(ctx context.Context, query string) (*datastructure.Location, error)
}

// buyer-text keywords that mark a primary-dataset supplier as a
// residual-wood offtaker, matched after diacritic folding
var offtakerKeywords = []string{"sagerestholz", "saegerestholz"}

// Catalog owns the combined supplier and customer collections of one load
// cycle. Effectively immutable once Build returns.
type Catalog struct {
	suppliers []*datastructure.Supplier
	customers []*datastructure.Customer
	index     *spatialindex.Rtree
}

// Build tags offtakers, geocodes every entity sequentially (one at a time,
// bounding burst load on the provider) and indexes the positioned ones.
// Entities the geocoder has no match for stay in the catalog without a
// position. A geocoder failure abandons only the affected entity.
func Build(ctx context.Context, suppliers []*datastructure.Supplier,
	customers []*datastructure.Customer, resolver LocationResolver, log *zap.Logger) *Catalog {

	c := &Catalog{
		suppliers: suppliers,
		customers: customers,
		index:     spatialindex.NewRtree(),
	}

	for _, s := range suppliers {
		s.IsResidualWoodOfftaker = isOfftaker(s)
	}

	positioned := 0
	for _, s := range suppliers {
		loc, err := resolver.Resolve(ctx, s.LocationText)
		if err != nil {
			log.Warn("geocoding supplier failed", zap.String("supplier", s.CompanyName),
				zap.String("query", s.LocationText), zap.Error(err))
			continue
		}
		if loc == nil {
			continue
		}
		s.Location = loc
		c.index.Insert(s.CompanyName, loc.Lat, loc.Lon)
		positioned++
	}

	for _, k := range customers {
		loc, err := resolver.Resolve(ctx, k.LocationText)
		if err != nil {
			log.Warn("geocoding customer failed", zap.String("customer", k.Name),
				zap.String("query", k.LocationText), zap.Error(err))
			continue
		}
		if loc == nil {
			continue
		}
		k.Location = loc
		c.index.Insert(k.Name, loc.Lat, loc.Lon)
		positioned++
	}

	log.Info("catalog built", zap.Int("suppliers", len(suppliers)),
		zap.Int("customers", len(customers)), zap.Int("positioned", positioned))
	return c
}

func isOfftaker(s *datastructure.Supplier) bool {
	if s.Dataset != datastructure.DatasetPellets {
		return false
	}
	buyer := util.FoldDiacritics(s.BuyerText)
	for _, keyword := range offtakerKeywords {
		if strings.Contains(buyer, keyword) {
			return true
		}
	}
	return false
}

func (c *Catalog) Suppliers() []*datastructure.Supplier {
	return c.suppliers
}

func (c *Catalog) Customers() []*datastructure.Customer {
	return c.customers
}

// FindSupplierByName returns the first supplier with the given company
// name. Name collisions are not disambiguated, the first row wins.
func (c *Catalog) FindSupplierByName(name string) *datastructure.Supplier {
	for _, s := range c.suppliers {
		if s.CompanyName == name {
			return s
		}
	}
	return nil
}

// SearchHit is one structured-search result. Searching runs over entity
// fields, not over rendered tooltip markup.
type SearchHit struct {
	Label        string                 `json:"label"`
	LocationText string                 `json:"location_text"`
	Kind         string                 `json:"kind"`
	Location     *datastructure.Location `json:"location,omitempty"`
}

// Search matches q case-insensitively against entity names and location
// texts.
func (c *Catalog) Search(q string) []SearchHit {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}

	var hits []SearchHit
	for _, s := range c.suppliers {
		if strings.Contains(strings.ToLower(s.CompanyName), q) ||
			strings.Contains(strings.ToLower(s.LocationText), q) {
			hits = append(hits, SearchHit{
				Label:        s.CompanyName,
				LocationText: s.LocationText,
				Kind:         "supplier",
				Location:     s.Location,
			})
		}
	}
	for _, k := range c.customers {
		if strings.Contains(strings.ToLower(k.Name), q) ||
			strings.Contains(strings.ToLower(k.LocationText), q) {
			hits = append(hits, SearchHit{
				Label:        k.Name,
				LocationText: k.LocationText,
				Kind:         "customer",
				Location:     k.Location,
			})
		}
	}
	return hits
}

// Nearby returns positioned entities within radiusKm of a point, for
// map-click hit testing.
func (c *Catalog) Nearby(lat, lon, radiusKm float64) []spatialindex.Entry {
	return c.index.SearchWithinRadius(lat, lon, radiusKm)
}

// Countries returns the distinct country codes of all positioned entities,
// sorted, for building the country filter control.
func (c *Catalog) Countries() []string {
	set := make(map[string]struct{})
	for _, s := range c.suppliers {
		if s.Location != nil && s.Location.CountryCode != "" {
			set[s.Location.CountryCode] = struct{}{}
		}
	}
	for _, k := range c.customers {
		if k.Location != nil && k.Location.CountryCode != "" {
			set[k.Location.CountryCode] = struct{}{}
		}
	}

	codes := maps.Keys(set)
	slices.Sort(codes)
	return codes
}
