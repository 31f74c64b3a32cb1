package spatialindex

import (
	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
	"github.com/tidwall/rtree"
)

// Entry is one positioned catalog entity in the index, addressed by the
// same label the selection buffer and the catalog lookups use.
type Entry struct {
	label string
	lat   float64
	lon   float64
}

func (e Entry) GetLabel() string {
	return e.label
}

func (e Entry) GetLat() float64 {
	return e.lat
}

func (e Entry) GetLon() float64 {
	return e.lon
}

type Rtree struct {
	tr *rtree.RTreeG[Entry]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[Entry]
	return &Rtree{
		tr: &tr,
	}
}

func (rt *Rtree) Insert(label string, lat, lon float64) {
	rt.tr.Insert([2]float64{lon, lat}, [2]float64{lon, lat},
		Entry{label: label, lat: lat, lon: lon})
}

// SearchWithinRadius searches for entities within radius (in km) of the query
// point (qLat, qLon), capped at 20 hits.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []Entry {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]Entry, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data Entry) bool {
			results = append(results, data)
			if len(results) >= 20 {
				return false
			}
			return true
		})
	return results
}
