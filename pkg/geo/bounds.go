package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Viewport is a lat/lon bounding rectangle a map client can fit its view to.
type Viewport struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
	Valid  bool    `json:"valid"`
}

// ViewportFromCoords computes the s2 rect bound of coords, padded by pad
// (fraction of the rect size) on every side. An empty coords yields an
// invalid viewport, callers keep their current view then.
func ViewportFromCoords(coords []Coordinate, pad float64) Viewport {
	if len(coords) == 0 {
		return Viewport{}
	}

	rect := s2.EmptyRect()
	for _, c := range coords {
		rect = rect.AddPoint(s2.LatLngFromDegrees(c.Lat, c.Lon))
	}

	latPad := rect.Lat.Length() * pad
	lonPad := rect.Lng.Length() * pad

	lo := s2.LatLng{Lat: s1.Angle(rect.Lat.Lo - latPad), Lng: s1.Angle(rect.Lng.Lo - lonPad)}
	hi := s2.LatLng{Lat: s1.Angle(rect.Lat.Hi + latPad), Lng: s1.Angle(rect.Lng.Hi + lonPad)}

	return Viewport{
		MinLat: lo.Lat.Degrees(),
		MinLon: lo.Lng.Degrees(),
		MaxLat: hi.Lat.Degrees(),
		MaxLon: hi.Lng.Degrees(),
		Valid:  true,
	}
}
