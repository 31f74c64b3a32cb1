package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes coords into the google encoded-polyline format
// that map clients draw route overlays from.
func PolylineFromCoords(coords []Coordinate) string {
	flat := make([][]float64, len(coords))
	for i, c := range coords {
		flat[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(flat))
}
