package routing

import (
	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
)

// SelectedPoint is one marker the user clicked, its label resolving back
// into the catalog.
type SelectedPoint struct {
	Label    string         `json:"label"`
	Position geo.Coordinate `json:"position"`
}

// Selection is the transient two-point buffer behind marker clicks. It
// holds 0, 1 or 2 points and is cleared after a route reaches a terminal
// state or on a background map click.
type Selection struct {
	points []SelectedPoint
}

func NewSelection() *Selection {
	return &Selection{points: make([]SelectedPoint, 0, 2)}
}

// Add records a click. Once the second point arrives the pair is returned
// and the buffer keeps it until the caller clears after the route attempt.
func (s *Selection) Add(p SelectedPoint) (a, b SelectedPoint, ready bool) {
	if len(s.points) >= 2 {
		return a, b, false
	}
	s.points = append(s.points, p)
	if len(s.points) == 2 {
		return s.points[0], s.points[1], true
	}
	return a, b, false
}

func (s *Selection) Clear() {
	s.points = s.points[:0]
}

func (s *Selection) Len() int {
	return len(s.points)
}
