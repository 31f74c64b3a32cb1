package controllers

import (
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
)

type markersRequest struct {
	Filters datastructure.FilterConfiguration `json:"filters"`
	Mode    string                            `json:"mode" validate:"omitempty,oneof=unit bag"`
}

type markersResponse struct {
	Markers  []datastructure.VisibleMarker `json:"markers"`
	Viewport geo.Viewport                  `json:"viewport"`
}

type routePointRequest struct {
	Label string  `json:"label" validate:"required"`
	Lat   float64 `json:"lat" validate:"min=-90,max=90"`
	Lon   float64 `json:"lon" validate:"min=-180,max=180"`
}

type routeRequest struct {
	From routePointRequest `json:"from" validate:"required"`
	To   routePointRequest `json:"to" validate:"required"`
	Mode string            `json:"mode" validate:"omitempty,oneof=unit bag"`
}

// priceMode maps the wire value onto the domain mode, defaulting to the
// loose per-unit price.
func priceMode(s string) datastructure.PriceMode {
	if s == string(datastructure.PriceModeBag) {
		return datastructure.PriceModeBag
	}
	return datastructure.PriceModeUnit
}
