package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
	"github.com/angiepellets-dev/Holz-Markt/pkg/routing"
	"github.com/julienschmidt/httprouter"
)

// route godoc
//
//	@Summary		route and cost estimate between two selected entities
//	@Description	asks the routing provider for the driving route and prices it with the applicable cost formula
//	@Tags			route
//	@Accept			json
//	@Produce		json
//	@Param			body	body	routeRequest	true	"two labeled endpoints and the price mode"
//	@Router			/route [post]
func (c *Controller) route(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.badRequestResponse(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		c.failedValidationResponse(w, r, err)
		return
	}

	from := routing.SelectedPoint{
		Label:    req.From.Label,
		Position: geo.NewCoordinate(req.From.Lat, req.From.Lon),
	}
	to := routing.SelectedPoint{
		Label:    req.To.Label,
		Position: geo.NewCoordinate(req.To.Lat, req.To.Lon),
	}

	result, err := c.routeService.Route(r.Context(), from, to, priceMode(req.Mode))
	if err != nil {
		c.errorResponse(w, r, getStatusCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": result}, nil); err != nil {
		c.serverErrorResponse(w, r, err)
	}
}
