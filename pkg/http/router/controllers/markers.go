package controllers

import (
	"encoding/json"
	"net/http"

	router_helper "github.com/angiepellets-dev/Holz-Markt/pkg/http/router/routerhelper"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

type Controller struct {
	mapService   MapService
	routeService RouteService
	log          *zap.Logger
}

func New(mapService MapService, routeService RouteService, log *zap.Logger) *Controller {
	return &Controller{
		mapService:   mapService,
		routeService: routeService,
		log:          log,
	}
}

func (c *Controller) Routes(group *router_helper.RouteGroup) {
	group.POST("/markers", c.markers)
	group.GET("/search", c.search)
	group.GET("/countries", c.countries)
	group.POST("/route", c.route)
}

// markers godoc
//
//	@Summary		compute visible markers
//	@Description	applies a filter-configuration snapshot and returns the visible marker set with its viewport bounds
//	@Tags			map
//	@Accept			json
//	@Produce		json
//	@Param			body	body	markersRequest	true	"filter snapshot and price mode"
//	@Success		200	{object}	markersResponse
//	@Router			/markers [post]
func (c *Controller) markers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req markersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.badRequestResponse(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		c.failedValidationResponse(w, r, err)
		return
	}

	markers, viewport := c.mapService.VisibleMarkers(req.Filters, priceMode(req.Mode))

	if err := writeJSON(w, http.StatusOK, envelope{"data": markersResponse{
		Markers:  markers,
		Viewport: viewport,
	}}, nil); err != nil {
		c.serverErrorResponse(w, r, err)
	}
}

// search godoc
//
//	@Summary		search catalog entities
//	@Description	case-insensitive substring search over entity names and location texts
//	@Tags			map
//	@Produce		json
//	@Param			q	query	string	true	"search term"
//	@Router			/search [get]
func (c *Controller) search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query().Get("q")
	if q == "" {
		c.errorResponse(w, r, http.StatusBadRequest, "query parameter q is required")
		return
	}

	hits := c.mapService.Search(q)
	if err := writeJSON(w, http.StatusOK, envelope{"data": hits}, nil); err != nil {
		c.serverErrorResponse(w, r, err)
	}
}

// countries godoc
//
//	@Summary	distinct country codes of positioned entities
//	@Tags		map
//	@Produce	json
//	@Router		/countries [get]
func (c *Controller) countries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := writeJSON(w, http.StatusOK,
		envelope{"data": c.mapService.Countries()}, nil); err != nil {
		c.serverErrorResponse(w, r, err)
	}
}
