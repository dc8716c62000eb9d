package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/arterial/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/arterial/pkg/routestore"
	"go.uber.org/zap"
)

const DEFAULT_ROUTE_LIST_LIMIT = 50

type routingAPI struct {
	baseAPI
	routingService RoutingService
}

func NewRoutingAPI(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		baseAPI:        baseAPI{log: log},
		routingService: routingService,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/points", api.listPoints)
	group.POST("/routes/compute", api.computeRoute)
	group.GET("/routes", api.listRoutes)
	group.GET("/routes/:id", api.getRoute)
	group.DELETE("/routes/:id", api.deleteRoute)
	group.GET("/computeRoutes", api.shortestPath)
}

// listPoints godoc
//
//	@Summary		distinct start and end points of the segment graph
//	@Tags			routing
//	@Produce		json
//	@Success		200	{object}	pointsResponse
//	@Router			/points [get]
func (api *routingAPI) listPoints(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	starts, ends := api.routingService.ListPoints()

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": pointsResponse{
		StartPoints: starts,
		EndPoints:   ends,
	}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// computeRoute godoc
//
//	@Summary		compute and store the fastest route between two named points
//	@Description	direct segment first, then two and three hop paths. departure_time is "HH" or "HH:MM", weekday a french day name. both default to now.
//	@Tags			routing
//	@Accept			json
//	@Produce		json
//	@Param			body	body		computeRouteRequest	true	"route request"
//	@Success		200		{object}	routeResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		422		{object}	errorResponse
//	@Router			/routes/compute [post]
func (api *routingAPI) computeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request computeRouteRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.StartPoint = strings.TrimSpace(request.StartPoint)
	request.EndPoint = strings.TrimSpace(request.EndPoint)
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	hour, weekday := parseDeparture(request.DepartureTime, request.Weekday)
	stored, err := api.routingService.ComputeRoute(r.Context(), routestore.RouteRequest{
		StartPoint: request.StartPoint,
		EndPoint:   request.EndPoint,
		Hour:       hour,
		Weekday:    weekday,
	})
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/api/routes/"+stored.ID)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(stored)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// shortestPath godoc
//
//	@Summary		compute and store the fastest route between two locations snapped to their nearest points
//	@Tags			routing
//	@Produce		json
//	@Param			origin_lat		query		number	true	"origin latitude"
//	@Param			origin_lon		query		number	true	"origin longitude"
//	@Param			destination_lat	query		number	true	"destination latitude"
//	@Param			destination_lon	query		number	true	"destination longitude"
//	@Param			departure_time	query		string	false	"HH or HH:MM"
//	@Param			weekday			query		string	false	"lundi..dimanche"
//	@Success		200				{object}	routeResponse
//	@Failure		400				{object}	errorResponse
//	@Failure		404				{object}	errorResponse
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	hour, weekday := parseDepartureQuery(query)
	stored, err := api.routingService.ComputeRouteFromCoordinates(r.Context(), request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, hour, weekday)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(stored)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// listRoutes godoc
//
//	@Summary	stored routes, most recent first
//	@Tags		routing
//	@Produce	json
//	@Param		limit	query		int	false	"maximum number of routes"
//	@Success	200		{array}		routeResponse
//	@Router		/routes [get]
func (api *routingAPI) listRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	limit, err := parseIntQuery(r.URL.Query(), "limit", DEFAULT_ROUTE_LIST_LIMIT)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if limit < 0 {
		api.BadRequestResponse(w, r, errors.New("limit must be non-negative"))
		return
	}

	routes, err := api.routingService.ListRoutes(r.Context(), limit)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponses(routes)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// getRoute godoc
//
//	@Summary	one stored route
//	@Tags		routing
//	@Produce	json
//	@Param		id	path		string	true	"route id"
//	@Success	200	{object}	routeResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/routes/{id} [get]
func (api *routingAPI) getRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	stored, err := api.routingService.GetRoute(r.Context(), p.ByName("id"))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(stored)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// deleteRoute godoc
//
//	@Summary	delete a stored route
//	@Tags		routing
//	@Param		id	path	string	true	"route id"
//	@Success	204
//	@Failure	404	{object}	errorResponse
//	@Router		/routes/{id} [delete]
func (api *routingAPI) deleteRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.routingService.DeleteRoute(r.Context(), p.ByName("id")); err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
