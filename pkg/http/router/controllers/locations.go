package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/arterial/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

const DEFAULT_SEARCH_LIMIT = 20

type locationAPI struct {
	baseAPI
	locationService LocationService
}

func NewLocationAPI(locationService LocationService, log *zap.Logger) *locationAPI {
	return &locationAPI{
		baseAPI:         baseAPI{log: log},
		locationService: locationService,
	}
}

func (api *locationAPI) Routes(group *helper.RouteGroup) {
	group.GET("/locations/search", api.search)
	group.GET("/locations/nearest", api.nearestPoint)
	group.GET("/locations/nearest-segment", api.nearestSegment)
}

// search godoc
//
//	@Summary	graph points whose name contains q
//	@Tags		locations
//	@Produce	json
//	@Param		q		query	string	true	"query"
//	@Param		limit	query	int		false	"maximum number of points"
//	@Success	200		{array}	string
//	@Router		/locations/search [get]
func (api *locationAPI) search(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	limit, err := parseIntQuery(query, "limit", DEFAULT_SEARCH_LIMIT)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	points, err := api.locationService.SearchLocations(query.Get("q"), limit)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": points}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *locationAPI) parseNearest(w http.ResponseWriter, r *http.Request) (nearestRequest, bool) {
	var (
		request nearestRequest
		err     error
	)
	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return request, false
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return request, false
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return request, false
	}
	return request, true
}

// nearestPoint godoc
//
//	@Summary	graph point closest to a location
//	@Tags		locations
//	@Produce	json
//	@Param		lat	query		number	true	"latitude"
//	@Param		lon	query		number	true	"longitude"
//	@Success	200	{object}	nearestPointResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/locations/nearest [get]
func (api *locationAPI) nearestPoint(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, ok := api.parseNearest(w, r)
	if !ok {
		return
	}

	point, err := api.locationService.NearestPoint(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestPointResponse(point)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// nearestSegment godoc
//
//	@Summary	segment passing closest to a location
//	@Tags		locations
//	@Produce	json
//	@Param		lat	query		number	true	"latitude"
//	@Param		lon	query		number	true	"longitude"
//	@Success	200	{object}	nearestSegmentResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/locations/nearest-segment [get]
func (api *locationAPI) nearestSegment(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, ok := api.parseNearest(w, r)
	if !ok {
		return
	}

	seg, err := api.locationService.NearestSegment(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestSegmentResponse(seg)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
