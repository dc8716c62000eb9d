package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/arterial/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type trafficAPI struct {
	baseAPI
	trafficService TrafficService
}

func NewTrafficAPI(trafficService TrafficService, log *zap.Logger) *trafficAPI {
	return &trafficAPI{
		baseAPI:        baseAPI{log: log},
		trafficService: trafficService,
	}
}

func (api *trafficAPI) Routes(group *helper.RouteGroup) {
	group.POST("/traffic/prediction", api.predict)
	group.GET("/traffic/congestion", api.congestion)
}

// predict godoc
//
//	@Summary	travel time, reliability and traffic level of one segment
//	@Tags		traffic
//	@Accept		json
//	@Produce	json
//	@Param		body	body		predictionRequest	true	"prediction request"
//	@Success	200		{object}	predictionResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	404		{object}	errorResponse
//	@Router		/traffic/prediction [post]
func (api *trafficAPI) predict(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request predictionRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	hour, weekday := parseDeparture(request.DepartureTime, request.Weekday)
	pred, err := api.trafficService.PredictSegment(request.SegmentID, hour, weekday)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPredictionResponse(pred)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// congestion godoc
//
//	@Summary	traffic level of every segment at one departure
//	@Tags		traffic
//	@Produce	json
//	@Param		departure_time	query		string	false	"HH or HH:MM"
//	@Param		weekday			query		string	false	"lundi..dimanche"
//	@Success	200				{array}		predictionResponse
//	@Router		/traffic/congestion [get]
func (api *trafficAPI) congestion(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	hour, weekday := parseDepartureQuery(r.URL.Query())

	overview, err := api.trafficService.CongestionOverview(r.Context(), hour, weekday)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPredictionResponses(overview)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
