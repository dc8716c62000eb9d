package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	helper "github.com/lintang-b-s/arterial/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/arterial/pkg/storage"
	"go.uber.org/zap"
)

type segmentAPI struct {
	baseAPI
	segmentService SegmentService
}

func NewSegmentAPI(segmentService SegmentService, log *zap.Logger) *segmentAPI {
	return &segmentAPI{
		baseAPI:        baseAPI{log: log},
		segmentService: segmentService,
	}
}

func (api *segmentAPI) Routes(group *helper.RouteGroup) {
	group.GET("/segments", api.listSegments)
	group.POST("/segments", api.createSegment)
	group.GET("/segments/:id", api.getSegment)
	group.PUT("/segments/:id", api.updateSegment)
	group.DELETE("/segments/:id", api.deleteSegment)
	group.GET("/travel-times", api.listTravelTimes)
	group.PUT("/travel-times", api.putTravelTime)
	group.DELETE("/travel-times/:segment_id/:bucket", api.deleteTravelTime)
}

// listSegments godoc
//
//	@Summary	every segment of the active snapshot
//	@Tags		segments
//	@Produce	json
//	@Success	200	{array}	segmentResponse
//	@Router		/segments [get]
func (api *segmentAPI) listSegments(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	segs := api.segmentService.ListSegments()
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSegmentResponses(segs)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// getSegment godoc
//
//	@Summary	one segment
//	@Tags		segments
//	@Produce	json
//	@Param		id	path		int	true	"segment id"
//	@Success	200	{object}	segmentResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/segments/{id} [get]
func (api *segmentAPI) getSegment(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, ok := api.segmentIDParam(w, r, p, "id")
	if !ok {
		return
	}

	seg, err := api.segmentService.GetSegment(id)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSegmentResponse(seg)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// createSegment godoc
//
//	@Summary	create a segment. id 0 or absent assigns the next id
//	@Tags		segments
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createSegmentRequest	true	"segment"
//	@Success	201		{object}	segmentResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	409		{object}	errorResponse
//	@Router		/segments [post]
func (api *segmentAPI) createSegment(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request createSegmentRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	geometry, err := storage.DecodeGeometry(request.Path)
	if err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("path is not a valid encoded polyline: %w", err))
		return
	}

	seg, err := api.segmentService.CreateSegment(r.Context(), da.NewSegment(request.ID, request.Name,
		request.StartPoint, request.EndPoint, request.LengthKm, geometry))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/segments/%d", seg.ID))

	if err := api.writeJSON(w, http.StatusCreated, envelope{"data": NewSegmentResponse(seg)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// listTravelTimes godoc
//
//	@Summary	travel time baselines, optionally of one segment
//	@Tags		segments
//	@Produce	json
//	@Param		segment_id	query	int	false	"segment id"
//	@Success	200			{array}	travelTimeResponse
//	@Router		/travel-times [get]
func (api *segmentAPI) listTravelTimes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	segmentID, err := parseIntQuery(r.URL.Query(), "segment_id", 0)
	if err != nil || segmentID < 0 {
		api.BadRequestResponse(w, r, errors.New("segment_id must be a positive integer"))
		return
	}

	entries := api.segmentService.ListTravelTimes(int64(segmentID))
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewTravelTimeResponses(entries)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// putTravelTime godoc
//
//	@Summary	insert or replace the baseline of one (segment, bucket)
//	@Tags		segments
//	@Accept		json
//	@Produce	json
//	@Param		body	body		travelTimeRequest	true	"travel time"
//	@Success	200		{object}	travelTimeResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	404		{object}	errorResponse
//	@Router		/travel-times [put]
func (api *segmentAPI) putTravelTime(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request travelTimeRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	entry, err := api.segmentService.PutTravelTime(r.Context(), request.SegmentID, request.Bucket, request.Minutes)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := NewTravelTimeResponses([]da.TravelTimeEntry{entry})[0]
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *segmentAPI) segmentIDParam(w http.ResponseWriter, r *http.Request, p httprouter.Params,
	name string) (int64, bool) {
	id, err := strconv.ParseInt(p.ByName(name), 10, 64)
	if err != nil || id < 1 {
		api.BadRequestResponse(w, r, errors.New("segment id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// updateSegment godoc
//
//	@Summary	replace every field of a segment
//	@Tags		segments
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"segment id"
//	@Param		body	body		updateSegmentRequest	true	"segment"
//	@Success	200		{object}	segmentResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	404		{object}	errorResponse
//	@Router		/segments/{id} [put]
func (api *segmentAPI) updateSegment(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, ok := api.segmentIDParam(w, r, p, "id")
	if !ok {
		return
	}

	var request updateSegmentRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	geometry, err := storage.DecodeGeometry(request.Path)
	if err != nil {
		api.BadRequestResponse(w, r, fmt.Errorf("path is not a valid encoded polyline: %w", err))
		return
	}

	seg, err := api.segmentService.UpdateSegment(r.Context(), da.NewSegment(id, request.Name,
		request.StartPoint, request.EndPoint, request.LengthKm, geometry))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSegmentResponse(seg)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// deleteSegment godoc
//
//	@Summary	delete a segment and its travel times
//	@Tags		segments
//	@Param		id	path	int	true	"segment id"
//	@Success	204
//	@Failure	404	{object}	errorResponse
//	@Router		/segments/{id} [delete]
func (api *segmentAPI) deleteSegment(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, ok := api.segmentIDParam(w, r, p, "id")
	if !ok {
		return
	}

	if err := api.segmentService.DeleteSegment(r.Context(), id); err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteTravelTime godoc
//
//	@Summary	delete the baseline of one (segment, bucket)
//	@Tags		segments
//	@Param		segment_id	path	int		true	"segment id"
//	@Param		bucket		path	string	true	"matin, soir, normal or nuit"
//	@Success	204
//	@Failure	400	{object}	errorResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/travel-times/{segment_id}/{bucket} [delete]
func (api *segmentAPI) deleteTravelTime(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	segmentID, ok := api.segmentIDParam(w, r, p, "segment_id")
	if !ok {
		return
	}

	if err := api.segmentService.DeleteTravelTime(r.Context(), segmentID, p.ByName("bucket")); err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
