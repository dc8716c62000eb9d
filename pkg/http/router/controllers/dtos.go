package controllers

import (
	"math"
	"time"

	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/engine/routing"
	"github.com/lintang-b-s/arterial/pkg/routestore"
	"github.com/lintang-b-s/arterial/pkg/spatialindex"
	"github.com/lintang-b-s/arterial/pkg/storage"
)

type computeRouteRequest struct {
	StartPoint    string `json:"start_point" validate:"required,max=256"`
	EndPoint      string `json:"end_point" validate:"required,max=256"`
	DepartureTime string `json:"departure_time" validate:"omitempty,max=5"`
	Weekday       string `json:"weekday" validate:"omitempty,max=16"`
}

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"required,min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"required,min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"required,min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"required,min=-180,max=180"`
}

type predictionRequest struct {
	SegmentID     int64  `json:"segment_id" validate:"required,min=1"`
	DepartureTime string `json:"departure_time" validate:"omitempty,max=5"`
	Weekday       string `json:"weekday" validate:"omitempty,max=16"`
}

type createSegmentRequest struct {
	ID         int64   `json:"id" validate:"min=0"`
	Name       string  `json:"name" validate:"required,max=256"`
	StartPoint string  `json:"start_point" validate:"required,max=256"`
	EndPoint   string  `json:"end_point" validate:"required,max=256"`
	LengthKm   float64 `json:"length_km" validate:"min=0"`
	Path       string  `json:"path"`
}

type updateSegmentRequest struct {
	Name       string  `json:"name" validate:"required,max=256"`
	StartPoint string  `json:"start_point" validate:"required,max=256"`
	EndPoint   string  `json:"end_point" validate:"required,max=256"`
	LengthKm   float64 `json:"length_km" validate:"min=0"`
	Path       string  `json:"path"`
}

type travelTimeRequest struct {
	SegmentID int64   `json:"segment_id" validate:"required,min=1"`
	Bucket    string  `json:"bucket" validate:"required,oneof=matin soir normal nuit"`
	Minutes   float64 `json:"minutes" validate:"min=0"`
}

type nearestRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type routeLegResponse struct {
	SegmentID    int64   `json:"segment_id"`
	Name         string  `json:"name"`
	StartPoint   string  `json:"start_point"`
	EndPoint     string  `json:"end_point"`
	Dist         float64 `json:"distance"`
	EnterHour    int     `json:"enter_hour"`
	Eta          float64 `json:"eta"`
	Reliability  float64 `json:"reliability"`
	Traffic      string  `json:"traffic"`
	TrafficLabel string  `json:"traffic_label"`
}

type routeResponse struct {
	ID           string             `json:"id"`
	StartPoint   string             `json:"start_point"`
	EndPoint     string             `json:"end_point"`
	Hour         int                `json:"departure_hour"`
	Weekday      int                `json:"weekday"`
	PeakLabel    string             `json:"peak_label"`
	Eta          float64            `json:"eta"`
	Dist         float64            `json:"distance"`
	Traffic      string             `json:"traffic"`
	TrafficLabel string             `json:"traffic_label"`
	Reliability  int                `json:"reliability"`
	Path         string             `json:"path"`
	Legs         []routeLegResponse `json:"legs"`
	CreatedAt    time.Time          `json:"created_at"`
}

func NewRouteResponse(stored routestore.StoredRoute) routeResponse {
	route := stored.Route
	if route == nil {
		route = da.NewEmptyRoute()
	}

	legs := make([]routeLegResponse, len(route.Legs))
	for i, l := range route.Legs {
		legs[i] = routeLegResponse{
			SegmentID:    l.Segment.ID,
			Name:         l.Segment.Name,
			StartPoint:   l.Segment.StartPoint,
			EndPoint:     l.Segment.EndPoint,
			Dist:         l.Segment.LengthKm,
			EnterHour:    l.EnterHour,
			Eta:          l.Minutes,
			Reliability:  l.Reliability,
			Traffic:      l.Congestion.String(),
			TrafficLabel: l.Congestion.FrenchLabel(),
		}
	}

	return routeResponse{
		ID:           stored.ID,
		StartPoint:   stored.Request.StartPoint,
		EndPoint:     stored.Request.EndPoint,
		Hour:         stored.Hour,
		Weekday:      stored.Weekday,
		PeakLabel:    stored.PeakLabel,
		Eta:          route.TotalMinutes,
		Dist:         route.DistanceKm,
		Traffic:      route.Congestion.String(),
		TrafficLabel: route.Congestion.FrenchLabel(),
		Reliability:  int(math.Round(route.Reliability)),
		Path:         storage.EncodeGeometry(route.Geometry()),
		Legs:         legs,
		CreatedAt:    stored.CreatedAt,
	}
}

func NewRouteResponses(stored []routestore.StoredRoute) []routeResponse {
	resp := make([]routeResponse, len(stored))
	for i, s := range stored {
		resp[i] = NewRouteResponse(s)
	}
	return resp
}

type pointsResponse struct {
	StartPoints []string `json:"start_points"`
	EndPoints   []string `json:"end_points"`
}

type predictionResponse struct {
	SegmentID    int64   `json:"segment_id"`
	Name         string  `json:"name"`
	StartPoint   string  `json:"start_point"`
	EndPoint     string  `json:"end_point"`
	Dist         float64 `json:"distance"`
	Hour         int     `json:"departure_hour"`
	Weekday      int     `json:"weekday"`
	Bucket       string  `json:"bucket"`
	FromTable    bool    `json:"from_table"`
	Eta          float64 `json:"eta"`
	Reliability  float64 `json:"reliability"`
	Traffic      string  `json:"traffic"`
	TrafficLabel string  `json:"traffic_label"`
	Path         string  `json:"path,omitempty"`
}

func NewPredictionResponse(p routing.SegmentPrediction) predictionResponse {
	return predictionResponse{
		SegmentID:    p.Segment.ID,
		Name:         p.Segment.Name,
		StartPoint:   p.Segment.StartPoint,
		EndPoint:     p.Segment.EndPoint,
		Dist:         p.Segment.LengthKm,
		Hour:         p.Prediction.Hour,
		Weekday:      p.Prediction.Weekday,
		Bucket:       p.Prediction.Bucket.String(),
		FromTable:    p.Prediction.FromTable,
		Eta:          p.Prediction.Minutes,
		Reliability:  p.Prediction.Reliability,
		Traffic:      p.Congestion.String(),
		TrafficLabel: p.Congestion.FrenchLabel(),
		Path:         storage.EncodeGeometry(p.Segment.Geometry),
	}
}

func NewPredictionResponses(preds []routing.SegmentPrediction) []predictionResponse {
	resp := make([]predictionResponse, len(preds))
	for i, p := range preds {
		resp[i] = NewPredictionResponse(p)
	}
	return resp
}

type segmentResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	StartPoint string  `json:"start_point"`
	EndPoint   string  `json:"end_point"`
	LengthKm   float64 `json:"length_km"`
	Path       string  `json:"path,omitempty"`
}

func NewSegmentResponse(seg da.Segment) segmentResponse {
	return segmentResponse{
		ID:         seg.ID,
		Name:       seg.Name,
		StartPoint: seg.StartPoint,
		EndPoint:   seg.EndPoint,
		LengthKm:   seg.LengthKm,
		Path:       storage.EncodeGeometry(seg.Geometry),
	}
}

func NewSegmentResponses(segs []da.Segment) []segmentResponse {
	resp := make([]segmentResponse, len(segs))
	for i, s := range segs {
		resp[i] = NewSegmentResponse(s)
	}
	return resp
}

type travelTimeResponse struct {
	SegmentID int64   `json:"segment_id"`
	Bucket    string  `json:"bucket"`
	Minutes   float64 `json:"minutes"`
}

func NewTravelTimeResponses(entries []da.TravelTimeEntry) []travelTimeResponse {
	resp := make([]travelTimeResponse, len(entries))
	for i, e := range entries {
		resp[i] = travelTimeResponse{
			SegmentID: e.SegmentID,
			Bucket:    e.Bucket.String(),
			Minutes:   e.Minutes,
		}
	}
	return resp
}

type nearestPointResponse struct {
	Label      string  `json:"label"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
}

func NewNearestPointResponse(p spatialindex.NearbyPoint) nearestPointResponse {
	return nearestPointResponse{
		Label:      p.Label,
		Lat:        p.Coordinate.Lat,
		Lon:        p.Coordinate.Lon,
		DistanceKm: p.DistanceKm,
	}
}

type nearestSegmentResponse struct {
	segmentResponse
	DistanceKm float64 `json:"distance_km"`
}

func NewNearestSegmentResponse(s spatialindex.NearbySegment) nearestSegmentResponse {
	return nearestSegmentResponse{
		segmentResponse: NewSegmentResponse(s.Segment),
		DistanceKm:      s.DistanceKm,
	}
}
