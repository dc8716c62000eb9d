package controllers

import (
	"context"

	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/engine/routing"
	"github.com/lintang-b-s/arterial/pkg/routestore"
	"github.com/lintang-b-s/arterial/pkg/spatialindex"
)

type RoutingService interface {
	ComputeRoute(ctx context.Context, req routestore.RouteRequest) (routestore.StoredRoute, error)
	ComputeRouteFromCoordinates(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
		hour, weekday *int) (routestore.StoredRoute, error)
	GetRoute(ctx context.Context, id string) (routestore.StoredRoute, error)
	ListRoutes(ctx context.Context, limit int) ([]routestore.StoredRoute, error)
	DeleteRoute(ctx context.Context, id string) error
	ListPoints() ([]string, []string)
}

type TrafficService interface {
	PredictSegment(segmentID int64, hour, weekday *int) (routing.SegmentPrediction, error)
	CongestionOverview(ctx context.Context, hour, weekday *int) ([]routing.SegmentPrediction, error)
}

type SegmentService interface {
	ListSegments() []da.Segment
	GetSegment(id int64) (da.Segment, error)
	CreateSegment(ctx context.Context, seg da.Segment) (da.Segment, error)
	UpdateSegment(ctx context.Context, seg da.Segment) (da.Segment, error)
	DeleteSegment(ctx context.Context, id int64) error
	ListTravelTimes(segmentID int64) []da.TravelTimeEntry
	PutTravelTime(ctx context.Context, segmentID int64, bucket string, minutes float64) (da.TravelTimeEntry, error)
	DeleteTravelTime(ctx context.Context, segmentID int64, bucket string) error
}

type LocationService interface {
	SearchLocations(query string, limit int) ([]string, error)
	NearestPoint(lat, lon float64) (spatialindex.NearbyPoint, error)
	NearestSegment(lat, lon float64) (spatialindex.NearbySegment, error)
}
