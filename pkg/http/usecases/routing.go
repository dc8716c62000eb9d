package usecases

import (
	"context"
	"time"

	"github.com/lintang-b-s/arterial/pkg/costfunction"
	"github.com/lintang-b-s/arterial/pkg/engine/routing"
	"github.com/lintang-b-s/arterial/pkg/routestore"
	"github.com/lintang-b-s/arterial/pkg/spatialindex"
	"github.com/lintang-b-s/arterial/pkg/util"
	"go.uber.org/zap"
)

type RoutingService struct {
	log          *zap.Logger
	engine       GraphEngine
	routes       routestore.Repository
	searchRadius float64
	now          func() time.Time
}

func NewRoutingService(log *zap.Logger, engine GraphEngine, routes routestore.Repository,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		routes:       routes,
		searchRadius: searchRadius,
		now:          time.Now,
	}
}

func departureOf(hour, weekday *int) costfunction.Departure {
	d := costfunction.Unspecified()
	if hour != nil {
		d = d.WithHour(*hour)
	}
	if weekday != nil {
		d = d.WithWeekday(*weekday)
	}
	return d
}

// ComputeRoute. best route for req, persisted in the route repository.
// a search without any path is a util.ErrNotFound coded error and is not persisted.
func (rs *RoutingService) ComputeRoute(ctx context.Context, req routestore.RouteRequest) (routestore.StoredRoute, error) {
	return rs.computeRoute(ctx, rs.engine.GetState().RoutingEngine, req)
}

func (rs *RoutingService) computeRoute(ctx context.Context, re *routing.RoutingEngine,
	req routestore.RouteRequest) (routestore.StoredRoute, error) {

	d := departureOf(req.Hour, req.Weekday)
	if err := validateDeparture(d); err != nil {
		return routestore.StoredRoute{}, err
	}
	hour, weekday := re.GetPredictor().Resolve(d)

	route, err := re.FindOptimalRoute(ctx, req.StartPoint, req.EndPoint, costfunction.NewDeparture(hour, weekday))
	if err != nil {
		return routestore.StoredRoute{}, err
	}
	if route.IsEmpty() {
		return routestore.StoredRoute{}, util.WrapErrorf(nil, util.ErrNotFound, "no route found from %q to %q",
			req.StartPoint, req.EndPoint)
	}

	stored := routestore.NewStoredRoute(req, hour, weekday, route, rs.now())
	if err := rs.routes.Save(ctx, stored); err != nil {
		return routestore.StoredRoute{}, util.WrapErrorf(err, util.ErrInternalServerError, "failed to persist route")
	}

	rs.log.Debug("route computed", zap.String("id", stored.ID), zap.String("start", req.StartPoint),
		zap.String("end", req.EndPoint), zap.Int("legs", len(route.Legs)),
		zap.Float64("minutes", route.TotalMinutes))
	return stored, nil
}

// ComputeRouteFromCoordinates. snaps both locations to their nearest graph point, then searches
// the same snapshot generation the points were snapped on
func (rs *RoutingService) ComputeRouteFromCoordinates(ctx context.Context, origLat, origLon, dstLat, dstLon float64,
	hour, weekday *int) (routestore.StoredRoute, error) {
	state := rs.engine.GetState()
	start, end, err := rs.snapOrigDestToNearbyPoints(state.Index, origLat, origLon, dstLat, dstLon)
	if err != nil {
		return routestore.StoredRoute{}, err
	}
	return rs.computeRoute(ctx, state.RoutingEngine, routestore.RouteRequest{
		StartPoint: start,
		EndPoint:   end,
		Hour:       hour,
		Weekday:    weekday,
	})
}

func (rs *RoutingService) snapOrigDestToNearbyPoints(index *spatialindex.Rtree, origLat, origLon, dstLat,
	dstLon float64) (string, string, error) {

	orig, ok := index.NearestPoint(origLat, origLon, rs.searchRadius)
	if !ok {
		return "", "", util.WrapErrorf(nil, util.ErrNotFound, "no point within %.2f km of origin %f,%f",
			rs.searchRadius, origLat, origLon)
	}
	dst, ok := index.NearestPoint(dstLat, dstLon, rs.searchRadius)
	if !ok {
		return "", "", util.WrapErrorf(nil, util.ErrNotFound, "no point within %.2f km of destination %f,%f",
			rs.searchRadius, dstLat, dstLon)
	}
	return orig.Label, dst.Label, nil
}

func (rs *RoutingService) GetRoute(ctx context.Context, id string) (routestore.StoredRoute, error) {
	return rs.routes.Get(ctx, id)
}

func (rs *RoutingService) DeleteRoute(ctx context.Context, id string) error {
	return rs.routes.Delete(ctx, id)
}

func (rs *RoutingService) ListRoutes(ctx context.Context, limit int) ([]routestore.StoredRoute, error) {
	return rs.routes.List(ctx, limit)
}

// ListPoints. sorted distinct start points and sorted distinct end points
func (rs *RoutingService) ListPoints() ([]string, []string) {
	snapshot := rs.engine.GetState().Snapshot
	return snapshot.StartPoints(), snapshot.EndPoints()
}
