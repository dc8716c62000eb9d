package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lintang-b-s/arterial/pkg"
	"github.com/lintang-b-s/arterial/pkg/costfunction"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/engine"
	"github.com/lintang-b-s/arterial/pkg/engine/routing"
	"github.com/lintang-b-s/arterial/pkg/routestore"
	"github.com/lintang-b-s/arterial/pkg/storage"
	"github.com/lintang-b-s/arterial/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	babBoujloud = da.NewCoordinate(34.0617, -4.9836)
	placeAtlas  = da.NewCoordinate(34.0331, -5.0003)
	gareDeFes   = da.NewCoordinate(34.0462, -4.9986)
)

type fixture struct {
	store     *storage.MemoryStore
	engine    *engine.Engine
	routes    *routestore.LRURepository
	routing   *RoutingService
	traffic   *TrafficService
	segments  *SegmentService
	locations *LocationService
}

// wednesday 14:00, day factor 1.2 and hour factor 1.0
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := storage.NewMemoryStore([]da.Segment{
		da.NewSegment(1, "Avenue Hassan II", "Bab Boujloud", "Place Atlas", 3, []da.Coordinate{babBoujloud, placeAtlas}),
		da.NewSegment(2, "Boulevard Allal El Fassi", "Place Atlas", "Gare de Fès", 2, []da.Coordinate{placeAtlas, gareDeFes}),
		da.NewSegment(3, "Route d'Imouzzer", "Gare de Fès", "Bab Boujloud", 4, []da.Coordinate{gareDeFes, babBoujloud}),
	}, nil)
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2026, 10, 21, 14, 0, 0, 0, time.UTC) }
	predictor := costfunction.NewTravelTimePredictor(nil, costfunction.FixedMultiplier(1.0), clock)
	e := engine.NewEngine(store, predictor, routing.NewBoundedDepthSearch(3, 0), zap.NewNop())
	require.NoError(t, e.Load(ctx))

	routes, err := routestore.NewLRURepository(16)
	require.NoError(t, err)

	log := zap.NewNop()
	return &fixture{
		store:     store,
		engine:    e,
		routes:    routes,
		routing:   NewRoutingService(log, e, routes, 1.0),
		traffic:   NewTrafficService(log, e, 2),
		segments:  NewSegmentService(log, store, e),
		locations: NewLocationService(log, e, 1.0),
	}
}

func intPtr(v int) *int {
	return &v
}

func legIDs(r *da.Route) []int64 {
	ids := make([]int64, len(r.Legs))
	for i, l := range r.Legs {
		ids[i] = l.Segment.ID
	}
	return ids
}

func TestComputeRoute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	stored, err := f.routing.ComputeRoute(ctx, routestore.RouteRequest{
		StartPoint: "Bab Boujloud",
		EndPoint:   "Gare de Fès",
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, legIDs(stored.Route))
	assert.InDelta(t, 12.0, stored.Route.TotalMinutes, 1e-9)
	assert.InDelta(t, 5.0, stored.Route.DistanceKm, 1e-9)
	assert.Equal(t, 14, stored.Hour)
	assert.Equal(t, 3, stored.Weekday)
	assert.Equal(t, routestore.PEAK_EVENING, stored.PeakLabel)
	assert.NotEmpty(t, stored.ID)

	got, err := f.routing.GetRoute(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)

	list, err := f.routing.ListRoutes(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestComputeRouteErrors(t *testing.T) {
	testCases := []struct {
		name     string
		req      routestore.RouteRequest
		expected error
	}{
		{
			name:     "no path",
			req:      routestore.RouteRequest{StartPoint: "Bab Boujloud", EndPoint: "Fès el-Jdid"},
			expected: util.ErrNotFound,
		},
		{
			name:     "blank start",
			req:      routestore.RouteRequest{StartPoint: "  ", EndPoint: "Gare de Fès"},
			expected: util.ErrBadParamInput,
		},
		{
			name:     "hour out of range",
			req:      routestore.RouteRequest{StartPoint: "Bab Boujloud", EndPoint: "Gare de Fès", Hour: intPtr(25)},
			expected: util.ErrBadParamInput,
		},
		{
			name:     "weekday out of range",
			req:      routestore.RouteRequest{StartPoint: "Bab Boujloud", EndPoint: "Gare de Fès", Weekday: intPtr(0)},
			expected: util.ErrBadParamInput,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)

			_, err := f.routing.ComputeRoute(ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.expected, util.ErrorCode(err))

			list, err := f.routing.ListRoutes(ctx, 0)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestComputeRouteExplicitDeparture(t *testing.T) {
	f := newFixture(t)

	// tuesday 08:00, morning peak on a weekday: 6 * 1.2 * 1.5 then 4 * 1.2 * 1.5
	stored, err := f.routing.ComputeRoute(context.Background(), routestore.RouteRequest{
		StartPoint: "Bab Boujloud",
		EndPoint:   "Gare de Fès",
		Hour:       intPtr(8),
		Weekday:    intPtr(2),
	})
	require.NoError(t, err)
	assert.InDelta(t, 18.0, stored.Route.TotalMinutes, 1e-9)
	assert.Equal(t, routestore.PEAK_MORNING, stored.PeakLabel)
	assert.Equal(t, pkg.DENSE, stored.Route.Congestion)
}

func TestComputeRouteFromCoordinates(t *testing.T) {
	f := newFixture(t)

	stored, err := f.routing.ComputeRouteFromCoordinates(context.Background(),
		babBoujloud.Lat+0.0005, babBoujloud.Lon, gareDeFes.Lat, gareDeFes.Lon-0.0005, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bab Boujloud", stored.Request.StartPoint)
	assert.Equal(t, "Gare de Fès", stored.Request.EndPoint)
	assert.Equal(t, []int64{1, 2}, legIDs(stored.Route))

	_, err = f.routing.ComputeRouteFromCoordinates(context.Background(), 0, 0, gareDeFes.Lat, gareDeFes.Lon, nil, nil)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
}

func TestListPoints(t *testing.T) {
	f := newFixture(t)

	starts, ends := f.routing.ListPoints()
	assert.Equal(t, []string{"Bab Boujloud", "Gare de Fès", "Place Atlas"}, starts)
	assert.Equal(t, []string{"Bab Boujloud", "Gare de Fès", "Place Atlas"}, ends)
}

func TestPredictSegment(t *testing.T) {
	f := newFixture(t)

	pred, err := f.traffic.PredictSegment(1, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 7.2, pred.Prediction.Minutes, 1e-9)
	assert.InDelta(t, 86.0, pred.Prediction.Reliability, 1e-9)
	assert.Equal(t, pkg.FREE, pred.Congestion)

	_, err = f.traffic.PredictSegment(42, nil, nil)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))

	_, err = f.traffic.PredictSegment(1, intPtr(-1), nil)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
}

func TestCongestionOverview(t *testing.T) {
	f := newFixture(t)

	overview, err := f.traffic.CongestionOverview(context.Background(), intPtr(8), intPtr(2))
	require.NoError(t, err)
	require.Len(t, overview, 3)

	for i, p := range overview {
		assert.Equal(t, int64(i+1), p.Segment.ID)
		assert.Equal(t, 8, p.Prediction.Hour)
		assert.Equal(t, 2, p.Prediction.Weekday)
		assert.Equal(t, pkg.DENSE, p.Congestion)
	}
	assert.InDelta(t, 10.8, overview[0].Prediction.Minutes, 1e-9)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.traffic.CongestionOverview(ctx, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// refreshingEngine. publishes a newer snapshot right after handing out the current state
type refreshingEngine struct {
	*engine.Engine
	t     *testing.T
	store *storage.MemoryStore
	once  sync.Once
}

func (r *refreshingEngine) GetState() engine.State {
	state := r.Engine.GetState()
	r.once.Do(func() {
		ctx := context.Background()
		_, err := r.store.CreateSegment(ctx, da.NewSegment(4, "Avenue des FAR", "Gare de Fès", "Place Atlas", 1.5, nil))
		require.NoError(r.t, err)
		require.NoError(r.t, r.store.PutTravelTime(ctx, da.NewTravelTimeEntry(4, pkg.MORNING_PEAK, 5)))
		require.NoError(r.t, r.Engine.Refresh(ctx))
	})
	return state
}

func TestCongestionOverviewReadsOneSnapshot(t *testing.T) {
	f := newFixture(t)
	traffic := NewTrafficService(zap.NewNop(), &refreshingEngine{Engine: f.engine, t: t, store: f.store}, 2)

	overview, err := traffic.CongestionOverview(context.Background(), intPtr(8), intPtr(2))
	require.NoError(t, err)
	require.Len(t, overview, 3, "segment 4 belongs to the next snapshot")
	for _, p := range overview {
		assert.Greater(t, p.Prediction.Minutes, 0.0, "segment %d", p.Segment.ID)
		assert.Equal(t, pkg.DENSE, p.Congestion, "segment %d", p.Segment.ID)
	}

	overview, err = traffic.CongestionOverview(context.Background(), intPtr(8), intPtr(2))
	require.NoError(t, err)
	require.Len(t, overview, 4)
	assert.Equal(t, int64(4), overview[3].Segment.ID)
	assert.Greater(t, overview[3].Prediction.Minutes, 0.0)
}

func TestComputeRouteFromCoordinatesReadsOneSnapshot(t *testing.T) {
	f := newFixture(t)
	routes, err := routestore.NewLRURepository(4)
	require.NoError(t, err)
	rs := NewRoutingService(zap.NewNop(), &refreshingEngine{Engine: f.engine, t: t, store: f.store}, routes, 1.0)

	stored, err := rs.ComputeRouteFromCoordinates(context.Background(), gareDeFes.Lat, gareDeFes.Lon,
		placeAtlas.Lat, placeAtlas.Lon, intPtr(14), intPtr(3))
	require.NoError(t, err)
	// the direct segment 4 only exists in the next snapshot
	assert.Equal(t, []int64{3, 1}, legIDs(stored.Route))
}

func TestSegmentService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.segments.CreateSegment(ctx, da.NewSegment(0, "Avenue des FAR", "Place Atlas", "Bab Boujloud", 1, nil))
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)

	// visible without an explicit refresh
	assert.Len(t, f.segments.ListSegments(), 4)
	got, err := f.segments.GetSegment(4)
	require.NoError(t, err)
	assert.Equal(t, "Avenue des FAR", got.Name)

	_, err = f.segments.GetSegment(99)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))

	_, err = f.segments.CreateSegment(ctx, da.NewSegment(0, "Impasse", "", "Place Atlas", 1, nil))
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))

	_, err = f.segments.CreateSegment(ctx, da.NewSegment(1, "Doublon", "A", "B", 1, nil))
	assert.Equal(t, util.ErrConflict, util.ErrorCode(err))
}

func TestPutTravelTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	entry, err := f.segments.PutTravelTime(ctx, 1, "normal", 10)
	require.NoError(t, err)
	assert.Equal(t, pkg.NORMAL, entry.Bucket)
	assert.Len(t, f.segments.ListTravelTimes(1), 1)
	assert.Empty(t, f.segments.ListTravelTimes(2))

	// 10 * 1.2 then the 4.8 min fallback of segment 2
	stored, err := f.routing.ComputeRoute(ctx, routestore.RouteRequest{StartPoint: "Bab Boujloud", EndPoint: "Gare de Fès"})
	require.NoError(t, err)
	assert.InDelta(t, 16.8, stored.Route.TotalMinutes, 1e-9)

	// last write wins
	_, err = f.segments.PutTravelTime(ctx, 1, "normal", 5)
	require.NoError(t, err)
	entries := f.segments.ListTravelTimes(0)
	require.Len(t, entries, 1)
	assert.InDelta(t, 5.0, entries[0].Minutes, 1e-9)

	_, err = f.segments.PutTravelTime(ctx, 1, "midi", 5)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))

	_, err = f.segments.PutTravelTime(ctx, 1, "matin", -1)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))

	_, err = f.segments.PutTravelTime(ctx, 77, "matin", 3)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
}

func TestSearchLocations(t *testing.T) {
	f := newFixture(t)

	testCases := []struct {
		name     string
		query    string
		limit    int
		expected []string
		err      error
	}{
		{name: "case insensitive", query: "GARE", expected: []string{"Gare de Fès"}},
		{name: "substring", query: "a", expected: []string{"Bab Boujloud", "Gare de Fès", "Place Atlas"}},
		{name: "limit", query: "a", limit: 2, expected: []string{"Bab Boujloud", "Gare de Fès"}},
		{name: "no match", query: "Médina", expected: []string{}},
		{name: "blank", query: " ", err: util.ErrBadParamInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.locations.SearchLocations(tc.query, tc.limit)
			if tc.err != nil {
				assert.Equal(t, tc.err, util.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNearest(t *testing.T) {
	f := newFixture(t)

	p, err := f.locations.NearestPoint(placeAtlas.Lat, placeAtlas.Lon+0.001)
	require.NoError(t, err)
	assert.Equal(t, "Place Atlas", p.Label)

	s, err := f.locations.NearestSegment(placeAtlas.Lat, placeAtlas.Lon)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Segment.ID)

	_, err = f.locations.NearestPoint(0, 0)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
	_, err = f.locations.NearestSegment(0, 0)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
}

func TestSegmentServiceUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.segments.PutTravelTime(ctx, 1, "soir", 8)
	require.NoError(t, err)

	updated, err := f.segments.UpdateSegment(ctx, da.NewSegment(1, "Avenue Hassan II", "Bab Boujloud", "Place Atlas", 6, nil))
	require.NoError(t, err)
	got, err := f.segments.GetSegment(1)
	require.NoError(t, err)
	assert.Equal(t, updated.Name, got.Name)
	assert.Equal(t, 6.0, got.LengthKm)

	_, err = f.segments.UpdateSegment(ctx, da.NewSegment(99, "x", "A", "B", 1, nil))
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))

	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(f.segments.DeleteTravelTime(ctx, 1, "midi")))
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(f.segments.DeleteTravelTime(ctx, 1, "matin")))

	require.NoError(t, f.segments.DeleteSegment(ctx, 1))
	_, err = f.segments.GetSegment(1)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
	assert.Empty(t, f.segments.ListTravelTimes(1))

	_, err = f.routing.ComputeRoute(ctx, routestore.RouteRequest{StartPoint: "Bab Boujloud", EndPoint: "Gare de Fès"})
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
}

func TestDeleteRoute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	stored, err := f.routing.ComputeRoute(ctx, routestore.RouteRequest{StartPoint: "Bab Boujloud", EndPoint: "Gare de Fès"})
	require.NoError(t, err)

	require.NoError(t, f.routing.DeleteRoute(ctx, stored.ID))
	_, err = f.routing.GetRoute(ctx, stored.ID)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(f.routing.DeleteRoute(ctx, stored.ID)))
}
