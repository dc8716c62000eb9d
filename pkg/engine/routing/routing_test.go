package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lintang-b-s/arterial/pkg"
	"github.com/lintang-b-s/arterial/pkg/costfunction"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// wednesday 2026-10-21 14:00, the congestion reference instant
var referenceInstant = time.Date(2026, 10, 21, 14, 0, 0, 0, time.UTC)

func seg(id int64, start, end string, lengthKm float64) da.Segment {
	return da.NewSegment(id, "axe", start, end, lengthKm, nil)
}

func newTestEngine(t *testing.T, segments []da.Segment, strategy SearchStrategy) *RoutingEngine {
	t.Helper()
	snap, _, err := da.NewSnapshot(segments, nil)
	require.NoError(t, err)

	clock := func() time.Time { return referenceInstant }
	predictor := costfunction.NewTravelTimePredictor(nil, costfunction.FixedMultiplier(1.0), clock)
	return NewRoutingEngine(snap, predictor, strategy, zap.NewNop())
}

func legIDs(route *da.Route) []int64 {
	ids := make([]int64, 0, len(route.Legs))
	for _, l := range route.Legs {
		ids = append(ids, l.Segment.ID)
	}
	return ids
}

func TestFindOptimalRouteBounded(t *testing.T) {
	testCases := []struct {
		name     string
		segments []da.Segment
		start    string
		end      string
		wantIDs  []int64
		wantTime float64
	}{
		{
			name: "direct preempts a faster two hop path",
			segments: []da.Segment{
				seg(1, "A", "B", 50),
				seg(2, "A", "C", 1),
				seg(3, "C", "B", 1),
			},
			start:    "A",
			end:      "B",
			wantIDs:  []int64{1},
			wantTime: 120,
		},
		{
			name: "first direct segment in id order",
			segments: []da.Segment{
				seg(9, "A", "B", 1),
				seg(4, "A", "B", 50),
			},
			start:    "A",
			end:      "B",
			wantIDs:  []int64{4},
			wantTime: 120,
		},
		{
			name: "minimum two hop path",
			segments: []da.Segment{
				seg(2, "A", "C", 30),
				seg(3, "C", "B", 10),
				seg(4, "A", "D", 40),
				seg(5, "D", "B", 1),
			},
			start:    "A",
			end:      "B",
			wantIDs:  []int64{2, 3},
			wantTime: 96,
		},
		{
			name: "two hop path wins over a faster three hop path",
			segments: []da.Segment{
				seg(1, "A", "C", 100),
				seg(2, "C", "B", 100),
				seg(3, "A", "D", 1),
				seg(4, "D", "E", 1),
				seg(5, "E", "B", 1),
			},
			start:    "A",
			end:      "B",
			wantIDs:  []int64{1, 2},
			wantTime: 576,
		},
		{
			name: "three hop path when no two hop path exists",
			segments: []da.Segment{
				seg(1, "A", "C", 100),
				seg(3, "A", "D", 1),
				seg(4, "D", "E", 1),
				seg(5, "E", "B", 1),
			},
			start:    "A",
			end:      "B",
			wantIDs:  []int64{3, 4, 5},
			wantTime: 7.2,
		},
		{
			name: "tie keeps the first path in id order",
			segments: []da.Segment{
				seg(21, "A", "D", 5),
				seg(22, "D", "B", 5),
				seg(10, "A", "C", 5),
				seg(11, "C", "B", 5),
			},
			start:    "A",
			end:      "B",
			wantIDs:  []int64{10, 11},
			wantTime: 24,
		},
		{
			name: "self loop is a direct segment",
			segments: []da.Segment{
				seg(1, "A", "A", 1),
				seg(2, "A", "B", 1),
			},
			start:    "A",
			end:      "A",
			wantIDs:  []int64{1},
			wantTime: 2.4,
		},
		{
			name: "nothing leaves start",
			segments: []da.Segment{
				seg(1, "B", "A", 1),
			},
			start:    "A",
			end:      "B",
			wantIDs:  []int64{},
			wantTime: 0,
		},
		{
			name: "end not reachable within three hops",
			segments: []da.Segment{
				seg(1, "A", "C", 1),
				seg(2, "C", "D", 1),
				seg(3, "D", "E", 1),
				seg(4, "E", "B", 1),
			},
			start:    "A",
			end:      "B",
			wantIDs:  []int64{},
			wantTime: 0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			re := newTestEngine(t, tt.segments, NewBoundedDepthSearch(3, 0))

			route, err := re.FindOptimalRoute(context.Background(), tt.start, tt.end, costfunction.Unspecified())
			require.NoError(t, err)

			assert.Equal(t, tt.wantIDs, legIDs(route))
			assert.Equal(t, tt.wantTime, route.TotalMinutes)
			assert.True(t, route.IsContiguous())
			if route.IsEmpty() {
				assert.Equal(t, 0.0, route.Reliability)
				assert.Equal(t, pkg.FREE, route.Congestion)
			} else {
				assert.Equal(t, tt.start, route.Legs[0].Segment.StartPoint)
				assert.Equal(t, tt.end, route.Legs[len(route.Legs)-1].Segment.EndPoint)
			}
		})
	}
}

func TestTwoHopAdvancesTheClock(t *testing.T) {
	segments := []da.Segment{
		seg(2, "A", "C", 30),
		seg(3, "C", "B", 10),
	}
	re := newTestEngine(t, segments, NewBoundedDepthSearch(3, 0))

	// tuesday 15:00, the first leg takes 72 minutes so the second is entered in the evening peak
	route, err := re.FindOptimalRoute(context.Background(), "A", "B", costfunction.NewDeparture(15, 2))
	require.NoError(t, err)
	require.Len(t, route.Legs, 2)

	first := re.GetPredictor().Predict(segments[0], 15, 2)
	second := re.GetPredictor().Predict(segments[1], 16, 2)

	assert.Equal(t, 15, route.Legs[0].EnterHour)
	assert.Equal(t, 16, route.Legs[1].EnterHour)
	assert.Equal(t, 72.0, first.Minutes)
	assert.Equal(t, 33.6, second.Minutes)
	assert.Equal(t, util.RoundFloat(first.Minutes+second.Minutes, 1), route.TotalMinutes)
	assert.Equal(t, (first.Reliability+second.Reliability)/2, route.Reliability)
	assert.Equal(t, 40.0, route.DistanceKm)
}

func TestRouteCongestionAnnotation(t *testing.T) {
	segments := []da.Segment{
		seg(1, "A", "B", 30),
	}
	re := newTestEngine(t, segments, NewBoundedDepthSearch(3, 0))

	route, err := re.FindOptimalRoute(context.Background(), "A", "B", costfunction.NewDeparture(8, 2))
	require.NoError(t, err)
	require.Len(t, route.Legs, 1)
	assert.Equal(t, pkg.DENSE, route.Legs[0].Congestion)
	assert.Equal(t, pkg.DENSE, route.Congestion)

	route, err = re.FindOptimalRoute(context.Background(), "A", "B", costfunction.NewDeparture(11, 6))
	require.NoError(t, err)
	assert.Equal(t, pkg.FREE, route.Congestion)
}

func TestFindOptimalRouteRejectsBadInput(t *testing.T) {
	re := newTestEngine(t, []da.Segment{seg(1, "A", "B", 1)}, NewBoundedDepthSearch(3, 0))

	testCases := []struct {
		name  string
		start string
		end   string
		dep   costfunction.Departure
	}{
		{name: "blank start", start: "  ", end: "B", dep: costfunction.Unspecified()},
		{name: "blank end", start: "A", end: "", dep: costfunction.Unspecified()},
		{name: "hour out of range", start: "A", end: "B", dep: costfunction.NewDeparture(24, 1)},
		{name: "weekday out of range", start: "A", end: "B", dep: costfunction.NewDeparture(8, 0)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := re.FindOptimalRoute(context.Background(), tt.start, tt.end, tt.dep)
			require.Error(t, err)
			assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
		})
	}
}

func TestBoundedDepthSearchMaxHops(t *testing.T) {
	segments := []da.Segment{
		seg(1, "A", "C", 1),
		seg(2, "C", "D", 1),
		seg(3, "D", "B", 1),
	}

	route, err := newTestEngine(t, segments, NewBoundedDepthSearch(2, 0)).
		FindOptimalRoute(context.Background(), "A", "B", costfunction.Unspecified())
	require.NoError(t, err)
	assert.True(t, route.IsEmpty())

	route, err = newTestEngine(t, segments, NewBoundedDepthSearch(3, 0)).
		FindOptimalRoute(context.Background(), "A", "B", costfunction.Unspecified())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, legIDs(route))
}

func TestSearchBudgetExceeded(t *testing.T) {
	segments := []da.Segment{
		seg(1, "A", "C", 1),
		seg(2, "C", "D", 1),
		seg(3, "D", "B", 1),
	}

	for _, strategy := range []SearchStrategy{NewBoundedDepthSearch(3, 1), NewTimeDependentDijkstra(1)} {
		t.Run(strategy.Name(), func(t *testing.T) {
			re := newTestEngine(t, segments, strategy)
			_, err := re.FindOptimalRoute(context.Background(), "A", "B", costfunction.Unspecified())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSearchBudgetExceeded))
			assert.Equal(t, util.ErrUnprocessable, util.ErrorCode(err))
		})
	}
}

func TestSearchHonorsCancellation(t *testing.T) {
	segments := []da.Segment{
		seg(1, "A", "C", 1),
		seg(2, "C", "B", 1),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, strategy := range []SearchStrategy{NewBoundedDepthSearch(3, 0), NewTimeDependentDijkstra(0)} {
		t.Run(strategy.Name(), func(t *testing.T) {
			re := newTestEngine(t, segments, strategy)
			_, err := re.FindOptimalRoute(ctx, "A", "B", costfunction.Unspecified())
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestTimeDependentDijkstra(t *testing.T) {
	testCases := []struct {
		name     string
		segments []da.Segment
		start    string
		end      string
		wantIDs  []int64
	}{
		{
			name: "direct preempts",
			segments: []da.Segment{
				seg(1, "A", "B", 50),
				seg(2, "A", "C", 1),
				seg(3, "C", "B", 1),
			},
			start:   "A",
			end:     "B",
			wantIDs: []int64{1},
		},
		{
			name: "same best two hop path as the bounded search",
			segments: []da.Segment{
				seg(2, "A", "C", 30),
				seg(3, "C", "B", 10),
				seg(4, "A", "D", 40),
				seg(5, "D", "B", 1),
			},
			start:   "A",
			end:     "B",
			wantIDs: []int64{2, 3},
		},
		{
			name: "path longer than three hops",
			segments: []da.Segment{
				seg(1, "A", "C", 1),
				seg(2, "C", "D", 1),
				seg(3, "D", "E", 1),
				seg(4, "E", "B", 1),
			},
			start:   "A",
			end:     "B",
			wantIDs: []int64{1, 2, 3, 4},
		},
		{
			name: "faster multi hop path over a slower short one",
			segments: []da.Segment{
				seg(1, "A", "C", 100),
				seg(2, "C", "B", 100),
				seg(3, "A", "D", 1),
				seg(4, "D", "E", 1),
				seg(5, "E", "B", 1),
			},
			start:   "A",
			end:     "B",
			wantIDs: []int64{3, 4, 5},
		},
		{
			name: "round trip back to start",
			segments: []da.Segment{
				seg(1, "A", "C", 1),
				seg(2, "C", "A", 1),
			},
			start:   "A",
			end:     "A",
			wantIDs: []int64{1, 2},
		},
		{
			name: "unreachable",
			segments: []da.Segment{
				seg(1, "A", "C", 1),
				seg(2, "B", "A", 1),
			},
			start:   "A",
			end:     "B",
			wantIDs: []int64{},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			re := newTestEngine(t, tt.segments, NewTimeDependentDijkstra(0))
			route, err := re.FindOptimalRoute(context.Background(), tt.start, tt.end, costfunction.Unspecified())
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, legIDs(route))
			assert.True(t, route.IsContiguous())
		})
	}
}

func TestDijkstraRelaxReportsHeapErrors(t *testing.T) {
	snap, _, err := da.NewSnapshot([]da.Segment{seg(1, "A", "C", 1)}, nil)
	require.NoError(t, err)
	predictor := costfunction.NewTravelTimePredictor(snap, costfunction.FixedMultiplier(1.0),
		func() time.Time { return referenceInstant })
	q := NewQuery(snap, predictor, "A", "B", 14, 3)

	// labelled point whose heap node was never inserted
	info := map[string]*VertexInfo{
		"C": NewVertexInfo(1e9, 14, pointParent{}, da.NewPriorityQueueNode(1e9, "C")),
	}
	pq := da.NewFourAryHeap[string]()

	err = NewTimeDependentDijkstra(0).relaxOutEdges(q, info, pq, "A", 0, 14)
	assert.ErrorIs(t, err, da.ErrInvalidDecrease)
}

func TestNewSearchStrategy(t *testing.T) {
	s, err := NewSearchStrategy("", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, STRATEGY_BOUNDED, s.Name())

	s, err = NewSearchStrategy("Dijkstra", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, STRATEGY_DIJKSTRA, s.Name())

	_, err = NewSearchStrategy("astar", 3, 0)
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
}

func TestPredictTravelTime(t *testing.T) {
	re := newTestEngine(t, []da.Segment{seg(7, "A", "B", 30)}, NewBoundedDepthSearch(3, 0))

	sp, err := re.PredictTravelTime(7, costfunction.Unspecified())
	require.NoError(t, err)
	assert.Equal(t, int64(7), sp.Segment.ID)
	assert.Equal(t, 14, sp.Prediction.Hour)
	assert.Equal(t, 3, sp.Prediction.Weekday)
	assert.Equal(t, 72.0, sp.Prediction.Minutes)
	assert.Equal(t, pkg.FREE, sp.Congestion)

	level, err := re.PredictCongestion(7, costfunction.NewDeparture(8, 2))
	require.NoError(t, err)
	assert.Equal(t, pkg.DENSE, level)

	_, err = re.PredictTravelTime(99, costfunction.Unspecified())
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))

	_, err = re.PredictCongestion(99, costfunction.Unspecified())
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))
}
