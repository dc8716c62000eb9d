package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lintang-b-s/arterial/pkg"
	"github.com/lintang-b-s/arterial/pkg/costfunction"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/engine/routing"
	"github.com/lintang-b-s/arterial/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingSource struct {
	storage.Source
	fail bool
}

func (f *failingSource) ListSegments(ctx context.Context) ([]da.Segment, error) {
	if f.fail {
		return nil, errors.New("connection refused")
	}
	return f.Source.ListSegments(ctx)
}

// gatedSource. stalls the n-th ListSegments after it has read the store
type gatedSource struct {
	storage.Source
	gateCall int
	entered  chan struct{}
	release  chan struct{}

	mu    sync.Mutex
	calls int
}

func (g *gatedSource) ListSegments(ctx context.Context) ([]da.Segment, error) {
	segments, err := g.Source.ListSegments(ctx)

	g.mu.Lock()
	g.calls++
	gated := g.calls == g.gateCall
	g.mu.Unlock()

	if gated {
		close(g.entered)
		<-g.release
	}
	return segments, err
}

func newTestEngine(t *testing.T, source storage.Source) *Engine {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 10, 21, 14, 0, 0, 0, time.UTC) }
	predictor := costfunction.NewTravelTimePredictor(nil, costfunction.FixedMultiplier(1.0), clock)
	return NewEngine(source, predictor, routing.NewBoundedDepthSearch(3, 0), zap.NewNop())
}

func TestEngineRefreshSwapsSnapshot(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewMemoryStore([]da.Segment{
		da.NewSegment(1, "Avenue Hassan II", "A", "C", 30, nil),
		da.NewSegment(2, "Avenue des FAR", "C", "B", 10, nil),
	}, nil)
	require.NoError(t, err)

	e := newTestEngine(t, store)
	require.NoError(t, e.Load(ctx))

	route, err := e.GetRoutingEngine().FindOptimalRoute(ctx, "A", "B", costfunction.Unspecified())
	require.NoError(t, err)
	assert.Len(t, route.Legs, 2)

	old := e.GetSnapshot()

	_, err = store.CreateSegment(ctx, da.NewSegment(0, "Route Sefrou", "A", "B", 5, nil))
	require.NoError(t, err)
	require.NoError(t, store.PutTravelTime(ctx, da.NewTravelTimeEntry(3, pkg.NORMAL, 4)))

	// not visible before refresh
	route, err = e.GetRoutingEngine().FindOptimalRoute(ctx, "A", "B", costfunction.Unspecified())
	require.NoError(t, err)
	assert.Len(t, route.Legs, 2)

	require.NoError(t, e.Refresh(ctx))
	route, err = e.GetRoutingEngine().FindOptimalRoute(ctx, "A", "B", costfunction.Unspecified())
	require.NoError(t, err)
	require.Len(t, route.Legs, 1)
	assert.Equal(t, int64(3), route.Legs[0].Segment.ID)
	assert.Equal(t, 4.8, route.TotalMinutes)

	assert.Equal(t, 2, old.NumSegments(), "old snapshot is immutable")
	assert.Equal(t, 3, e.GetSnapshot().NumSegments())
}

func TestEngineRefreshFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewMemoryStore([]da.Segment{da.NewSegment(1, "a", "A", "B", 1, nil)}, nil)
	require.NoError(t, err)

	source := &failingSource{Source: store}
	e := newTestEngine(t, source)
	require.NoError(t, e.Load(ctx))
	snap := e.GetSnapshot()

	source.fail = true
	assert.Error(t, e.Refresh(ctx))
	assert.Same(t, snap, e.GetSnapshot())
}

func TestEngineConcurrentReadsDuringRefresh(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewMemoryStore([]da.Segment{
		da.NewSegment(1, "a", "A", "C", 1, nil),
		da.NewSegment(2, "b", "C", "B", 1, nil),
	}, nil)
	require.NoError(t, err)

	e := newTestEngine(t, store)
	require.NoError(t, e.Load(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				route, err := e.GetRoutingEngine().FindOptimalRoute(ctx, "A", "B", costfunction.Unspecified())
				assert.NoError(t, err)
				assert.Len(t, route.Legs, 2)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, e.Refresh(ctx))
	}
	wg.Wait()
}

func TestStartRefresher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.NewMemoryStore([]da.Segment{da.NewSegment(1, "a", "A", "B", 1, nil)}, nil)
	require.NoError(t, err)
	e := newTestEngine(t, store)
	require.NoError(t, e.Load(ctx))

	e.StartRefresher(ctx, 10*time.Millisecond)
	_, err = store.CreateSegment(ctx, da.NewSegment(0, "b", "B", "C", 1, nil))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return e.GetSnapshot().NumSegments() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestEngineConcurrentRefreshesKeepLatestWrite(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewMemoryStore([]da.Segment{da.NewSegment(1, "a", "A", "B", 1, nil)}, nil)
	require.NoError(t, err)

	source := &gatedSource{
		Source:   store,
		gateCall: 2,
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	e := newTestEngine(t, source)
	require.NoError(t, e.Load(ctx))

	staleDone := make(chan error, 1)
	go func() {
		staleDone <- e.Refresh(ctx)
	}()
	<-source.entered

	_, err = store.CreateSegment(ctx, da.NewSegment(0, "b", "B", "C", 1, nil))
	require.NoError(t, err)

	latestDone := make(chan error, 1)
	go func() {
		latestDone <- e.Refresh(ctx)
	}()

	select {
	case <-latestDone:
		t.Fatal("refresh ran while another refresh was still building")
	case <-time.After(50 * time.Millisecond):
	}

	close(source.release)
	require.NoError(t, <-staleDone)
	require.NoError(t, <-latestDone)

	assert.Equal(t, 2, e.GetSnapshot().NumSegments())
	state := e.GetState()
	assert.Same(t, state.Snapshot, e.GetSnapshot())
	assert.NotNil(t, state.Index)
	route, err := state.RoutingEngine.FindOptimalRoute(ctx, "A", "C", costfunction.Unspecified())
	require.NoError(t, err)
	assert.Len(t, route.Legs, 2)
}
