package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lintang-b-s/arterial/pkg/costfunction"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/engine/routing"
	"github.com/lintang-b-s/arterial/pkg/spatialindex"
	"github.com/lintang-b-s/arterial/pkg/storage"
	"go.uber.org/zap"
)

// State. one snapshot generation with the routing engine and spatial index built on it
type State struct {
	Snapshot      *da.Snapshot
	RoutingEngine *routing.RoutingEngine
	Index         *spatialindex.Rtree
}

// Engine. owns the current immutable snapshot of the segment store and everything built on it
// (routing engine, spatial index). Refresh swaps all of them at once.
type Engine struct {
	source    storage.Source
	predictor *costfunction.TravelTimePredictor
	strategy  routing.SearchStrategy
	logger    *zap.Logger

	// one refresh at a time, so a snapshot read from the store earlier never replaces a newer one
	refreshMu sync.Mutex

	mu    sync.RWMutex
	state State
}

func NewEngine(source storage.Source, predictor *costfunction.TravelTimePredictor,
	strategy routing.SearchStrategy, logger *zap.Logger) *Engine {
	return &Engine{
		source:    source,
		predictor: predictor,
		strategy:  strategy,
		logger:    logger,
	}
}

// Load. first snapshot, must be called before any accessor
func (e *Engine) Load(ctx context.Context) error {
	e.logger.Info("Loading segment graph snapshot...")
	return e.Refresh(ctx)
}

// Refresh. builds a new snapshot from the source outside the read lock, then swaps it in.
// refreshes are serialized. on error the previous snapshot stays active.
func (e *Engine) Refresh(ctx context.Context) error {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	start := time.Now()

	segments, err := e.source.ListSegments(ctx)
	if err != nil {
		return fmt.Errorf("refresh snapshot: list segments: %w", err)
	}
	entries, err := e.source.ListTravelTimes(ctx)
	if err != nil {
		return fmt.Errorf("refresh snapshot: list travel times: %w", err)
	}

	snapshot, dropped, err := da.NewSnapshot(segments, entries)
	if err != nil {
		return fmt.Errorf("refresh snapshot: %w", err)
	}
	if dropped > 0 {
		e.logger.Warn("travel time entries of unknown segments dropped", zap.Int("dropped", dropped))
	}

	routingEngine := routing.NewRoutingEngine(snapshot, e.predictor, e.strategy, e.logger)
	rtree := spatialindex.NewRtree()
	rtree.Build(snapshot.Segments(), e.logger)

	e.mu.Lock()
	e.state = State{Snapshot: snapshot, RoutingEngine: routingEngine, Index: rtree}
	e.mu.Unlock()

	e.logger.Info("segment graph snapshot ready", zap.Int("segments", snapshot.NumSegments()),
		zap.Int("travelTimes", len(entries)-dropped), zap.Time("builtAt", snapshot.BuiltAt()),
		zap.Duration("took", time.Since(start)))
	return nil
}

// StartRefresher. refreshes every ttl until ctx is done. ttl <= 0 disables it.
func (e *Engine) StartRefresher(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := e.Refresh(ctx); err != nil {
					e.logger.Error("periodic snapshot refresh failed", zap.Error(err))
				}
			}
		}
	}()
}

// GetState. snapshot, routing engine and spatial index of the same generation.
// requests touching more than one of them must use this.
func (e *Engine) GetState() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Engine) GetSnapshot() *da.Snapshot {
	return e.GetState().Snapshot
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.GetState().RoutingEngine
}
