package usecases

import (
	"context"
	"runtime"
	"sort"

	"github.com/lintang-b-s/arterial/pkg/concurrent"
	"github.com/lintang-b-s/arterial/pkg/costfunction"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/engine/routing"
	"github.com/lintang-b-s/arterial/pkg/util"
	"go.uber.org/zap"
)

type TrafficService struct {
	log        *zap.Logger
	engine     GraphEngine
	numWorkers int
}

func NewTrafficService(log *zap.Logger, engine GraphEngine, numWorkers int) *TrafficService {
	if numWorkers < 1 {
		numWorkers = runtime.NumCPU()
	}
	return &TrafficService{
		log:        log,
		engine:     engine,
		numWorkers: numWorkers,
	}
}

func validateDeparture(d costfunction.Departure) error {
	return routing.ValidateDeparture(d)
}

// PredictSegment. travel time, reliability and congestion level of one segment
func (ts *TrafficService) PredictSegment(segmentID int64, hour, weekday *int) (routing.SegmentPrediction, error) {
	return ts.engine.GetState().RoutingEngine.PredictTravelTime(segmentID, departureOf(hour, weekday))
}

// CongestionOverview. every segment with its prediction at one departure, ordered by segment id.
// the departure is resolved once so every segment is judged at the same instant.
func (ts *TrafficService) CongestionOverview(ctx context.Context, hour, weekday *int) ([]routing.SegmentPrediction, error) {
	d := departureOf(hour, weekday)
	if err := validateDeparture(d); err != nil {
		return nil, err
	}

	state := ts.engine.GetState()
	re := state.RoutingEngine
	resolvedHour, resolvedWeekday := re.GetPredictor().Resolve(d)
	at := costfunction.NewDeparture(resolvedHour, resolvedWeekday)

	segments := state.Snapshot.Segments()
	predictions := concurrent.Process(segments, ts.numWorkers, func(seg da.Segment) routing.SegmentPrediction {
		if util.StopConcurrentOperation(ctx) {
			return routing.SegmentPrediction{Segment: seg}
		}
		pred, err := re.PredictTravelTime(seg.ID, at)
		if err != nil {
			ts.log.Warn("segment prediction failed", zap.Int64("segmentID", seg.ID), zap.Error(err))
			return routing.SegmentPrediction{Segment: seg}
		}
		return pred
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(predictions, func(i, j int) bool {
		return predictions[i].Segment.ID < predictions[j].Segment.ID
	})
	return predictions, nil
}
