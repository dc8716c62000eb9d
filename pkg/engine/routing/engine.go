package routing

import (
	"context"
	"strings"

	"github.com/lintang-b-s/arterial/pkg"
	"github.com/lintang-b-s/arterial/pkg/costfunction"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/util"
	"go.uber.org/zap"
)

// RoutingEngine. route search, travel time prediction and congestion classification over one
// immutable segment graph. safe for concurrent use.
type RoutingEngine struct {
	graph      SegmentGraph
	predictor  *costfunction.TravelTimePredictor
	classifier *costfunction.CongestionClassifier
	strategy   SearchStrategy
	logger     *zap.Logger
}

// NewRoutingEngine. predictor is rebound to the travel time table of graph.
func NewRoutingEngine(graph SegmentGraph, predictor *costfunction.TravelTimePredictor,
	strategy SearchStrategy, logger *zap.Logger) *RoutingEngine {
	tablePredictor := predictor.WithTable(graph)
	return &RoutingEngine{
		graph:      graph,
		predictor:  tablePredictor,
		classifier: costfunction.NewCongestionClassifier(tablePredictor),
		strategy:   strategy,
		logger:     logger,
	}
}

// NewSearchStrategy. strategy by its configured name
func NewSearchStrategy(name string, maxHops, budget int) (SearchStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", STRATEGY_BOUNDED:
		return NewBoundedDepthSearch(maxHops, budget), nil
	case STRATEGY_DIJKSTRA:
		return NewTimeDependentDijkstra(budget), nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown search strategy %q", name)
	}
}

func (re *RoutingEngine) GetStrategy() SearchStrategy {
	return re.strategy
}

func (re *RoutingEngine) GetPredictor() *costfunction.TravelTimePredictor {
	return re.predictor
}

// ValidateDeparture. explicit hour must be in 0..23 and explicit weekday in 1..7
func ValidateDeparture(d costfunction.Departure) error {
	if d.HasHour() && (*d.Hour < 0 || *d.Hour > 23) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "departure hour must be in 0..23, got %d", *d.Hour)
	}
	if d.HasWeekday() && (*d.Weekday < 1 || *d.Weekday > 7) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "weekday must be in 1..7, got %d", *d.Weekday)
	}
	return nil
}

// FindOptimalRoute. best route from start to end leaving at d. unspecified hour or weekday are
// resolved once from the predictor clock before the search. no path is an empty route, not an error.
func (re *RoutingEngine) FindOptimalRoute(ctx context.Context, start, end string,
	d costfunction.Departure) (*da.Route, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "start and end point are required")
	}
	if err := ValidateDeparture(d); err != nil {
		return nil, err
	}

	hour, weekday := re.predictor.Resolve(d)
	q := NewQuery(re.graph, re.predictor, start, end, hour, weekday)

	legs, err := re.strategy.Search(ctx, q)
	if err != nil {
		re.logger.Debug("route search failed", zap.String("start", start), zap.String("end", end),
			zap.String("strategy", re.strategy.Name()), zap.Error(err))
		return nil, err
	}

	route := re.annotate(legs, weekday)
	if pkg.DEBUG {
		re.logger.Debug("route search done", zap.String("start", start), zap.String("end", end),
			zap.Int("hour", hour), zap.Int("weekday", weekday), zap.Int("legs", len(route.Legs)),
			zap.Float64("minutes", route.TotalMinutes))
	}
	return route, nil
}

// annotate. congestion of every leg at the hour it is entered, worst level as overall
func (re *RoutingEngine) annotate(legs []da.RouteLeg, weekday int) *da.Route {
	if len(legs) == 0 {
		return da.NewEmptyRoute()
	}

	levels := make([]pkg.CongestionLevel, len(legs))
	for i := range legs {
		legs[i].Congestion = re.classifier.Classify(legs[i].Segment, legs[i].EnterHour, weekday)
		levels[i] = legs[i].Congestion
	}

	route := da.NewRoute(legs)
	route.TotalMinutes = util.RoundFloat(route.TotalMinutes, 1)
	route.DistanceKm = util.RoundFloat(route.DistanceKm, 1)
	route.Congestion = costfunction.Overall(levels...)
	return route
}

// SegmentPrediction. prediction and congestion of one segment at a resolved departure
type SegmentPrediction struct {
	Segment    da.Segment              `json:"segment"`
	Prediction costfunction.Prediction `json:"prediction"`
	Congestion pkg.CongestionLevel     `json:"congestion"`
}

func (re *RoutingEngine) segment(segmentID int64) (da.Segment, error) {
	seg, ok := re.graph.Segment(segmentID)
	if !ok {
		return da.Segment{}, util.WrapErrorf(nil, util.ErrNotFound, "segment %d not found", segmentID)
	}
	return seg, nil
}

// PredictTravelTime. travel time and congestion of segmentID leaving at d
func (re *RoutingEngine) PredictTravelTime(segmentID int64, d costfunction.Departure) (SegmentPrediction, error) {
	if err := ValidateDeparture(d); err != nil {
		return SegmentPrediction{}, err
	}
	seg, err := re.segment(segmentID)
	if err != nil {
		return SegmentPrediction{}, err
	}
	hour, weekday := re.predictor.Resolve(d)
	return SegmentPrediction{
		Segment:    seg,
		Prediction: re.predictor.Predict(seg, hour, weekday),
		Congestion: re.classifier.Classify(seg, hour, weekday),
	}, nil
}

func (re *RoutingEngine) PredictCongestion(segmentID int64, d costfunction.Departure) (pkg.CongestionLevel, error) {
	if err := ValidateDeparture(d); err != nil {
		return pkg.FREE, err
	}
	seg, err := re.segment(segmentID)
	if err != nil {
		return pkg.FREE, err
	}
	return re.classifier.ClassifyAt(seg, d), nil
}
