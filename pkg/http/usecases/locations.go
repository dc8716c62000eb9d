package usecases

import (
	"strings"

	"github.com/lintang-b-s/arterial/pkg/spatialindex"
	"github.com/lintang-b-s/arterial/pkg/util"
	"go.uber.org/zap"
)

type LocationService struct {
	log          *zap.Logger
	engine       GraphEngine
	searchRadius float64
}

func NewLocationService(log *zap.Logger, engine GraphEngine, searchRadius float64) *LocationService {
	return &LocationService{
		log:          log,
		engine:       engine,
		searchRadius: searchRadius,
	}
}

// SearchLocations. sorted graph points whose label contains query, case-insensitive.
// limit <= 0 returns every match.
func (ls *LocationService) SearchLocations(query string, limit int) ([]string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "search query is required")
	}

	matches := make([]string, 0)
	for _, p := range ls.engine.GetState().Snapshot.Points() {
		if !strings.Contains(strings.ToLower(p), query) {
			continue
		}
		matches = append(matches, p)
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func (ls *LocationService) NearestPoint(lat, lon float64) (spatialindex.NearbyPoint, error) {
	p, ok := ls.engine.GetState().Index.NearestPoint(lat, lon, ls.searchRadius)
	if !ok {
		return spatialindex.NearbyPoint{}, util.WrapErrorf(nil, util.ErrNotFound,
			"no point within %.2f km of %f,%f", ls.searchRadius, lat, lon)
	}
	return p, nil
}

func (ls *LocationService) NearestSegment(lat, lon float64) (spatialindex.NearbySegment, error) {
	s, ok := ls.engine.GetState().Index.NearestSegment(lat, lon, ls.searchRadius)
	if !ok {
		return spatialindex.NearbySegment{}, util.WrapErrorf(nil, util.ErrNotFound,
			"no segment within %.2f km of %f,%f", ls.searchRadius, lat, lon)
	}
	return s, nil
}
