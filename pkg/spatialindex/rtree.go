package spatialindex

import (
	"math"
	"sort"

	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree. spatial index over the graph points and segment geometries of one snapshot.
// a point gets its coordinate from the geometry of the segments it starts or ends.
type Rtree struct {
	points   *rtree.RTreeG[PointEntry]
	segments *rtree.RTreeG[da.Segment]
}

type PointEntry struct {
	Label      string        `json:"label"`
	Coordinate da.Coordinate `json:"coordinate"`
}

func newPointEntry(label string, c da.Coordinate) PointEntry {
	return PointEntry{Label: label, Coordinate: c}
}

// NearbyPoint. point with its haversine distance to the query location
type NearbyPoint struct {
	PointEntry
	DistanceKm float64 `json:"distance_km"`
}

type NearbySegment struct {
	Segment    da.Segment `json:"segment"`
	DistanceKm float64    `json:"distance_km"`
}

func NewRtree() *Rtree {
	var points rtree.RTreeG[PointEntry]
	var segments rtree.RTreeG[da.Segment]
	return &Rtree{
		points:   &points,
		segments: &segments,
	}
}

// Build. segments without geometry are skipped
func (rt *Rtree) Build(segments []da.Segment, log *zap.Logger) {
	indexed := 0
	seen := make(map[PointEntry]struct{}, len(segments)*2)
	for _, seg := range segments {
		first, ok := seg.FirstCoordinate()
		if !ok {
			continue
		}
		last, _ := seg.LastCoordinate()
		indexed++

		for _, pe := range []PointEntry{newPointEntry(seg.StartPoint, first), newPointEntry(seg.EndPoint, last)} {
			if _, dup := seen[pe]; dup {
				continue
			}
			seen[pe] = struct{}{}
			pt := [2]float64{pe.Coordinate.Lon, pe.Coordinate.Lat}
			rt.points.Insert(pt, pt, pe)
		}

		minLat, minLon, maxLat, maxLon := boundingBox(seg.Geometry)
		rt.segments.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, seg)
	}

	log.Info("R-tree spatial index built.", zap.Int("segments", indexed), zap.Int("points", len(seen)))
}

func boundingBox(coords []da.Coordinate) (float64, float64, float64, float64) {
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, c := range coords {
		minLat = math.Min(minLat, c.Lat)
		minLon = math.Min(minLon, c.Lon)
		maxLat = math.Max(maxLat, c.Lat)
		maxLon = math.Max(maxLon, c.Lon)
	}
	return minLat, minLon, maxLat, maxLon
}

func searchBox(qLat, qLon, radius float64) ([2]float64, [2]float64) {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius*math.Sqrt2)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius*math.Sqrt2)
	return [2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}
}

// SearchWithinRadius. points within radius (in km) from (qLat, qLon), nearest first, one entry per label
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []NearbyPoint {
	lower, upper := searchBox(qLat, qLon, radius)

	best := make(map[string]NearbyPoint)
	rt.points.Search(lower, upper, func(min, max [2]float64, pe PointEntry) bool {
		dist := geo.CalculateHaversineDistance(qLat, qLon, pe.Coordinate.Lat, pe.Coordinate.Lon)
		if dist > radius {
			return true
		}
		if cur, ok := best[pe.Label]; !ok || dist < cur.DistanceKm {
			best[pe.Label] = NearbyPoint{PointEntry: pe, DistanceKm: dist}
		}
		return true
	})

	results := make([]NearbyPoint, 0, len(best))
	for _, np := range best {
		results = append(results, np)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].Label < results[j].Label
	})
	return results
}

// NearestPoint. closest point within radius km
func (rt *Rtree) NearestPoint(qLat, qLon, radius float64) (NearbyPoint, bool) {
	results := rt.SearchWithinRadius(qLat, qLon, radius)
	if len(results) == 0 {
		return NearbyPoint{}, false
	}
	return results[0], true
}

// NearestSegment. segment whose geometry passes closest to (qLat, qLon), within radius km
func (rt *Rtree) NearestSegment(qLat, qLon, radius float64) (NearbySegment, bool) {
	lower, upper := searchBox(qLat, qLon, radius)
	q := da.NewCoordinate(qLat, qLon)

	var (
		best  NearbySegment
		found bool
	)
	rt.segments.Search(lower, upper, func(min, max [2]float64, seg da.Segment) bool {
		dist := geo.DistanceToPolylineKm(seg.Geometry, q)
		if dist > radius {
			return true
		}
		if !found || dist < best.DistanceKm || (dist == best.DistanceKm && seg.ID < best.Segment.ID) {
			best = NearbySegment{Segment: seg, DistanceKm: dist}
			found = true
		}
		return true
	})
	return best, found
}

func (rt *Rtree) NumPoints() int {
	return rt.points.Len()
}
