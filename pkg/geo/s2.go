package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/arterial/pkg/datastructure"
)

func toS2Point(c datastructure.Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

// PolylineLengthKm. great circle length of the geometry in km, 0 for less than two vertices
func PolylineLengthKm(coords []datastructure.Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	latlngs := make([]s2.LatLng, len(coords))
	for i, c := range coords {
		latlngs[i] = s2.LatLngFromDegrees(c.Lat, c.Lon)
	}
	polyline := s2.PolylineFromLatLngs(latlngs)
	return polyline.Length().Radians() * earthRadiusKM
}

// ProjectPointToLine. closest point to snap on the great circle arc (pointA, pointB)
func ProjectPointToLine(pointA, pointB, snap datastructure.Coordinate) datastructure.Coordinate {
	projection := s2.Project(toS2Point(snap), toS2Point(pointA), toS2Point(pointB))
	ll := s2.LatLngFromPoint(projection)
	return datastructure.NewCoordinate(ll.Lat.Degrees(), ll.Lng.Degrees())
}

// DistanceToPolylineKm. shortest distance (km) from snap to any edge of the geometry
func DistanceToPolylineKm(coords []datastructure.Coordinate, snap datastructure.Coordinate) float64 {
	switch len(coords) {
	case 0:
		return 0
	case 1:
		return CalculateHaversineDistance(coords[0].Lat, coords[0].Lon, snap.Lat, snap.Lon)
	}

	best := -1.0
	for i := 1; i < len(coords); i++ {
		p := ProjectPointToLine(coords[i-1], coords[i], snap)
		d := CalculateHaversineDistance(p.Lat, p.Lon, snap.Lat, snap.Lon)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
