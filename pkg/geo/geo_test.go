package geo

import (
	"testing"

	"github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	// Bab Boujloud -> Place Florence, roughly 2.3 km
	d := CalculateHaversineDistance(34.0617, -4.9836, 34.0430, -4.9990)
	assert.InDelta(t, 2.5, d, 0.3)

	assert.Equal(t, 0.0, CalculateHaversineDistance(34.0, -5.0, 34.0, -5.0))
}

func TestPolylineLengthKm(t *testing.T) {
	coords := []datastructure.Coordinate{
		datastructure.NewCoordinate(34.0617, -4.9836),
		datastructure.NewCoordinate(34.0500, -4.9900),
		datastructure.NewCoordinate(34.0430, -4.9990),
	}
	want := CalculateHaversineDistance(34.0617, -4.9836, 34.0500, -4.9900) +
		CalculateHaversineDistance(34.0500, -4.9900, 34.0430, -4.9990)

	assert.InDelta(t, want, PolylineLengthKm(coords), 0.01)
	assert.Equal(t, 0.0, PolylineLengthKm(coords[:1]))
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(34.0, -5.0, 90, 1.0)
	assert.InDelta(t, 1.0, CalculateHaversineDistance(34.0, -5.0, lat, lon), 0.001)
	assert.Greater(t, lon, -5.0)
}

func TestDistanceToPolylineKm(t *testing.T) {
	coords := []datastructure.Coordinate{
		datastructure.NewCoordinate(34.0, -5.0),
		datastructure.NewCoordinate(34.0, -4.9),
	}
	onLine := datastructure.NewCoordinate(34.0, -4.95)
	assert.InDelta(t, 0.0, DistanceToPolylineKm(coords, onLine), 0.05)

	north := datastructure.NewCoordinate(34.01, -4.95)
	assert.InDelta(t, 1.11, DistanceToPolylineKm(coords, north), 0.05)
}
