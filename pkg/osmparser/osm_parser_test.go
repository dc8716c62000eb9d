package osmparser

import (
	"testing"

	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWay(id osm.WayID, tags map[string]string, nodeIDs ...osm.NodeID) *osm.Way {
	way := &osm.Way{ID: id}
	for k, v := range tags {
		way.Tags = append(way.Tags, osm.Tag{Key: k, Value: v})
	}
	for _, n := range nodeIDs {
		way.Nodes = append(way.Nodes, osm.WayNode{ID: n})
	}
	return way
}

func TestAcceptOsmWay(t *testing.T) {
	testCases := []struct {
		name string
		tags map[string]string
		want bool
	}{
		{name: "named primary", tags: map[string]string{"highway": "primary", "name": "Avenue Hassan II"}, want: true},
		{name: "named tertiary", tags: map[string]string{"highway": "tertiary", "name": "Route Sefrou"}, want: true},
		{name: "unnamed primary", tags: map[string]string{"highway": "primary"}, want: false},
		{name: "residential street", tags: map[string]string{"highway": "residential", "name": "Derb"}, want: false},
		{name: "pedestrian area", tags: map[string]string{"highway": "primary", "name": "Place", "area": "yes"}, want: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, acceptOsmWay(newWay(1, tt.tags, 1, 2)))
		})
	}
}

func TestWayDirections(t *testing.T) {
	testCases := []struct {
		name         string
		tags         map[string]string
		wantForward  bool
		wantBackward bool
	}{
		{name: "two way", tags: map[string]string{"highway": "primary"}, wantForward: true, wantBackward: true},
		{name: "oneway", tags: map[string]string{"highway": "primary", "oneway": "yes"}, wantForward: true},
		{name: "reversed oneway", tags: map[string]string{"highway": "primary", "oneway": "-1"}, wantBackward: true},
		{name: "roundabout", tags: map[string]string{"highway": "primary", "junction": "roundabout"}, wantForward: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			forward, backward := wayDirections(newWay(1, tt.tags, 1, 2))
			assert.Equal(t, tt.wantForward, forward)
			assert.Equal(t, tt.wantBackward, backward)
		})
	}
}

func TestBuildSegmentsSplitsAtJunctions(t *testing.T) {
	p := NewOSMParser(zap.NewNop())

	// hassan II runs 1-2-3, the FAR avenue crosses it at node 2 and is one way 4 -> 2 -> 5
	require.True(t, p.addWay(newWay(10, map[string]string{"highway": "primary", "name": "Avenue Hassan II"}, 1, 2, 3)))
	require.True(t, p.addWay(newWay(11, map[string]string{"highway": "secondary", "name": "Avenue des FAR",
		"oneway": "yes"}, 4, 2, 5)))
	assert.False(t, p.addWay(newWay(12, map[string]string{"highway": "footway", "name": "Derb"}, 3, 5)))

	coords := map[osm.NodeID][2]float64{
		1: {34.0375, -5.0003},
		2: {34.0431, -4.9983},
		3: {34.0452, -4.9931},
		4: {34.0420, -5.0050},
		5: {34.0450, -4.9900},
		6: {34.0000, -5.0000},
	}
	for id, c := range coords {
		p.addNode(&osm.Node{ID: id, Lat: c[0], Lon: c[1]})
	}
	assert.Len(t, p.coords, 5, "nodes outside accepted ways are ignored")

	segments := p.BuildSegments()
	// hassan II: two pieces in both directions, FAR: two pieces forward only
	require.Len(t, segments, 6)

	junction := "Avenue Hassan II / Avenue des FAR"
	byEnds := make(map[[2]string]da.Segment)
	for i, seg := range segments {
		assert.Equal(t, int64(i+1), seg.ID)
		assert.Greater(t, seg.LengthKm, 0.0)
		require.NoError(t, seg.Validate())
		byEnds[[2]string{seg.StartPoint, seg.EndPoint}] = seg
	}

	_, ok := byEnds[[2]string{"Avenue Hassan II #1", junction}]
	assert.True(t, ok)
	_, ok = byEnds[[2]string{junction, "Avenue Hassan II #1"}]
	assert.True(t, ok)
	far, ok := byEnds[[2]string{junction, "Avenue des FAR #5"}]
	require.True(t, ok)
	_, ok = byEnds[[2]string{"Avenue des FAR #5", junction}]
	assert.False(t, ok, "one way is not reversed")

	first, _ := far.FirstCoordinate()
	assert.Equal(t, da.NewCoordinate(34.0431, -4.9983), first)
}

func TestBuildSegmentsSkipsMissingCoordinates(t *testing.T) {
	p := NewOSMParser(zap.NewNop())
	require.True(t, p.addWay(newWay(10, map[string]string{"highway": "primary", "name": "Route Sefrou", "oneway": "yes"},
		1, 2)))
	p.addNode(&osm.Node{ID: 1, Lat: 34.0, Lon: -5.0})

	assert.Empty(t, p.BuildSegments())
}
