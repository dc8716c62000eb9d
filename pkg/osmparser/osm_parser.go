package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/geo"
	"github.com/lintang-b-s/arterial/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// OsmParser. extracts the named arterial ways of an osm extract as directed segments ("axes").
// ways are split at every node they share with another accepted way. a split point is labelled
// with the names of the roads meeting there, a dead end with the road name and its osm node id.
type OsmParser struct {
	wayNodeMap map[int64]NodeType
	nodeNames  map[int64][]string
	ways       []arterialWay
	coords     map[int64]da.Coordinate
	logger     *zap.Logger
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap: make(map[int64]NodeType),
		nodeNames:  make(map[int64][]string),
		ways:       make([]arterialWay, 0),
		coords:     make(map[int64]da.Coordinate),
		logger:     logger,
	}
}

// Parse. two passes over the pbf file: ways first, then only the coordinates of their nodes.
func (p *OsmParser) Parse(ctx context.Context, mapFile string) ([]da.Segment, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if p.addWay(way) {
			countWays++
			if countWays%1000 == 0 {
				p.logger.Sugar().Infof("scanning openstreetmap arterial ways: %d...", countWays)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("parse %s: scan ways: %w", mapFile, err)
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	scanner = osmpbf.New(ctx, f, 1)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		p.addNode(n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: scan nodes: %w", mapFile, err)
	}

	segments := p.BuildSegments()
	p.logger.Info("arterial segments extracted", zap.Int("ways", countWays), zap.Int("segments", len(segments)))
	return segments, nil
}

// addWay. false when the way is not an accepted arterial
func (p *OsmParser) addWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}

	forward, backward := wayDirections(way)
	aw := arterialWay{
		id:       int64(way.ID),
		name:     strings.TrimSpace(way.Tags.Find("name")),
		highway:  way.Tags.Find("highway"),
		nodes:    make([]int64, len(way.Nodes)),
		forward:  forward,
		backward: backward,
	}

	for i, wn := range way.Nodes {
		nodeID := int64(wn.ID)
		aw.nodes[i] = nodeID

		if _, ok := p.wayNodeMap[nodeID]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[nodeID] = END_NODE
			} else {
				p.wayNodeMap[nodeID] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[nodeID] = JUNCTION_NODE
		}
		if !containsName(p.nodeNames[nodeID], aw.name) {
			p.nodeNames[nodeID] = append(p.nodeNames[nodeID], aw.name)
		}
	}

	p.ways = append(p.ways, aw)
	return true
}

func (p *OsmParser) addNode(n *osm.Node) {
	if _, ok := p.wayNodeMap[int64(n.ID)]; !ok {
		return
	}
	p.coords[int64(n.ID)] = da.NewCoordinate(n.Lat, n.Lon)
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func acceptOsmWay(way *osm.Way) bool {
	if strings.TrimSpace(way.Tags.Find("name")) == "" {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	_, ok := acceptedHighway[way.Tags.Find("highway")]
	return ok
}

// wayDirections. (forward allowed, backward allowed)
func wayDirections(way *osm.Way) (bool, bool) {
	switch way.Tags.Find("oneway") {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return false, true
	}
	if way.Tags.Find("junction") == "roundabout" || way.Tags.Find("highway") == "motorway" {
		return true, false
	}
	return true, true
}

// pointLabel. "A / B" at junctions, "Name #osmNodeID" at dead ends
func (p *OsmParser) pointLabel(nodeID int64, wayName string) string {
	names := p.nodeNames[nodeID]
	if p.wayNodeMap[nodeID] == JUNCTION_NODE && len(names) > 1 {
		sorted := make([]string, len(names))
		copy(sorted, names)
		sort.Strings(sorted)
		return strings.Join(sorted, " / ")
	}
	return fmt.Sprintf("%s #%d", wayName, nodeID)
}

// BuildSegments. split every accepted way at its junction nodes and emit one segment per allowed direction.
// pieces with missing node coordinates are skipped. ids are assigned from 1 in way order.
func (p *OsmParser) BuildSegments() []da.Segment {
	segments := make([]da.Segment, 0, len(p.ways))
	nextID := int64(1)

	emit := func(w arterialWay, piece []node) {
		if len(piece) < 2 || piece[0].id == piece[len(piece)-1].id && len(piece) == 2 {
			return
		}
		coords := make([]da.Coordinate, len(piece))
		for i, n := range piece {
			coords[i] = n.coord
		}
		lengthKm := util.RoundFloat(geo.PolylineLengthKm(coords), 3)
		from := p.pointLabel(piece[0].id, w.name)
		to := p.pointLabel(piece[len(piece)-1].id, w.name)

		if w.forward {
			segments = append(segments, da.NewSegment(nextID, w.name, from, to, lengthKm, coords))
			nextID++
		}
		if w.backward {
			reversed := make([]da.Coordinate, len(coords))
			for i, c := range coords {
				reversed[len(coords)-1-i] = c
			}
			segments = append(segments, da.NewSegment(nextID, w.name, to, from, lengthKm, reversed))
			nextID++
		}
	}

	for _, w := range p.ways {
		piece := make([]node, 0, len(w.nodes))
		complete := true
		for i, nodeID := range w.nodes {
			coord, ok := p.coords[nodeID]
			if !ok {
				complete = false
			}
			piece = append(piece, node{id: nodeID, coord: coord})

			split := i > 0 && p.wayNodeMap[nodeID] == JUNCTION_NODE
			if split || i == len(w.nodes)-1 {
				if complete {
					emit(w, piece)
				} else {
					p.logger.Debug("skipping way piece with missing node coordinates", zap.Int64("way", w.id))
				}
				piece = []node{{id: nodeID, coord: coord}}
				complete = ok
			}
		}
	}

	return segments
}
