package routing

import (
	"github.com/lintang-b-s/arterial/pkg/costfunction"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
)

// Query. one route search over a graph with a resolved departure hour and weekday
type Query struct {
	Graph     SegmentGraph
	Predictor *costfunction.TravelTimePredictor
	Start     string
	End       string
	Hour      int
	Weekday   int
}

func NewQuery(graph SegmentGraph, predictor *costfunction.TravelTimePredictor, start, end string,
	hour, weekday int) Query {
	return Query{
		Graph:     graph,
		Predictor: predictor,
		Start:     start,
		End:       end,
		Hour:      hour,
		Weekday:   weekday,
	}
}

// predictLeg. prediction of seg entered at hour, plus the hour at which the next segment is entered
func (q Query) predictLeg(seg da.Segment, hour int) (da.RouteLeg, int) {
	p := q.Predictor.Predict(seg, hour, q.Weekday)
	return da.NewRouteLeg(seg, hour, p.Minutes, p.Reliability), costfunction.AdvanceHour(hour, p.Minutes)
}

// directLeg. first segment start->end in ascending id order
func (q Query) directLeg() (da.RouteLeg, bool) {
	var (
		leg   da.RouteLeg
		found bool
	)
	q.Graph.ForSegmentsFrom(q.Start, func(seg da.Segment) bool {
		if seg.EndPoint != q.End {
			return true
		}
		leg, _ = q.predictLeg(seg, q.Hour)
		found = true
		return false
	})
	return leg, found
}

type pointParent struct {
	point string
	leg   da.RouteLeg
}

func newPointParent(point string, leg da.RouteLeg) pointParent {
	return pointParent{point: point, leg: leg}
}

// VertexInfo. label of a graph point in the time dependent search.
// hour is the hour at which segments leaving the point are entered.
type VertexInfo struct {
	travelTime float64
	hour       int
	parent     pointParent
	scanned    bool
	heapNode   *da.PriorityQueueNode[string]
}

func NewVertexInfo(travelTime float64, hour int, parent pointParent, hnode *da.PriorityQueueNode[string]) *VertexInfo {
	return &VertexInfo{
		travelTime: travelTime,
		hour:       hour,
		parent:     parent,
		heapNode:   hnode,
	}
}

func (vi *VertexInfo) GetTravelTime() float64 {
	return vi.travelTime
}

func (vi *VertexInfo) GetHour() int {
	return vi.hour
}

func (vi *VertexInfo) Update(travelTime float64, hour int, parent pointParent) {
	vi.travelTime = travelTime
	vi.hour = hour
	vi.parent = parent
}

func (vi *VertexInfo) GetParent() pointParent {
	return vi.parent
}

func (vi *VertexInfo) Scan() {
	vi.scanned = true
}

func (vi *VertexInfo) IsScanned() bool {
	return vi.scanned
}

func (vi *VertexInfo) GetHeapNode() *da.PriorityQueueNode[string] {
	return vi.heapNode
}
