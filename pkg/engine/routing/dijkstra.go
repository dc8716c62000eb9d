package routing

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/util"
)

// TimeDependentDijkstra. label setting search over graph points, the weight of a segment is
// its predicted time at the hour the segment is entered. no hop limit.
// a direct segment preempts the search, same as BoundedDepthSearch.
type TimeDependentDijkstra struct {
	budget int
}

// NewTimeDependentDijkstra. budget is the maximum number of settled points per search, 0 = unlimited
func NewTimeDependentDijkstra(budget int) *TimeDependentDijkstra {
	return &TimeDependentDijkstra{budget: budget}
}

func (td *TimeDependentDijkstra) Name() string {
	return STRATEGY_DIJKSTRA
}

func (td *TimeDependentDijkstra) Search(ctx context.Context, q Query) ([]da.RouteLeg, error) {
	if !q.Graph.HasOutgoing(q.Start) {
		return nil, nil
	}

	if leg, ok := q.directLeg(); ok {
		return []da.RouteLeg{leg}, nil
	}

	info := make(map[string]*VertexInfo)
	pq := da.NewFourAryHeap[string]()

	if q.Start != q.End {
		// start is never entered again, a cycle back to it cannot be shorter
		source := NewVertexInfo(0, q.Hour, pointParent{}, nil)
		source.Scan()
		info[q.Start] = source
	}
	if err := td.relaxOutEdges(q, info, pq, q.Start, 0, q.Hour); err != nil {
		return nil, err
	}

	numSettledNodes := 0
	for !pq.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node, err := pq.ExtractMin()
		if err != nil {
			return nil, err
		}
		u := node.GetItem()
		uInfo := info[u]
		uInfo.Scan()

		if u == q.End {
			return td.unpackPath(q, info), nil
		}

		numSettledNodes++
		if td.budget > 0 && numSettledNodes > td.budget {
			return nil, budgetExceeded(q, td.budget)
		}

		if err := td.relaxOutEdges(q, info, pq, u, uInfo.GetTravelTime(), uInfo.GetHour()); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

func (td *TimeDependentDijkstra) relaxOutEdges(q Query, info map[string]*VertexInfo, pq *da.MinHeap[string],
	u string, uTravelTime float64, uHour int) error {
	var relaxErr error
	q.Graph.ForSegmentsFrom(u, func(seg da.Segment) bool {
		v := seg.EndPoint
		leg, vHour := q.predictLeg(seg, uHour)
		newTravelTime := util.RoundFloat(uTravelTime+leg.Minutes, 1)

		vInfo, vAlreadyLabelled := info[v]
		if vAlreadyLabelled && (vInfo.IsScanned() || newTravelTime >= vInfo.GetTravelTime()) {
			// not better
			return true
		}

		if vAlreadyLabelled {
			vInfo.Update(newTravelTime, vHour, newPointParent(u, leg))
			if err := pq.DecreaseKey(vInfo.GetHeapNode(), newTravelTime); err != nil {
				relaxErr = fmt.Errorf("relax segment %d into %q: %w", seg.ID, v, err)
				return false
			}
			return true
		}

		vhNode := da.NewPriorityQueueNode(newTravelTime, v)
		info[v] = NewVertexInfo(newTravelTime, vHour, newPointParent(u, leg), vhNode)
		pq.Insert(vhNode)
		return true
	})
	return relaxErr
}

// unpackPath. legs from start to end following parent pointers. only the first leg leaves start.
func (td *TimeDependentDijkstra) unpackPath(q Query, info map[string]*VertexInfo) []da.RouteLeg {
	legs := make([]da.RouteLeg, 0, pkg.DEFAULT_MAX_HOPS)
	cur := q.End
	for {
		parent := info[cur].GetParent()
		legs = append(legs, parent.leg)
		if parent.leg.Segment.StartPoint == q.Start || len(legs) > len(info) {
			break
		}
		cur = parent.point
	}

	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}
	return legs
}
