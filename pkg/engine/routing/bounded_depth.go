package routing

import (
	"context"

	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/util"
)

// BoundedDepthSearch. exhaustive enumeration of paths with at most maxHops segments.
// a direct segment always wins. otherwise the k-hop paths are only enumerated when no path
// with k-1 hops exists, and the minimum total time among them is returned.
// ties keep the first path in lexicographic ascending segment id order.
type BoundedDepthSearch struct {
	maxHops int
	budget  int
}

// NewBoundedDepthSearch. budget is the maximum number of segment expansions per search, 0 = unlimited
func NewBoundedDepthSearch(maxHops, budget int) *BoundedDepthSearch {
	if maxHops < 1 {
		maxHops = pkg.DEFAULT_MAX_HOPS
	}
	return &BoundedDepthSearch{maxHops: maxHops, budget: budget}
}

func (bs *BoundedDepthSearch) Name() string {
	return STRATEGY_BOUNDED
}

func (bs *BoundedDepthSearch) Search(ctx context.Context, q Query) ([]da.RouteLeg, error) {
	if !q.Graph.HasOutgoing(q.Start) {
		return nil, nil
	}

	if leg, ok := q.directLeg(); ok {
		return []da.RouteLeg{leg}, nil
	}

	cs := newChainSearch(q, bs.maxHops, bs.budget)
	for k := 2; k <= bs.maxHops; k++ {
		if err := cs.enumerate(ctx, k); err != nil {
			return nil, err
		}
		if cs.best != nil {
			return cs.best, nil
		}
	}

	return nil, nil
}

type chainSearch struct {
	q         Query
	budget    int
	expanded  int
	path      []da.RouteLeg
	best      []da.RouteLeg
	bestTotal float64
}

func newChainSearch(q Query, maxHops, budget int) *chainSearch {
	return &chainSearch{
		q:         q,
		budget:    budget,
		path:      make([]da.RouteLeg, maxHops),
		bestTotal: pkg.INF_WEIGHT,
	}
}

// enumerate. every chain of exactly k segments from start to end
func (cs *chainSearch) enumerate(ctx context.Context, k int) error {
	return cs.dfs(ctx, cs.q.Start, cs.q.Hour, 0, k, 0)
}

func (cs *chainSearch) dfs(ctx context.Context, point string, hour, depth, k int, total float64) error {
	last := depth == k-1

	var err error
	cs.q.Graph.ForSegmentsFrom(point, func(seg da.Segment) bool {
		if last && seg.EndPoint != cs.q.End {
			return true
		}

		cs.expanded++
		if cs.budget > 0 && cs.expanded > cs.budget {
			err = budgetExceeded(cs.q, cs.budget)
			return false
		}
		if err = ctx.Err(); err != nil {
			return false
		}

		leg, nextHour := cs.q.predictLeg(seg, hour)
		cs.path[depth] = leg
		newTotal := util.RoundFloat(total+leg.Minutes, 1)

		if last {
			if newTotal < cs.bestTotal {
				cs.bestTotal = newTotal
				cs.best = make([]da.RouteLeg, k)
				copy(cs.best, cs.path[:k])
			}
			return true
		}

		err = cs.dfs(ctx, seg.EndPoint, nextHour, depth+1, k, newTotal)
		return err == nil
	})
	return err
}
