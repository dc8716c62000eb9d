package routing

import (
	"context"

	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
)

// SegmentGraph. read side of the segment store consumed by the search, implemented by da.Snapshot
type SegmentGraph interface {
	HasOutgoing(point string) bool
	ForSegmentsFrom(point string, fn func(seg da.Segment) bool)
	Segment(id int64) (da.Segment, bool)
	Segments() []da.Segment
	TravelTime(segmentID int64, bucket pkg.Bucket) (float64, bool)
}

// SearchStrategy. returns the legs of the best path from q.Start to q.End, nil legs when there is none.
type SearchStrategy interface {
	Search(ctx context.Context, q Query) ([]da.RouteLeg, error)
	Name() string
}
