package storage

import (
	"context"

	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
)

// Source. everything needed to build a snapshot
type Source interface {
	ListSegments(ctx context.Context) ([]da.Segment, error)
	ListTravelTimes(ctx context.Context) ([]da.TravelTimeEntry, error)
}

// Store. Source with the maintenance writes
type Store interface {
	Source
	// CreateSegment. id 0 assigns the next free id. an existing id is a conflict.
	CreateSegment(ctx context.Context, seg da.Segment) (da.Segment, error)
	// PutTravelTime. last-write-wins upsert of one (segment, bucket) entry
	PutTravelTime(ctx context.Context, e da.TravelTimeEntry) error
	// UpdateSegment. replaces every field of an existing segment
	UpdateSegment(ctx context.Context, seg da.Segment) error
	// DeleteSegment. also deletes the travel times of the segment
	DeleteSegment(ctx context.Context, id int64) error
	DeleteTravelTime(ctx context.Context, segmentID int64, bucket pkg.Bucket) error
	Close() error
}
