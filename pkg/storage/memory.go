package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/util"
)

// MemoryStore. in-process Store, also the write side of the csv store
type MemoryStore struct {
	mu          sync.RWMutex
	segments    map[int64]da.Segment
	travelTimes *da.TravelTimeTable
	maxID       int64
}

// NewMemoryStore. invalid or duplicate segments are rejected, entries are applied in order.
func NewMemoryStore(segments []da.Segment, entries []da.TravelTimeEntry) (*MemoryStore, error) {
	ms := &MemoryStore{
		segments:    make(map[int64]da.Segment, len(segments)),
		travelTimes: da.NewTravelTimeTable(),
	}
	for _, seg := range segments {
		if err := ms.insertSegment(seg); err != nil {
			return nil, err
		}
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		ms.travelTimes.Put(e)
	}
	return ms, nil
}

func (ms *MemoryStore) insertSegment(seg da.Segment) error {
	if err := seg.Validate(); err != nil {
		return err
	}
	if _, ok := ms.segments[seg.ID]; ok {
		return util.WrapErrorf(nil, util.ErrConflict, "segment %d already exists", seg.ID)
	}
	ms.segments[seg.ID] = seg
	if seg.ID > ms.maxID {
		ms.maxID = seg.ID
	}
	return nil
}

func (ms *MemoryStore) ListSegments(ctx context.Context) ([]da.Segment, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	segments := make([]da.Segment, 0, len(ms.segments))
	for _, seg := range ms.segments {
		segments = append(segments, seg)
	}
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].ID < segments[j].ID
	})
	return segments, nil
}

func (ms *MemoryStore) ListTravelTimes(ctx context.Context) ([]da.TravelTimeEntry, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.travelTimes.Entries(), nil
}

func (ms *MemoryStore) CreateSegment(ctx context.Context, seg da.Segment) (da.Segment, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if seg.ID == 0 {
		seg.ID = ms.maxID + 1
	}
	if err := ms.insertSegment(seg); err != nil {
		return da.Segment{}, err
	}
	return seg, nil
}

func (ms *MemoryStore) PutTravelTime(ctx context.Context, e da.TravelTimeEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.segments[e.SegmentID]; !ok {
		return util.WrapErrorf(nil, util.ErrNotFound, "segment %d not found", e.SegmentID)
	}
	ms.travelTimes.Put(e)
	return nil
}

func (ms *MemoryStore) UpdateSegment(ctx context.Context, seg da.Segment) error {
	if err := seg.Validate(); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.segments[seg.ID]; !ok {
		return util.WrapErrorf(nil, util.ErrNotFound, "segment %d not found", seg.ID)
	}
	ms.segments[seg.ID] = seg
	return nil
}

func (ms *MemoryStore) DeleteSegment(ctx context.Context, id int64) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.segments[id]; !ok {
		return util.WrapErrorf(nil, util.ErrNotFound, "segment %d not found", id)
	}
	delete(ms.segments, id)
	ms.travelTimes.DeleteSegment(id)
	return nil
}

func (ms *MemoryStore) DeleteTravelTime(ctx context.Context, segmentID int64, bucket pkg.Bucket) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if !ms.travelTimes.Delete(segmentID, bucket) {
		return util.WrapErrorf(nil, util.ErrNotFound, "no %s travel time for segment %d", bucket, segmentID)
	}
	return nil
}

func (ms *MemoryStore) Close() error {
	return nil
}
