package usecases

import (
	"context"
	"sort"

	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/storage"
	"github.com/lintang-b-s/arterial/pkg/util"
	"go.uber.org/zap"
)

// SegmentService. segment and travel time maintenance. reads come from the active snapshot,
// writes go to the store and are followed by a snapshot refresh.
type SegmentService struct {
	log    *zap.Logger
	store  storage.Store
	engine GraphEngine
}

func NewSegmentService(log *zap.Logger, store storage.Store, engine GraphEngine) *SegmentService {
	return &SegmentService{
		log:    log,
		store:  store,
		engine: engine,
	}
}

func (ss *SegmentService) ListSegments() []da.Segment {
	return ss.engine.GetState().Snapshot.Segments()
}

func (ss *SegmentService) GetSegment(id int64) (da.Segment, error) {
	seg, ok := ss.engine.GetState().Snapshot.Segment(id)
	if !ok {
		return da.Segment{}, util.WrapErrorf(nil, util.ErrNotFound, "segment %d not found", id)
	}
	return seg, nil
}

func (ss *SegmentService) CreateSegment(ctx context.Context, seg da.Segment) (da.Segment, error) {
	if err := seg.Validate(); err != nil {
		return da.Segment{}, err
	}
	created, err := ss.store.CreateSegment(ctx, seg)
	if err != nil {
		return da.Segment{}, err
	}
	if err := ss.refresh(ctx); err != nil {
		return created, err
	}

	ss.log.Info("segment created", zap.Int64("segmentID", created.ID), zap.String("name", created.Name))
	return created, nil
}

// UpdateSegment. replaces name, points, length and geometry of an existing segment
func (ss *SegmentService) UpdateSegment(ctx context.Context, seg da.Segment) (da.Segment, error) {
	if err := seg.Validate(); err != nil {
		return da.Segment{}, err
	}
	if err := ss.store.UpdateSegment(ctx, seg); err != nil {
		return da.Segment{}, err
	}
	if err := ss.refresh(ctx); err != nil {
		return seg, err
	}

	ss.log.Info("segment updated", zap.Int64("segmentID", seg.ID), zap.String("name", seg.Name))
	return seg, nil
}

// DeleteSegment. the travel times of the segment are deleted with it
func (ss *SegmentService) DeleteSegment(ctx context.Context, id int64) error {
	if err := ss.store.DeleteSegment(ctx, id); err != nil {
		return err
	}
	if err := ss.refresh(ctx); err != nil {
		return err
	}

	ss.log.Info("segment deleted", zap.Int64("segmentID", id))
	return nil
}

// ListTravelTimes. entries of the active snapshot ordered by segment then bucket.
// segmentID 0 lists every segment.
func (ss *SegmentService) ListTravelTimes(segmentID int64) []da.TravelTimeEntry {
	entries := ss.engine.GetState().Snapshot.TravelTimes()
	filtered := make([]da.TravelTimeEntry, 0, len(entries))
	for _, e := range entries {
		if segmentID != 0 && e.SegmentID != segmentID {
			continue
		}
		filtered = append(filtered, e)
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].SegmentID != filtered[j].SegmentID {
			return filtered[i].SegmentID < filtered[j].SegmentID
		}
		return filtered[i].Bucket < filtered[j].Bucket
	})
	return filtered
}

// PutTravelTime. last-write-wins upsert of one (segment, bucket) baseline
func (ss *SegmentService) PutTravelTime(ctx context.Context, segmentID int64, bucket string,
	minutes float64) (da.TravelTimeEntry, error) {
	entry := da.NewTravelTimeEntry(segmentID, pkg.GetBucket(bucket), minutes)
	if err := entry.Validate(); err != nil {
		return da.TravelTimeEntry{}, err
	}
	if err := ss.store.PutTravelTime(ctx, entry); err != nil {
		return da.TravelTimeEntry{}, err
	}
	if err := ss.refresh(ctx); err != nil {
		return entry, err
	}
	return entry, nil
}

func (ss *SegmentService) DeleteTravelTime(ctx context.Context, segmentID int64, bucket string) error {
	b := pkg.GetBucket(bucket)
	if b == pkg.UNKNOWN_BUCKET {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "unknown time bucket %q", bucket)
	}
	if err := ss.store.DeleteTravelTime(ctx, segmentID, b); err != nil {
		return err
	}
	return ss.refresh(ctx)
}

func (ss *SegmentService) refresh(ctx context.Context) error {
	if err := ss.engine.Refresh(ctx); err != nil {
		ss.log.Error("snapshot refresh after write failed", zap.Error(err))
		return util.WrapErrorf(err, util.ErrInternalServerError, "change stored but not yet active")
	}
	return nil
}
