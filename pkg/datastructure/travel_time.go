package datastructure

import (
	"sort"

	"github.com/lintang-b-s/arterial/pkg"
	"github.com/lintang-b-s/arterial/pkg/util"
)

type TravelTimeKey struct {
	SegmentID int64
	Bucket    pkg.Bucket
}

// TravelTimeEntry. baseline average minutes of a segment for one time bucket
type TravelTimeEntry struct {
	SegmentID int64      `json:"segment_id"`
	Bucket    pkg.Bucket `json:"bucket"`
	Minutes   float64    `json:"minutes"`
}

func NewTravelTimeEntry(segmentID int64, bucket pkg.Bucket, minutes float64) TravelTimeEntry {
	return TravelTimeEntry{SegmentID: segmentID, Bucket: bucket, Minutes: minutes}
}

func (e TravelTimeEntry) Key() TravelTimeKey {
	return TravelTimeKey{SegmentID: e.SegmentID, Bucket: e.Bucket}
}

// TravelTimeTable. at most one entry per (segment, bucket).
// Put is last-write-wins: a duplicate key replaces the previous minutes.
type TravelTimeTable struct {
	entries map[TravelTimeKey]float64
}

func NewTravelTimeTable() *TravelTimeTable {
	return &TravelTimeTable{
		entries: make(map[TravelTimeKey]float64),
	}
}

// Put. returns true if an existing entry for the same key was overwritten.
func (tt *TravelTimeTable) Put(e TravelTimeEntry) bool {
	key := e.Key()
	_, replaced := tt.entries[key]
	tt.entries[key] = e.Minutes
	return replaced
}

// Delete. false if there was no entry for the key
func (tt *TravelTimeTable) Delete(segmentID int64, bucket pkg.Bucket) bool {
	key := TravelTimeKey{SegmentID: segmentID, Bucket: bucket}
	if _, ok := tt.entries[key]; !ok {
		return false
	}
	delete(tt.entries, key)
	return true
}

// DeleteSegment. removes every bucket of segmentID, returns how many entries were removed
func (tt *TravelTimeTable) DeleteSegment(segmentID int64) int {
	removed := 0
	for key := range tt.entries {
		if key.SegmentID == segmentID {
			delete(tt.entries, key)
			removed++
		}
	}
	return removed
}

// Lookup. ok == false means no baseline exists, which is different from zero minutes.
func (tt *TravelTimeTable) Lookup(segmentID int64, bucket pkg.Bucket) (float64, bool) {
	minutes, ok := tt.entries[TravelTimeKey{SegmentID: segmentID, Bucket: bucket}]
	return minutes, ok
}

func (tt *TravelTimeTable) Len() int {
	return len(tt.entries)
}

// Entries. all entries ordered by segment id then bucket
func (tt *TravelTimeTable) Entries() []TravelTimeEntry {
	entries := make([]TravelTimeEntry, 0, len(tt.entries))
	for k, minutes := range tt.entries {
		entries = append(entries, NewTravelTimeEntry(k.SegmentID, k.Bucket, minutes))
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SegmentID != entries[j].SegmentID {
			return entries[i].SegmentID < entries[j].SegmentID
		}
		return entries[i].Bucket < entries[j].Bucket
	})
	return entries
}

// Validate. minutes must be non-negative and the bucket a known table key
func (e TravelTimeEntry) Validate() error {
	if e.Bucket >= pkg.UNKNOWN_BUCKET {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "travel time of segment %d: unknown bucket", e.SegmentID)
	}
	if e.Minutes < 0 {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "travel time of segment %d: minutes must be non-negative, got %f",
			e.SegmentID, e.Minutes)
	}
	return nil
}
