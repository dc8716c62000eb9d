package datastructure

import (
	"sort"
	"time"

	"github.com/lintang-b-s/arterial/pkg"
	"github.com/lintang-b-s/arterial/pkg/util"
)

// Snapshot. immutable view of the segment graph and its travel time table.
// Every accessor iterates segments in ascending id order, which is the total order
// used to break ties during route search.
type Snapshot struct {
	segments    []Segment
	byID        map[int64]int
	outgoing    map[string][]int
	travelTimes *TravelTimeTable
	builtAt     time.Time
}

// NewSnapshot. duplicate segment ids are rejected. travel time entries are applied in
// order (last-write-wins); entries of unknown segments are dropped and counted.
func NewSnapshot(segments []Segment, entries []TravelTimeEntry) (*Snapshot, int, error) {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	s := &Snapshot{
		segments:    sorted,
		byID:        make(map[int64]int, len(sorted)),
		outgoing:    make(map[string][]int),
		travelTimes: NewTravelTimeTable(),
		builtAt:     time.Now(),
	}

	for i, seg := range sorted {
		if _, dup := s.byID[seg.ID]; dup {
			return nil, 0, util.WrapErrorf(nil, util.ErrConflict, "duplicate segment id %d", seg.ID)
		}
		if err := seg.Validate(); err != nil {
			return nil, 0, err
		}
		s.byID[seg.ID] = i
		s.outgoing[seg.StartPoint] = append(s.outgoing[seg.StartPoint], i)
	}

	dropped := 0
	for _, e := range entries {
		if _, ok := s.byID[e.SegmentID]; !ok {
			dropped++
			continue
		}
		s.travelTimes.Put(e)
	}

	return s, dropped, nil
}

func (s *Snapshot) NumSegments() int {
	return len(s.segments)
}

func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// Segments. copy of all segments, ascending id
func (s *Snapshot) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

func (s *Snapshot) Segment(id int64) (Segment, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Segment{}, false
	}
	return s.segments[i], true
}

func (s *Snapshot) HasOutgoing(point string) bool {
	return len(s.outgoing[point]) > 0
}

// SegmentsFrom. copy of the segments starting at point, ascending id
func (s *Snapshot) SegmentsFrom(point string) []Segment {
	idx := s.outgoing[point]
	out := make([]Segment, len(idx))
	for i, j := range idx {
		out[i] = s.segments[j]
	}
	return out
}

// ForSegmentsFrom. iterate outgoing segments of point without copying. stops when fn returns false.
func (s *Snapshot) ForSegmentsFrom(point string, fn func(seg Segment) bool) {
	for _, j := range s.outgoing[point] {
		if !fn(s.segments[j]) {
			return
		}
	}
}

func (s *Snapshot) TravelTime(segmentID int64, bucket pkg.Bucket) (float64, bool) {
	return s.travelTimes.Lookup(segmentID, bucket)
}

func (s *Snapshot) TravelTimes() []TravelTimeEntry {
	return s.travelTimes.Entries()
}

func (s *Snapshot) StartPoints() []string {
	return s.distinctPoints(func(seg Segment) string { return seg.StartPoint })
}

func (s *Snapshot) EndPoints() []string {
	return s.distinctPoints(func(seg Segment) string { return seg.EndPoint })
}

// Points. every point label used as start or end of a segment
func (s *Snapshot) Points() []string {
	set := make(map[string]struct{}, len(s.segments)*2)
	for _, seg := range s.segments {
		set[seg.StartPoint] = struct{}{}
		set[seg.EndPoint] = struct{}{}
	}
	return sortedKeys(set)
}

func (s *Snapshot) distinctPoints(get func(seg Segment) string) []string {
	set := make(map[string]struct{}, len(s.segments))
	for _, seg := range s.segments {
		set[get(seg)] = struct{}{}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
