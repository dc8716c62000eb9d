package storage

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/util"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	segmentsHeader    = []string{"id", "name", "start_point", "end_point", "length_km", "geometry"}
	travelTimesHeader = []string{"segment_id", "bucket", "minutes"}
)

// EncodeGeometry. google encoded polyline of the segment geometry
func EncodeGeometry(coords []da.Coordinate) string {
	if len(coords) == 0 {
		return ""
	}
	pts := make([][]float64, len(coords))
	for i, c := range coords {
		pts[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(pts))
}

func DecodeGeometry(s string) ([]da.Coordinate, error) {
	if s == "" {
		return nil, nil
	}
	pts, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	coords := make([]da.Coordinate, len(pts))
	for i, p := range pts {
		coords[i] = da.NewCoordinate(p[0], p[1])
	}
	return coords, nil
}

func isHeader(record []string, header []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), header[0])
}

// ReadSegments. csv rows id,name,start_point,end_point,length_km[,geometry]
func ReadSegments(r io.Reader) ([]da.Segment, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	segments := make([]da.Segment, 0)
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read segments: line %d: %w", line, err)
		}
		if line == 1 && isHeader(record, segmentsHeader) {
			continue
		}
		if len(record) < 5 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "read segments: line %d: expected at least 5 fields, got %d",
				line, len(record))
		}

		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "read segments: line %d: bad id", line)
		}
		lengthKm, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "read segments: line %d: bad length", line)
		}
		var geometry []da.Coordinate
		if len(record) > 5 {
			geometry, err = DecodeGeometry(strings.TrimSpace(record[5]))
			if err != nil {
				return nil, util.WrapErrorf(err, util.ErrBadParamInput, "read segments: line %d: bad geometry", line)
			}
		}

		segments = append(segments, da.NewSegment(id, strings.TrimSpace(record[1]), strings.TrimSpace(record[2]),
			strings.TrimSpace(record[3]), lengthKm, geometry))
	}
	return segments, nil
}

// ReadTravelTimes. csv rows segment_id,bucket,minutes. bucket is matin|soir|normal|nuit.
func ReadTravelTimes(r io.Reader) ([]da.TravelTimeEntry, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	entries := make([]da.TravelTimeEntry, 0)
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read travel times: line %d: %w", line, err)
		}
		if line == 1 && isHeader(record, travelTimesHeader) {
			continue
		}

		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "read travel times: line %d: bad segment id", line)
		}
		bucket := pkg.GetBucket(record[1])
		if bucket == pkg.UNKNOWN_BUCKET {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "read travel times: line %d: unknown bucket %q",
				line, record[1])
		}
		minutes, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "read travel times: line %d: bad minutes", line)
		}

		entries = append(entries, da.NewTravelTimeEntry(id, bucket, minutes))
	}
	return entries, nil
}

func WriteSegments(w io.Writer, segments []da.Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(segmentsHeader); err != nil {
		return err
	}
	for _, seg := range segments {
		record := []string{
			strconv.FormatInt(seg.ID, 10),
			seg.Name,
			seg.StartPoint,
			seg.EndPoint,
			strconv.FormatFloat(seg.LengthKm, 'f', -1, 64),
			EncodeGeometry(seg.Geometry),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteTravelTimes(w io.Writer, entries []da.TravelTimeEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(travelTimesHeader); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			strconv.FormatInt(e.SegmentID, 10),
			e.Bucket.String(),
			strconv.FormatFloat(e.Minutes, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadSegmentsFile(path string) ([]da.Segment, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadSegments(r)
}

// ReadTravelTimesFile. a missing file is an empty table
func ReadTravelTimesFile(path string) ([]da.TravelTimeEntry, error) {
	r, err := openReader(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []da.TravelTimeEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadTravelTimes(r)
}

func WriteSegmentsFile(path string, segments []da.Segment) error {
	w, err := createWriter(path)
	if err != nil {
		return err
	}
	if err := WriteSegments(w, segments); err != nil {
		w.Abort()
		return err
	}
	return w.Close()
}

func WriteTravelTimesFile(path string, entries []da.TravelTimeEntry) error {
	w, err := createWriter(path)
	if err != nil {
		return err
	}
	if err := WriteTravelTimes(w, entries); err != nil {
		w.Abort()
		return err
	}
	return w.Close()
}

// CSVStore. segments and travel times kept in memory and written back to their files on every change
type CSVStore struct {
	*MemoryStore
	segmentsPath    string
	travelTimesPath string
	writeMu         sync.Mutex
	logger          *zap.Logger
}

// OpenCSVStore. both files are read concurrently. files ending in .bz2 are bzip2 compressed.
func OpenCSVStore(ctx context.Context, segmentsPath, travelTimesPath string, logger *zap.Logger) (*CSVStore, error) {
	var (
		segments []da.Segment
		entries  []da.TravelTimeEntry
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		segments, err = ReadSegmentsFile(segmentsPath)
		if err != nil {
			return fmt.Errorf("open csv store: %s: %w", segmentsPath, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = ReadTravelTimesFile(travelTimesPath)
		if err != nil {
			return fmt.Errorf("open csv store: %s: %w", travelTimesPath, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ms, err := NewMemoryStore(segments, entries)
	if err != nil {
		return nil, err
	}

	logger.Info("csv store loaded", zap.String("segments", segmentsPath), zap.Int("numSegments", len(segments)),
		zap.String("travelTimes", travelTimesPath), zap.Int("numTravelTimes", len(entries)))

	return &CSVStore{
		MemoryStore:     ms,
		segmentsPath:    segmentsPath,
		travelTimesPath: travelTimesPath,
		logger:          logger,
	}, nil
}

func (cs *CSVStore) CreateSegment(ctx context.Context, seg da.Segment) (da.Segment, error) {
	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()

	created, err := cs.MemoryStore.CreateSegment(ctx, seg)
	if err != nil {
		return da.Segment{}, err
	}

	if err := cs.writeSegments(ctx); err != nil {
		return da.Segment{}, fmt.Errorf("create segment: %w", err)
	}
	return created, nil
}

func (cs *CSVStore) UpdateSegment(ctx context.Context, seg da.Segment) error {
	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()

	if err := cs.MemoryStore.UpdateSegment(ctx, seg); err != nil {
		return err
	}
	return cs.writeSegments(ctx)
}

// DeleteSegment. both files are rewritten, travel times of the segment go with it
func (cs *CSVStore) DeleteSegment(ctx context.Context, id int64) error {
	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()

	if err := cs.MemoryStore.DeleteSegment(ctx, id); err != nil {
		return err
	}
	if err := cs.writeSegments(ctx); err != nil {
		return err
	}
	return cs.writeTravelTimes(ctx)
}

func (cs *CSVStore) DeleteTravelTime(ctx context.Context, segmentID int64, bucket pkg.Bucket) error {
	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()

	if err := cs.MemoryStore.DeleteTravelTime(ctx, segmentID, bucket); err != nil {
		return err
	}
	return cs.writeTravelTimes(ctx)
}

func (cs *CSVStore) writeSegments(ctx context.Context) error {
	segments, _ := cs.MemoryStore.ListSegments(ctx)
	if err := WriteSegmentsFile(cs.segmentsPath, segments); err != nil {
		return fmt.Errorf("write %s: %w", cs.segmentsPath, err)
	}
	return nil
}

func (cs *CSVStore) writeTravelTimes(ctx context.Context) error {
	entries, _ := cs.MemoryStore.ListTravelTimes(ctx)
	if err := WriteTravelTimesFile(cs.travelTimesPath, entries); err != nil {
		return fmt.Errorf("write %s: %w", cs.travelTimesPath, err)
	}
	return nil
}

func (cs *CSVStore) PutTravelTime(ctx context.Context, e da.TravelTimeEntry) error {
	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()

	if err := cs.MemoryStore.PutTravelTime(ctx, e); err != nil {
		return err
	}

	if err := cs.writeTravelTimes(ctx); err != nil {
		return fmt.Errorf("put travel time: %w", err)
	}
	return nil
}
