package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/util"
)

const schema = `
CREATE TABLE IF NOT EXISTS axes (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	start_point TEXT NOT NULL,
	end_point   TEXT NOT NULL,
	length_km   DOUBLE PRECISION NOT NULL CHECK (length_km >= 0),
	geometry    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS axes_start_point_idx ON axes (start_point);

CREATE TABLE IF NOT EXISTS travel_times (
	segment_id BIGINT NOT NULL REFERENCES axes (id) ON DELETE CASCADE,
	bucket     TEXT NOT NULL CHECK (bucket IN ('matin', 'soir', 'normal', 'nuit')),
	minutes    DOUBLE PRECISION NOT NULL CHECK (minutes >= 0),
	PRIMARY KEY (segment_id, bucket)
);
`

// postgres unique_violation
const uniqueViolation = "23505"

// PostgresStore. Store over the axes and travel_times tables through the pgx database/sql driver
type PostgresStore struct {
	db *sql.DB
}

func OpenPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open postgres: verify connection: %w", err)
	}
	return db, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (ps *PostgresStore) InitSchema(ctx context.Context) error {
	if _, err := ps.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (ps *PostgresStore) ListSegments(ctx context.Context) ([]da.Segment, error) {
	rows, err := ps.db.QueryContext(ctx, `
	SELECT id, name, start_point, end_point, length_km, geometry
	FROM axes
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list segments: query axes: %w", err)
	}
	defer rows.Close()

	segments := make([]da.Segment, 0)
	for rows.Next() {
		var (
			seg      da.Segment
			geometry string
		)
		if err := rows.Scan(&seg.ID, &seg.Name, &seg.StartPoint, &seg.EndPoint, &seg.LengthKm, &geometry); err != nil {
			return nil, fmt.Errorf("list segments: scan rows: %w", err)
		}
		seg.Geometry, err = DecodeGeometry(geometry)
		if err != nil {
			return nil, fmt.Errorf("list segments: segment %d: decode geometry: %w", seg.ID, err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list segments: row iteration: %w", err)
	}
	return segments, nil
}

func (ps *PostgresStore) ListTravelTimes(ctx context.Context) ([]da.TravelTimeEntry, error) {
	rows, err := ps.db.QueryContext(ctx, `
	SELECT segment_id, bucket, minutes
	FROM travel_times
	ORDER BY segment_id, bucket;
	`)
	if err != nil {
		return nil, fmt.Errorf("list travel times: query travel_times: %w", err)
	}
	defer rows.Close()

	entries := make([]da.TravelTimeEntry, 0)
	for rows.Next() {
		var (
			e      da.TravelTimeEntry
			bucket string
		)
		if err := rows.Scan(&e.SegmentID, &bucket, &e.Minutes); err != nil {
			return nil, fmt.Errorf("list travel times: scan rows: %w", err)
		}
		e.Bucket = pkg.GetBucket(bucket)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list travel times: row iteration: %w", err)
	}
	return entries, nil
}

func (ps *PostgresStore) CreateSegment(ctx context.Context, seg da.Segment) (da.Segment, error) {
	if err := seg.Validate(); err != nil {
		return da.Segment{}, err
	}

	var err error
	if seg.ID == 0 {
		err = ps.db.QueryRowContext(ctx, `
		INSERT INTO axes (name, start_point, end_point, length_km, geometry)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
		`, seg.Name, seg.StartPoint, seg.EndPoint, seg.LengthKm, EncodeGeometry(seg.Geometry)).Scan(&seg.ID)
	} else {
		_, err = ps.db.ExecContext(ctx, `
		INSERT INTO axes (id, name, start_point, end_point, length_km, geometry)
		VALUES ($1, $2, $3, $4, $5, $6);
		`, seg.ID, seg.Name, seg.StartPoint, seg.EndPoint, seg.LengthKm, EncodeGeometry(seg.Geometry))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return da.Segment{}, util.WrapErrorf(err, util.ErrConflict, "segment %d already exists", seg.ID)
	}
	if err != nil {
		return da.Segment{}, fmt.Errorf("create segment: insert axes: %w", err)
	}
	return seg, nil
}

// InsertSegments. bulk import in one transaction, existing ids are overwritten
func (ps *PostgresStore) InsertSegments(ctx context.Context, segments []da.Segment) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert segments: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO axes (id, name, start_point, end_point, length_km, geometry)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		start_point = EXCLUDED.start_point,
		end_point = EXCLUDED.end_point,
		length_km = EXCLUDED.length_km,
		geometry = EXCLUDED.geometry;
	`)
	if err != nil {
		return fmt.Errorf("insert segments: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, seg := range segments {
		if err := seg.Validate(); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, seg.ID, seg.Name, seg.StartPoint, seg.EndPoint, seg.LengthKm,
			EncodeGeometry(seg.Geometry)); err != nil {
			return fmt.Errorf("insert segments: segment %d: %w", seg.ID, err)
		}
	}

	// keep BIGSERIAL ahead of imported ids
	if _, err := tx.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('axes', 'id'), GREATEST((SELECT COALESCE(MAX(id), 0) FROM axes), 1));`); err != nil {
		return fmt.Errorf("insert segments: reset sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert segments: commit: %w", err)
	}
	return nil
}

func (ps *PostgresStore) PutTravelTime(ctx context.Context, e da.TravelTimeEntry) error {
	return ps.PutTravelTimes(ctx, []da.TravelTimeEntry{e})
}

// PutTravelTimes. upserts in order, so a later duplicate key wins
func (ps *PostgresStore) PutTravelTimes(ctx context.Context, entries []da.TravelTimeEntry) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put travel times: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_times (segment_id, bucket, minutes)
	SELECT $1::bigint, $2::text, $3::double precision
	WHERE EXISTS (SELECT 1 FROM axes WHERE id = $1::bigint)
	ON CONFLICT (segment_id, bucket) DO UPDATE
	SET minutes = EXCLUDED.minutes;
	`)
	if err != nil {
		return fmt.Errorf("put travel times: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		res, err := stmt.ExecContext(ctx, e.SegmentID, e.Bucket.String(), e.Minutes)
		if err != nil {
			return fmt.Errorf("put travel times: segment %d: %w", e.SegmentID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return util.WrapErrorf(nil, util.ErrNotFound, "segment %d not found", e.SegmentID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put travel times: commit: %w", err)
	}
	return nil
}

func (ps *PostgresStore) UpdateSegment(ctx context.Context, seg da.Segment) error {
	if err := seg.Validate(); err != nil {
		return err
	}

	res, err := ps.db.ExecContext(ctx, `
	UPDATE axes
	SET name = $2, start_point = $3, end_point = $4, length_km = $5, geometry = $6
	WHERE id = $1;
	`, seg.ID, seg.Name, seg.StartPoint, seg.EndPoint, seg.LengthKm, EncodeGeometry(seg.Geometry))
	if err != nil {
		return fmt.Errorf("update segment %d: %w", seg.ID, err)
	}
	return rowsAffectedOrNotFound(res, "segment %d not found", seg.ID)
}

// DeleteSegment. travel_times rows go through ON DELETE CASCADE
func (ps *PostgresStore) DeleteSegment(ctx context.Context, id int64) error {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM axes WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete segment %d: %w", id, err)
	}
	return rowsAffectedOrNotFound(res, "segment %d not found", id)
}

func (ps *PostgresStore) DeleteTravelTime(ctx context.Context, segmentID int64, bucket pkg.Bucket) error {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM travel_times WHERE segment_id = $1 AND bucket = $2;`,
		segmentID, bucket.String())
	if err != nil {
		return fmt.Errorf("delete travel time of segment %d: %w", segmentID, err)
	}
	return rowsAffectedOrNotFound(res, "no %s travel time for segment %d", bucket, segmentID)
}

func rowsAffectedOrNotFound(res sql.Result, format string, args ...interface{}) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return util.WrapErrorf(nil, util.ErrNotFound, format, args...)
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
