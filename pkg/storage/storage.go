package storage

import (
	"context"
	"strings"

	"github.com/lintang-b-s/arterial/pkg/util"
	"go.uber.org/zap"
)

const (
	DRIVER_CSV      = "csv"
	DRIVER_POSTGRES = "postgres"
	DRIVER_MEMORY   = "memory"
)

type Config struct {
	Driver          string
	SegmentsPath    string
	TravelTimesPath string
	DatabaseURL     string
}

// New. Store selected by cfg.Driver
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case DRIVER_CSV, "":
		return OpenCSVStore(ctx, cfg.SegmentsPath, cfg.TravelTimesPath, logger)
	case DRIVER_POSTGRES:
		db, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		ps := NewPostgresStore(db)
		if err := ps.InitSchema(ctx); err != nil {
			ps.Close()
			return nil, err
		}
		logger.Info("postgres store ready")
		return ps, nil
	case DRIVER_MEMORY:
		return NewMemoryStore(nil, nil)
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown storage driver %q", cfg.Driver)
	}
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*CSVStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
