package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/lintang-b-s/arterial/pkg/logger"
	"github.com/lintang-b-s/arterial/pkg/osmparser"
	"github.com/lintang-b-s/arterial/pkg/storage"
	"github.com/lintang-b-s/arterial/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mode          = flag.String("mode", "osm", "osm: extract arterial segments from a .osm.pbf file into a csv. postgres: load the csv files into postgres")
	mapFile       = flag.String("f", "./data/fes.osm.pbf", "openstreetmap .osm.pbf file")
	segmentsOut   = flag.String("out", "./data/segments.csv", "segments csv written in osm mode, .bz2 suffix compresses it")
	segmentsIn    = flag.String("segments", "", "segments csv read in postgres mode, defaults to SEGMENTS_CSV")
	travelTimesIn = flag.String("travel_times", "", "travel times csv read in postgres mode, defaults to TRAVEL_TIMES_CSV")
	databaseURL   = flag.String("database_url", "", "postgres url, defaults to DATABASE_URL")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck // ignore

	ctx := context.Background()

	switch *mode {
	case "osm":
		err = extractSegments(ctx, log)
	case "postgres":
		err = importPostgres(ctx, log)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal("import failed", zap.String("mode", *mode), zap.Error(err))
	}
}

func extractSegments(ctx context.Context, log *zap.Logger) error {
	parser := osmparser.NewOSMParser(log)
	segments, err := parser.Parse(ctx, *mapFile)
	if err != nil {
		return err
	}
	if err := storage.WriteSegmentsFile(*segmentsOut, segments); err != nil {
		return err
	}
	log.Info("segments written", zap.String("path", *segmentsOut), zap.Int("segments", len(segments)))
	return nil
}

func importPostgres(ctx context.Context, log *zap.Logger) error {
	segmentsPath := orDefault(*segmentsIn, viper.GetString("SEGMENTS_CSV"))
	travelTimesPath := orDefault(*travelTimesIn, viper.GetString("TRAVEL_TIMES_CSV"))
	url := orDefault(*databaseURL, viper.GetString("DATABASE_URL"))

	segments, err := storage.ReadSegmentsFile(segmentsPath)
	if err != nil {
		return err
	}
	entries, err := storage.ReadTravelTimesFile(travelTimesPath)
	if err != nil {
		return err
	}

	db, err := storage.OpenPostgres(ctx, url)
	if err != nil {
		return err
	}
	ps := storage.NewPostgresStore(db)
	defer ps.Close()

	if err := ps.InitSchema(ctx); err != nil {
		return err
	}
	if err := ps.InsertSegments(ctx, segments); err != nil {
		return err
	}
	if err := ps.PutTravelTimes(ctx, entries); err != nil {
		return err
	}

	log.Info("postgres import done", zap.Int("segments", len(segments)), zap.Int("travelTimes", len(entries)))
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
