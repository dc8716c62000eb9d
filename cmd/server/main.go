package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/lintang-b-s/arterial/pkg/costfunction"
	"github.com/lintang-b-s/arterial/pkg/engine"
	"github.com/lintang-b-s/arterial/pkg/engine/routing"
	"github.com/lintang-b-s/arterial/pkg/http"
	http_router "github.com/lintang-b-s/arterial/pkg/http/router"
	"github.com/lintang-b-s/arterial/pkg/http/usecases"
	"github.com/lintang-b-s/arterial/pkg/logger"
	"github.com/lintang-b-s/arterial/pkg/routestore"
	"github.com/lintang-b-s/arterial/pkg/storage"
	"github.com/lintang-b-s/arterial/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	envFile = flag.String("env", ".env", "dotenv file loaded before the config file, ignored when missing")
)

func main() {
	flag.Parse()
	_ = godotenv.Load(*envFile)

	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck // ignore

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	store, err := storage.New(ctx, storage.Config{
		Driver:          viper.GetString("STORAGE_DRIVER"),
		SegmentsPath:    viper.GetString("SEGMENTS_CSV"),
		TravelTimesPath: viper.GetString("TRAVEL_TIMES_CSV"),
		DatabaseURL:     viper.GetString("DATABASE_URL"),
	}, log)
	if err != nil {
		log.Fatal("open segment store", zap.Error(err))
	}
	defer store.Close()

	var multiplier costfunction.Multiplier = costfunction.FixedMultiplier(1.0)
	if viper.GetBool("RANDOM_MULTIPLIER") {
		multiplier = costfunction.NewUniformMultiplier(viper.GetUint64("RANDOM_SEED"))
	}
	predictor := costfunction.NewTravelTimePredictor(nil, multiplier, costfunction.SystemClock)

	strategy, err := routing.NewSearchStrategy(viper.GetString("SEARCH_STRATEGY"),
		viper.GetInt("SEARCH_MAX_HOPS"), viper.GetInt("SEARCH_BUDGET"))
	if err != nil {
		log.Fatal("search strategy", zap.Error(err))
	}

	graphEngine := engine.NewEngine(store, predictor, strategy, log)
	if err := graphEngine.Load(ctx); err != nil {
		log.Fatal("load segment graph", zap.Error(err))
	}
	graphEngine.StartRefresher(ctx, viper.GetDuration("SNAPSHOT_TTL"))
	log.Info("route search ready", zap.String("strategy", graphEngine.GetRoutingEngine().GetStrategy().Name()))

	routes, err := routestore.New(ctx, routestore.Config{
		Kind:          viper.GetString("ROUTE_STORE"),
		Size:          viper.GetInt("ROUTE_STORE_SIZE"),
		TTL:           viper.GetDuration("ROUTE_TTL"),
		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),
		RedisDB:       viper.GetInt("REDIS_DB"),
	}, log)
	if err != nil {
		log.Fatal("open route store", zap.Error(err))
	}
	defer routes.Close()

	radius := viper.GetFloat64("NEAREST_POINT_RADIUS_KM")
	services := http_router.Services{
		Routing:   usecases.NewRoutingService(log, graphEngine, routes, radius),
		Traffic:   usecases.NewTrafficService(log, graphEngine, viper.GetInt("TRAFFIC_WORKERS")),
		Segments:  usecases.NewSegmentService(log, store, graphEngine),
		Locations: usecases.NewLocationService(log, graphEngine, radius),
	}

	server := http.NewServer(log).Use(ctx, services)

	signal := http.GracefulShutdown(server.Done())
	cleanup()
	if err := server.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}

	if signal != nil {
		log.Info("arterial server stopped", zap.String("signal", signal.String()))
		return
	}
	log.Info("arterial server stopped")
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
