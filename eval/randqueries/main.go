package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lintang-b-s/arterial/pkg/concurrent"
	"github.com/lintang-b-s/arterial/pkg/costfunction"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/engine/routing"
	log "github.com/lintang-b-s/arterial/pkg/logger"
	"github.com/lintang-b-s/arterial/pkg/storage"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	segmentsFile    = flag.String("segments", "./data/segments.csv", "segments csv")
	travelTimesFile = flag.String("travel_times", "./data/travel_times.csv", "travel times csv")
	numQueries      = flag.Int("n", 1000, "number of random point pairs")
	seed            = flag.Uint64("seed", 42, "random seed of the point pairs")
	maxHops         = flag.Int("max_hops", 3, "hop limit of the bounded search")
	workers         = flag.Int("workers", 16, "number of query workers")
	outFile         = flag.String("out", "rand_queries_result.csv", "result csv")
)

/*
go run eval/randqueries/main.go -n 5000

runs random start/end point pairs at every departure hour of a tuesday against the bounded
depth search and the time-dependent dijkstra, and writes eta, hops and latency of both per query.
a pair where both return the same number of hops but dijkstra is faster is a counterexample
of the bounded search and is logged.
*/
func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	segments, err := storage.ReadSegmentsFile(*segmentsFile)
	if err != nil {
		panic(err)
	}
	entries, err := storage.ReadTravelTimesFile(*travelTimesFile)
	if err != nil {
		panic(err)
	}
	snapshot, _, err := da.NewSnapshot(segments, entries)
	if err != nil {
		panic(err)
	}

	predictor := costfunction.NewTravelTimePredictor(nil, costfunction.FixedMultiplier(1.0), costfunction.SystemClock)
	bounded := routing.NewRoutingEngine(snapshot, predictor, routing.NewBoundedDepthSearch(*maxHops, 0), logger)
	dijkstra := routing.NewRoutingEngine(snapshot, predictor, routing.NewTimeDependentDijkstra(0), logger)

	type spParam struct {
		row        int
		start, end string
	}

	starts, ends := snapshot.StartPoints(), snapshot.EndPoints()
	rng := rand.New(rand.NewSource(*seed))
	queries := make([]spParam, *numQueries)
	for i := range queries {
		queries[i] = spParam{
			row:   i,
			start: starts[rng.Intn(len(starts))],
			end:   ends[rng.Intn(len(ends))],
		}
	}

	fout, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	defer w.Flush()
	fmt.Fprintln(w, "row,hour,start,end,bounded_minutes,bounded_hops,bounded_ms,dijkstra_minutes,dijkstra_hops,dijkstra_ms")

	var (
		lock            sync.Mutex
		counterexamples int
	)
	ctx := context.Background()

	calcsSP := func(p spParam) any {
		for hour := 0; hour < 24; hour++ {
			d := costfunction.NewDeparture(hour, 2)

			before := time.Now()
			br, err := bounded.FindOptimalRoute(ctx, p.start, p.end, d)
			if err != nil {
				logger.Error("bounded search failed", zap.Error(err))
				return nil
			}
			boundedDur := time.Since(before)

			before = time.Now()
			dr, err := dijkstra.FindOptimalRoute(ctx, p.start, p.end, d)
			if err != nil {
				logger.Error("dijkstra search failed", zap.Error(err))
				return nil
			}
			dijkstraDur := time.Since(before)

			lock.Lock()
			fmt.Fprintf(w, "%d,%d,%q,%q,%.1f,%d,%d,%.1f,%d,%d\n", p.row, hour, p.start, p.end,
				br.TotalMinutes, len(br.Legs), boundedDur.Microseconds(),
				dr.TotalMinutes, len(dr.Legs), dijkstraDur.Microseconds())
			if isCounterexample(br, dr) {
				counterexamples++
				logger.Warn("bounded search counterexample", zap.String("start", p.start),
					zap.String("end", p.end), zap.Int("hour", hour),
					zap.Float64("bounded", br.TotalMinutes), zap.Float64("dijkstra", dr.TotalMinutes))
			}
			lock.Unlock()
		}

		if (p.row+1)%100 == 0 {
			logger.Sugar().Infof("done query %v", p.row+1)
		}
		return nil
	}

	pool := concurrent.NewWorkerPool[spParam, any](*workers, len(queries))
	for _, q := range queries {
		pool.AddJob(q)
	}
	pool.Close()
	pool.Start(calcsSP)
	pool.Wait()

	logger.Info("random queries done", zap.Int("queries", len(queries)), zap.Int("counterexamples", counterexamples))
}

// isCounterexample. same hop count, yet dijkstra found a path faster by more than the rounding
func isCounterexample(bounded, dijkstra *da.Route) bool {
	if bounded.IsEmpty() || dijkstra.IsEmpty() || len(bounded.Legs) != len(dijkstra.Legs) {
		return false
	}
	return dijkstra.TotalMinutes < bounded.TotalMinutes-0.05
}
