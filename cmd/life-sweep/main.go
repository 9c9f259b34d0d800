package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lifeworld/internal/config"
	simerrors "lifeworld/internal/errors"
	"lifeworld/internal/sims/life"
	"lifeworld/internal/telemetry"
)

type result struct {
	seed     int64
	turn     int
	living   int
	deceased int64
	initial  int
}

func main() {
	seeds := flag.Int("seeds", 16, "number of independent grids, seeded 1..n")
	turns := flag.Int("turns", 200, "turns to play per grid")
	rows := flag.Int("rows", life.DefaultRows, "grid rows")
	cols := flag.Int("cols", life.DefaultCols, "grid columns")
	density := flag.Float64("density", 0.25, "initial living-cell probability")
	workers := flag.Int("workers", runtime.NumCPU(), "grids played concurrently")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	if *seeds <= 0 || *turns < 0 || *workers <= 0 {
		config.ExitErr("flags", simerrors.InvalidInput("life-sweep", "seeds and workers must be positive and turns non-negative"))
	}

	logger, err := config.NewLogger(*debug)
	if err != nil {
		config.ExitErr("logger", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "lifeworld-sweep")
	if err != nil {
		config.ExitErr("telemetry", err)
	}
	defer shutdown(context.Background())

	fmt.Printf("Sweeping %d seeds (%d workers, %d turns, %dx%d)\n", *seeds, *workers, *turns, *rows, *cols)

	results := make([]result, *seeds)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for i := range results {
		seed := int64(i + 1)
		g.Go(func() error {
			res, err := playSeed(ctx, seed, *rows, *cols, *density, *turns, logger)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		config.ExitErr("sweep", err)
	}

	slices.SortFunc(results, func(a, b result) int {
		return cmp.Compare(a.seed, b.seed)
	})

	fmt.Printf("%6s %8s %8s %8s %10s\n", "seed", "turn", "initial", "living", "deceased")
	for _, r := range results {
		fmt.Printf("%6d %8d %8d %8d %10d\n", r.seed, r.turn, r.initial, r.living, r.deceased)
	}
}

// playSeed runs one grid. Each world owns its tally, so counts stay per-grid.
func playSeed(ctx context.Context, seed int64, rows, cols int, density float64, turns int, logger *zap.Logger) (result, error) {
	w, err := life.New(rows, cols, life.WithLogger(logger))
	if err != nil {
		return result{}, err
	}
	defer w.Close()

	if err := w.Randomize(seed, density); err != nil {
		return result{}, err
	}
	initial := w.Living()

	if err := w.Play(ctx, turns); err != nil {
		return result{}, err
	}
	logger.Debug("seed done", zap.Int64("seed", seed), zap.Int("living", w.Living()))
	return result{
		seed:     seed,
		turn:     w.Turn(),
		living:   w.Living(),
		deceased: w.Tally().Deceased(),
		initial:  initial,
	}, nil
}
