package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/puzzle"
)

// BenchOptions configures [Runner.Bench].
type BenchOptions struct {
	// Levels lists the bundled levels to evaluate. Empty means all.
	Levels []int
	// Workers bounds concurrent evaluations. Zero uses DefaultBenchWorkers.
	Workers int
	// Solve compares each estimate with the optimal move count.
	Solve   bool
	Refresh bool

	// Progress, if set, is called after each level with the number of
	// levels finished so far. Calls are serialized.
	Progress func(done, total int)
}

// BenchEntry is the result for one level.
type BenchEntry struct {
	Level    int    `json:"level"`
	Name     string `json:"name"`
	Vehicles int    `json:"vehicles"`
	Estimate int    `json:"estimate"`
	Visited  int    `json:"visited"`
	// Optimal is -1 when the level was not solved.
	Optimal      int           `json:"optimal"`
	Overestimate bool          `json:"overestimate,omitempty"`
	Cached       bool          `json:"cached,omitempty"`
	Duration     time.Duration `json:"duration_ns"`
}

// Ratio is the estimate divided by the optimal move count, or 0 when the
// optimum is unknown.
func (e BenchEntry) Ratio() float64 {
	if e.Optimal <= 0 {
		return 0
	}
	return float64(e.Estimate) / float64(e.Optimal)
}

// BenchResult summarises a benchmark run.
type BenchResult struct {
	Entries []BenchEntry `json:"entries"`

	// MeanRatio averages Ratio over solved levels.
	MeanRatio     float64       `json:"mean_ratio"`
	Overestimates int           `json:"overestimates"`
	Elapsed       time.Duration `json:"elapsed_ns"`
}

// Bench evaluates bundled levels concurrently, sharing the runner's cache.
// Entries are returned in the order of opts.Levels.
func (r *Runner) Bench(ctx context.Context, opts BenchOptions) (*BenchResult, error) {
	levels := opts.Levels
	if len(levels) == 0 {
		levels = make([]int, puzzle.LevelCount())
		for i := range levels {
			levels[i] = i + 1
		}
	}
	for _, n := range levels {
		if err := errs.ValidateLevel(n, puzzle.LevelCount()); err != nil {
			return nil, err
		}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultBenchWorkers
	}

	start := time.Now()
	entries := make([]BenchEntry, len(levels))

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, n := range levels {
		g.Go(func() error {
			t := time.Now()
			report, err := r.Evaluate(gctx, Options{
				Level:   n,
				Solve:   opts.Solve,
				Explain: true,
				Refresh: opts.Refresh,
			})
			if err != nil {
				return fmt.Errorf("level %d: %w", n, err)
			}
			entries[i] = benchEntry(n, report, time.Since(t))

			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, len(levels))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := summarize(entries)
	result.Elapsed = time.Since(start)
	r.Logger.Info("benchmark complete",
		"levels", len(entries),
		"mean_ratio", result.MeanRatio,
		"overestimates", result.Overestimates,
		"duration", result.Elapsed)
	return result, nil
}

func benchEntry(level int, r *Report, d time.Duration) BenchEntry {
	e := BenchEntry{
		Level:    level,
		Name:     r.Name,
		Vehicles: r.Vehicles,
		Estimate: r.Estimate,
		Optimal:  -1,
		Cached:   r.CacheInfo.ReportHit,
		Duration: d,
	}
	if r.Tree != nil {
		e.Visited = r.Tree.Visited
	}
	if r.Solution != nil {
		e.Optimal = r.Solution.Moves
		e.Overestimate = r.Overestimate
	}
	return e
}

func summarize(entries []BenchEntry) *BenchResult {
	result := &BenchResult{Entries: entries}
	var sum float64
	solved := 0
	for _, e := range entries {
		if e.Optimal > 0 {
			sum += e.Ratio()
			solved++
		}
		if e.Overestimate {
			result.Overestimates++
		}
	}
	if solved > 0 {
		result.MeanRatio = sum / float64(solved)
	}
	return result
}
