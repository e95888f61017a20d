package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridlock/pkg/cache"
	errs "github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/heuristic"
	"github.com/matzehuels/gridlock/pkg/observability"
	"github.com/matzehuels/gridlock/pkg/puzzle"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ReportTTL is the lifetime of cached reports. Zero uses cache.TTLReport.
	ReportTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Evaluate loads the puzzle selected by opts and returns its report,
// serving it from the cache when possible.
func (r *Runner) Evaluate(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	p, err := Load(opts)
	if err != nil {
		return nil, err
	}
	return r.EvaluatePuzzle(ctx, p, opts)
}

// EvaluatePuzzle runs the evaluate and solve stages for an already loaded
// puzzle. Only the Solve, Explain, and Refresh fields of opts are used.
func (r *Runner) EvaluatePuzzle(ctx context.Context, p *puzzle.Puzzle, opts Options) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash := cache.HashRows(p.Rows())
	key := r.Keyer.ReportKey(hash, opts.ReportKeyOpts())

	if !opts.Refresh {
		if report, ok := r.cachedReport(ctx, key); ok {
			report.RunID = uuid.NewString()
			report.Name = p.Name
			report.CacheInfo = CacheInfo{ReportHit: true}
			r.Logger.Debug("report from cache", "puzzle", p.Name)
			return report, nil
		}
	}

	report, err := r.evaluate(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	if opts.Solve {
		if err := r.attachSolution(ctx, report, p, hash, opts.Refresh); err != nil {
			return nil, err
		}
	}

	r.Logger.Info("evaluated",
		"puzzle", p.Name,
		"estimate", report.Estimate,
		"duration", report.Stats.EvaluateTime)

	r.storeReport(ctx, key, report)
	return report, nil
}

func (r *Runner) evaluate(ctx context.Context, p *puzzle.Puzzle, opts Options) (*Report, error) {
	hooks := observability.Pipeline()
	hooks.OnEvaluateStart(ctx, p.Name, p.Layout.VehicleCount())
	start := time.Now()

	report, err := evaluate(p, opts.Explain)

	elapsed := time.Since(start)
	estimate := 0
	if report != nil {
		estimate = report.Estimate
		report.Stats.EvaluateTime = elapsed
	}
	hooks.OnEvaluateComplete(ctx, p.Name, estimate, elapsed, err)
	return report, err
}

func evaluate(p *puzzle.Puzzle, explain bool) (*Report, error) {
	e, err := heuristic.New(p.Layout)
	if err != nil {
		return nil, err
	}
	estimate, err := e.Evaluate(p.Initial)
	if err != nil {
		return nil, err
	}

	labels := make([]rune, p.Layout.VehicleCount())
	for id := range labels {
		labels[id] = p.Layout.Label(id)
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Name:     p.Name,
		Rows:     p.Rows(),
		Labels:   string(labels),
		Vehicles: p.Layout.VehicleCount(),
		Estimate: estimate,
		Goal:     p.Initial.IsGoal(),
	}
	if explain {
		tree, err := e.Explain(p.Initial)
		if err != nil {
			return nil, err
		}
		report.Tree = tree
	}
	return report, nil
}

// attachSolution adds the optimal move count to report, using the cache
// for solver results.
func (r *Runner) attachSolution(ctx context.Context, report *Report, p *puzzle.Puzzle, hash string, refresh bool) error {
	key := r.Keyer.SolutionKey(hash)

	var (
		sol puzzle.Solution
		hit bool
	)
	if !refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok && json.Unmarshal(data, &sol) == nil {
			hit = true
			observability.Cache().OnCacheHit(ctx, "solution")
		} else {
			observability.Cache().OnCacheMiss(ctx, "solution")
		}
	}

	if !hit {
		if err := ctx.Err(); err != nil {
			return err
		}
		hooks := observability.Pipeline()
		hooks.OnSolveStart(ctx, p.Name)
		start := time.Now()
		var err error
		sol, err = puzzle.Solve(p)
		report.Stats.SolveTime = time.Since(start)
		hooks.OnSolveComplete(ctx, p.Name, sol.Moves, report.Stats.SolveTime, err)
		if err != nil {
			return err
		}
		if data, err := json.Marshal(sol); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLSolution); err != nil {
				r.Logger.Warn("cache solution", "puzzle", p.Name, "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "solution", len(data))
			}
		}
	}

	if !sol.Solvable {
		return errs.New(errs.ErrCodeUnsolvable, "%s has no solution", p.Name)
	}
	report.Solution = &sol
	report.Overestimate = report.Estimate > sol.Moves
	report.CacheInfo.SolutionHit = hit
	return nil
}

func (r *Runner) cachedReport(ctx context.Context, key string) (*Report, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, false
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "report")
	return &report, true
}

func (r *Runner) storeReport(ctx context.Context, key string, report *Report) {
	stored := *report
	stored.CacheInfo = CacheInfo{}
	data, err := json.Marshal(stored)
	if err != nil {
		return
	}
	ttl := r.ReportTTL
	if ttl == 0 {
		ttl = cache.TTLReport
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache report", "puzzle", report.Name, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "report", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
