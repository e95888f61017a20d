// Package pipeline runs the load → evaluate → solve sequence shared by the
// CLI and the HTTP API.
//
// # Architecture
//
// A run has three stages:
//
//  1. Load: read a puzzle from grid rows, a jam, or a bundled level
//  2. Evaluate: compute the blocking estimate and, optionally, its tree
//  3. Solve: optionally compute the optimal move count for comparison
//
// Reports and solver results are cached by board content, so evaluating the
// same board twice only pays for the first run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	report, err := runner.Evaluate(ctx, pipeline.Options{
//	    Level:   12,
//	    Solve:   true,
//	    Explain: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Estimate, report.Solution.Moves)
//
// [Runner.Bench] evaluates many levels concurrently and summarises how the
// estimate compares with the optimum.
package pipeline

import (
	"time"

	"github.com/matzehuels/gridlock/pkg/cache"
	errs "github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/heuristic"
	"github.com/matzehuels/gridlock/pkg/puzzle"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultName names boards given as rows without a name.
const DefaultName = "board"

// DefaultBenchWorkers is the benchmark's concurrency when none is set.
const DefaultBenchWorkers = 4

// Format constants for explain output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported explain formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options describes one evaluation. Exactly one of Rows, Jam, or Level
// selects the puzzle. This struct supports JSON serialization for API
// requests.
type Options struct {
	Name  string   `json:"name,omitempty"`
	Rows  []string `json:"rows,omitempty"`
	Jam   string   `json:"jam,omitempty"`
	Level int      `json:"level,omitempty"`

	Solve   bool `json:"solve,omitempty"`
	Explain bool `json:"explain,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the puzzle source and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	sources := 0
	if len(o.Rows) > 0 {
		sources++
	}
	if o.Jam != "" {
		sources++
	}
	if o.Level != 0 {
		sources++
		if err := errs.ValidateLevel(o.Level, puzzle.LevelCount()); err != nil {
			return err
		}
	}
	switch sources {
	case 0:
		return errs.New(errs.ErrCodeInvalidInput, "one of rows, jam, or level is required")
	case 1:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "rows, jam, and level are mutually exclusive")
	}

	if o.Name != "" {
		if err := errs.ValidatePuzzleName(o.Name); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ReportKeyOpts returns cache key options for report caching.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		Explain: o.Explain,
		Solve:   o.Solve,
	}
}

// ValidateFormat checks that an explain format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Report - Pipeline Output
// =============================================================================

// Report is the outcome of one evaluation.
type Report struct {
	// RunID identifies the run that produced this response. Cached reports
	// get a fresh id when served.
	RunID string `json:"run_id"`

	Name     string   `json:"name"`
	Rows     []string `json:"rows"`
	Labels   string   `json:"labels"`
	Vehicles int      `json:"vehicles"`

	Estimate int             `json:"estimate"`
	Goal     bool            `json:"goal"`
	Tree     *heuristic.Tree `json:"tree,omitempty"`

	// Solution is set when Options.Solve was requested.
	Solution *puzzle.Solution `json:"solution,omitempty"`
	// Overestimate reports an estimate above the optimal move count.
	Overestimate bool `json:"overestimate,omitempty"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Label returns the display label of vehicle id.
func (r *Report) Label(id int) string {
	labels := []rune(r.Labels)
	if id < 0 || id >= len(labels) {
		return "?"
	}
	return string(labels[id])
}

// Stats contains pipeline timing information.
type Stats struct {
	EvaluateTime time.Duration `json:"evaluate_ns"`
	SolveTime    time.Duration `json:"solve_ns,omitempty"`
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	ReportHit   bool `json:"report_hit"`
	SolutionHit bool `json:"solution_hit,omitempty"`
}
