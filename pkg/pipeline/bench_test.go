package pipeline

import (
	"context"
	"testing"

	errs "github.com/matzehuels/gridlock/pkg/errors"
)

func TestBench(t *testing.T) {
	r := newTestRunner(t)

	var calls []int
	result, err := r.Bench(context.Background(), BenchOptions{
		Levels:   []int{3, 1, 2},
		Workers:  2,
		Solve:    true,
		Progress: func(done, total int) { calls = append(calls, done) },
	})
	if err != nil {
		t.Fatalf("Bench() error: %v", err)
	}

	if len(result.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(result.Entries))
	}
	for i, want := range []int{3, 1, 2} {
		e := result.Entries[i]
		if e.Level != want {
			t.Errorf("Entries[%d].Level = %d, want %d", i, e.Level, want)
		}
		if e.Estimate < 1 || e.Optimal < 1 || e.Visited < 1 {
			t.Errorf("Entries[%d] = %+v", i, e)
		}
	}
	if result.MeanRatio <= 0 {
		t.Errorf("MeanRatio = %v, want > 0", result.MeanRatio)
	}
	if len(calls) != 3 || calls[2] != 3 {
		t.Errorf("progress calls = %v, want [1 2 3]", calls)
	}
}

func TestBenchAllLevelsWithoutSolve(t *testing.T) {
	r := newTestRunner(t)
	result, err := r.Bench(context.Background(), BenchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Entries) != 40 {
		t.Errorf("len(Entries) = %d, want 40", len(result.Entries))
	}
	for _, e := range result.Entries {
		if e.Optimal != -1 || e.Ratio() != 0 {
			t.Errorf("%s: Optimal = %d without solve", e.Name, e.Optimal)
		}
	}
	if result.MeanRatio != 0 || result.Overestimates != 0 {
		t.Errorf("summary = %+v, want zero without solve", result)
	}
}

func TestBenchInvalidLevel(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Bench(context.Background(), BenchOptions{Levels: []int{1, 99}})
	if !errs.Is(err, errs.ErrCodeInvalidLevel) {
		t.Errorf("Bench() error = %v, want INVALID_LEVEL", err)
	}
}

func TestSummarize(t *testing.T) {
	result := summarize([]BenchEntry{
		{Estimate: 2, Optimal: 4},
		{Estimate: 6, Optimal: 4, Overestimate: true},
		{Estimate: 3, Optimal: -1},
	})
	if result.MeanRatio != 1.0 {
		t.Errorf("MeanRatio = %v, want 1.0", result.MeanRatio)
	}
	if result.Overestimates != 1 {
		t.Errorf("Overestimates = %d, want 1", result.Overestimates)
	}
}
