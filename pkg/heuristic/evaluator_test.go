package heuristic

import (
	"fmt"
	"runtime"
	"testing"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/puzzle"
)

var (
	target     = puzzle.Vehicle{Label: 'A', Orientation: puzzle.Horizontal, Length: 2, Fixed: 2}
	crossing   = puzzle.Vehicle{Label: 'B', Orientation: puzzle.Vertical, Length: 2, Fixed: 4}
	aboveCross = puzzle.Vehicle{Label: 'C', Orientation: puzzle.Horizontal, Length: 2, Fixed: 0}
	belowCross = puzzle.Vehicle{Label: 'D', Orientation: puzzle.Horizontal, Length: 2, Fixed: 4}
)

func newPuzzle(t *testing.T, vehicles []puzzle.Vehicle, positions []int) *puzzle.Puzzle {
	t.Helper()
	p, err := puzzle.New(t.Name(), 6, 6, vehicles, positions)
	if err != nil {
		t.Fatalf("puzzle.New() error: %v", err)
	}
	return p
}

func evaluate(t *testing.T, p *puzzle.Puzzle, opts ...Option) int {
	t.Helper()
	e, err := New(p.Layout, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	h, err := e.Evaluate(p.Initial)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	return h
}

func TestEvaluateScenarios(t *testing.T) {
	tests := []struct {
		name      string
		vehicles  []puzzle.Vehicle
		positions []int
		want      int
	}{
		{
			name:      "clear path",
			vehicles:  []puzzle.Vehicle{target},
			positions: []int{0},
			want:      1,
		},
		{
			name:      "single crossing blocker",
			vehicles:  []puzzle.Vehicle{target, crossing},
			positions: []int{0, 1},
			want:      2,
		},
		{
			name:      "blocker flanked on both sides",
			vehicles:  []puzzle.Vehicle{target, crossing, aboveCross, belowCross},
			positions: []int{0, 1, 3, 4},
			want:      3,
		},
		{
			name:      "blocker free on one side",
			vehicles:  []puzzle.Vehicle{target, crossing, belowCross},
			positions: []int{0, 1, 4},
			want:      2,
		},
		{
			name:      "blocker already behind the target",
			vehicles:  []puzzle.Vehicle{target, {Label: 'B', Orientation: puzzle.Vertical, Length: 2, Fixed: 0}},
			positions: []int{1, 1},
			want:      1,
		},
		{
			name:      "parallel vehicle in another lane",
			vehicles:  []puzzle.Vehicle{target, {Label: 'B', Orientation: puzzle.Horizontal, Length: 3, Fixed: 3}},
			positions: []int{0, 2},
			want:      1,
		},
		{
			name:      "crossing vehicle out of the lane",
			vehicles:  []puzzle.Vehicle{target, crossing},
			positions: []int{0, 3},
			want:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPuzzle(t, tt.vehicles, tt.positions)
			if got := evaluate(t, p); got != tt.want {
				t.Errorf("Evaluate() = %d, want %d\n%s", got, tt.want, p.Initial)
			}
		})
	}
}

func TestEvaluateGoal(t *testing.T) {
	p := newPuzzle(t, []puzzle.Vehicle{target, aboveCross}, []int{4, 0})
	if got := evaluate(t, p); got != 0 {
		t.Errorf("Evaluate() on goal = %d, want 0", got)
	}
}

func TestEvaluateNonGoalAtLeastOne(t *testing.T) {
	for pos := 0; pos < 4; pos++ {
		p := newPuzzle(t, []puzzle.Vehicle{target}, []int{pos})
		if got := evaluate(t, p); got < 1 {
			t.Errorf("Evaluate() at %d = %d, want >= 1", pos, got)
		}
	}
}

func TestEvaluateSideSymmetry(t *testing.T) {
	// The same two one-move blockers, once above and below the crossing
	// vehicle and once the other way round.
	straight := newPuzzle(t,
		[]puzzle.Vehicle{target, crossing, aboveCross, belowCross},
		[]int{0, 1, 3, 4})
	swapped := newPuzzle(t,
		[]puzzle.Vehicle{target, crossing, belowCross, aboveCross},
		[]int{0, 1, 4, 3})

	a, b := evaluate(t, straight), evaluate(t, swapped)
	if a != b {
		t.Errorf("Evaluate() = %d and %d for mirrored flanks, want equal", a, b)
	}
}

func TestEvaluateCycleTerminates(t *testing.T) {
	// B and C share column 3 and block each other.
	p := newPuzzle(t, []puzzle.Vehicle{
		target,
		{Label: 'B', Orientation: puzzle.Vertical, Length: 2, Fixed: 3},
		{Label: 'C', Orientation: puzzle.Vertical, Length: 2, Fixed: 3},
	}, []int{0, 1, 4})

	e, err := New(p.Layout)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := e.Explain(p.Initial)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Estimate != 2 {
		t.Errorf("Estimate = %d, want 2", tree.Estimate)
	}
	if tree.Visited != 3 {
		t.Errorf("Visited = %d, want 3", tree.Visited)
	}

	b := tree.Root.Front[0]
	c := b.Front[0]
	if len(c.Back) != 1 || !c.Back[0].Revisited || c.Back[0].Vehicle != 1 {
		t.Errorf("expected C to revisit B, got %+v", c)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	p := newPuzzle(t, []puzzle.Vehicle{target, crossing, aboveCross, belowCross}, []int{0, 1, 3, 4})
	e, err := New(p.Layout)
	if err != nil {
		t.Fatal(err)
	}
	first, _ := e.Evaluate(p.Initial)
	for range 10 {
		if got, _ := e.Evaluate(p.Initial); got != first {
			t.Fatalf("Evaluate() = %d, previously %d", got, first)
		}
	}
}

func TestEvaluateLevels(t *testing.T) {
	levels, err := puzzle.Levels()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range levels {
		e, err := New(p.Layout)
		if err != nil {
			t.Fatalf("%s: New() error: %v", p.Name, err)
		}
		h, err := e.Evaluate(p.Initial)
		if err != nil {
			t.Fatalf("%s: Evaluate() error: %v", p.Name, err)
		}
		if h < 1 {
			t.Errorf("%s: Evaluate() = %d, want >= 1", p.Name, h)
		}
		tree, err := e.Explain(p.Initial)
		if err != nil {
			t.Fatalf("%s: Explain() error: %v", p.Name, err)
		}
		if tree.Estimate != h {
			t.Errorf("%s: Explain().Estimate = %d, Evaluate() = %d", p.Name, tree.Estimate, h)
		}
		if tree.Visited < 1 || tree.Visited > p.Layout.VehicleCount() {
			t.Errorf("%s: Visited = %d, want in [1, %d]", p.Name, tree.Visited, p.Layout.VehicleCount())
		}
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	levels, err := puzzle.Levels()
	if err != nil {
		t.Fatal(err)
	}

	want := make([]int, len(levels))
	evaluators := make([]*Evaluator, len(levels))
	for i, p := range levels {
		e, err := New(p.Layout)
		if err != nil {
			t.Fatal(err)
		}
		evaluators[i] = e
		want[i], _ = e.Evaluate(p.Initial)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for round := range 4 {
		for i, p := range levels {
			g.Go(func() error {
				got, err := evaluators[i].Evaluate(p.Initial)
				if err != nil {
					return err
				}
				if got != want[i] {
					return fmt.Errorf("round %d %s: got %d, want %d", round, p.Name, got, want[i])
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		t.Error(err)
	}
}

func TestRedundancyFilter(t *testing.T) {
	p := newPuzzle(t, []puzzle.Vehicle{target, crossing, aboveCross, belowCross}, []int{0, 1, 3, 4})

	type call struct{ prev, v, i int }
	var calls []call
	record := func(_ DynamicState, prev, v, i int) bool {
		calls = append(calls, call{prev, v, i})
		return false
	}

	if got := evaluate(t, p, WithRedundancyFilter(record)); got != 3 {
		t.Errorf("Evaluate() with pass-through filter = %d, want 3", got)
	}
	want := []call{{0, 1, 2}, {0, 1, 3}}
	if fmt.Sprint(calls) != fmt.Sprint(want) {
		t.Errorf("filter calls = %v, want %v", calls, want)
	}

	skipAll := func(DynamicState, int, int, int) bool { return true }
	if got := evaluate(t, p, WithRedundancyFilter(skipAll)); got != 2 {
		t.Errorf("Evaluate() with skipping filter = %d, want 2", got)
	}

	if got := evaluate(t, p, WithRedundancyFilter(skipAll), WithRedundancyFilter(nil)); got != 3 {
		t.Errorf("Evaluate() after resetting filter = %d, want 3", got)
	}
}

func TestFunc(t *testing.T) {
	p := newPuzzle(t, []puzzle.Vehicle{target, crossing}, []int{0, 1})
	e, err := New(p.Layout)
	if err != nil {
		t.Fatal(err)
	}
	h := e.Func()
	if got := h(p.Initial); got != 2 {
		t.Errorf("Func()(state) = %d, want 2", got)
	}
	if got := h(brokenState{}); got != 0 {
		t.Errorf("Func()(broken) = %d, want 0", got)
	}
}

type fakeLayout struct {
	n       int
	badID   int
	badLen  bool
	vehicle puzzle.Vehicle
}

func (f fakeLayout) VehicleCount() int { return f.n }

func (f fakeLayout) Orientation(id int) (puzzle.Orientation, error) {
	if id == f.badID {
		return 0, errs.VehicleID(id, f.n)
	}
	return f.vehicle.Orientation, nil
}

func (f fakeLayout) Length(id int) (int, error) {
	if f.badLen {
		return 0, nil
	}
	return f.vehicle.Length, nil
}

func (f fakeLayout) FixedCoordinate(int) (int, error) { return f.vehicle.Fixed, nil }

type brokenState struct{}

func (brokenState) Position(id int) (int, error) { return 0, errs.VehicleID(id, 0) }
func (brokenState) IsGoal() bool                 { return false }

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout StaticLayout
		code   errs.Code
	}{
		{"nil layout", nil, errs.ErrCodeInvalidLayout},
		{"no vehicles", fakeLayout{n: 0, badID: -1}, errs.ErrCodeInvalidLayout},
		{"bad vehicle", fakeLayout{n: 3, badID: 1, vehicle: target}, errs.ErrCodeInvalidVehicleID},
		{"zero length", fakeLayout{n: 1, badID: -1, badLen: true, vehicle: target}, errs.ErrCodeInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.layout); !errs.Is(err, tt.code) {
				t.Errorf("New() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestEvaluateStateErrors(t *testing.T) {
	e, err := New(fakeLayout{n: 2, badID: -1, vehicle: target})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Evaluate(brokenState{}); !errs.Is(err, errs.ErrCodeInvalidVehicleID) {
		t.Errorf("Evaluate() error = %v, want INVALID_VEHICLE_ID", err)
	}
	if _, err := e.Explain(brokenState{}); !errs.Is(err, errs.ErrCodeInvalidVehicleID) {
		t.Errorf("Explain() error = %v, want INVALID_VEHICLE_ID", err)
	}
}

func ExampleEvaluator_Evaluate() {
	p, err := puzzle.ParseRows("example", []string{
		"......",
		"....B.",
		"AA..B.",
		"......",
		"......",
		"......",
	})
	if err != nil {
		panic(err)
	}
	e, err := New(p.Layout)
	if err != nil {
		panic(err)
	}
	h, err := e.Evaluate(p.Initial)
	if err != nil {
		panic(err)
	}
	fmt.Println(h)
	// Output: 2
}
