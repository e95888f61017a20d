package puzzle

import (
	"testing"

	errs "github.com/matzehuels/gridlock/pkg/errors"
)

func TestLevels(t *testing.T) {
	levels, err := Levels()
	if err != nil {
		t.Fatalf("Levels() error: %v", err)
	}
	if len(levels) != LevelCount() {
		t.Fatalf("len(Levels()) = %d, want %d", len(levels), LevelCount())
	}
	for i, p := range levels {
		if want := levelName(i + 1); p.Name != want {
			t.Errorf("levels[%d].Name = %q, want %q", i, p.Name, want)
		}
		if label := p.Layout.Label(Target); label != TargetLabel {
			t.Errorf("%s: target label = %q", p.Name, label)
		}
		if p.Initial.IsGoal() {
			t.Errorf("%s: starts solved", p.Name)
		}
	}
}

func TestLevelOutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, LevelCount() + 1} {
		if _, err := Level(n); !errs.Is(err, errs.ErrCodeInvalidLevel) {
			t.Errorf("Level(%d) error = %v, want INVALID_LEVEL", n, err)
		}
	}
}

func TestSolve(t *testing.T) {
	p, err := ParseRows("two-moves", []string{
		"....B.",
		"....B.",
		"AA..B.",
		"......",
		"......",
		"......",
	})
	if err != nil {
		t.Fatal(err)
	}
	sol, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if !sol.Solvable || sol.Moves != 2 {
		t.Errorf("Solve() = %+v, want solvable in 2 moves", sol)
	}
}
