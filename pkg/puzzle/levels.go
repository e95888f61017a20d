package puzzle

import (
	"fmt"

	"github.com/fogleman/rush"

	errs "github.com/matzehuels/gridlock/pkg/errors"
)

// LevelCount is the number of bundled levels.
func LevelCount() int { return len(rush.FortyLevels) }

// Level returns bundled level n, counting from 1.
func Level(n int) (*Puzzle, error) {
	if err := errs.ValidateLevel(n, LevelCount()); err != nil {
		return nil, err
	}
	p, err := ParseRows(levelName(n), rush.FortyLevels[n-1])
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "bundled level %d", n)
	}
	return p, nil
}

// Levels returns all bundled levels in order.
func Levels() ([]*Puzzle, error) {
	out := make([]*Puzzle, 0, LevelCount())
	for n := 1; n <= LevelCount(); n++ {
		p, err := Level(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func levelName(n int) string { return fmt.Sprintf("level_%d", n) }

// Solution is the outcome of the reference solver.
type Solution struct {
	Solvable bool `json:"solvable"`
	Moves    int  `json:"moves"`
}

// Solve computes the optimal number of moves for p's starting board with the
// github.com/fogleman/rush breadth-first solver. A move slides one vehicle
// any distance, the same unit the blocking estimate counts.
func Solve(p *Puzzle) (Solution, error) {
	board, err := rush.NewBoard(p.Rows())
	if err != nil {
		return Solution{}, errs.Wrap(errs.ErrCodeInvalidBoard, err, "convert %s for solver", p.Name)
	}
	s := board.Solve()
	return Solution{Solvable: s.Solvable, Moves: s.NumMoves}, nil
}
