package puzzle

import (
	"strings"

	errs "github.com/matzehuels/gridlock/pkg/errors"
)

// Empty marks an unoccupied cell in [State.Grid].
const Empty = -1

// State is an immutable snapshot of vehicle positions on a Layout.
type State struct {
	layout    *Layout
	positions []int
}

// NewState validates positions against layout and returns a snapshot.
// positions[id] is the offset of vehicle id along its free axis. Vehicles
// must stay on the board and must not overlap.
func NewState(layout *Layout, positions []int) (*State, error) {
	if layout == nil {
		return nil, errs.New(errs.ErrCodeInvalidLayout, "layout is nil")
	}
	if len(positions) != layout.VehicleCount() {
		return nil, errs.New(errs.ErrCodeInvalidBoard, "got %d positions for %d vehicles",
			len(positions), layout.VehicleCount())
	}

	s := &State{layout: layout, positions: make([]int, len(positions))}
	copy(s.positions, positions)

	for id, pos := range s.positions {
		v := layout.vehicles[id]
		if pos < 0 || pos+v.Length > layout.extent(v.Orientation) {
			return nil, errs.New(errs.ErrCodeInvalidBoard, "vehicle %c at %d leaves the board", v.Label, pos)
		}
	}
	if _, err := s.grid(); err != nil {
		return nil, err
	}
	return s, nil
}

// Layout returns the static half of the puzzle.
func (s *State) Layout() *Layout { return s.layout }

// Position returns the free-axis offset of vehicle id.
func (s *State) Position(id int) (int, error) {
	if id < 0 || id >= len(s.positions) {
		return 0, errs.VehicleID(id, len(s.positions))
	}
	return s.positions[id], nil
}

// Positions returns a copy of all positions in id order.
func (s *State) Positions() []int {
	out := make([]int, len(s.positions))
	copy(out, s.positions)
	return out
}

// IsGoal reports whether the target's leading edge touches the exit, the far
// edge of its axis.
func (s *State) IsGoal() bool {
	v := s.layout.vehicles[Target]
	return s.positions[Target]+v.Length == s.layout.extent(v.Orientation)
}

// Grid returns the board as rows of vehicle ids, with Empty for free cells.
func (s *State) Grid() [][]int {
	g, _ := s.grid()
	return g
}

// Rows renders the board in the grid text format.
func (s *State) Rows() []string {
	g := s.Grid()
	rows := make([]string, len(g))
	for y, row := range g {
		var b strings.Builder
		for _, id := range row {
			if id == Empty {
				b.WriteByte('.')
				continue
			}
			b.WriteRune(s.layout.vehicles[id].Label)
		}
		rows[y] = b.String()
	}
	return rows
}

// String renders the board, one row per line.
func (s *State) String() string {
	return strings.Join(s.Rows(), "\n")
}

func (s *State) grid() ([][]int, error) {
	l := s.layout
	g := make([][]int, l.height)
	for y := range g {
		g[y] = make([]int, l.width)
		for x := range g[y] {
			g[y][x] = Empty
		}
	}

	for id, v := range l.vehicles {
		for d := 0; d < v.Length; d++ {
			x, y := s.positions[id]+d, v.Fixed
			if v.Orientation == Vertical {
				x, y = v.Fixed, s.positions[id]+d
			}
			if other := g[y][x]; other != Empty {
				return nil, errs.New(errs.ErrCodeInvalidBoard, "vehicles %c and %c overlap at column %d, row %d",
					l.vehicles[other].Label, v.Label, x, y)
			}
			g[y][x] = id
		}
	}
	return g, nil
}
