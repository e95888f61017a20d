package puzzle

import (
	"slices"
	"strings"
	"unicode/utf8"

	errs "github.com/matzehuels/gridlock/pkg/errors"
)

// wallRune marks a fixed obstacle in fogleman/rush boards.
const wallRune = 'x'

// Puzzle is a named layout together with its starting state.
type Puzzle struct {
	Name    string
	Layout  *Layout
	Initial *State
}

// New builds a Puzzle from vehicles (target first) and their start positions.
func New(name string, width, height int, vehicles []Vehicle, positions []int) (*Puzzle, error) {
	layout, err := NewLayout(width, height, vehicles)
	if err != nil {
		return nil, err
	}
	state, err := NewState(layout, positions)
	if err != nil {
		return nil, err
	}
	return &Puzzle{Name: name, Layout: layout, Initial: state}, nil
}

// Rows renders the starting board in the grid text format.
func (p *Puzzle) Rows() []string { return p.Initial.Rows() }

// ParseRows reads a board in the grid text format. The target is labelled
// 'A'; the remaining vehicles get ids in ascending label order.
func ParseRows(name string, rows []string) (*Puzzle, error) {
	rows = trimRows(rows)
	if len(rows) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidBoard, "board has no rows")
	}

	width := utf8.RuneCountInString(rows[0])
	cells := make(map[rune][][2]int)
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			return nil, errs.New(errs.ErrCodeInvalidBoard, "row %d has %d cells, want %d", y, n, width)
		}
		x := 0
		for _, r := range row {
			switch r {
			case '.', 'o':
			case wallRune:
				return nil, errs.New(errs.ErrCodeUnsupported, "walls are not supported (row %d, column %d)", y, x)
			default:
				cells[r] = append(cells[r], [2]int{x, y})
			}
			x++
		}
	}

	if _, ok := cells[TargetLabel]; !ok {
		return nil, errs.New(errs.ErrCodeInvalidBoard, "board has no target vehicle %q", TargetLabel)
	}

	labels := make([]rune, 0, len(cells))
	for r := range cells {
		if r != TargetLabel {
			labels = append(labels, r)
		}
	}
	slices.Sort(labels)
	labels = append([]rune{TargetLabel}, labels...)

	vehicles := make([]Vehicle, len(labels))
	positions := make([]int, len(labels))
	for id, r := range labels {
		v, pos, err := vehicleFromCells(r, cells[r])
		if err != nil {
			return nil, err
		}
		vehicles[id] = v
		positions[id] = pos
	}

	return New(name, width, len(rows), vehicles, positions)
}

// vehicleFromCells derives orientation, lane and position from the cells a
// label occupies. Cells arrive in row-major order.
func vehicleFromCells(label rune, cells [][2]int) (Vehicle, int, error) {
	if len(cells) < 2 {
		return Vehicle{}, 0, errs.New(errs.ErrCodeInvalidBoard, "vehicle %c covers a single cell, orientation is ambiguous", label)
	}

	first := cells[0]
	v := Vehicle{Label: label, Length: len(cells)}
	var pos int
	switch {
	case cells[1][1] == first[1]:
		v.Orientation, v.Fixed, pos = Horizontal, first[1], first[0]
	case cells[1][0] == first[0]:
		v.Orientation, v.Fixed, pos = Vertical, first[0], first[1]
	default:
		return Vehicle{}, 0, errs.New(errs.ErrCodeInvalidBoard, "vehicle %c is not straight", label)
	}

	for d, c := range cells {
		want := [2]int{pos + d, v.Fixed}
		if v.Orientation == Vertical {
			want = [2]int{v.Fixed, pos + d}
		}
		if c != want {
			return Vehicle{}, 0, errs.New(errs.ErrCodeInvalidBoard, "vehicle %c is not a contiguous %s segment", label, v.Orientation)
		}
	}
	return v, pos, nil
}

// trimRows drops blank lines and surrounding whitespace.
func trimRows(rows []string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
