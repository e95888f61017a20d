package pipeline

import (
	"github.com/matzehuels/gridlock/pkg/puzzle"
)

// Load reads the puzzle selected by opts.
func Load(opts Options) (*puzzle.Puzzle, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var (
		p   *puzzle.Puzzle
		err error
	)
	switch {
	case opts.Level != 0:
		p, err = puzzle.Level(opts.Level)
	case opts.Jam != "":
		p, err = puzzle.ParseJam(opts.Name, opts.Jam)
	default:
		name := opts.Name
		if name == "" {
			name = DefaultName
		}
		p, err = puzzle.ParseRows(name, opts.Rows)
	}
	if err != nil {
		return nil, err
	}

	if opts.Name != "" {
		p.Name = opts.Name
	}
	return p, nil
}
