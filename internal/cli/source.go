package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/pipeline"
)

// sourceFlags selects the board a command works on: a file argument in the
// grid or jam format, or a bundled level.
type sourceFlags struct {
	level int
	jam   bool
	name  string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&s.level, "level", "l", 0, "use bundled level N (1-40) instead of a file")
	cmd.Flags().BoolVar(&s.jam, "jam", false, "read the file in the jam format")
	cmd.Flags().StringVar(&s.name, "name", "", "puzzle name (default: file name)")
}

// options builds pipeline options from the flags and positional args.
// A path of "-" reads stdin.
func (s *sourceFlags) options(args []string, stdin io.Reader) (pipeline.Options, error) {
	opts := pipeline.Options{Name: s.name}

	if s.level != 0 {
		if len(args) > 0 {
			return opts, fmt.Errorf("--level and a board file are mutually exclusive")
		}
		opts.Level = s.level
		return opts, nil
	}
	if len(args) != 1 {
		return opts, fmt.Errorf("expected a board file or --level")
	}

	text, err := readInput(args[0], stdin)
	if err != nil {
		return opts, err
	}
	if s.jam {
		opts.Jam = text
		return opts, nil
	}
	if opts.Name == "" {
		opts.Name = puzzleName(args[0])
	}
	opts.Rows = strings.Split(text, "\n")
	return opts, nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
