package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	errs "github.com/matzehuels/gridlock/pkg/errors"
)

// DefaultSize is the board size assumed by jams without a size line.
const DefaultSize = 6

const (
	jamHeader     = "Jam"
	jamTerminator = "."
)

// ParseJam reads a single puzzle in the jam format. The header and the
// terminator line are optional; a header, when present, overrides name.
func ParseJam(name, text string) (*Puzzle, error) {
	jams, err := ParseJams(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	switch len(jams) {
	case 0:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "no jam found")
	case 1:
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "expected one jam, found %d", len(jams))
	}
	if name != "" && !strings.HasPrefix(strings.TrimSpace(text), jamHeader) {
		jams[0].Name = name
	}
	return jams[0], nil
}

// ParseJams reads every jam from r. Jams without a header are named
// "jam_<n>" by their position in the input.
func ParseJams(r io.Reader) ([]*Puzzle, error) {
	var (
		out  []*Puzzle
		cur  *jamBuilder
		line int
	)

	flush := func() error {
		if cur == nil || len(cur.vehicles) == 0 {
			cur = nil
			return nil
		}
		p, err := cur.build()
		if err != nil {
			return err
		}
		out = append(out, p)
		cur = nil
		return nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "":
			continue
		case strings.HasPrefix(text, jamHeader):
			if err := flush(); err != nil {
				return nil, err
			}
			cur = &jamBuilder{name: jamName(text), size: DefaultSize}
		case text == jamTerminator:
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			if cur == nil {
				cur = &jamBuilder{name: fmt.Sprintf("jam_%d", len(out)+1), size: DefaultSize}
			}
			if err := cur.add(text); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d", line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read jams")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

// FormatJam writes p in the jam format, header included.
func FormatJam(p *Puzzle) string {
	var b strings.Builder
	l := p.Layout
	fmt.Fprintf(&b, "%s-%s\n", jamHeader, strings.TrimPrefix(p.Name, "jam_"))
	fmt.Fprintf(&b, "%d\n", l.Width())
	for id, v := range l.vehicles {
		pos := p.Initial.positions[id]
		col, row, o := pos, v.Fixed, "h"
		if v.Orientation == Vertical {
			col, row, o = v.Fixed, pos, "v"
		}
		fmt.Fprintf(&b, "%d %d %s %d\n", col, row, o, v.Length)
	}
	b.WriteString(jamTerminator + "\n")
	return b.String()
}

// jamName turns a "Jam-12" header into "jam_12".
func jamName(header string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(header), "-", "_"))
}

type jamBuilder struct {
	name      string
	size      int
	sized     bool
	vehicles  []Vehicle
	positions []int
}

func (j *jamBuilder) add(text string) error {
	fields := strings.Fields(text)
	if len(fields) == 1 && !j.sized && len(j.vehicles) == 0 {
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid board size %q", fields[0])
		}
		j.size, j.sized = n, true
		return nil
	}
	if len(fields) != 4 {
		return fmt.Errorf("want \"col row h|v length\", got %q", text)
	}

	var nums [3]int
	for i, f := range []string{fields[0], fields[1], fields[3]} {
		n, err := strconv.Atoi(f)
		if err != nil {
			return fmt.Errorf("invalid number %q", f)
		}
		nums[i] = n
	}
	var o Orientation
	if err := o.UnmarshalText([]byte(fields[2])); err != nil {
		return err
	}

	label, err := jamLabel(len(j.vehicles))
	if err != nil {
		return err
	}

	col, row, length := nums[0], nums[1], nums[2]
	v := Vehicle{Label: label, Orientation: o, Length: length, Fixed: row}
	pos := col
	if o == Vertical {
		v.Fixed, pos = col, row
	}
	j.vehicles = append(j.vehicles, v)
	j.positions = append(j.positions, pos)
	return nil
}

func (j *jamBuilder) build() (*Puzzle, error) {
	p, err := New(j.name, j.size, j.size, j.vehicles, j.positions)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidBoard, err, "jam %s", j.name)
	}
	return p, nil
}

// jamLabel assigns 'A' to the target and 'B'.. 'Z' to the rest.
func jamLabel(id int) (rune, error) {
	if id > 'Z'-'A' {
		return 0, fmt.Errorf("too many vehicles (max %d)", 'Z'-'A'+1)
	}
	return rune(TargetLabel + id), nil
}
