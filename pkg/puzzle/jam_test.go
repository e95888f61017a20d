package puzzle

import (
	"slices"
	"strings"
	"testing"

	errs "github.com/matzehuels/gridlock/pkg/errors"
)

// jamOne is the first classic jam together with the grid it describes.
const jamOne = `Jam-1
6
1 2 h 2
0 1 v 3
0 0 h 2
3 1 v 3
2 5 h 3
0 4 v 2
4 4 h 2
5 0 v 3
.
`

var jamOneRows = []string{
	"CC...H",
	"B..D.H",
	"BAAD.H",
	"B..D..",
	"F...GG",
	"F.EEE.",
}

func TestParseJam(t *testing.T) {
	p, err := ParseJam("ignored", jamOne)
	if err != nil {
		t.Fatalf("ParseJam() error: %v", err)
	}
	if p.Name != "jam_1" {
		t.Errorf("Name = %q, want jam_1", p.Name)
	}
	if p.Layout.VehicleCount() != 8 {
		t.Errorf("VehicleCount() = %d, want 8", p.Layout.VehicleCount())
	}
	if !slices.Equal(p.Rows(), jamOneRows) {
		t.Errorf("Rows() =\n%s\nwant\n%s", strings.Join(p.Rows(), "\n"), strings.Join(jamOneRows, "\n"))
	}
}

func TestParseJamWithoutHeader(t *testing.T) {
	p, err := ParseJam("custom", "1 2 h 2\n4 0 v 3\n")
	if err != nil {
		t.Fatalf("ParseJam() error: %v", err)
	}
	if p.Name != "custom" {
		t.Errorf("Name = %q, want custom", p.Name)
	}
	if p.Layout.Width() != DefaultSize {
		t.Errorf("Width() = %d, want %d", p.Layout.Width(), DefaultSize)
	}
}

func TestParseJams(t *testing.T) {
	input := jamOne + "\nJam-2\n6\n0 2 h 2\n2 2 v 2\n.\n"
	jams, err := ParseJams(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseJams() error: %v", err)
	}
	if len(jams) != 2 {
		t.Fatalf("len(jams) = %d, want 2", len(jams))
	}
	if jams[1].Name != "jam_2" {
		t.Errorf("jams[1].Name = %q, want jam_2", jams[1].Name)
	}
	if got := jams[1].Rows()[2]; got != "AAB..." {
		t.Errorf("jams[1] row 2 = %q, want AAB...", got)
	}
}

func TestParseJamErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errs.Code
	}{
		{"empty", "", errs.ErrCodeInvalidFormat},
		{"two jams", "1 2 h 2\n.\n1 2 h 2\n.\n", errs.ErrCodeInvalidFormat},
		{"short line", "1 2 h\n", errs.ErrCodeInvalidFormat},
		{"bad number", "a 2 h 2\n", errs.ErrCodeInvalidFormat},
		{"bad orientation", "1 2 d 2\n", errs.ErrCodeInvalidFormat},
		{"bad size", "-4\n1 2 h 2\n", errs.ErrCodeInvalidFormat},
		{"off board", "5 2 h 2\n", errs.ErrCodeInvalidBoard},
		{"overlap", "1 2 h 2\n2 1 v 2\n", errs.ErrCodeInvalidBoard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJam("x", tt.input)
			if !errs.Is(err, tt.code) {
				t.Errorf("ParseJam() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestFormatJamRoundTrip(t *testing.T) {
	p, err := ParseJam("", jamOne)
	if err != nil {
		t.Fatal(err)
	}

	again, err := ParseJam("", FormatJam(p))
	if err != nil {
		t.Fatalf("ParseJam(FormatJam()) error: %v", err)
	}
	if again.Name != p.Name {
		t.Errorf("Name = %q, want %q", again.Name, p.Name)
	}
	if !slices.Equal(again.Rows(), p.Rows()) {
		t.Errorf("Rows() = %v, want %v", again.Rows(), p.Rows())
	}
}
