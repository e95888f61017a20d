package puzzle

import "fmt"

// Orientation is the axis a vehicle slides along.
type Orientation int

const (
	// Horizontal vehicles slide along a row; their fixed coordinate is the row.
	Horizontal Orientation = iota
	// Vertical vehicles slide along a column; their fixed coordinate is the column.
	Vertical
)

// String returns "horizontal" or "vertical".
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It accepts the long names as well as the jam-format letters "h" and "v".
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "horizontal", "h":
		*o = Horizontal
	case "vertical", "v":
		*o = Vertical
	default:
		return fmt.Errorf("unknown orientation %q", text)
	}
	return nil
}

// Target is the id of the vehicle that must reach the exit.
const Target = 0

// TargetLabel is the grid rune of the target vehicle.
const TargetLabel = 'A'

// Vehicle holds the static facts of one vehicle.
type Vehicle struct {
	Label       rune        `json:"label"`
	Orientation Orientation `json:"orientation"`
	Length      int         `json:"length"`
	Fixed       int         `json:"fixed"` // row for horizontal, column for vertical
}

func (v Vehicle) String() string {
	return fmt.Sprintf("%c(%s len=%d fixed=%d)", v.Label, v.Orientation, v.Length, v.Fixed)
}
