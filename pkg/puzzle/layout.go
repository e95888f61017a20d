package puzzle

import (
	errs "github.com/matzehuels/gridlock/pkg/errors"
)

// Layout is the immutable per-puzzle part of a board.
// The zero value is not usable; use NewLayout.
type Layout struct {
	width    int
	height   int
	vehicles []Vehicle
}

// NewLayout validates and stores the static facts of a puzzle.
// Vehicle 0 is the target. Every vehicle needs a length of at least one that
// fits its axis and a fixed coordinate inside the board.
func NewLayout(width, height int, vehicles []Vehicle) (*Layout, error) {
	if width < 1 || height < 1 {
		return nil, errs.New(errs.ErrCodeInvalidLayout, "board size %dx%d must be positive", width, height)
	}
	if len(vehicles) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidLayout, "layout has no target vehicle")
	}

	l := &Layout{width: width, height: height, vehicles: make([]Vehicle, len(vehicles))}
	copy(l.vehicles, vehicles)

	for id, v := range l.vehicles {
		if v.Orientation != Horizontal && v.Orientation != Vertical {
			return nil, errs.New(errs.ErrCodeInvalidLayout, "vehicle %d has invalid orientation %d", id, int(v.Orientation))
		}
		if v.Length < 1 || v.Length > l.extent(v.Orientation) {
			return nil, errs.New(errs.ErrCodeInvalidLayout, "vehicle %d length %d does not fit a %s axis of %d",
				id, v.Length, v.Orientation, l.extent(v.Orientation))
		}
		if v.Fixed < 0 || v.Fixed >= l.lanes(v.Orientation) {
			return nil, errs.New(errs.ErrCodeInvalidLayout, "vehicle %d fixed coordinate %d outside [0, %d)",
				id, v.Fixed, l.lanes(v.Orientation))
		}
	}
	return l, nil
}

// Width returns the number of columns.
func (l *Layout) Width() int { return l.width }

// Height returns the number of rows.
func (l *Layout) Height() int { return l.height }

// VehicleCount returns n, the number of vehicles including the target.
func (l *Layout) VehicleCount() int { return len(l.vehicles) }

// Vehicle returns the static facts of vehicle id.
func (l *Layout) Vehicle(id int) (Vehicle, error) {
	if id < 0 || id >= len(l.vehicles) {
		return Vehicle{}, errs.VehicleID(id, len(l.vehicles))
	}
	return l.vehicles[id], nil
}

// Vehicles returns a copy of all vehicles in id order.
func (l *Layout) Vehicles() []Vehicle {
	out := make([]Vehicle, len(l.vehicles))
	copy(out, l.vehicles)
	return out
}

// Orientation returns the axis vehicle id slides along.
func (l *Layout) Orientation(id int) (Orientation, error) {
	v, err := l.Vehicle(id)
	return v.Orientation, err
}

// Length returns the number of cells vehicle id covers.
func (l *Layout) Length(id int) (int, error) {
	v, err := l.Vehicle(id)
	return v.Length, err
}

// FixedCoordinate returns the lane of vehicle id.
func (l *Layout) FixedCoordinate(id int) (int, error) {
	v, err := l.Vehicle(id)
	return v.Fixed, err
}

// Label returns the grid rune of vehicle id, or '?' for unknown ids.
func (l *Layout) Label(id int) rune {
	if id < 0 || id >= len(l.vehicles) {
		return '?'
	}
	return l.vehicles[id].Label
}

// Extent returns the length of the free axis of vehicle id, which is where
// its positions end.
func (l *Layout) Extent(id int) (int, error) {
	v, err := l.Vehicle(id)
	if err != nil {
		return 0, err
	}
	return l.extent(v.Orientation), nil
}

func (l *Layout) extent(o Orientation) int {
	if o == Horizontal {
		return l.width
	}
	return l.height
}

func (l *Layout) lanes(o Orientation) int {
	if o == Horizontal {
		return l.height
	}
	return l.width
}
