package heuristic

import (
	"github.com/bits-and-blooms/bitset"

	errs "github.com/matzehuels/gridlock/pkg/errors"
	"github.com/matzehuels/gridlock/pkg/puzzle"
)

// StaticLayout exposes the facts about each vehicle that never change while
// a puzzle is solved. Ids run from 0 to VehicleCount()-1 and id 0 is the
// target.
type StaticLayout interface {
	VehicleCount() int
	Orientation(id int) (puzzle.Orientation, error)
	Length(id int) (int, error)
	FixedCoordinate(id int) (int, error)
}

// DynamicState exposes the position of each vehicle along its axis in one
// particular board configuration.
type DynamicState interface {
	Position(id int) (int, error)
	IsGoal() bool
}

// noParent marks the target's call, which has no parent vehicle.
const noParent = -1

// Evaluator computes the blocking estimate for states of one layout.
type Evaluator struct {
	n      int
	orient []puzzle.Orientation
	length []int
	fixed  []int
	filter RedundancyFilter
}

// New snapshots layout's static facts. The layout is not consulted again.
func New(layout StaticLayout, opts ...Option) (*Evaluator, error) {
	if layout == nil {
		return nil, errs.New(errs.ErrCodeInvalidLayout, "layout is nil")
	}
	n := layout.VehicleCount()
	if n < 1 {
		return nil, errs.New(errs.ErrCodeInvalidLayout, "layout has no vehicles")
	}

	e := &Evaluator{
		n:      n,
		orient: make([]puzzle.Orientation, n),
		length: make([]int, n),
		fixed:  make([]int, n),
	}
	for id := range n {
		o, err := layout.Orientation(id)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidVehicleID, err, "orientation of vehicle %d", id)
		}
		l, err := layout.Length(id)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidVehicleID, err, "length of vehicle %d", id)
		}
		f, err := layout.FixedCoordinate(id)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidVehicleID, err, "fixed coordinate of vehicle %d", id)
		}
		if l < 1 {
			return nil, errs.New(errs.ErrCodeInvalidLayout, "vehicle %d has length %d", id, l)
		}
		e.orient[id], e.length[id], e.fixed[id] = o, l, f
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// VehicleCount returns the number of vehicles captured by [New].
func (e *Evaluator) VehicleCount() int { return e.n }

// Evaluate returns the estimated number of moves needed to free the target.
// It is 0 for a goal state and at least 1 otherwise.
func (e *Evaluator) Evaluate(state DynamicState) (int, error) {
	if state.IsGoal() {
		return 0, nil
	}
	w, err := e.newWalk(state, false)
	if err != nil {
		return 0, err
	}
	cost, _ := w.moveCost(puzzle.Target, noParent, SideRoot)
	return cost, nil
}

// Func adapts the evaluator to a search frontier's heuristic term. A state
// that cannot be read evaluates to 0, which keeps the estimate admissible
// from the caller's point of view.
func (e *Evaluator) Func() func(DynamicState) int {
	return func(state DynamicState) int {
		h, err := e.Evaluate(state)
		if err != nil {
			return 0
		}
		return h
	}
}

// walk is the state of a single evaluation. The visited set is owned by the
// call, never by the evaluator.
type walk struct {
	e       *Evaluator
	state   DynamicState
	pos     []int
	visited *bitset.BitSet
	record  bool
}

func (e *Evaluator) newWalk(state DynamicState, record bool) (*walk, error) {
	pos := make([]int, e.n)
	for id := range e.n {
		p, err := state.Position(id)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidVehicleID, err, "position of vehicle %d", id)
		}
		pos[id] = p
	}
	return &walk{
		e:       e,
		state:   state,
		pos:     pos,
		visited: bitset.New(uint(e.n)),
		record:  record,
	}, nil
}

// moveCost returns the moves needed to get v out of the way, recursing into
// the vehicles that block it. When the walk records, the returned node
// describes the subtree; otherwise it is nil.
func (w *walk) moveCost(v, prev int, side Side) (int, *Node) {
	var node *Node
	if w.record {
		node = &Node{Vehicle: v, Side: side}
	}
	if w.visited.Test(uint(v)) {
		if node != nil {
			node.Revisited = true
		}
		return 0, node
	}
	w.visited.Set(uint(v))

	e := w.e
	root := v == puzzle.Target
	targetFront := w.pos[puzzle.Target] + e.length[puzzle.Target]

	var (
		front, back       int
		hasFront, hasBack bool
	)
	for i := range e.n {
		if i == v {
			continue
		}
		if root {
			if e.orient[i] == e.orient[puzzle.Target] {
				continue
			}
			if e.fixed[i] < targetFront {
				continue
			}
		}
		if !intersects(e.orient[v], e.orient[i], e.fixed[v], e.fixed[i], w.pos[i], w.pos[i]+e.length[i]) {
			continue
		}
		if !root && prev != noParent && e.filter != nil && e.filter(w.state, prev, v, i) {
			continue
		}

		if isBehind(e.orient[v], e.orient[i], e.fixed[i], w.pos[i], e.length[i], w.pos[v], e.length[v]) {
			c, child := w.moveCost(i, v, SideBack)
			back += c
			hasBack = true
			if node != nil {
				node.Back = append(node.Back, child)
			}
			continue
		}
		c, child := w.moveCost(i, v, SideFront)
		front += c
		hasFront = true
		if node != nil {
			node.Front = append(node.Front, child)
		}
	}

	cost := 1
	switch {
	case root:
		cost += front
	case hasFront && hasBack:
		cost += min(front, back)
	}
	if node != nil {
		node.Cost = cost
	}
	return cost, node
}
