package heuristic

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gridlock/pkg/puzzle"
)

// Side tells which way a blocker sits relative to the vehicle it obstructs.
type Side int

const (
	// SideRoot marks the target vehicle at the top of the walk.
	SideRoot Side = iota
	// SideFront marks a blocker ahead of the obstructed vehicle.
	SideFront
	// SideBack marks a blocker behind the obstructed vehicle.
	SideBack
)

var sideNames = [...]string{"root", "front", "back"}

// String returns "root", "front" or "back", or "Side(n)" for other values.
func (s Side) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	for i, name := range sideNames {
		if string(text) == name {
			*s = Side(i)
			return nil
		}
	}
	return fmt.Errorf("unknown side %q", text)
}

// Node is one vehicle visit in the blocking walk.
type Node struct {
	Vehicle int  `json:"vehicle"`
	Side    Side `json:"side"`
	// Cost is the subtree's contribution; revisits contribute 0.
	Cost      int     `json:"cost"`
	Revisited bool    `json:"revisited,omitempty"`
	Front     []*Node `json:"front,omitempty"`
	Back      []*Node `json:"back,omitempty"`
}

// Tree is the recorded blocking walk for one state.
type Tree struct {
	// Root is nil when the state is already a goal.
	Root     *Node `json:"root,omitempty"`
	Estimate int   `json:"estimate"`
	// Visited is the number of distinct vehicles the walk reached.
	Visited int  `json:"visited"`
	Goal    bool `json:"goal"`
}

// Explain runs the same walk as [Evaluator.Evaluate] and records every visit.
// The returned tree's Estimate always equals Evaluate's result.
func (e *Evaluator) Explain(state DynamicState) (*Tree, error) {
	if state.IsGoal() {
		return &Tree{Goal: true}, nil
	}
	w, err := e.newWalk(state, true)
	if err != nil {
		return nil, err
	}
	cost, root := w.moveCost(puzzle.Target, noParent, SideRoot)
	return &Tree{
		Root:     root,
		Estimate: cost,
		Visited:  int(w.visited.Count()),
	}, nil
}

// Walk calls fn for every node in depth-first order, front children before
// back children. Depth is 0 for the root.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	if t == nil || t.Root == nil {
		return
	}
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.Front {
			visit(c, depth+1)
		}
		for _, c := range n.Back {
			visit(c, depth+1)
		}
	}
	visit(t.Root, 0)
}

// Format writes the tree as an indented outline, one vehicle per line.
// label maps vehicle ids to display names; nil uses the numeric id.
func (t *Tree) Format(label func(id int) string) string {
	if label == nil {
		label = func(id int) string { return fmt.Sprint(id) }
	}
	if t.Goal {
		return "goal\n"
	}
	var b strings.Builder
	t.Walk(func(n *Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		if n.Side != SideRoot {
			b.WriteString(n.Side.String())
			b.WriteByte(' ')
		}
		b.WriteString(label(n.Vehicle))
		if n.Revisited {
			b.WriteString(" (seen)")
		} else {
			fmt.Fprintf(&b, " cost=%d", n.Cost)
		}
		b.WriteByte('\n')
	})
	return b.String()
}
