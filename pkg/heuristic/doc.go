// Package heuristic estimates how many moves a sliding-block puzzle state
// needs by walking the graph of vehicles that block each other.
//
// # Overview
//
// The estimate starts at the target vehicle and collects every vehicle that
// sits in front of it on its way to the exit. Each of those blockers is
// examined in turn: a blocker that is itself obstructed on both sides must
// first clear whichever side is cheaper, and that cost is added to the
// total. A blocker obstructed on one side only can slide toward the free
// side and costs a single move.
//
// The walk keeps a per-call visited set. A vehicle reached a second time
// contributes nothing, which keeps cyclic blocking (A blocks B while B
// blocks A) finite. The estimate is deterministic for a given state because
// vehicles are examined in ascending id order.
//
// # Usage
//
//	e, err := heuristic.New(puzzle.Layout)
//	if err != nil {
//	    return err
//	}
//	h, err := e.Evaluate(puzzle.Initial)
//
// [Evaluator.Explain] runs the same walk and returns the [Tree] of blockers
// it visited, which the nodelink renderer turns into a diagram.
// [Evaluator.Func] adapts the evaluator to the func(state) int shape search
// frontiers expect.
//
// # Collaborators
//
// The evaluator reads static vehicle facts through [StaticLayout] and
// current positions through [DynamicState]. Both are satisfied by
// [github.com/matzehuels/gridlock/pkg/puzzle], but any board model can
// implement them.
//
// # Concurrency
//
// An [Evaluator] holds only immutable data captured by [New]. It may be
// shared by any number of goroutines.
package heuristic
