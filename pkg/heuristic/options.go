package heuristic

// RedundancyFilter decides whether blocker i of vehicle v can be ignored
// because clearing v's own parent prev already accounts for it. It is only
// consulted for non-target vehicles reached through a parent.
//
// Returning true skips i. The evaluator's default is no filter, which never
// skips.
type RedundancyFilter func(state DynamicState, prev, v, i int) bool

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithRedundancyFilter installs f as the evaluator's redundancy filter.
// A nil f restores the default.
func WithRedundancyFilter(f RedundancyFilter) Option {
	return func(e *Evaluator) {
		e.filter = f
	}
}
