package cache

// Keyer derives cache keys for the values the pipeline stores.
type Keyer interface {
	// ReportKey identifies an evaluation report for a board.
	ReportKey(puzzleHash string, opts ReportKeyOpts) string

	// SolutionKey identifies the solver's result for a board.
	SolutionKey(puzzleHash string) string
}

// ReportKeyOpts are the report options that change its content.
type ReportKeyOpts struct {
	Explain bool `json:"explain"`
	Solve   bool `json:"solve"`
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey generates a key for report caching.
func (DefaultKeyer) ReportKey(puzzleHash string, opts ReportKeyOpts) string {
	return hashKey("report", puzzleHash, opts)
}

// SolutionKey generates a key for solver result caching.
func (DefaultKeyer) SolutionKey(puzzleHash string) string {
	return "solution:" + puzzleHash
}
