package stats

// RunInfo describes a single acquisition run mirrored to the database.
type RunInfo struct {

	// ID is a random (UUID) identifier of the run. It is generated
	// when the run is added.
	ID string

	// Datetime specifies date and time (unix seconds) when the run
	// has been stored (i.e. not started)
	Datetime int64

	// GraphDataPath is the graph file the solver was run with
	GraphDataPath string

	// SampleSeed allows reproducing the sampled vertices
	SampleSeed uint64

	NumRepeat int
}
