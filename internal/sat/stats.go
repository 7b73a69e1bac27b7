package sat

import "time"

// Stats accumulates solve-time counters, surfaced through the CLI's
// --profile flag. It has no bearing on search behavior; it's purely an
// observability supplement to the core algorithm (spec.md leaves profiling
// out of scope but names it as a required external collaborator).
type Stats struct {
	PreprocessPasses int
	Decisions        int64
	Propagations     int64
	Conflicts        int64
	Restarts         int64
	LearnedClauses   int64

	start    time.Time
	Duration time.Duration
}

func (st *Stats) begin()  { st.start = time.Now() }
func (st *Stats) finish() { st.Duration = time.Since(st.start) }
