package collector

import (
	"codeberg.org/cryolab/fridgewatch/internal/logdir"
	"codeberg.org/cryolab/fridgewatch/internal/metricmap"
)

// Failure records one source file that could not contribute to the batch,
// with the reason. Failures never abort the run; they are reported alongside
// whatever the other files produced.
type Failure struct {
	Kind logdir.Kind
	File string
	Err  error
}

// Result is the per-run aggregate: the finalized metric batch plus the
// failures observed while building it. Samples are sorted by canonical name
// so identical inputs yield identical batches run over run.
type Result struct {
	Samples  []metricmap.MetricSample
	Failures []Failure
	Files    int  // files attempted
	Resolved bool // false when today's date folder did not exist yet
}

// Empty reports whether the run produced nothing to push.
func (r *Result) Empty() bool {
	return len(r.Samples) == 0
}
