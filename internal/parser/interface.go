package parser

import "codeberg.org/cryolab/fridgewatch/internal/logdir"

// RawSample is one key/value reading extracted from a source file. Values
// stay as strings here; unit conversion is the mapper's job.
type RawSample struct {
	Kind  logdir.Kind
	Key   string
	Value string
}

// LineError records a malformed line that was skipped. Scoped to exactly one
// line so the rest of the file is still usable.
type LineError struct {
	Line int
	Text string
	Err  error
}

// Result holds everything a parser extracted from one file. LineErrors are
// diagnostic only; a file-level failure is returned as an error from Parse.
type Result struct {
	Samples    []RawSample
	LineErrors []LineError
}
