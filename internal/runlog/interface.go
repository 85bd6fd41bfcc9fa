package runlog

import (
	"context"
	"time"
)

// Recorder persists per-run summaries for operator diagnosis. The history
// lives in the tool's own state directory, never under the log directory.
type Recorder interface {
	Record(ctx context.Context, rec *RunRecord) error
	Close() error
}

// RunRecord is one row of run history.
type RunRecord struct {
	Timestamp   time.Time
	Folder      string
	FilesTotal  int
	FilesFailed int
	Samples     int
	Pushed      bool
	Error       string
}
