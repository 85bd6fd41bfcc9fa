package logdir

import (
	"os"
	"path/filepath"
	"time"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
)

// FolderName returns the controller's date folder name for the given day.
// The controller uses a fixed two-digit year/month/day convention.
func FolderName(day time.Time) string {
	return day.Format("06-01-02")
}

// Resolve probes for the date folder of the given day under root and returns
// its path. A missing or unreadable root is fatal for the run; a missing date
// folder is not (the controller may simply not have logged anything yet) and
// is reported with its own error code so the caller can degrade to an empty
// batch.
func Resolve(root string, day time.Time) (string, error) {
	errFactory := errors.New()

	rootInfo, err := os.Stat(root)
	if err != nil {
		return "", errFactory.WithData(ErrRootUnavailable, struct {
			Root  string
			Error string
		}{
			Root:  root,
			Error: err.Error(),
		})
	}
	if !rootInfo.IsDir() {
		return "", errFactory.WithData(ErrRootUnavailable, struct {
			Root string
		}{
			Root: root,
		})
	}

	dayPath := filepath.Join(root, FolderName(day))
	dayInfo, err := os.Stat(dayPath)
	if err != nil || !dayInfo.IsDir() {
		return "", errFactory.WithData(ErrMissingDateFolder, struct {
			Path string
		}{
			Path: dayPath,
		})
	}

	return dayPath, nil
}
