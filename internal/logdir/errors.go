package logdir

import "codeberg.org/cryolab/fridgewatch/internal/errors"

const (
	ErrRootUnavailable   = errors.ErrLogRootUnavailable
	ErrMissingDateFolder = errors.ErrMissingDateFolder
	ErrDiscoveryFailed   = errors.ErrorCode("logdir_discovery_failed")
)
