package collector

import "codeberg.org/cryolab/fridgewatch/internal/errors"

const (
	ErrInvalidConfig   = errors.ErrInvalidConfig
	ErrCollectFailed   = errors.ErrCollectFailed
	ErrRootUnavailable = errors.ErrLogRootUnavailable
)
