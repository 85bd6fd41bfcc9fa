package pusher

import "codeberg.org/cryolab/fridgewatch/internal/errors"

const (
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrPushFailed    = errors.ErrPushFailed
	ErrPushTimeout   = errors.ErrPushTimeout
)
