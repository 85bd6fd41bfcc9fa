package metricmap

import "codeberg.org/cryolab/fridgewatch/internal/errors"

const (
	ErrDuplicateName = errors.ErrDuplicateName
	ErrBadConversion = errors.ErrorCode("metricmap_bad_conversion")
)
