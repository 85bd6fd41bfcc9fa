package parser

import "codeberg.org/cryolab/fridgewatch/internal/errors"

const (
	ErrFileUnavailable = errors.ErrFileUnavailable
	ErrNoRecords       = errors.ErrNoRecords
	ErrMalformedLine   = errors.ErrMalformedLine
	ErrUnknownKind     = errors.ErrUnknownKind
)
