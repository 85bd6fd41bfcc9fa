package runlog

import "codeberg.org/cryolab/fridgewatch/internal/errors"

const (
	ErrInvalidConfig  = errors.ErrInvalidConfig
	ErrInvalidDBPath  = errors.ErrorCode("runlog_invalid_db_path")
	ErrInvalidRecord  = errors.ErrorCode("runlog_invalid_record")
	ErrSchemaInit     = errors.ErrorCode("runlog_schema_init_failed")
	ErrStorageInit    = errors.ErrInitFailed
	ErrStorageClose   = errors.ErrShutdownFailed
	ErrRecordFailed   = errors.ErrorCode("runlog_record_failed")
	ErrOperationAbort = errors.ErrTimeout
)
