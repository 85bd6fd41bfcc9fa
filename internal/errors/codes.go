package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig ErrorCode = "invalid_configuration"
	ErrMissingConfig ErrorCode = "missing_configuration"
	ErrBindFlags     ErrorCode = "bind_flags_failed"
	ErrReadConfig    ErrorCode = "read_config_failed"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
	ErrAlreadyRunning ErrorCode = "already_running"

	// Log directory errors
	ErrLogRootUnavailable ErrorCode = "log_root_unavailable"
	ErrMissingDateFolder  ErrorCode = "missing_date_folder"
	ErrFileUnavailable    ErrorCode = "file_unavailable"

	// Parse errors
	ErrParseFailed   ErrorCode = "parse_failed"
	ErrNoRecords     ErrorCode = "no_parseable_records"
	ErrMalformedLine ErrorCode = "malformed_line"
	ErrUnknownKind   ErrorCode = "unknown_file_kind"

	// Collection errors
	ErrCollectFailed ErrorCode = "collection_failed"
	ErrDuplicateName ErrorCode = "duplicate_metric_name"

	// Push errors
	ErrPushFailed  ErrorCode = "push_failed"
	ErrPushTimeout ErrorCode = "push_timeout"

	// Operation errors
	ErrOperationFailed ErrorCode = "operation_failed"
	ErrTimeout         ErrorCode = "operation_timeout"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:           "Internal error occurred",
	ErrInvalidArgument:    "Invalid argument provided",
	ErrUnavailable:        "Service unavailable",
	ErrInvalidConfig:      "Invalid configuration",
	ErrMissingConfig:      "Missing configuration",
	ErrBindFlags:          "Failed to bind flags",
	ErrReadConfig:         "Failed to read configuration",
	ErrInvalidLogLevel:    "Invalid log level",
	ErrInitFailed:         "Initialization failed",
	ErrShutdownFailed:     "Shutdown failed",
	ErrAlreadyRunning:     "Another instance is already running",
	ErrLogRootUnavailable: "Log root directory is missing or unreadable",
	ErrMissingDateFolder:  "Today's date folder does not exist",
	ErrFileUnavailable:    "Source file is missing or unreadable",
	ErrParseFailed:        "Failed to parse source file",
	ErrNoRecords:          "Source file contains no parseable records",
	ErrMalformedLine:      "Malformed line in source file",
	ErrUnknownKind:        "Unknown source file kind",
	ErrCollectFailed:      "Collection run failed",
	ErrDuplicateName:      "Duplicate canonical metric name",
	ErrPushFailed:         "Failed to push metric batch",
	ErrPushTimeout:        "Push timed out",
	ErrOperationFailed:    "Operation failed",
	ErrTimeout:            "Operation timed out",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
