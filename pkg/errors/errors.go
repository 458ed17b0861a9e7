// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown       = "UNKNOWN_ERROR"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeUploadError   = "UPLOAD_ERROR"
	CodeDownloadError = "DOWNLOAD_ERROR"
	CodeTimeout       = "TIMEOUT_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeConfigError   = "CONFIG_ERROR"

	// CodeInsufficientCapacity reports |blocks| < |bands|: the room matrix
	// cannot physically seat every band. Reported once via on_completed,
	// no on_assigned calls precede it.
	CodeInsufficientCapacity = "INSUFFICIENT_CAPACITY"

	// CodeCapacityOverflow reports |users| > the band-hash bitmask width.
	// Fatal at LiveInfo construction.
	CodeCapacityOverflow = "CAPACITY_OVERFLOW"

	// CodeInputInconsistency reports a schedule vector shorter than the
	// span count, or a band name present in the schedule table but absent
	// from the band table. Fatal at construction.
	CodeInputInconsistency = "INPUT_INCONSISTENCY"

	// CodeTaskFault reports a worker task failing internally during an
	// asynchronous run. Fatal; the scheduler aborts but on_completed still
	// fires.
	CodeTaskFault = "TASK_FAULT"

	// CodeMalformedInput reports a CSV/HTML ingestion row that could not
	// be parsed. Never fatal unless StrictMode is requested by the caller.
	CodeMalformedInput = "MALFORMED_INPUT"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrDatabaseError         = New(CodeDatabaseError, "database error")
	ErrUploadError           = New(CodeUploadError, "upload error")
	ErrDownloadError         = New(CodeDownloadError, "download error")
	ErrTimeout               = New(CodeTimeout, "operation timeout")
	ErrNotFound              = New(CodeNotFound, "resource not found")
	ErrConfigError           = New(CodeConfigError, "configuration error")
	ErrInsufficientCapacity  = New(CodeInsufficientCapacity, "room matrix has fewer blocks than bands")
	ErrCapacityOverflow      = New(CodeCapacityOverflow, "user count exceeds band-hash bitmask width")
	ErrInputInconsistency    = New(CodeInputInconsistency, "schedule table is inconsistent with the band table")
	ErrTaskFault             = New(CodeTaskFault, "worker task failed")
	ErrMalformedInput        = New(CodeMalformedInput, "malformed ingestion row")
)

// IsDatabaseError checks if the error is a database error.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseError)
}

// IsUploadError checks if the error is an upload error.
func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadError)
}

// IsDownloadError checks if the error is a download error.
func IsDownloadError(err error) bool {
	return errors.Is(err, ErrDownloadError)
}

// IsInsufficientCapacity checks if the error is an insufficient-capacity error.
func IsInsufficientCapacity(err error) bool {
	return errors.Is(err, ErrInsufficientCapacity)
}

// IsTaskFault checks if the error is a task-fault error.
func IsTaskFault(err error) bool {
	return errors.Is(err, ErrTaskFault)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// ErrorInfo provides error information mapping.
var ErrorInfo = map[string]string{
	"DatabaseError":         CodeDatabaseError,
	"UploadError":           CodeUploadError,
	"DownloadError":         CodeDownloadError,
	"InsufficientCapacity":  CodeInsufficientCapacity,
	"CapacityOverflow":      CodeCapacityOverflow,
	"InputInconsistency":    CodeInputInconsistency,
	"TaskFault":             CodeTaskFault,
	"MalformedInput":        CodeMalformedInput,
}
