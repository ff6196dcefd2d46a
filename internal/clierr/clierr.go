// Package clierr gives command failures a stable code so scripts reading
// --json output can branch on the code instead of the message.
package clierr

import (
	"errors"
	"fmt"
)

// Codes are part of the JSON contract; never rename one.
const (
	TaskNotFound       = "TASK_NOT_FOUND"
	BoardNotFound      = "BOARD_NOT_FOUND"
	BoardAlreadyExists = "BOARD_ALREADY_EXISTS"
	InvalidInput       = "INVALID_INPUT"
	InvalidLevel       = "INVALID_LEVEL"
	InvalidRepeat      = "INVALID_REPEAT"
	InvalidDate        = "INVALID_DATE"
	InvalidPosition    = "INVALID_POSITION"
	InvalidConfigKey   = "INVALID_CONFIG_KEY"
	NoChanges          = "NO_CHANGES"
	ConfirmationReq    = "CONFIRMATION_REQUIRED"
	StoreUnavailable   = "STORE_UNAVAILABLE"
	InternalError      = "INTERNAL_ERROR"
)

// Error is a coded failure. Details, when set, are emitted verbatim in the
// JSON error envelope.
type Error struct {
	Code    string
	Message string
	Details map[string]any

	cause error
}

func (e *Error) Error() string { return e.Message }

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// New returns an Error with a fixed message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf returns an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags err with code, keeping err reachable through errors.Is/As.
func Wrap(code string, err error) *Error {
	return &Error{Code: code, Message: err.Error(), cause: err}
}

// WithDetails attaches details and returns e for chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// From finds the coded error in err's chain. Uncoded errors become
// INTERNAL_ERROR.
func From(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return Wrap(InternalError, err)
}

// ExitCode is the process exit status for e: 2 for internal errors, 1 for
// everything the user can fix.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // internal failure
	}
	return 1
}
