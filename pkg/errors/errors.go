// Package errors defines the coded errors returned by ilotplan.
//
// Every failure that should stop a run carries a [Code]. CONFIGURATION is
// reserved for caller settings that violate an invariant, such as size
// bands that do not sum to 100% or a non-positive corridor width; it is
// raised before any placement work starts. The INVALID_* codes cover bad
// input data, the *_NOT_FOUND codes missing files, and INTERNAL_ERROR
// everything unexpected.
//
// Degenerate floor plans (no free area, a band that fits nowhere, no wall
// zone) are not errors. They are reported as warnings on the result.
//
//	err := errors.New(errors.ErrCodeConfiguration, "size distribution sums to %.1f%%", sum)
//	if errors.IsConfiguration(err) {
//	    // fix the configuration and retry
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeConfiguration Code = "CONFIGURATION"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidModel     Code = "INVALID_MODEL"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return Is(err, ErrCodeConfiguration)
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain
// without its code prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ExitCode maps err to a process exit status: 0 for nil, 2 for
// configuration errors and 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsConfiguration(err):
		return 2
	}
	return 1
}
