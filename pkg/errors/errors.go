// Package errors provides structured error types for ltschart.
//
// Every failure that reaches a user carries a machine-readable [Code] so the
// CLI and the HTTP server can report it consistently:
//
//	err := errors.New(errors.ErrCodeInvalidDate, "track %s: bad date %q", name, raw)
//	if errors.Is(err, errors.ErrCodeInvalidDate) {
//	    // reject input
//	}
//
// Codes follow a hierarchical naming convention:
//   - INVALID_* and MISSING_*: input problems the caller can fix
//   - *_NOT_FOUND: missing files or resources
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidDate      Code = "INVALID_DATE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidWindow    Code = "INVALID_WINDOW"
	ErrCodeInvalidTrack     Code = "INVALID_TRACK"
	ErrCodeMissingMilestone Code = "MISSING_MILESTONE"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeTrackNotFound Code = "TRACK_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInputError reports whether err was caused by bad caller input rather than
// an internal failure.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidDate, ErrCodeInvalidFormat,
		ErrCodeInvalidWindow, ErrCodeInvalidTrack, ErrCodeMissingMilestone:
		return true
	}
	return false
}

// ErrMissingMilestone is the cause at the bottom of every [MilestoneError].
var ErrMissingMilestone = errors.New("missing milestone")

// MilestoneError describes a track that lacks a milestone the segmenter
// requires. It is always returned wrapped in an *Error with
// ErrCodeMissingMilestone.
type MilestoneError struct {
	Track     string // Track name as it appears in the dataset
	Milestone string // Dataset key of the missing milestone (e.g. "end")
}

// Error implements the error interface.
func (e *MilestoneError) Error() string {
	return fmt.Sprintf("track %q has no %q milestone", e.Track, e.Milestone)
}

// Unwrap returns ErrMissingMilestone.
func (e *MilestoneError) Unwrap() error { return ErrMissingMilestone }
