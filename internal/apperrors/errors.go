// Package apperrors provides the structured errors raised while planning a pipeline.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification via errors.Is().
var (
	ErrInvalidRange  = errors.New("invalid range")
	ErrConfiguration = errors.New("configuration error")
)

// Error provides structured error with context.
type Error struct {
	Sentinel error  // Wrapped sentinel for errors.Is() classification
	Message  string // Human-readable message
	Field    string // Config field at fault (e.g., "spec.intervals[1].partitionSize")
	Cause    error  // Underlying error
}

// Error returns the human-readable error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the sentinel and the cause, so a configuration error
// built from a partitioner failure matches ErrInvalidRange as well.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Sentinel}
	}
	return []error{e.Sentinel, e.Cause}
}

// InvalidRange reports malformed interval bounds or a non-positive partition size.
func InvalidRange(format string, args ...interface{}) error {
	return &Error{
		Sentinel: ErrInvalidRange,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Configuration reports a malformed pipeline configuration field.
func Configuration(field, message string) error {
	return &Error{
		Sentinel: ErrConfiguration,
		Message:  message,
		Field:    field,
	}
}

// ConfigurationCause reports a configuration field rejected because of an underlying error.
func ConfigurationCause(field, message string, cause error) error {
	return &Error{
		Sentinel: ErrConfiguration,
		Message:  message,
		Field:    field,
		Cause:    cause,
	}
}

// IsInvalidRange reports whether err was classified as an invalid range.
func IsInvalidRange(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}

// IsConfiguration reports whether err was classified as a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
