package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the store when an entity does not exist.
var ErrNotFound = errors.New("not found")

// NumberFormatError reports an existing invoice number that does not
// parse as PREFIX-digits. The allocator recovers by restarting the
// sequence at 1; callers log this as a warning.
type NumberFormatError struct {
	Prefix string
	Number string
}

func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("invoice number %q does not match format %s-NNNNNN", e.Number, e.Prefix)
}

// NewNumberFormatError creates a new number format error
func NewNumberFormatError(prefix, number string) *NumberFormatError {
	return &NumberFormatError{Prefix: prefix, Number: number}
}

// DuplicateNumberError reports a storage-level uniqueness violation on
// the invoice number. It is not retried internally; the caller retries
// invoice creation.
type DuplicateNumberError struct {
	Number string
	Cause  error
}

func (e *DuplicateNumberError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invoice number %s already exists (%v)", e.Number, e.Cause)
	}
	return fmt.Sprintf("invoice number %s already exists", e.Number)
}

func (e *DuplicateNumberError) Unwrap() error {
	return e.Cause
}

// NewDuplicateNumberError creates a new duplicate number error
func NewDuplicateNumberError(number string, cause error) *DuplicateNumberError {
	return &DuplicateNumberError{Number: number, Cause: cause}
}

// BuildError reports a precondition violation during document building,
// such as a missing invoice or client. Missing optional data never
// produces a BuildError.
type BuildError struct {
	Field   string
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("e-invoice build failed on %s: %s", e.Field, e.Message)
}

// NewBuildError creates a new build error
func NewBuildError(field, message string) *BuildError {
	return &BuildError{Field: field, Message: message}
}
