// Package errs provides structured errors for Glint.
//
// Every error produced by the framework carries a Category so callers can
// branch on the kind of failure without string matching:
//
//	if errs.IsInvalidArgument(err) {
//	    // surface to the script author
//	}
package errs

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryProtocol   Category = "protocol"
	CategoryRuntime    Category = "runtime"
	CategoryConfig     Category = "config"
)

// Error is a structured error with a category and optional detail.
type Error struct {
	// Category is the error type (validation, protocol, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a longer explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap attaches an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// Newf creates a new Error in the given category.
func Newf(cat Category, format string, args ...any) *Error {
	return &Error{
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
	}
}

// InvalidArgument creates a validation error for a bad caller-supplied value.
// The message should name the offending value and, where applicable, the
// allowed set.
func InvalidArgument(format string, args ...any) *Error {
	return Newf(CategoryValidation, format, args...)
}

// IsInvalidArgument reports whether err (or any error it wraps) is a
// validation error.
func IsInvalidArgument(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == CategoryValidation
	}
	return false
}
