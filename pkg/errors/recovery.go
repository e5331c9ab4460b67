// Package errors provides error handling utilities for scorecast.
//
// This file contains panic recovery utilities that convert unexpected panics
// inside request handlers and pipeline stages into structured errors.

package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// PanicError represents an error that was created from a recovered panic.
// It includes the original panic value and stack trace information.
type PanicError struct {
	// PanicValue is the original value passed to panic()
	PanicValue interface{}

	// StackTrace contains the stack trace at the time of panic
	StackTrace string

	// Operation identifies where the panic was recovered
	Operation string
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// String provides detailed information including stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// MarshalZerologObject adds the panic details to a zerolog event.
func (e *PanicError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Str("panic", fmt.Sprint(e.PanicValue)).
		Str("stacktrace", e.StackTrace).
		Str("type", "PanicError")
}

// NewPanicError creates a new PanicError with the given operation context and panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover is used with defer to convert a panic into an error.
//
// Usage:
//
//	func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) (err error) {
//	    defer Recover(&err, "handlePredict")
//	    ...
//	}
//
// If the function already returned an error, the panic information wraps it.
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		panicErr := NewPanicError(operation, r)

		if *err != nil {
			*err = fmt.Errorf("panic in %s: %v (original error: %w)",
				operation, r, *err)
		} else {
			*err = panicErr
		}
	}
}

// SafeExecute executes fn and converts any panic into a PanicError.
//
// Example:
//
//	err := SafeExecute("http /predict", func() error {
//	    next.ServeHTTP(w, r)
//	    return nil
//	})
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
