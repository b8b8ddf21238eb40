package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// PanicError is an error built from a recovered panic.
type PanicError struct {
	// PanicValue is the value passed to panic().
	PanicValue interface{}

	// StackTrace is the goroutine stack at the point of recovery.
	StackTrace string

	// Operation names the function that recovered.
	Operation string
}

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

// String includes the stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *PanicError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Str("panic_value", fmt.Sprint(e.PanicValue)).
		Str("type", "PanicError")
}

// NewPanicError captures the current stack for a recovered panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into an error. Call it deferred with a pointer to the
// named error result:
//
//	func (m *Model) Fit(X mat.Matrix, y mat.Vector) (err error) {
//	    defer errors.Recover(&err, "Model.Fit")
//	    ...
//	}
//
// An error already assigned to *err is kept in the chain.
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		panicErr := NewPanicError(operation, r)
		if *err != nil {
			*err = Wrapf(*err, "%s (original error)", panicErr.Error())
			return
		}
		*err = panicErr
	}
}

// SafeExecute runs fn and converts a panic into a PanicError.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
