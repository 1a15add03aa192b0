package errors

import (
	"errors"
	"runtime/debug"
)

// stackError carries the goroutine stack captured where a failure was raised.
type stackError struct {
	err   error
	stack []byte
}

func (e *stackError) Error() string {
	return e.err.Error()
}

func (e *stackError) Unwrap() error {
	return e.err
}

// WithStack records the caller's stack on err. Nil errors and errors that
// already carry a stack are returned unchanged.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	var se *stackError
	if errors.As(err, &se) {
		return err
	}
	return &stackError{err: err, stack: debug.Stack()}
}

// StackOf returns the stack recorded by WithStack anywhere in err's chain.
func StackOf(err error) string {
	var se *stackError
	if errors.As(err, &se) {
		return string(se.stack)
	}
	return ""
}
