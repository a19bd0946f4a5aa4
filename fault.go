package gentools

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrClosed is delivered to a generator when it is closed early, and
	// is raised when resuming a generator whose yield outlived it.
	ErrClosed = errors.New("gentools: generator closed")

	// ErrNoReturn is returned by SendReturn when the generator yields
	// again instead of returning.
	ErrNoReturn = errors.New("gentools: generator did not return")
)

// faultError wraps a value recovered from a generator body together with
// the stack captured at the point of failure. It propagates outward as a
// panic from the resuming operation.
type faultError struct {
	value any
	stack []byte
}

func (f *faultError) Error() string {
	return fmt.Sprintf("%v", f.value)
}

// ErrorWithStack reports the fault message followed by the stack captured
// when the generator unwound.
func (f *faultError) ErrorWithStack() string {
	return fmt.Sprintf("%v\n\n%s", f.value, f.stack)
}

func (f *faultError) Unwrap() error {
	err, ok := f.value.(error)
	if !ok {
		return nil
	}
	return err
}

func newFault(v any) error {
	if f, ok := v.(*faultError); ok {
		return f
	}
	return &faultError{
		value: v,
		stack: debug.Stack(),
	}
}
