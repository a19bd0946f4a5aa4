package gentools

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFaultErrorMessage(t *testing.T) {
	r := require.New(t)

	f := &faultError{value: "boom", stack: []byte("mock stack")}
	r.Equal("boom", f.Error())
	r.Contains(f.ErrorWithStack(), "boom")
	r.Contains(f.ErrorWithStack(), "mock stack")
}

func TestFaultErrorUnwrap(t *testing.T) {
	r := require.New(t)

	inner := errors.New("inner error")
	f := &faultError{value: fmt.Errorf("wrapped: %w", inner), stack: []byte("s")}
	r.ErrorIs(f, inner)

	// Non-error panic values unwrap to nothing.
	f = &faultError{value: 42, stack: []byte("s")}
	r.NoError(errors.Unwrap(f))
	r.Equal("42", f.Error())
}

func TestNewFaultIdempotent(t *testing.T) {
	r := require.New(t)

	f := newFault("boom")
	r.Same(f, newFault(f))
}

func TestFaultCarriesStack(t *testing.T) {
	r := require.New(t)

	g := New(func(yield func(int) int) int {
		panic("inside generator")
	})

	defer func() {
		p := recover()
		r.NotNil(p)
		var f *faultError
		r.ErrorAs(p.(error), &f)
		r.Contains(f.ErrorWithStack(), "inside generator")
	}()
	g.Next()
}
