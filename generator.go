package gentools

import (
	"errors"
	"fmt"
)

// genState tracks where a generator iterator is in its lifecycle, as
// observed between resumptions.
type genState int8

const (
	stateCreated   genState = iota // body not yet entered
	stateSuspended                 // parked at a yield
	stateDone                      // returned, unwound, or closed
)

// Generator is a live generator iterator: a resumable computation that
// yields values of type Y, accepts values of type S in reply, and
// terminates with a final value of type R.
//
// A Generator only makes progress when resumed by its caller; there is
// no independent execution context, and no Generator is safe for use
// from more than one goroutine.
type Generator[Y, S, R any] interface {
	// Next resumes the generator with the zero send value and returns
	// the next yielded value. It returns false once the generator has
	// terminated; the final value is then available from Result.
	Next() (Y, bool)

	// Send resumes the generator delivering v as the result of the
	// pending yield. Sending into a generator that has not started yet
	// starts it; the value is not observable by the body.
	Send(v S) (Y, bool)

	// Throw delivers err at the generator's suspension point. The body
	// may recover around a yield call and continue, or recover in a
	// deferred function and return normally; otherwise the generator
	// unwinds and err propagates to the caller as a panic carrying the
	// stack captured at the point of failure.
	Throw(err error) (Y, bool)

	// Close terminates the generator early by delivering ErrClosed at
	// its suspension point, running any deferred functions in the body.
	// Closing a finished generator is a no-op.
	Close()

	// Done reports whether the generator has terminated.
	Done() bool

	// Result returns the generator's final value. The second result is
	// false until the generator returns normally; it stays false after
	// a close or an unhandled fault.
	Result() (R, bool)
}

// Generable is anything that can produce a fresh generator iterator.
// Generator functions and reusable instances both qualify.
type Generable[Y, S, R any] interface {
	Iter() Generator[Y, S, R]
}

// GenFunc is a unary generator function: calling it constructs a new,
// not-yet-started generator. Functions of more than one parameter
// close over a struct, consistent with the reusable wrapper.
type GenFunc[A, Y, S, R any] func(A) Generator[Y, S, R]

// coroGen is the coroutine-backed Generator produced by New. The
// fields mirror the resume/cancel bookkeeping of a native coroutine:
// in/out carry the send and yield channels across the switch, thrown
// holds a fault waiting to be delivered at the suspension point, and
// perr holds a terminal fault re-raised on every later resumption.
type coroGen[Y, S, R any] struct {
	c        *coroutine
	in       S
	out      Y
	ret      R
	returned bool
	state    genState
	thrown   error
	perr     error
}

// New creates a generator from fn. The body does not run until the
// first resumption; each call to the yield parameter hands a value to
// the caller and pauses until the caller resumes, returning the value
// the caller sent. The body's return value becomes the generator's
// final value.
func New[Y, S, R any](fn func(yield func(Y) S) R) Generator[Y, S, R] {
	g := &coroGen[Y, S, R]{}
	g.c = newcoro(func(c *coroutine) {
		defer func() {
			if g.state != stateDone {
				if p := recover(); p != nil {
					g.perr = newFault(p)
				}
				g.state = stateDone
			}
		}()

		yield := func(v Y) S {
			if g.state == stateDone {
				panic(ErrClosed)
			}
			g.out = v
			g.state = stateSuspended
			coroswitch(c)
			if err := g.thrown; err != nil {
				g.thrown = nil
				panic(err)
			}
			return g.in
		}

		if g.perr == nil {
			g.ret = fn(yield)
			g.returned = true
		}
		g.state = stateDone
	})
	return g
}

func (g *coroGen[Y, S, R]) resume(v S) (Y, bool) {
	if g.perr != nil {
		panic(g.perr)
	}
	if g.state == stateDone {
		var zero Y
		return zero, false
	}
	g.in = v
	coroswitch(g.c)
	if g.perr != nil {
		panic(g.perr)
	}
	if g.state == stateDone {
		var zero Y
		return zero, false
	}
	return g.out, true
}

func (g *coroGen[Y, S, R]) Next() (Y, bool) {
	var zero S
	return g.resume(zero)
}

func (g *coroGen[Y, S, R]) Send(v S) (Y, bool) {
	return g.resume(v)
}

func (g *coroGen[Y, S, R]) Throw(err error) (Y, bool) {
	if g.perr != nil {
		panic(g.perr)
	}
	switch g.state {
	case stateDone:
		panic(newFault(err))
	case stateCreated:
		// The body never ran; unwind the coroutine without it.
		g.perr = newFault(err)
		coroswitch(g.c)
		panic(g.perr)
	}
	g.thrown = err
	coroswitch(g.c)
	if g.perr != nil {
		panic(g.perr)
	}
	if g.state == stateDone {
		var zero Y
		return zero, false
	}
	return g.out, true
}

func (g *coroGen[Y, S, R]) Close() {
	if g.state == stateDone {
		return
	}
	closing := fmt.Errorf("%w", ErrClosed)
	if g.state == stateCreated {
		g.perr = closing
		coroswitch(g.c)
		if g.perr != closing {
			panic(g.perr)
		}
		g.perr = nil
		return
	}
	g.thrown = closing
	coroswitch(g.c)
	if g.state != stateDone {
		panic(errors.New("gentools: generator ignored close"))
	}
	if g.perr != nil {
		if !errors.Is(g.perr, ErrClosed) {
			panic(g.perr)
		}
		g.perr = nil
	}
}

func (g *coroGen[Y, S, R]) Done() bool {
	return g.state == stateDone
}

func (g *coroGen[Y, S, R]) Result() (R, bool) {
	if !g.returned {
		var zero R
		return zero, false
	}
	return g.ret, true
}

// SendReturn sends v into a generator expected to terminate on that
// send, and returns its final value. A generator that yields again
// instead is reported as ErrNoReturn.
func SendReturn[Y, S, R any](g Generator[Y, S, R], v S) (R, error) {
	if _, more := g.Send(v); more {
		var zero R
		return zero, ErrNoReturn
	}
	r, _ := g.Result()
	return r, nil
}

// OneYield lifts a plain function into a generator function whose
// generators yield the function's result once and terminate with the
// value sent in reply.
func OneYield[A, Y, S any](fn func(A) Y) GenFunc[A, Y, S, S] {
	return func(a A) Generator[Y, S, S] {
		return New(func(yield func(Y) S) S {
			return yield(fn(a))
		})
	}
}
