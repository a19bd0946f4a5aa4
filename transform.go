package gentools

// This file holds the channel transforms: each wraps a generator
// iterator and reshapes one of its three channels (yield, send,
// return), or routes the yield/send interaction through nested
// generators. The wrappers are plain delegating state machines; only
// New touches the runtime. Every transform expects a generator that
// has not been started yet, and transforms stack in any order, with
// the transform nearest the original generator applied first.

// YieldMapped returns a generator that passes every value g yields
// through fn before yielding it onward. Send, throw, close, and the
// final value pass through untouched.
func YieldMapped[Y, M, S, R any](g Generator[Y, S, R], fn func(Y) M) Generator[M, S, R] {
	return &yieldMapped[Y, M, S, R]{g: g, fn: fn}
}

type yieldMapped[Y, M, S, R any] struct {
	g  Generator[Y, S, R]
	fn func(Y) M
}

func (m *yieldMapped[Y, M, S, R]) Next() (M, bool)           { return m.outbound(m.g.Next()) }
func (m *yieldMapped[Y, M, S, R]) Send(v S) (M, bool)        { return m.outbound(m.g.Send(v)) }
func (m *yieldMapped[Y, M, S, R]) Throw(err error) (M, bool) { return m.outbound(m.g.Throw(err)) }
func (m *yieldMapped[Y, M, S, R]) Close()                    { m.g.Close() }
func (m *yieldMapped[Y, M, S, R]) Done() bool                { return m.g.Done() }
func (m *yieldMapped[Y, M, S, R]) Result() (R, bool)         { return m.g.Result() }

func (m *yieldMapped[Y, M, S, R]) outbound(v Y, ok bool) (M, bool) {
	if !ok {
		var zero M
		return zero, false
	}
	return m.fn(v), true
}

// SendMapped returns a generator that passes every value sent in
// through fn before forwarding it to g. Yields, throws, close, and
// the final value pass through untouched.
func SendMapped[Y, T, S, R any](g Generator[Y, S, R], fn func(T) S) Generator[Y, T, R] {
	return &sendMapped[Y, T, S, R]{g: g, fn: fn}
}

type sendMapped[Y, T, S, R any] struct {
	g  Generator[Y, S, R]
	fn func(T) S
}

func (m *sendMapped[Y, T, S, R]) Next() (Y, bool)           { return m.g.Next() }
func (m *sendMapped[Y, T, S, R]) Send(v T) (Y, bool)        { return m.g.Send(m.fn(v)) }
func (m *sendMapped[Y, T, S, R]) Throw(err error) (Y, bool) { return m.g.Throw(err) }
func (m *sendMapped[Y, T, S, R]) Close()                    { m.g.Close() }
func (m *sendMapped[Y, T, S, R]) Done() bool                { return m.g.Done() }
func (m *sendMapped[Y, T, S, R]) Result() (R, bool)         { return m.g.Result() }

// ReturnMapped returns a generator whose final value is fn applied to
// g's final value. The mapping happens once, on the first Result call
// after a normal return; a generator that was closed or unwound never
// has its non-value mapped.
func ReturnMapped[Y, S, R, M any](g Generator[Y, S, R], fn func(R) M) Generator[Y, S, M] {
	return &returnMapped[Y, S, R, M]{g: g, fn: fn}
}

type returnMapped[Y, S, R, M any] struct {
	g      Generator[Y, S, R]
	fn     func(R) M
	mapped bool
	ret    M
}

func (m *returnMapped[Y, S, R, M]) Next() (Y, bool)           { return m.g.Next() }
func (m *returnMapped[Y, S, R, M]) Send(v S) (Y, bool)        { return m.g.Send(v) }
func (m *returnMapped[Y, S, R, M]) Throw(err error) (Y, bool) { return m.g.Throw(err) }
func (m *returnMapped[Y, S, R, M]) Close()                    { m.g.Close() }
func (m *returnMapped[Y, S, R, M]) Done() bool                { return m.g.Done() }

func (m *returnMapped[Y, S, R, M]) Result() (M, bool) {
	if !m.mapped {
		r, ok := m.g.Result()
		if !ok {
			var zero M
			return zero, false
		}
		m.ret = m.fn(r)
		m.mapped = true
	}
	return m.ret, true
}

// Relayed routes the yield/send interaction of g through nested
// generators constructed by thru. Each value g yields starts a fresh
// nested generator; its yields face the external caller, sends from
// the caller go to it, and its final value is the reply sent into g.
// When g terminates, its final value becomes the relayed generator's
// final value and any active nested generator is abandoned.
func Relayed[Y, S, Y2, S2, R any](g Generator[Y, S, R], thru func(Y) Generator[Y2, S2, S]) Generator[Y2, S2, R] {
	return &relayed[Y, S, Y2, S2, R]{inner: g, thru: thru}
}

type relayed[Y, S, Y2, S2, R any] struct {
	inner  Generator[Y, S, R]
	thru   func(Y) Generator[Y2, S2, S]
	nested Generator[Y2, S2, S] // the active party when non-nil
	done   bool
}

// pump advances the protocol after the inner generator was resumed:
// it starts nested generators until one of them yields, or the inner
// generator completes.
func (r *relayed[Y, S, Y2, S2, R]) pump(v Y, ok bool) (Y2, bool) {
	for ok {
		nested := r.thru(v)
		y, more := nested.Next()
		if more {
			r.nested = nested
			return y, true
		}
		reply, _ := nested.Result()
		v, ok = r.inner.Send(reply)
	}
	r.nested = nil
	r.done = true
	var zero Y2
	return zero, false
}

// settle hands the completed nested generator's final value to the
// inner generator as the reply to its pending yield.
func (r *relayed[Y, S, Y2, S2, R]) settle() (Y2, bool) {
	reply, _ := r.nested.Result()
	r.nested = nil
	return r.pump(r.inner.Send(reply))
}

func (r *relayed[Y, S, Y2, S2, R]) Next() (Y2, bool) {
	if r.done {
		var zero Y2
		return zero, false
	}
	if r.nested == nil {
		return r.pump(r.inner.Next())
	}
	y, more := r.nested.Next()
	if more {
		return y, true
	}
	return r.settle()
}

func (r *relayed[Y, S, Y2, S2, R]) Send(v S2) (Y2, bool) {
	if r.done {
		var zero Y2
		return zero, false
	}
	if r.nested == nil {
		// Not started yet; the value is not observable, as with Send
		// on any fresh generator.
		return r.pump(r.inner.Next())
	}
	y, more := r.nested.Send(v)
	if more {
		return y, true
	}
	return r.settle()
}

func (r *relayed[Y, S, Y2, S2, R]) Throw(err error) (Y2, bool) {
	if r.done {
		panic(newFault(err))
	}
	if r.nested != nil {
		y, more := r.nested.Throw(err)
		if more {
			return y, true
		}
		return r.settle()
	}
	return r.pump(r.inner.Throw(err))
}

func (r *relayed[Y, S, Y2, S2, R]) Close() {
	if r.done {
		return
	}
	if r.nested != nil {
		r.nested.Close()
		r.nested = nil
	}
	r.inner.Close()
	r.done = true
}

func (r *relayed[Y, S, Y2, S2, R]) Done() bool {
	return r.done
}

func (r *relayed[Y, S, Y2, S2, R]) Result() (R, bool) {
	return r.inner.Result()
}

// MapYield returns a decorator applying fn to every value yielded by
// generators of the wrapped generator function.
func MapYield[A, Y, M, S, R any](fn func(Y) M) func(GenFunc[A, Y, S, R]) GenFunc[A, M, S, R] {
	return func(gf GenFunc[A, Y, S, R]) GenFunc[A, M, S, R] {
		return func(a A) Generator[M, S, R] {
			return YieldMapped(gf(a), fn)
		}
	}
}

// MapSend returns a decorator applying fn to every value sent into
// generators of the wrapped generator function.
func MapSend[A, Y, T, S, R any](fn func(T) S) func(GenFunc[A, Y, S, R]) GenFunc[A, Y, T, R] {
	return func(gf GenFunc[A, Y, S, R]) GenFunc[A, Y, T, R] {
		return func(a A) Generator[Y, T, R] {
			return SendMapped(gf(a), fn)
		}
	}
}

// MapReturn returns a decorator applying fn to the final value of
// generators of the wrapped generator function.
func MapReturn[A, Y, S, R, M any](fn func(R) M) func(GenFunc[A, Y, S, R]) GenFunc[A, Y, S, M] {
	return func(gf GenFunc[A, Y, S, R]) GenFunc[A, Y, S, M] {
		return func(a A) Generator[Y, S, M] {
			return ReturnMapped(gf(a), fn)
		}
	}
}

// Relay returns a decorator routing the yield/send interaction of
// generators of the wrapped generator function through nested
// generators constructed by thru.
func Relay[A, Y, S, Y2, S2, R any](thru func(Y) Generator[Y2, S2, S]) func(GenFunc[A, Y, S, R]) GenFunc[A, Y2, S2, R] {
	return func(gf GenFunc[A, Y, S, R]) GenFunc[A, Y2, S2, R] {
		return func(a A) Generator[Y2, S2, R] {
			return Relayed(gf(a), thru)
		}
	}
}

// Compose composes two functions. The first argument is applied last,
// outermost: Compose(f, g)(x) == f(g(x)). Decorators are functions,
// so Compose(d2, d1)(gf) wraps gf with d1 first and d2 around it.
func Compose[A, B, C any](f func(B) C, g func(A) B) func(A) C {
	return func(a A) C {
		return f(g(a))
	}
}

// Compose3 composes three functions, first argument outermost.
func Compose3[A, B, C, D any](f func(C) D, g func(B) C, h func(A) B) func(A) D {
	return func(a A) D {
		return f(g(h(a)))
	}
}

// Identity returns its argument unchanged.
func Identity[T any](v T) T {
	return v
}
