package gentools

import (
	"iter"
)

// Values returns a pull-only view of g's yield channel, resuming with
// the zero send value each time. Breaking out of the loop early
// closes the generator.
func Values[Y, S, R any](g Generator[Y, S, R]) iter.Seq[Y] {
	return func(yield func(Y) bool) {
		for v, ok := g.Next(); ok; v, ok = g.Next() {
			if !yield(v) {
				g.Close()
				return
			}
		}
	}
}

// Collect drains g with zero sends and returns everything it yielded
// along with its final value.
func Collect[Y, S, R any](g Generator[Y, S, R]) ([]Y, R) {
	var out []Y
	for v, ok := g.Next(); ok; v, ok = g.Next() {
		out = append(out, v)
	}
	r, _ := g.Result()
	return out, r
}

// FromSeq lifts a stdlib sequence into a generator. Sent values are
// discarded and the final value is the zero R.
func FromSeq[Y, S, R any](seq iter.Seq[Y]) Generator[Y, S, R] {
	return New(func(yield func(Y) S) R {
		for v := range seq {
			yield(v)
		}
		var zero R
		return zero
	})
}

// FromSlice lifts a slice into a generator yielding its elements in
// order.
func FromSlice[Y, S, R any](items []Y) Generator[Y, S, R] {
	return FromSeq[Y, S, R](func(yield func(Y) bool) {
		for _, v := range items {
			if !yield(v) {
				break
			}
		}
	})
}
