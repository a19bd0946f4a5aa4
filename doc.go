// Package gentools provides generator iterators for Go and a small
// set of combinators for working with them: making generator
// functions reusable, and transforming the three channels through
// which a generator interacts with its caller: the values it yields,
// the values sent into it, and the final value it returns.
//
// A generator is created with New, which takes a body function. Each
// call to the body's yield parameter hands a value to the caller and
// pauses until the caller resumes the generator with Next or Send;
// the value passed to Send becomes yield's return value. When the
// body returns, the generator terminates and its return value is
// available from Result. Generators are backed by native runtime
// coroutines, so suspension and resumption involve no goroutines and
// no channels.
//
// The channel transforms (YieldMapped, SendMapped, ReturnMapped, and
// Relayed, with their decorator forms MapYield, MapSend, MapReturn,
// and Relay) wrap a generator without altering its internal control
// flow. They stack in any order; the transform nearest the original
// generator applies first. Relayed is the general form: it interposes
// a nested generator between the caller and the wrapped generator, so
// a sub-protocol can handle each yielded value before a reply is sent
// back in.
//
// Reusable wraps a generator function so that one set of bound
// arguments can be iterated any number of times, with every iteration
// starting a fresh generator. Bound arguments are inspectable by
// name, and Replace derives a new instance with some of them
// substituted.
//
// Faults raised inside a generator body propagate to the resuming
// caller as panics carrying the stack captured at the point of
// failure; the library catches nothing on its own. Throw injects a
// fault at a generator's suspension point, and Close ends a generator
// early by injecting ErrClosed, running the body's deferred
// functions.
package gentools
