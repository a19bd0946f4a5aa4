package gentools

import (
	"unsafe"
)

var _ unsafe.Pointer

// coroutine represents a native Go coroutine instance. It's an opaque
// struct used by the runtime functions.
type coroutine struct{}

//go:linkname newcoro runtime.newcoro
func newcoro(func(*coroutine)) *coroutine

//go:linkname coroswitch runtime.coroswitch
func coroswitch(*coroutine)
