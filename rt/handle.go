package rt

import (
	"unsafe"
)

// -----------------------------------------------------------------------------

// Handle is a heap address as generated code sees it: a plain 64-bit integer.
// Handle(0) denotes no block.
type Handle int64

// HandleOf encodes the address p as a Handle.
func HandleOf(p unsafe.Pointer) Handle {
	return Handle(int64(uintptr(p)))
}

// Int64 returns the boundary representation of h.
func (h Handle) Int64() int64 {
	return int64(h)
}

// IsNil reports whether h denotes no block.
func (h Handle) IsNil() bool {
	return h == 0
}

// addr is the key used by liveness tables. It is never turned back into a
// pointer.
func (h Handle) addr() uintptr {
	return uintptr(h)
}

// -----------------------------------------------------------------------------

// asUint64 reinterprets the bit pattern of a signed size request.
func asUint64(v int64) uint64 {
	return uint64(v)
}

// -----------------------------------------------------------------------------
