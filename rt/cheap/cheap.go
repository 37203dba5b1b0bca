// Package cheap provides an rt.Allocator backed by the C heap.
package cheap

/*
#include <stdlib.h>

// exe_malloc reports failure as NULL. A direct C.malloc call aborts the
// process instead.
static void *exe_malloc(size_t n) { return malloc(n); }
*/
import "C"

import (
	"unsafe"

	"github.com/goplus/libexe/rt"
)

// Heap hands out blocks from C malloc. It keeps no liveness information:
// releasing a handle twice, or one it never returned, is undefined.
type Heap struct{}

func New() Heap {
	return Heap{}
}

// Alloc returns 0 when malloc fails.
func (Heap) Alloc(size uint64) rt.Handle {
	return rt.HandleOf(C.exe_malloc(C.size_t(size)))
}

func (Heap) Free(h rt.Handle) error {
	C.free(pointerOf(h))
	return nil
}

// Bytes views n bytes of the block at h.
func (Heap) Bytes(h rt.Handle, n int) []byte {
	if h.IsNil() {
		return nil
	}
	return unsafe.Slice((*byte)(pointerOf(h)), n)
}

func pointerOf(h rt.Handle) unsafe.Pointer {
	return unsafe.Pointer(uintptr(h.Int64()))
}
