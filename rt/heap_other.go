//go:build !unix
// +build !unix

package rt

func defaultAllocator() Allocator {
	return NewHeap(0)
}
