//go:build unix
// +build unix

package rt

import (
	"log"

	"golang.org/x/sys/unix"
)

// -----------------------------------------------------------------------------

// defaultAllocator is used when Config.Allocator is nil.
func defaultAllocator() Allocator {
	return NewMmapHeap(0)
}

// MmapHeap is an Allocator handing out anonymous private mappings. Blocks live
// outside the Go heap, so their handles may be passed to foreign code.
type MmapHeap struct {
	blockTable
}

// NewMmapHeap creates a MmapHeap; limit works as for NewHeap.
func NewMmapHeap(limit uint64) *MmapHeap {
	p := new(MmapHeap)
	p.init(limit)
	return p
}

func (p *MmapHeap) Alloc(size uint64) Handle {
	n, ok := p.reserve(size)
	if !ok {
		if debugAlloc {
			log.Println("rt.MmapHeap.Alloc: exhausted -", size)
		}
		return 0
	}
	const (
		prot  = unix.PROT_READ | unix.PROT_WRITE
		flags = unix.MAP_ANON | unix.MAP_PRIVATE
	)
	b, err := unix.Mmap(-1, 0, int(n), prot, flags)
	if err != nil {
		if debugAlloc {
			log.Println("rt.MmapHeap.Alloc:", size, err)
		}
		p.unreserve(n)
		return 0
	}
	return p.add(b, size)
}

func (p *MmapHeap) Free(h Handle) error {
	if h.IsNil() {
		return nil
	}
	b, err := p.remove(h)
	if err != nil {
		return err
	}
	return unix.Munmap(b)
}

// Bytes returns the live block denoted by h.
func (p *MmapHeap) Bytes(h Handle) ([]byte, bool) {
	return p.get(h)
}

// -----------------------------------------------------------------------------
