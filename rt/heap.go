package rt

import (
	"errors"
	"log"
	"sync"
	"unsafe"
)

const (
	// maxBlockSize caps a single request so that a negative size reinterpreted
	// as uint64 fails with a 0 handle instead of taking the process down.
	maxBlockSize = 1 << 40
)

var (
	ErrInvalidFree = errors.New("free of a handle that is not live")
)

// -----------------------------------------------------------------------------

// blockTable is the liveness set shared by the allocators that can tell a
// live handle from a stale one.
type blockTable struct {
	mu     sync.Mutex
	blocks map[uintptr][]byte
	limit  uint64
	inuse  uint64
}

func (p *blockTable) init(limit uint64) {
	p.blocks = make(map[uintptr][]byte)
	p.limit = limit
}

// reserve reports the byte count to request from the host for size, or false
// if the request cannot be satisfied.
func (p *blockTable) reserve(size uint64) (n uint64, ok bool) {
	n = size
	if n == 0 {
		n = 1 // every live block needs a distinct address
	}
	if n > maxBlockSize {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.limit != 0 && p.inuse+n > p.limit {
		return
	}
	p.inuse += n
	return n, true
}

func (p *blockTable) unreserve(n uint64) {
	p.mu.Lock()
	p.inuse -= n
	p.mu.Unlock()
}

// add records a freshly obtained block of len n and returns its handle. The
// block's visible length is size.
func (p *blockTable) add(b []byte, size uint64) Handle {
	h := HandleOf(unsafe.Pointer(&b[0]))
	p.mu.Lock()
	p.blocks[h.addr()] = b[:size]
	p.mu.Unlock()
	return h
}

func (p *blockTable) remove(h Handle) (b []byte, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.blocks[h.addr()]
	if !ok {
		return nil, ErrInvalidFree
	}
	delete(p.blocks, h.addr())
	b = b[:cap(b)]
	p.inuse -= uint64(len(b))
	return b, nil
}

func (p *blockTable) get(h Handle) ([]byte, bool) {
	p.mu.Lock()
	b, ok := p.blocks[h.addr()]
	p.mu.Unlock()
	return b, ok
}

// Live returns the number of blocks not yet released.
func (p *blockTable) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.blocks)
}

// InUse returns the number of bytes held by live blocks.
func (p *blockTable) InUse() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inuse
}

// -----------------------------------------------------------------------------

// Heap is an Allocator backed by the Go heap. Live blocks are pinned by the
// heap itself, so their addresses stay valid until Free.
type Heap struct {
	blockTable
}

// NewHeap creates a Heap. A non-zero limit bounds the bytes held by live
// blocks; requests beyond it fail with a 0 handle.
func NewHeap(limit uint64) *Heap {
	p := new(Heap)
	p.init(limit)
	return p
}

func (p *Heap) Alloc(size uint64) Handle {
	n, ok := p.reserve(size)
	if !ok {
		if debugAlloc {
			log.Println("rt.Heap.Alloc: exhausted -", size)
		}
		return 0
	}
	return p.add(make([]byte, n), size)
}

func (p *Heap) Free(h Handle) error {
	if h.IsNil() {
		return nil
	}
	_, err := p.remove(h)
	return err
}

// Bytes returns the live block denoted by h.
func (p *Heap) Bytes(h Handle) ([]byte, bool) {
	return p.get(h)
}

// -----------------------------------------------------------------------------
