//go:build unix
// +build unix

package rt

import (
	"testing"
)

func TestMmapHeap(t *testing.T) {
	testAllocator(t, "MmapHeap", NewMmapHeap(0))
}

func TestMmapHeapRuntime(t *testing.T) {
	heap := NewMmapHeap(1 << 20)
	p, _ := newTestRT("", heap)
	h := p.Malloc(4096)
	if h == 0 {
		t.Fatal("Malloc(4096) failed")
	}
	if p.Malloc(1<<20) != 0 {
		t.Fatal("Malloc beyond limit succeeded")
	}
	p.Free(h)
	if err := p.Err(); err != nil {
		t.Fatal("Free:", err)
	}
}

func TestDefaultAllocator(t *testing.T) {
	p := New(nil)
	if _, ok := p.Allocator().(*MmapHeap); !ok {
		t.Fatal("default allocator:", p.Allocator())
	}
}

func TestMallocHuge(t *testing.T) {
	p := New(nil)
	h := p.Malloc(maxBlockSize)
	if h != 0 {
		p.Free(h)
		t.Skip("host overcommits a 1 TiB mapping")
	}
	if err := p.Err(); err != nil {
		t.Fatal("Malloc(1 TiB):", err)
	}
}
