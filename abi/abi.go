// Package abi describes the boundary between generated code and the runtime
// primitives: which foreign names exist and what they map to.
package abi

import (
	"sort"
)

// -----------------------------------------------------------------------------

// Primitive identifies one boundary operation. Its String form is the name of
// the implementing function in package rt.
type Primitive int

const (
	Invalid Primitive = iota
	PrintInt
	ScanInt
	Malloc
	Free
)

type primInfo struct {
	name    string
	params  []string
	results int
}

var prims = [...]primInfo{
	Invalid:  {name: "Invalid"},
	PrintInt: {name: "PrintInt", params: []string{"a"}},
	ScanInt:  {name: "ScanInt", results: 1},
	Malloc:   {name: "Malloc", params: []string{"size"}, results: 1},
	Free:     {name: "Free", params: []string{"pointer"}},
}

func (p Primitive) info() *primInfo {
	if p < 0 || int(p) >= len(prims) {
		return &prims[Invalid]
	}
	return &prims[p]
}

func (p Primitive) String() string {
	return p.info().name
}

// Params returns the parameter names of p. Every parameter is an int64.
func (p Primitive) Params() []string {
	return p.info().params
}

// Results returns the number of int64 results of p (0 or 1).
func (p Primitive) Results() int {
	return p.info().results
}

// -----------------------------------------------------------------------------

// CNames are the symbols exported by the C archive.
var CNames = []string{"print_int", "scan_int", "malloc_exe", "free_exe"}

var foreign = map[string]Primitive{
	"print_int":  PrintInt,
	"scan_int":   ScanInt,
	"malloc_exe": Malloc,
	"free_exe":   Free,

	// names the front end declares for its standard library
	"malloc": Malloc,
	"free":   Free,
}

// Lookup returns the primitive a foreign name is bound to.
func Lookup(name string) (p Primitive, ok bool) {
	p, ok = foreign[name]
	return
}

// Names returns every known foreign name in sorted order.
func Names() []string {
	ret := make([]string, 0, len(foreign))
	for name := range foreign {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// -----------------------------------------------------------------------------
