// Command libexe is built with -buildmode=c-archive. It exports the runtime
// primitives under the C names generated native code links against:
//
//	void    print_int(int64_t a);
//	int64_t scan_int(void);
//	int64_t malloc_exe(int64_t size);
//	void    free_exe(int64_t pointer);
package main

// #include <stdint.h>
import "C"

import (
	"github.com/goplus/libexe/abi"
	"github.com/goplus/libexe/rt"
	"github.com/goplus/libexe/rt/cheap"
)

var (
	exe = rt.New(&rt.Config{Allocator: cheap.New()})
)

//export print_int
func print_int(a C.int64_t) {
	exe.PrintInt(abi.Long(a))
}

//export scan_int
func scan_int() C.int64_t {
	return C.int64_t(exe.ScanInt())
}

//export malloc_exe
func malloc_exe(size C.int64_t) C.int64_t {
	return C.int64_t(exe.Malloc(abi.Long(size)))
}

//export free_exe
func free_exe(pointer C.int64_t) {
	exe.Free(abi.Long(pointer))
}

func main() {}
