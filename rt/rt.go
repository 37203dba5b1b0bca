/*
 * Copyright (c) 2022 The GoPlus Authors (goplus.org). All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package rt implements the primitives generated programs call for integer
// I/O and heap allocation. Every value crossing the boundary is an int64;
// heap addresses travel as Handles.
package rt

import (
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	DbgFlagAlloc = 1 << iota
	DbgFlagIO
	DbgFlagAll = DbgFlagAlloc | DbgFlagIO
)

var (
	debugAlloc bool
	debugIO    bool
)

func SetDebug(flags int) {
	debugAlloc = (flags & DbgFlagAlloc) != 0
	debugIO = (flags & DbgFlagIO) != 0
}

// DebugEnv names the environment variable a program can set to enable the
// debug output of its runtime, e.g. LIBEXE_DEBUG=alloc,io. Accepted words are
// alloc, io and all; a number is taken as a flag set.
const DebugEnv = "LIBEXE_DEBUG"

func parseDebug(s string) (flags int) {
	for _, word := range strings.Split(s, ",") {
		switch word = strings.TrimSpace(word); word {
		case "alloc":
			flags |= DbgFlagAlloc
		case "io":
			flags |= DbgFlagIO
		case "all":
			flags |= DbgFlagAll
		default:
			if v, err := strconv.Atoi(word); err == nil {
				flags |= v & DbgFlagAll
			}
		}
	}
	return
}

func init() {
	if s := os.Getenv(DebugEnv); s != "" {
		SetDebug(parseDebug(s))
	}
}

// -----------------------------------------------------------------------------

// An Allocator supplies heap blocks. Alloc returns 0 when the request cannot
// be satisfied.
type Allocator interface {
	Alloc(size uint64) Handle
	Free(h Handle) error
}

type Config struct {
	Stdin     io.Reader // default: os.Stdin
	Stdout    io.Writer // default: os.Stdout
	Allocator Allocator // default: NewMmapHeap(0) on unix, NewHeap(0) elsewhere

	// Strict makes Free panic on a handle the allocator reports as not live.
	Strict bool
}

type Runtime struct {
	in     *scanner
	out    io.Writer
	alloc  Allocator
	strict bool

	inmu  sync.Mutex // guards in
	outmu sync.Mutex // guards out

	mu  sync.Mutex
	err error
}

func New(conf *Config) *Runtime {
	if conf == nil {
		conf = new(Config)
	}
	in, out, alloc := conf.Stdin, conf.Stdout, conf.Allocator
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if alloc == nil {
		alloc = defaultAllocator()
	}
	return &Runtime{in: newScanner(in), out: out, alloc: alloc, strict: conf.Strict}
}

// Err returns the last failure a primitive swallowed, or nil.
func (p *Runtime) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Runtime) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

// Allocator returns the allocator p draws blocks from.
func (p *Runtime) Allocator() Allocator {
	return p.alloc
}

// -----------------------------------------------------------------------------

// PrintInt writes v in decimal followed by a newline.
func (p *Runtime) PrintInt(v int64) {
	var buf [24]byte
	b := strconv.AppendInt(buf[:0], v, 10)
	b = append(b, '\n')
	p.outmu.Lock()
	_, err := p.out.Write(b)
	p.outmu.Unlock()
	if err != nil {
		if debugIO {
			log.Println("rt.PrintInt:", v, err)
		}
		p.setErr(err)
	}
}

// ScanInt reads the next integer token. On failure it returns 0 (or the
// saturated value when out of range); the cause is available from Err.
func (p *Runtime) ScanInt() int64 {
	v, err := p.ReadInt()
	if err != nil {
		p.setErr(err)
	}
	return v
}

// ReadInt is ScanInt with the failure reported to the caller.
func (p *Runtime) ReadInt() (v int64, err error) {
	p.inmu.Lock()
	v, err = p.in.readInt()
	p.inmu.Unlock()
	if debugIO {
		log.Println("rt.ReadInt:", v, err)
	}
	return
}

// Malloc requests size bytes, size being taken as unsigned. It returns the
// block address, or 0 on failure.
func (p *Runtime) Malloc(size int64) int64 {
	h := p.alloc.Alloc(asUint64(size))
	if debugAlloc {
		log.Println("rt.Malloc:", size, "=>", h.Int64())
	}
	return h.Int64()
}

// Free releases a block obtained from Malloc. Free(0) does nothing.
func (p *Runtime) Free(h int64) {
	if h == 0 {
		return
	}
	if debugAlloc {
		log.Println("rt.Free:", h)
	}
	if err := p.alloc.Free(Handle(h)); err != nil {
		if p.strict {
			log.Panicln("rt.Free:", h, err)
		}
		p.setErr(err)
	}
}

// -----------------------------------------------------------------------------

var (
	defaultRT = New(nil)
)

// Default returns the runtime the package-level primitives use.
func Default() *Runtime {
	return defaultRT
}

// SetDefault replaces the runtime behind the package-level primitives and
// returns the previous one.
func SetDefault(p *Runtime) (old *Runtime) {
	old, defaultRT = defaultRT, p
	return
}

func PrintInt(v int64) {
	defaultRT.PrintInt(v)
}

func ScanInt() int64 {
	return defaultRT.ScanInt()
}

func Malloc(size int64) int64 {
	return defaultRT.Malloc(size)
}

func Free(h int64) {
	defaultRT.Free(h)
}

// -----------------------------------------------------------------------------
