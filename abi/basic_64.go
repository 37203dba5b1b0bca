//go:build amd64 || amd64p32 || arm64 || arm64be || ppc64 || ppc64le || mips64 || mips64le || mips64p32 || mips64p32le || s390x || sparc64 || riscv64 || loong64
// +build amd64 amd64p32 arm64 arm64be ppc64 ppc64le mips64 mips64le mips64p32 mips64p32le s390x sparc64 riscv64 loong64

package abi

// Handles are addresses stored in an int64, so only 64-bit targets are
// supported.

// Long is the C type of every value crossing the boundary (int64_t).
type Long = int64
