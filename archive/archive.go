// Package archive builds the C archive native generated code links against.
package archive

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	DbgFlagExecCmd = 1 << iota
	DbgFlagAll     = DbgFlagExecCmd
)

var (
	debugExecCmd bool
)

func SetDebug(flags int) {
	debugExecCmd = (flags & DbgFlagExecCmd) != 0
}

const (
	// PkgPath is the package exporting the primitives under their C names.
	PkgPath = "github.com/goplus/libexe/cmd/libexe"
)

// -----------------------------------------------------------------------------

type Config struct {
	GoCmd   string   // default: go
	Pkg     string   // default: PkgPath
	BaseDir string   // directory go build runs in, default: current directory
	Tags    []string // build tags
	Flags   []string // extra go build flags
	Env     []string // extra environment, e.g. CC=clang
}

// Args returns the go command line building outfile.
func (conf *Config) Args(outfile string) []string {
	pkg := conf.Pkg
	if pkg == "" {
		pkg = PkgPath
	}
	args := make([]string, 0, 7+len(conf.Flags))
	args = append(args, "build", "-buildmode=c-archive", "-o", outfile)
	if len(conf.Tags) > 0 {
		args = append(args, "-tags", strings.Join(conf.Tags, ","))
	}
	args = append(args, conf.Flags...)
	return append(args, pkg)
}

// Do builds the archive outfile together with its C header (outfile with the
// extension replaced by .h, written by the go tool).
func Do(outfile string, conf *Config) (err error) {
	if outfile, err = filepath.Abs(outfile); err != nil {
		return
	}
	if conf == nil {
		conf = new(Config)
	}
	gocmd := conf.GoCmd
	if gocmd == "" {
		gocmd = "go"
	}
	args := conf.Args(outfile)
	if debugExecCmd {
		log.Println("==> runCmd:", gocmd, args)
	}
	cmd := exec.Command(gocmd, args...)
	cmd.Dir = conf.BaseDir
	cmd.Env = append(os.Environ(), "CGO_ENABLED=1")
	cmd.Env = append(cmd.Env, conf.Env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// HeaderOf returns the header file the go tool writes next to outfile.
func HeaderOf(outfile string) string {
	return strings.TrimSuffix(outfile, filepath.Ext(outfile)) + ".h"
}

// -----------------------------------------------------------------------------
