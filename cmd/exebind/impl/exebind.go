package exebind

import (
	"flag"
	"fmt"
	"os"

	"github.com/goplus/gox"
	"github.com/goplus/libexe"
	"github.com/goplus/libexe/archive"
	"github.com/goplus/libexe/cl"
)

const ShortUsage = "Usage: exebind [-test -run -archive -ff -v -sel dir] dir|dir/...\n"

// Main parses args with flag and runs the binder. It returns the error of the
// last failing project.
func Main(flag *flag.FlagSet, args []string) error {
	var (
		verbose  = flag.Bool("v", false, "print verbose information")
		failfast = flag.Bool("ff", false, "fail fast (stop if an error is encountered)")
		test     = flag.Bool("test", false, "run the program and compare its output with the expected one")
		run      = flag.Bool("run", false, "run the program")
		arch     = flag.Bool("archive", false, "build the C archive exporting the primitives")
		sel      = flag.String("sel", "", "select a directory (only available in dir/... mode)")
	)
	if err := flag.Parse(args); err != nil {
		return err
	}
	if flag.NArg() != 1 {
		fmt.Fprint(os.Stderr, ShortUsage)
		flag.PrintDefaults()
		return nil
	}
	dir := flag.Arg(0)

	if *verbose {
		cl.SetDebug(cl.DbgFlagAll)
		archive.SetDebug(archive.DbgFlagAll)
		gox.SetDebug(gox.DbgFlagInstruction)
	}
	var flags int
	if *test {
		flags |= libexe.FlagRunTest
	}
	if *run {
		flags |= libexe.FlagRunApp
	}
	if *arch {
		flags |= libexe.FlagBuildArchive
	}
	if *failfast {
		flags |= libexe.FlagFailFast
	}
	var conf *libexe.Config
	if *sel != "" {
		conf = &libexe.Config{SelectDir: *sel}
	}
	return libexe.Run(dir, flags, conf)
}
