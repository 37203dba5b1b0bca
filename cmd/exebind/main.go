package main

import (
	"flag"
	"fmt"
	"os"

	exebind "github.com/goplus/libexe/cmd/exebind/impl"
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, exebind.ShortUsage)
		flag.PrintDefaults()
	}
	if err := exebind.Main(flag.CommandLine, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
