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

package libexe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/goplus/libexe/archive"
	"github.com/goplus/libexe/cl"
	"github.com/goplus/libexe/mod"
	"github.com/goplus/libexe/packages"
)

const (
	FlagRunApp = 1 << iota
	FlagRunTest
	FlagFailFast
	FlagBuildArchive
)

func isDir(name string) bool {
	if fi, err := os.Lstat(name); err == nil {
		return fi.IsDir()
	}
	return false
}

func isFile(name string) bool {
	if fi, err := os.Lstat(name); err == nil {
		return !fi.IsDir()
	}
	return false
}

type Config struct {
	// SelectDir restricts a recursive run (dir/...) to one sub-directory,
	// given relative to the root.
	SelectDir string
}

// Run binds the runtime primitives into the project in dir: it generates the
// forwarding functions described by dir's libexe.cfg (or libexe.yaml), then
// builds, runs or tests the program as flags ask. A dir ending in "/..."
// processes every project below it.
func Run(dir string, flags int, conf *Config) (err error) {
	if strings.HasSuffix(dir, "/...") {
		root := strings.TrimSuffix(dir, "/...")
		sel := ""
		if conf != nil && conf.SelectDir != "" {
			sel = filepath.Join(root, conf.SelectDir)
		}
		return execDirRecursively(root, sel, flags)
	}
	if !isDir(dir) {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return execDir(dir, flags)
}

func execDirRecursively(dir, sel string, flags int) (last error) {
	if strings.HasPrefix(filepath.Base(dir), "_") {
		return
	}
	if _, ok := findProj(dir); ok && (sel == "" || filepath.Clean(dir) == filepath.Clean(sel)) {
		var action string
		switch {
		case (flags & FlagRunTest) != 0:
			action = "Testing"
		case (flags & FlagRunApp) != 0:
			action = "Running"
		default:
			action = "Binding"
		}
		fmt.Printf("==> %s %s ...\n", action, dir)
		if e := execDir(dir, flags); e != nil {
			if (flags & FlagFailFast) != 0 {
				return e
			}
			last = e
		}
	}

	fis, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, fi := range fis {
		if fi.IsDir() {
			pkgDir := filepath.Join(dir, fi.Name())
			if e := execDirRecursively(pkgDir, sel, flags); e != nil {
				if (flags & FlagFailFast) != 0 {
					return e
				}
				last = e
			}
		}
	}
	return
}

func execDir(dir string, flags int) (err error) {
	if (flags & FlagFailFast) == 0 {
		defer func() {
			if e := recover(); e != nil {
				err = newError(e)
			}
		}()
	}

	projfile, ok := findProj(dir)
	if !ok {
		fatalf("no %s in %s.\n", projFile, dir)
	}
	conf, err := loadProj(projfile)
	check(err)

	pkg, err := mod.Load(dir)
	check(err)

	bind, err := cl.NewPackage(pkg.PkgPath, conf.Pkg, &cl.Config{
		Importer: packages.NewImporter(nil, "", pkg.Dir),
		Names:    conf.Names,
	})
	check(err)

	err = bind.WriteFile(conf.path(conf.Out))
	check(err)

	if (flags & FlagBuildArchive) != 0 {
		err = archive.Do(conf.path(conf.Archive), &archive.Config{BaseDir: pkg.Dir})
		check(err)
	}

	if (flags & FlagRunTest) != 0 {
		runTest(pkg.Dir, conf)
	} else if (flags & FlagRunApp) != 0 {
		runGoApp(pkg.Dir, os.Stdin, os.Stdout, os.Stderr)
	}
	return
}

func checkEqual(prompt string, a, expected []byte) {
	if bytes.Equal(a, expected) {
		return
	}

	fmt.Fprintln(os.Stderr, "=> Result of", prompt)
	os.Stderr.Write(a)

	fmt.Fprintln(os.Stderr, "\n=> Expected", prompt)
	os.Stderr.Write(expected)

	fatal(errors.New("checkEqual: unexpected " + prompt))
}

func cleanEndLine(data []byte) []byte {
	return bytes.ReplaceAll(data, []byte{'\r', '\n'}, []byte{'\n'})
}

func runTest(dir string, conf *exeConf) {
	var input io.Reader = bytes.NewReader(nil)
	if conf.Input != "" {
		b, err := os.ReadFile(conf.path(conf.Input))
		check(err)
		input = bytes.NewReader(b)
	}
	expected, err := os.ReadFile(conf.path(conf.Expect))
	check(err)

	var goOut, goErr bytes.Buffer
	runGoApp(dir, input, &goOut, &goErr)
	checkEqual("output", goOut.Bytes(), cleanEndLine(expected))
}

func runGoApp(dir string, stdin io.Reader, stdout, stderr io.Writer) {
	cmd := exec.Command("go", "run", ".")
	cmd.Dir = dir
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	checkWith(cmd.Run(), stdout, stderr)
}

func check(err error) {
	if err != nil {
		fatal(err)
	}
}

func checkWith(err error, stdout, stderr io.Writer) {
	if err != nil {
		fatalWith(err, stdout, stderr)
	}
}

func fatalf(format string, args ...interface{}) {
	fatal(fmt.Errorf(format, args...))
}

func fatal(err error) {
	log.Panicln(err)
}

func fatalWith(err error, stdout, stderr io.Writer) {
	if o, ok := getBytes(stdout, stderr); ok {
		os.Stderr.Write(o.Bytes())
	}
	log.Panicln(err)
}

func newError(v interface{}) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	}
	fatalf("newError failed: %v", v)
	return nil
}

type iBytes interface {
	Bytes() []byte
}

func getBytes(stdout, stderr io.Writer) (o iBytes, ok bool) {
	if o, ok = stderr.(iBytes); ok {
		return
	}
	o, ok = stdout.(iBytes)
	return
}
