/*
 Copyright 2022 The GoPlus Authors (goplus.org)
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at
     http://www.apache.org/licenses/LICENSE-2.0
 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package packages

import (
	"bytes"
	"errors"
	"go/token"
	"go/types"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/tools/go/gcexportdata"
)

// ----------------------------------------------------------------------------

// Importer loads packages from the export data `go list -export` reports.
// It meets the types.ImporterFrom interface.
type Importer struct {
	loaded  map[string]*types.Package
	exports map[string]string // pkgPath => export file
	fset    *token.FileSet
	tags    string
	dir     string
}

// NewImporter creates an Importer running `go list` in workDir (default: the
// current directory) with the given build tags.
func NewImporter(fset *token.FileSet, tags string, workDir ...string) *Importer {
	dir := ""
	if len(workDir) > 0 {
		dir = workDir[0]
	}
	if fset == nil {
		fset = token.NewFileSet()
	}
	loaded := make(map[string]*types.Package)
	loaded["unsafe"] = types.Unsafe
	exports := make(map[string]string)
	return &Importer{loaded: loaded, exports: exports, fset: fset, tags: tags, dir: dir}
}

func (p *Importer) Import(pkgPath string) (*types.Package, error) {
	return p.ImportFrom(pkgPath, p.dir, 0)
}

// ImportFrom returns the package pkgPath as imported from dir. Packages are
// cached, so two calls with the same path return the same package.
func (p *Importer) ImportFrom(pkgPath, dir string, mode types.ImportMode) (*types.Package, error) {
	if ret, ok := p.loaded[pkgPath]; ok && ret.Complete() {
		return ret, nil
	}
	expfile, ok := p.exports[pkgPath]
	if !ok {
		if dir == "" {
			dir = p.dir
		}
		if err := p.Preload(dir, pkgPath); err != nil {
			return nil, err
		}
		expfile = p.exports[pkgPath]
	}
	return p.loadByExport(expfile, pkgPath)
}

// Preload locates the export data of several packages with one `go list`.
func (p *Importer) Preload(dir string, pkgPaths ...string) error {
	data, err := golistExport(dir, p.tags, pkgPaths...)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if pkgPath, expfile, ok := strings.Cut(line, " "); ok {
			p.exports[pkgPath] = expfile
		}
	}
	return nil
}

func (p *Importer) loadByExport(expfile string, pkgPath string) (pkg *types.Package, err error) {
	f, err := os.Open(expfile)
	if err != nil {
		return
	}
	defer f.Close()

	r, err := gcexportdata.NewReader(f)
	if err == nil {
		pkg, err = gcexportdata.Read(r, p.fset, p.loaded, pkgPath)
	}
	return
}

// ----------------------------------------------------------------------------

// FindExport lookups the export file (.a) of a package by its pkgPath.
func FindExport(dir, pkgPath string, tags string) (expfile string, err error) {
	data, err := golistExport(dir, tags, pkgPath)
	if err != nil {
		return
	}
	_, expfile, _ = strings.Cut(string(bytes.TrimSuffix(data, []byte{'\n'})), " ")
	return
}

func golistExport(dir string, tags string, pkgPaths ...string) (ret []byte, err error) {
	var stdout, stderr bytes.Buffer
	var args = []string{"list"}
	if len(tags) > 0 {
		args = append(args, "--tags", tags)
	}
	args = append(args, "-f={{.ImportPath}} {{.Export}}", "-export")
	args = append(args, pkgPaths...)
	cmd := exec.Command("go", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = dir
	err = cmd.Run()
	if err == nil {
		ret = stdout.Bytes()
	} else if stderr.Len() > 0 {
		err = errors.New(stderr.String())
	}
	return
}

// ----------------------------------------------------------------------------
