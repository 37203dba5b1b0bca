// Package mod locates directories inside their Go module.
package mod

import (
	"path"
	"path/filepath"

	"github.com/goplus/mod/gopmod"
	"github.com/qiniu/x/errors"
)

var (
	ErrGoModNotFound = errors.New("go.mod not found")
)

type Module = gopmod.Module

// Package is a directory resolved against the module that contains it.
type Package struct {
	Mod     *Module
	Dir     string // absolute local path of the package
	PkgPath string // import path of the package
}

// Load finds the module enclosing dir and computes dir's import path.
func Load(dir string) (p *Package, err error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		err = errors.NewWith(err, `filepath.Abs(dir)`, -2, "filepath.Abs", dir)
		return
	}
	mod, err := gopmod.Load(absDir)
	if err != nil {
		err = errors.NewWith(err, `gopmod.Load(absDir)`, -2, "gopmod.Load", absDir)
		return
	}
	return Resolve(mod, absDir)
}

// Resolve computes the import path of absDir inside mod.
func Resolve(mod *Module, absDir string) (p *Package, err error) {
	if mod == nil {
		return nil, ErrGoModNotFound
	}
	rel, err := filepath.Rel(mod.Root(), absDir)
	if err != nil {
		err = errors.NewWith(err, `filepath.Rel(mod.Root(), absDir)`, -2, "filepath.Rel", mod.Root(), absDir)
		return
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || len(rel) > 3 && rel[:3] == "../" {
		return nil, ErrGoModNotFound
	}
	return &Package{Mod: mod, Dir: absDir, PkgPath: path.Join(mod.Path(), rel)}, nil
}
