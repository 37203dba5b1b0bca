package cl

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"io"
	"log"

	"github.com/goplus/gox"
	"github.com/goplus/libexe/abi"
	"github.com/goplus/libexe/packages"
)

const (
	DbgFlagBind = 1 << iota
	DbgFlagAll  = DbgFlagBind
)

var (
	debugBind bool
)

func SetDebug(flags int) {
	debugBind = (flags & DbgFlagBind) != 0
}

var (
	ErrUnknownName = errors.New("unknown foreign name")
)

const (
	// RtPath is the import path of the package implementing the primitives.
	RtPath = "github.com/goplus/libexe/rt"
)

// -----------------------------------------------------------------------------

type Config struct {
	// Fset provides source position information for syntax trees and types.
	// If Fset is nil, NewPackage will use a new fileset.
	Fset *token.FileSet

	// An Importer resolves import paths to Packages.
	// If Importer is nil, packages.NewImporter(Fset, "") is used.
	Importer types.Importer

	// Names lists the foreign names to bind. Default: abi.CNames.
	Names []string

	// RtPath overrides the import path of the primitives package.
	RtPath string
}

// Package is a generated Go package forwarding foreign names to the runtime
// primitives.
type Package struct {
	*gox.Package
}

// NewPackage generates a package declaring one function per foreign name.
// Each function takes and returns int64 and calls the matching rt primitive.
func NewPackage(pkgPath, pkgName string, conf *Config) (p Package, err error) {
	if conf == nil {
		conf = new(Config)
	}
	fset := conf.Fset
	if fset == nil {
		fset = token.NewFileSet()
	}
	imp := conf.Importer
	if imp == nil {
		imp = packages.NewImporter(fset, "")
	}
	rtPath := conf.RtPath
	if rtPath == "" {
		rtPath = RtPath
	}
	names := conf.Names
	if len(names) == 0 {
		names = abi.CNames
	}
	prims := make([]abi.Primitive, len(names))
	for i, name := range names {
		prim, ok := abi.Lookup(name)
		if !ok {
			return p, fmt.Errorf("%w: %s", ErrUnknownName, name)
		}
		prims[i] = prim
	}

	pkg := gox.NewPackage(pkgPath, pkgName, &gox.Config{Fset: fset, Importer: imp})
	rt := pkg.Import(rtPath)
	for i, name := range names {
		if err = bindFunc(pkg, rt, name, prims[i]); err != nil {
			return
		}
	}
	p.Package = pkg
	return
}

func bindFunc(pkg *gox.Package, rt gox.PkgRef, name string, prim abi.Primitive) error {
	if debugBind {
		log.Println("bind", name, "=>", prim)
	}
	int64T := types.Typ[types.Int64]
	pnames := prim.Params()
	params := make([]*types.Var, len(pnames))
	for i, pname := range pnames {
		params[i] = types.NewParam(token.NoPos, pkg.Types, pname, int64T)
	}
	var results *types.Tuple
	if prim.Results() > 0 {
		results = types.NewTuple(types.NewParam(token.NoPos, pkg.Types, "", int64T))
	}
	sig := types.NewSignatureType(nil, nil, nil, types.NewTuple(params...), results, false)
	fn, err := pkg.NewFuncWith(token.NoPos, name, sig, nil)
	if err != nil {
		return err
	}
	cb := fn.BodyStart(pkg).Val(rt.Ref(prim.String()))
	for _, param := range params {
		cb.Val(param)
	}
	cb.Call(len(params))
	if prim.Results() > 0 {
		cb.Return(1)
	} else {
		cb.EndStmt()
	}
	cb.End()
	return nil
}

// -----------------------------------------------------------------------------

func (p Package) WriteGoTo(dst io.Writer) error {
	return gox.WriteTo(dst, p.Package, "")
}

func (p Package) WriteFile(file string) error {
	return gox.WriteFile(file, p.Package, "")
}

// -----------------------------------------------------------------------------
