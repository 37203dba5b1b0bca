package cl

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goast "go/ast"
)

// -----------------------------------------------------------------------------

func init() {
	SetDebug(DbgFlagAll)
}

func findFunc(file *goast.File, name string) *goast.FuncDecl {
	for _, decl := range file.Decls {
		switch v := decl.(type) {
		case *goast.FuncDecl:
			if v.Name.Name == name {
				return v
			}
		}
	}
	return nil
}

func testBind(t *testing.T, names []string) (string, *goast.File) {
	pkg, err := NewPackage("", "main", &Config{Names: names})
	if err != nil {
		t.Fatal("NewPackage failed:", err)
	}
	var out bytes.Buffer
	if err = pkg.WriteGoTo(&out); err != nil {
		t.Fatal("WriteGoTo failed:", err)
	}
	code := out.String()
	file, err := parser.ParseFile(token.NewFileSet(), "bind.go", code, 0)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, code)
	}
	return code, file
}

// -----------------------------------------------------------------------------

func TestBindCNames(t *testing.T) {
	code, file := testBind(t, nil)
	if file.Name.Name != "main" {
		t.Fatal("package name:", file.Name.Name)
	}
	for _, name := range []string{"print_int", "scan_int", "malloc_exe", "free_exe"} {
		if findFunc(file, name) == nil {
			t.Fatalf("%s not generated:\n%s", name, code)
		}
	}
	for _, line := range []string{
		"func print_int(a int64) {",
		"rt.PrintInt(a)",
		"func scan_int() int64 {",
		"return rt.ScanInt()",
		"func malloc_exe(size int64) int64 {",
		"return rt.Malloc(size)",
		"func free_exe(pointer int64) {",
		"rt.Free(pointer)",
		`"github.com/goplus/libexe/rt"`,
	} {
		if !strings.Contains(code, line) {
			t.Fatalf("missing %q in:\n%s", line, code)
		}
	}
}

func TestBindFrontEndNames(t *testing.T) {
	code, file := testBind(t, []string{"malloc", "free"})
	if findFunc(file, "malloc") == nil || findFunc(file, "free") == nil {
		t.Fatalf("malloc/free not generated:\n%s", code)
	}
	if findFunc(file, "print_int") != nil {
		t.Fatalf("unexpected print_int:\n%s", code)
	}
	if !strings.Contains(code, "return rt.Malloc(size)") {
		t.Fatalf("malloc does not forward to rt.Malloc:\n%s", code)
	}
}

func TestBindUnknown(t *testing.T) {
	_, err := NewPackage("", "main", &Config{Names: []string{"print_int", "printf"}})
	if !errors.Is(err, ErrUnknownName) || !strings.Contains(err.Error(), "printf") {
		t.Fatal("NewPackage with unknown name:", err)
	}
}

func TestBindWriteFile(t *testing.T) {
	pkg, err := NewPackage("", "main", nil)
	if err != nil {
		t.Fatal("NewPackage failed:", err)
	}
	genfile := filepath.Join(t.TempDir(), "libexe_autogen.go")
	if err = pkg.WriteFile(genfile); err != nil {
		t.Fatal("WriteFile failed:", err)
	}
	b, err := os.ReadFile(genfile)
	if err != nil || !bytes.Contains(b, []byte("func scan_int() int64")) {
		t.Fatal("WriteFile:", string(b), err)
	}
}

// -----------------------------------------------------------------------------
