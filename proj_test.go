package libexe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProj(t *testing.T, name, content string) string {
	dir := t.TempDir()
	projfile := filepath.Join(dir, name)
	if err := os.WriteFile(projfile, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return projfile
}

func TestLoadProjJson(t *testing.T) {
	projfile := writeProj(t, projFile, `{"names": ["print_int", "scan_int"], "input": "in.txt"}`)
	conf, err := loadProj(projfile)
	if err != nil {
		t.Fatal("loadProj:", err)
	}
	if conf.Pkg != "main" || conf.Out != defaultOut || conf.Archive != defaultArchive || conf.Expect != defaultExpect {
		t.Fatal("loadProj defaults:", conf)
	}
	if strings.Join(conf.Names, " ") != "print_int scan_int" {
		t.Fatal("loadProj names:", conf.Names)
	}
	if conf.path(conf.Input) != filepath.Join(filepath.Dir(projfile), "in.txt") {
		t.Fatal("loadProj input:", conf.path(conf.Input))
	}
	if conf.path("/abs/out.go") != "/abs/out.go" {
		t.Fatal("path of absolute file:", conf.path("/abs/out.go"))
	}
}

func TestLoadProjYaml(t *testing.T) {
	projfile := writeProj(t, projYamlFile, "pkg: foo\nnames:\n  - malloc\n  - free\nout: bind.go\n")
	conf, err := loadProj(projfile)
	if err != nil {
		t.Fatal("loadProj:", err)
	}
	if conf.Pkg != "foo" || conf.Out != "bind.go" || strings.Join(conf.Names, " ") != "malloc free" {
		t.Fatal("loadProj yaml:", conf)
	}
}

func TestLoadProjFail(t *testing.T) {
	if _, err := loadProj(filepath.Join(t.TempDir(), projFile)); err == nil {
		t.Fatal("loadProj of missing file: no error?")
	}
	projfile := writeProj(t, projFile, `{"names": 1}`)
	if _, err := loadProj(projfile); err == nil {
		t.Fatal("loadProj of bad json: no error?")
	}
	projfile = writeProj(t, projYamlFile, "names: [")
	if _, err := loadProj(projfile); err == nil {
		t.Fatal("loadProj of bad yaml: no error?")
	}
}

func TestFindProj(t *testing.T) {
	if projfile, ok := findProj("testdata/alloc"); !ok || filepath.Base(projfile) != projYamlFile {
		t.Fatal("findProj alloc:", projfile, ok)
	}
	if projfile, ok := findProj("testdata/hello"); !ok || filepath.Base(projfile) != projFile {
		t.Fatal("findProj hello:", projfile, ok)
	}
	if _, ok := findProj(t.TempDir()); ok {
		t.Fatal("findProj of empty dir")
	}
}
