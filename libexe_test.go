package libexe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func removeGenerated(t *testing.T, dirs ...string) {
	t.Cleanup(func() {
		for _, dir := range dirs {
			os.Remove(filepath.Join(dir, defaultOut))
		}
	})
	for _, dir := range dirs {
		os.Remove(filepath.Join(dir, defaultOut))
	}
}

func TestRunBind(t *testing.T) {
	removeGenerated(t, "testdata/hello")
	if err := Run("testdata/hello", 0, nil); err != nil {
		t.Fatal("Run:", err)
	}
	b, err := os.ReadFile("testdata/hello/" + defaultOut)
	if err != nil {
		t.Fatal("Run: no bindings generated -", err)
	}
	code := string(b)
	if !strings.Contains(code, "func print_int(a int64)") || strings.Contains(code, "scan_int") {
		t.Fatal("Run: unexpected bindings\n", code)
	}
}

func TestRunSelect(t *testing.T) {
	removeGenerated(t, "testdata/hello", "testdata/echo", "testdata/alloc")
	if err := Run("testdata/...", 0, &Config{SelectDir: "echo"}); err != nil {
		t.Fatal("Run:", err)
	}
	if !isFile("testdata/echo/" + defaultOut) {
		t.Fatal("Run: echo not bound")
	}
	if isFile("testdata/hello/"+defaultOut) || isFile("testdata/alloc/"+defaultOut) {
		t.Fatal("Run: unselected directory bound")
	}
}

func TestRunNoProj(t *testing.T) {
	err := Run(t.TempDir(), 0, nil)
	if err == nil || !strings.Contains(err.Error(), projFile) {
		t.Fatal("Run without project:", err)
	}
	if err = Run("not-found", 0, nil); err == nil {
		t.Fatal("Run not-found: no error?")
	}
}

func TestRunTest(t *testing.T) {
	if testing.Short() {
		t.Skip("runs go run for every test program")
	}
	removeGenerated(t, "testdata/hello", "testdata/echo", "testdata/alloc")
	if err := Run("testdata/...", FlagRunTest, nil); err != nil {
		t.Fatal("Run -test:", err)
	}
}
