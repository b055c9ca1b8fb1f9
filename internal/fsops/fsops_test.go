// Tests in this file cover the default filesystem operations wiring.
package fsops

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultOpsPathMethods(t *testing.T) {
	t.Parallel()

	ops := DefaultOps()

	abs, err := ops.Path.Abs(".")
	if err != nil {
		t.Fatalf("Abs failed: %v", err)
	}
	if !ops.Path.IsAbs(abs) {
		t.Fatalf("Abs returned non-absolute path: %q", abs)
	}

	joined := ops.Path.Join("mocks", "mocks.go")
	if !strings.HasSuffix(joined, filepath.Join("mocks", "mocks.go")) {
		t.Fatalf("Join result %q missing expected segment", joined)
	}

	clean := ops.Path.Clean(filepath.Join("mocks", "..", "fsops.go"))
	if clean != "fsops.go" {
		t.Fatalf("Clean returned %q, want %q", clean, "fsops.go")
	}
}

func TestStdOSOpsStat(t *testing.T) {
	t.Parallel()

	fi, err := stdOSOps{}.Stat("fsops.go")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if fi.Name() != "fsops.go" {
		t.Fatalf("Stat returned file %q, want %q", fi.Name(), "fsops.go")
	}
}

func TestStdOSOpsReadFile(t *testing.T) {
	t.Parallel()

	data, err := stdOSOps{}.ReadFile("fsops.go")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "package fsops") {
		t.Fatal("ReadFile returned unexpected content")
	}
}
