package recipe

import (
	"errors"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	if err := Default().Validate(); err != nil {
		t.Fatalf("default recipe should validate: %v", err)
	}
}

func TestValidate_NoFiles(t *testing.T) {
	t.Parallel()

	r := Default()
	r.Files = nil

	err := r.Validate()
	if err == nil {
		t.Fatal("expected error for empty file set")
	}
	if !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles via errors.Is, got %v", err)
	}
}

func TestValidate_EntryMustBeListed(t *testing.T) {
	t.Parallel()

	r := Default()
	r.Entry = "other.py"

	err := r.Validate()
	if err == nil {
		t.Fatal("expected error for entry not in file set")
	}
	if !errors.Is(err, ErrEntryNotInSet) {
		t.Fatalf("expected ErrEntryNotInSet via errors.Is, got %v", err)
	}
}

func TestValidate_RejectsEscapingPaths(t *testing.T) {
	t.Parallel()

	cases := []string{
		"/etc/passwd",
		"../outside.py",
		"a/../../b.py",
		"a//b.py",
	}

	for _, bad := range cases {
		r := Default()
		r.Files = []string{bad}
		r.Entry = bad
		if err := r.Validate(); err == nil {
			t.Fatalf("expected error for file path %q", bad)
		}
	}
}

func TestValidate_RejectsDuplicateFiles(t *testing.T) {
	t.Parallel()

	r := Default()
	r.Files = []string{"main.py", "main.py"}

	if err := r.Validate(); err == nil {
		t.Fatal("expected error for duplicate file")
	}
}

func TestValidate_RejectsRelativeWorkdir(t *testing.T) {
	t.Parallel()

	r := Default()
	r.Workdir = "app"

	if err := r.Validate(); err == nil {
		t.Fatal("expected error for relative workdir")
	}
}

func TestKey_StableAcrossEnvOrder(t *testing.T) {
	t.Parallel()

	a := Default()
	a.Env = map[string]string{"B": "2", "A": "1", "C": "3"}
	b := Default()
	b.Env = map[string]string{"C": "3", "A": "1", "B": "2"}

	if a.Key() != b.Key() {
		t.Fatalf("key depends on env map order:\n%s\n%s", a.Key(), b.Key())
	}
}

func TestKey_ChangesWithInputs(t *testing.T) {
	t.Parallel()

	base := Default().Key()

	r := Default()
	r.Runtime.Version = "3.12"
	if r.Key() == base {
		t.Fatal("runtime version change should change the key")
	}

	r = Default()
	r.Files = []string{"main.py"}
	r.Entry = "main.py"
	if r.Key() == base {
		t.Fatal("file set change should change the key")
	}

	r = Default()
	r.Env["PYTHONUNBUFFERED"] = "0"
	if r.Key() == base {
		t.Fatal("env change should change the key")
	}
}

func TestKey_EncodesFileOrder(t *testing.T) {
	t.Parallel()

	a := Default()
	a.Files = []string{"extract.py", "main.py"}
	b := Default()
	b.Files = []string{"main.py", "extract.py"}

	if a.Key() == b.Key() {
		t.Fatal("file order must be part of the key")
	}
	if !strings.Contains(a.Key(), "files=extract.py,main.py") {
		t.Fatalf("unexpected key format: %s", a.Key())
	}
}
