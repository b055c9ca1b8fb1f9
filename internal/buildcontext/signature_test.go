package buildcontext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kvant-lab/slimpack/internal/recipe"
)

func signatureFor(t *testing.T, files map[string]string, r *recipe.Recipe) string {
	t.Helper()

	dir := writeProject(t, files)
	bc, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sig, err := bc.Signature(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return sig
}

func TestSignature_StableForSameInputs(t *testing.T) {
	t.Parallel()

	a := signatureFor(t, defaultProjectFiles(), recipe.Default())
	b := signatureFor(t, defaultProjectFiles(), recipe.Default())

	if a != b {
		t.Fatalf("same inputs produced different signatures: %s != %s", a, b)
	}
}

func TestSignature_ChangesWithFileContent(t *testing.T) {
	t.Parallel()

	base := signatureFor(t, defaultProjectFiles(), recipe.Default())

	files := defaultProjectFiles()
	files["main.py"] = "print('changed')\n"
	changed := signatureFor(t, files, recipe.Default())

	if base == changed {
		t.Fatal("file content change should change the signature")
	}
}

func TestSignature_ChangesWithRecipe(t *testing.T) {
	t.Parallel()

	base := signatureFor(t, defaultProjectFiles(), recipe.Default())

	r := recipe.Default()
	r.Runtime.Version = "3.12"
	changed := signatureFor(t, defaultProjectFiles(), r)

	if base == changed {
		t.Fatal("recipe change should change the signature")
	}
}

func TestSignature_NoChunkBoundaryCollision(t *testing.T) {
	t.Parallel()

	// Shifting a byte across the file boundary must not produce the same
	// signature; the length prefix prevents it.
	filesA := defaultProjectFiles()
	filesA["extract.py"] = "ab"
	filesA["preprocessing.py"] = "c"

	filesB := defaultProjectFiles()
	filesB["extract.py"] = "a"
	filesB["preprocessing.py"] = "bc"

	a := signatureFor(t, filesA, recipe.Default())
	b := signatureFor(t, filesB, recipe.Default())

	if a == b {
		t.Fatal("chunk boundary collision in signature")
	}
}

func TestSignature_ReadFailurePropagated(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, defaultProjectFiles())
	bc, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "extract.py")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := bc.Signature(recipe.Default()); err == nil {
		t.Fatal("expected error for unreadable file")
	}
}
