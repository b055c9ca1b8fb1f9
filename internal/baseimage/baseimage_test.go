package baseimage

import (
	"errors"
	"testing"

	"github.com/kvant-lab/slimpack/internal/recipe"
)

func TestResolve_BareMinorPinsLatestPatch(t *testing.T) {
	t.Parallel()

	got, err := Resolve(recipe.Runtime{Series: "python", Version: "3.11", Variant: "slim"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "python:3.11.11-slim"
	if got.String() != want {
		t.Fatalf("got %s, want %s", got.String(), want)
	}
}

func TestResolve_BareMajorPinsWithinLine(t *testing.T) {
	t.Parallel()

	// "3" means the 3.x line, resolved to the newest 3.x release.
	got, err := Resolve(recipe.Runtime{Series: "python", Version: "3", Variant: "slim"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "python:3.13.1-slim"
	if got.String() != want {
		t.Fatalf("got %s, want %s", got.String(), want)
	}
}

func TestResolve_ExplicitConstraint(t *testing.T) {
	t.Parallel()

	got, err := Resolve(recipe.Runtime{Series: "python", Version: ">=3.10 <3.13", Variant: "bookworm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "python:3.12.8-bookworm"
	if got.String() != want {
		t.Fatalf("got %s, want %s", got.String(), want)
	}
}

func TestResolve_NoVariant(t *testing.T) {
	t.Parallel()

	got, err := Resolve(recipe.Runtime{Series: "python", Version: "3.9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "python:3.9.21"
	if got.String() != want {
		t.Fatalf("got %s, want %s", got.String(), want)
	}
}

func TestResolve_UnknownSeries(t *testing.T) {
	t.Parallel()

	_, err := Resolve(recipe.Runtime{Series: "node", Version: "20"})
	if err == nil {
		t.Fatal("expected error for unknown series")
	}
	if !errors.Is(err, ErrUnknownSeries) {
		t.Fatalf("expected ErrUnknownSeries via errors.Is, got %v", err)
	}
}

func TestResolve_NoMatchingRelease(t *testing.T) {
	t.Parallel()

	_, err := Resolve(recipe.Runtime{Series: "python", Version: "2.7"})
	if err == nil {
		t.Fatal("expected error for unsatisfiable constraint")
	}
	if !errors.Is(err, ErrNoMatchingRelease) {
		t.Fatalf("expected ErrNoMatchingRelease via errors.Is, got %v", err)
	}
}

func TestResolve_InvalidConstraint(t *testing.T) {
	t.Parallel()

	_, err := Resolve(recipe.Runtime{Series: "python", Version: "not-a-version"})
	if err == nil {
		t.Fatal("expected error for invalid constraint")
	}
}
