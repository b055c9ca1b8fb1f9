// Package recipe defines the build recipe: the complete set of inputs from
// which a runtime image is produced. A recipe is value data only; turning it
// into a Dockerfile or an image happens elsewhere.
package recipe

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Runtime identifies the base runtime the image starts from.
type Runtime struct {
	// Series is the image series, e.g. "python".
	Series string `yaml:"series"`

	// Version is a semver-style constraint resolved to a pinned release
	// at build time, e.g. "3.11" or "~3.12".
	Version string `yaml:"version"`

	// Variant selects the base image flavour, e.g. "slim".
	// Empty means "ask or default".
	Variant string `yaml:"variant"`
}

// Recipe is the declarative build input set. Same recipe + same file
// contents must always produce the same image.
type Recipe struct {
	Runtime  Runtime           `yaml:"runtime"`
	Env      map[string]string `yaml:"env"`
	Workdir  string            `yaml:"workdir"`
	Manifest string            `yaml:"manifest"`
	Files    []string          `yaml:"files"`
	Entry    string            `yaml:"entry"`
}

// Default returns the recipe used when the project carries no slimpack.yaml.
// It reproduces the canonical slim Python pipeline image: pinned base,
// unbuffered output, no bytecode cache, pip install from requirements.txt,
// three verbatim file copies and a static entry command.
func Default() *Recipe {
	return &Recipe{
		Runtime: Runtime{
			Series:  "python",
			Version: "3.11",
			Variant: "slim",
		},
		Env: map[string]string{
			"PYTHONUNBUFFERED":        "1",
			"PYTHONDONTWRITEBYTECODE": "1",
		},
		Workdir:  "/app",
		Manifest: "requirements.txt",
		Files:    []string{"extract.py", "preprocessing.py", "main.py"},
		Entry:    "main.py",
	}
}

var (
	ErrNoFiles       = errors.New("recipe lists no application files")
	ErrEntryNotInSet = errors.New("entry file is not part of the application file set")
)

// Validate checks recipe semantics that the schema cannot express.
func (r *Recipe) Validate() error {
	if r.Runtime.Series == "" {
		return errors.New("runtime series is required")
	}
	if r.Runtime.Version == "" {
		return errors.New("runtime version constraint is required")
	}
	if !strings.HasPrefix(r.Workdir, "/") {
		return fmt.Errorf("workdir %q must be absolute", r.Workdir)
	}
	if r.Manifest == "" {
		return errors.New("dependency manifest path is required")
	}
	if err := checkContextPath(r.Manifest); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if len(r.Files) == 0 {
		return ErrNoFiles
	}
	seen := make(map[string]struct{}, len(r.Files))
	for _, f := range r.Files {
		if err := checkContextPath(f); err != nil {
			return fmt.Errorf("file %q: %w", f, err)
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("file %q listed twice", f)
		}
		seen[f] = struct{}{}
	}
	if r.Entry == "" {
		return errors.New("entry file is required")
	}
	if _, ok := seen[r.Entry]; !ok {
		return fmt.Errorf("%w: %q", ErrEntryNotInSet, r.Entry)
	}
	return nil
}

// checkContextPath rejects paths that could escape the build context.
func checkContextPath(p string) error {
	if strings.HasPrefix(p, "/") {
		return errors.New("must be relative to the project directory")
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return errors.New("must not escape the project directory")
		}
		if seg == "" {
			return errors.New("contains an empty path segment")
		}
	}
	return nil
}

// Key returns a canonical single-line representation of the recipe,
// used as cache key material. Env keys are emitted sorted so the key is
// stable across map iteration order.
func (r *Recipe) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "runtime=%s@%s/%s;", r.Runtime.Series, r.Runtime.Version, r.Runtime.Variant)
	keys := make([]string, 0, len(r.Env))
	for k := range r.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "env:%s=%s;", k, r.Env[k])
	}
	fmt.Fprintf(&b, "workdir=%s;manifest=%s;", r.Workdir, r.Manifest)
	fmt.Fprintf(&b, "files=%s;entry=%s", strings.Join(r.Files, ","), r.Entry)
	return b.String()
}
