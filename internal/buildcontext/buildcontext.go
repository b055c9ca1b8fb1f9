// Package buildcontext assembles and validates the file set sent to the
// Docker daemon: the generated Dockerfile, the dependency manifest and the
// application files, all rooted at the project directory.
package buildcontext

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/kvant-lab/slimpack/internal/dockerfile"
	"github.com/kvant-lab/slimpack/internal/fsops"
	"github.com/kvant-lab/slimpack/internal/recipe"
)

var (
	ErrMissingManifest = errors.New("dependency manifest not found in project directory")
	ErrEmptyManifest   = errors.New("dependency manifest is empty")
	ErrMissingFile     = errors.New("application file not found in project directory")
)

// Context is a validated view over a project directory.
type Context struct {
	root string
	ops  fsops.Ops
}

// New builds a Context rooted at dir using the default OS implementations.
func New(dir string) (*Context, error) {
	return NewWithOps(dir, fsops.DefaultOps())
}

// NewWithOps is the injectable constructor used by tests.
func NewWithOps(dir string, ops fsops.Ops) (*Context, error) {
	if dir == "" {
		return nil, errors.New("project directory should not be empty")
	}
	if ops.Path == nil || ops.OS == nil {
		return nil, errors.New("build context dependencies cannot be nil")
	}

	abs, err := ops.Path.Abs(dir)
	if err != nil {
		return nil, err
	}

	fi, err := ops.OS.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, errors.New("project path is not a directory")
	}

	return &Context{
		root: ops.Path.Clean(abs),
		ops:  ops,
	}, nil
}

func (c *Context) Root() string {
	return c.root
}

// Validate checks that every build input the recipe names exists before any
// daemon interaction happens. A missing input aborts the build here, well
// before the entry-point step would be reached.
func (c *Context) Validate(r *recipe.Recipe) error {
	fi, err := c.statRegular(r.Manifest)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissingManifest, r.Manifest)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyManifest, r.Manifest)
	}

	for _, f := range r.Files {
		if _, err := c.statRegular(f); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingFile, f)
		}
	}
	return nil
}

func (c *Context) statRegular(rel string) (fs.FileInfo, error) {
	fi, err := c.ops.OS.Stat(c.ops.Path.Join(c.root, rel))
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", rel)
	}
	return fi, nil
}

// Archive produces the in-memory tar streamed to the daemon: Dockerfile
// first, then the manifest, then the application files in recipe order.
// Contents are copied verbatim, no transformation or inspection.
func (c *Context) Archive(df dockerfile.Dockerfile, r *recipe.Recipe) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	dockerfileBytes := []byte(df.String())
	if err := tw.WriteHeader(&tar.Header{
		Name: "Dockerfile",
		Mode: 0o600,
		Size: int64(len(dockerfileBytes)),
	}); err != nil {
		return nil, fmt.Errorf("write tar header: %w", err)
	}
	if _, err := tw.Write(dockerfileBytes); err != nil {
		return nil, fmt.Errorf("write dockerfile: %w", err)
	}

	for _, rel := range append([]string{r.Manifest}, r.Files...) {
		content, err := c.ops.OS.ReadFile(c.ops.Path.Join(c.root, rel))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", rel, err)
		}
		if err := tw.WriteHeader(&tar.Header{
			Name: rel,
			Mode: 0o644,
			Size: int64(len(content)),
		}); err != nil {
			return nil, fmt.Errorf("write tar header for %s: %w", rel, err)
		}
		if _, err := tw.Write(content); err != nil {
			return nil, fmt.Errorf("write %s: %w", rel, err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("close tar: %w", err)
	}
	return &buf, nil
}
