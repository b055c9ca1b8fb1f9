package slimpack

import (
	"os"

	"github.com/kvant-lab/slimpack/internal/baseimage"
	"github.com/kvant-lab/slimpack/internal/buildcontext"
	"github.com/kvant-lab/slimpack/internal/recipe"
)

// project bundles everything a command needs to act on one pipeline dir.
type project struct {
	Context *buildcontext.Context
	Recipe  *recipe.Recipe
	Base    baseimage.Ref
}

func pathFromArgs(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return os.Getwd()
}

func resolveProject(pathArg string) (*project, error) {
	bc, err := buildcontext.New(pathArg)
	if err != nil {
		return nil, err
	}

	rec, err := recipe.Load(bc.Root())
	if err != nil {
		return nil, err
	}

	base, err := baseimage.Resolve(rec.Runtime)
	if err != nil {
		return nil, err
	}

	return &project{Context: bc, Recipe: rec, Base: base}, nil
}
