package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/kvant-lab/slimpack/internal/fsops"
	"github.com/kvant-lab/slimpack/internal/logs"
	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project recipe file.
const FileName = "slimpack.yaml"

// Load returns the recipe for a project directory: the defaults, overlaid
// with slimpack.yaml when one exists. The file is schema-validated before it
// is decoded, so a malformed recipe aborts the build with a useful error
// instead of half-applied settings.
func Load(dir string) (*Recipe, error) {
	return LoadWithOps(dir, fsops.DefaultOps())
}

// LoadWithOps is the injectable constructor used by tests.
func LoadWithOps(dir string, ops fsops.Ops) (*Recipe, error) {
	if dir == "" {
		return nil, errors.New("project directory should not be empty")
	}
	if ops.Path == nil || ops.OS == nil {
		return nil, errors.New("recipe loader dependencies cannot be nil")
	}

	r := Default()

	path := ops.Path.Join(dir, FileName)
	raw, err := ops.OS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logs.Debugf("no %s in %s, using default recipe", FileName, dir)
			return r, r.Validate()
		}
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	if err := validateDocument(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", FileName, err)
	}

	// Decode over the defaults: fields absent from the file keep their
	// default values, env entries merge key-by-key.
	if err := yaml.Unmarshal(raw, r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FileName, err)
	}

	return r, r.Validate()
}

// validateDocument checks the raw recipe file against the embedded JSON
// schema. The yaml document is round-tripped through encoding/json first
// because the schema validator expects json-decoded values.
func validateDocument(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	var jsonDoc any
	if err := json.Unmarshal(jsonBytes, &jsonDoc); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	if err := documentSchema().Validate(jsonDoc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
