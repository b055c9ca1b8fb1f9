package recipe

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// rawSchema constrains the shape of slimpack.yaml. Semantic rules that a
// schema cannot express (entry must be one of files, no ".." segments) live
// in Recipe.Validate.
const rawSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "runtime": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "series":  { "type": "string", "minLength": 1 },
        "version": { "type": "string", "minLength": 1 },
        "variant": { "type": "string", "enum": ["slim", "bookworm", "alpine"] }
      }
    },
    "env": {
      "type": "object",
      "additionalProperties": { "type": "string" }
    },
    "workdir":  { "type": "string", "pattern": "^/" },
    "manifest": { "type": "string", "minLength": 1 },
    "files": {
      "type": "array",
      "minItems": 1,
      "items": { "type": "string", "minLength": 1 }
    },
    "entry": { "type": "string", "minLength": 1 }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
)

func documentSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		schema = jsonschema.MustCompileString("slimpack.yaml.schema.json", rawSchema)
	})
	return schema
}
