package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// configSchema constrains the effective configuration. Loaded files are
// layered over defaults and then checked against it, so a typo'd format
// name or a negative depth fails fast instead of surfacing mid-run.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "extract": {
      "type": "object",
      "properties": {
        "qualify_methods": {"type": "boolean"},
        "drop_receiver": {"type": "boolean"},
        "class_records": {"type": "boolean"}
      }
    },
    "scan": {
      "type": "object",
      "properties": {
        "dirs": {"type": "array", "items": {"type": "string"}},
        "patterns": {"type": "array", "items": {"type": "string"}},
        "gitignore": {"type": "boolean"}
      }
    },
    "tree": {
      "type": "object",
      "properties": {
        "filter": {"type": "string"},
        "max_depth": {"type": "integer", "minimum": 0},
        "include_size": {"type": "boolean"},
        "include_mtime": {"type": "boolean"},
        "sort_by_mtime": {"type": "boolean"},
        "exclude_dirs": {"type": "array", "items": {"type": "string"}},
        "gitignore": {"type": "boolean"}
      }
    },
    "output": {
      "type": "object",
      "properties": {
        "format": {"enum": ["text", "json", "markdown", "toon", "yaml"]},
        "color": {"type": "boolean"}
      }
    }
  }
}`

const schemaURL = "augur://config.schema.json"

// Validate checks a config against the embedded schema.
func Validate(cfg *Config) error {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(configSchema))
	if err != nil {
		return fmt.Errorf("config schema is invalid: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return fmt.Errorf("config schema is invalid: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("config schema is invalid: %w", err)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
