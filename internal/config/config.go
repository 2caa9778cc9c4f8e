// Package config loads and validates the optional .wabbitrc.json file that
// customizes cmd/wabbit's default flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaText = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "format": {"type": "string", "enum": ["text", "cbor"]},
    "fingerprint": {"type": "boolean"},
    "watch": {"type": "boolean"},
    "color": {"type": "boolean"},
    "indentWidth": {"type": "integer", "minimum": 1}
  }
}`

// Config holds the settings a .wabbitrc.json file may override.
type Config struct {
	Format      string `json:"format,omitempty"`
	Fingerprint bool   `json:"fingerprint,omitempty"`
	Watch       bool   `json:"watch,omitempty"`
	Color       bool   `json:"color,omitempty"`
	IndentWidth int    `json:"indentWidth,omitempty"`
}

// Default returns the toolchain's built-in defaults.
func Default() Config {
	return Config{Format: "text", Color: true, IndentWidth: 4}
}

var schema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("wabbitrc.schema.json", strings.NewReader(schemaText)); err != nil {
		panic(err)
	}
	s, err := compiler.Compile("wabbitrc.schema.json")
	if err != nil {
		panic(err)
	}
	return s
}

// Load reads and validates name (typically ".wabbitrc.json"), merging found
// fields over Default(). name is looked up in the current directory first,
// then in $HOME if it isn't found there. A missing file in both places is
// not an error; Load returns the defaults unchanged.
func Load(name string) (Config, error) {
	cfg := Default()

	path, ok := resolvePath(name)
	if !ok {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := schema.Validate(raw); err != nil {
		return Config{}, fmt.Errorf("validating %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg, nil
}

// resolvePath searches for name in the current directory, then in $HOME,
// returning the first path that exists.
func resolvePath(name string) (string, bool) {
	if _, err := os.Stat(name); err == nil {
		return name, true
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
