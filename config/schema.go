package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/itemfield/energy"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "itemfield://config.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaURL, schemaJSON)
})

// Validate checks the configuration against the embedded JSON schema. It
// covers document shape and value ranges; function arity and per-type
// lengths are checked when the registry is built. A violation is reported
// as an *energy.ConfigError.
func (c *Config) Validate() error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling config schema: %w", err)
	}
	doc, err := c.document()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return &energy.ConfigError{Scope: "config schema", Err: err}
	}
	return nil
}

// document converts the config to the generic JSON value tree the schema
// validator expects.
func (c *Config) document() (any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding config tree: %w", err)
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encoding config tree: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding config tree: %w", err)
	}
	return doc, nil
}
