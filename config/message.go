package config

import (
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configMessageSchema constrains the host's Config message (spec 4.5): any
// subset of the named fields, each a finite number. rayGravity, like
// maxDropDistance and jumpHeight, is a positive magnitude applied along -up
// internally, not a signed value — a host sending a negative rayGravity is
// rejected here rather than silently producing a raycast that never hits.
const configMessageSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"rayGravity":      {"type": "number", "exclusiveMinimum": 0},
		"maxDropDistance": {"type": "number", "minimum": 0},
		"jumpHeight":      {"type": "number", "minimum": 0},
		"jumpCooldown":    {"type": "number", "minimum": 0},
		"updateFrequency": {"type": "number", "exclusiveMinimum": 0}
	}
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("config-message.json", strings.NewReader(configMessageSchema)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile("config-message.json")
	})
	return schema, schemaErr
}

// ApplyMessage validates the decoded Config message payload against the
// schema and, if valid, applies present fields onto c. Unknown or malformed
// fields are rejected before anything is mutated.
func (c *Config) ApplyMessage(payload map[string]interface{}) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(payload); err != nil {
		return err
	}

	if v, ok := payload["rayGravity"]; ok {
		c.RayGravity = float32(v.(float64))
	}
	if v, ok := payload["maxDropDistance"]; ok {
		c.MaxDropDistance = float32(v.(float64))
	}
	if v, ok := payload["jumpHeight"]; ok {
		c.JumpHeight = float32(v.(float64))
	}
	if v, ok := payload["jumpCooldown"]; ok {
		c.JumpCooldown = float32(v.(float64))
	}
	if v, ok := payload["updateFrequency"]; ok {
		c.Frequency = float32(v.(float64))
	}
	return nil
}
