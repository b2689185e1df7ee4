// Package schema owns the tool descriptor index: loading declarative JSON
// descriptors from a directory, compiling their input schemas into runtime
// validators, and resolving declared defaults.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Descriptor is the declarative contract for one callable tool.
type Descriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema describes the argument object a tool accepts.
// Type is always "object"; descriptors violating this are rejected at load.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Property describes one argument: its base type, an optional enum
// constraint, an optional default, and a human-readable description.
// A nil Default means no default is declared (an explicit JSON null
// default is treated the same way).
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// descriptorMetaSchema validates the structural shape of a descriptor
// document before it is admitted to the index. Property types outside the
// known set are allowed here; the compiled validator treats them as "any".
const descriptorMetaSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "description", "inputSchema"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "inputSchema": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {"const": "object"},
        "properties": {
          "type": "object",
          "additionalProperties": {
            "type": "object",
            "required": ["type"],
            "properties": {
              "type": {"type": "string"},
              "description": {"type": "string"},
              "enum": {"type": "array", "minItems": 1}
            }
          }
        },
        "required": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var metaSchema = jsonschema.MustCompileString("descriptor.schema.json", descriptorMetaSchema)

// ParseDescriptor parses and shape-validates one descriptor document.
// Unknown extra fields pass through opaquely; only the required shape is
// enforced.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := metaSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("descriptor shape invalid: %w", err)
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}
	return &d, nil
}
