package llm

import (
	"encoding/json"
	"fmt"
)

// SchemaType is a JSON Schema primitive type name.
type SchemaType string

// Supported schema types.
const (
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
)

// Schema is the provider-neutral subset of JSON Schema that Gemini response
// schemas understand. Validation keywords such as minimum are not carried;
// responses are still checked against the full document after decoding.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// ParseSchema reads a JSON Schema document into a Schema, ignoring keywords
// that have no response-schema equivalent.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse response schema: %w", err)
	}
	if err := s.check("(root)"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Schema) check(path string) error {
	switch s.Type {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean:
	case TypeArray:
		if s.Items == nil {
			return fmt.Errorf("schema %s: array without items", path)
		}
		if err := s.Items.check(path + "[]"); err != nil {
			return err
		}
	case TypeObject:
		for _, name := range s.Required {
			if _, ok := s.Properties[name]; !ok {
				return fmt.Errorf("schema %s: required property %q is not declared", path, name)
			}
		}
		for name, prop := range s.Properties {
			if prop == nil {
				return fmt.Errorf("schema %s.%s: empty property schema", path, name)
			}
			if err := prop.check(path + "." + name); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("schema %s: unsupported type %q", path, s.Type)
	}
	return nil
}
