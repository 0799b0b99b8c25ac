package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["matchScore", "bullets"],
  "properties": {
    "matchScore": {"type": "number", "minimum": 0, "maximum": 100},
    "bullets": {"type": "array", "items": {"type": "string"}}
  }
}`

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema([]byte(analysisSchema))
	require.NoError(t, err)

	assert.Equal(t, TypeObject, s.Type)
	assert.Equal(t, []string{"matchScore", "bullets"}, s.Required)
	require.Contains(t, s.Properties, "bullets")
	assert.Equal(t, TypeArray, s.Properties["bullets"].Type)
	assert.Equal(t, TypeString, s.Properties["bullets"].Items.Type)
}

func TestParseSchema_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		errMsg string
	}{
		{"not json", `{`, "failed to parse"},
		{"unknown type", `{"type": "date"}`, "unsupported type"},
		{"array without items", `{"type": "array"}`, "array without items"},
		{"undeclared required", `{"type": "object", "required": ["x"]}`, "not declared"},
		{"nested", `{"type": "object", "properties": {"a": {"type": "tuple"}}}`, "(root).a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.schema))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestToGeminiSchema(t *testing.T) {
	s, err := ParseSchema([]byte(analysisSchema))
	require.NoError(t, err)

	out := toGeminiSchema(s)
	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, genai.TypeNumber, out.Properties["matchScore"].Type)
	assert.Equal(t, genai.TypeArray, out.Properties["bullets"].Type)
	assert.Equal(t, genai.TypeString, out.Properties["bullets"].Items.Type)
	assert.Equal(t, s.Required, out.Required)
	assert.Nil(t, toGeminiSchema(nil))
}

func TestToVertexSchema(t *testing.T) {
	s, err := ParseSchema([]byte(analysisSchema))
	require.NoError(t, err)

	out := toVertexSchema(s)
	assert.Equal(t, vertexType(TypeObject), out.Type)
	assert.Equal(t, vertexType(TypeString), out.Properties["bullets"].Items.Type)
	assert.Nil(t, toVertexSchema(nil))
}
