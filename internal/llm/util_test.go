package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"matchScore\": 80}\n```",
			expected: `{"matchScore": 80}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"matchScore\": 80}\n```",
			expected: `{"matchScore": 80}`,
		},
		{
			name:     "plain JSON",
			input:    `{"matchScore": 80}`,
			expected: `{"matchScore": 80}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_SurroundingProse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before object",
			input:    "Here is the analysis:\n{\"gapAnalysis\": \"none\"}",
			expected: `{"gapAnalysis": "none"}`,
		},
		{
			name:     "trailing text",
			input:    "{\"gapAnalysis\": \"none\"}\n\nLet me know if you need more.",
			expected: `{"gapAnalysis": "none"}`,
		},
		{
			name:     "braces inside strings",
			input:    `Result: {"optimizedSummary": "Built {fast} systems}"}`,
			expected: `{"optimizedSummary": "Built {fast} systems}"}`,
		},
		{
			name:     "escaped quotes",
			input:    `{"about": "He said \"ship it\""} done`,
			expected: `{"about": "He said \"ship it\""}`,
		},
		{
			name:     "array",
			input:    "Bullets: [\"a\", \"b\"]",
			expected: `["a", "b"]`,
		},
		{
			name:     "no JSON",
			input:    "  sorry, I cannot help  ",
			expected: "sorry, I cannot help",
		},
		{
			name:     "unterminated object",
			input:    `{"matchScore": 80`,
			expected: `{"matchScore": 80`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 1}}`, extractBalanced(`{"a": {"b": 1}} tail`, '{', '}'))
	assert.Equal(t, `[[1], [2]]`, extractBalanced(`[[1], [2]]`, '[', ']'))
	assert.Equal(t, "", extractBalanced("", '{', '}'))
	assert.Equal(t, "", extractBalanced("x{}", '{', '}'))
}
