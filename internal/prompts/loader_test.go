package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("chat.json", "system-instruction")
	require.NoError(t, err)
	assert.Contains(t, prompt, "SOURCE OF TRUTH")
	assert.Contains(t, prompt, "KNOWLEDGE ISOLATION")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("alignment.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("alignment.json", "analyze")
		assert.Contains(t, prompt, "match score (0-100)")
	})
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", map[string]string{}))
}

func TestFormat_ValueWithDollarSign(t *testing.T) {
	assert.Equal(t, "cost: $1", Format("cost: {{.Price}}", map[string]string{"Price": "$1"}))
}

func TestRender_MissingValues(t *testing.T) {
	ClearCache()

	_, err := Render("alignment.json", "analyze", map[string]string{"Profile": "{}"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JobDescription")
}

func TestRender_AllValues(t *testing.T) {
	ClearCache()

	out, err := Render("alignment.json", "analyze", map[string]string{
		"Profile":        `{"name":"Ada"}`,
		"JobDescription": "Senior Go engineer",
	})
	require.NoError(t, err)
	assert.Contains(t, out, `{"name":"Ada"}`)
	assert.Contains(t, out, "Senior Go engineer")
	assert.NotContains(t, out, "{{.")
}

func TestPlaceholders(t *testing.T) {
	missing := Placeholders("{{.B}} {{.A}} {{.B}} {{.C}}", map[string]string{"C": "x"})
	assert.Equal(t, []string{"A", "B"}, missing)
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("chat.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"empty-reply", "error-reply", "system-instruction"}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get("chat.json", "error-reply")
	require.NoError(t, err)

	prompt2, err := Get("chat.json", "error-reply")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
