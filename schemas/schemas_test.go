package schemas

import (
	"encoding/json"
	"testing"

	internalschemas "github.com/blkdmnd/visual-thesis/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, name := range []string{AlignmentAnalysis} {
		t.Run(name, func(t *testing.T) {
			data, err := Load(name)
			require.NoError(t, err)

			var v map[string]any
			require.NoError(t, json.Unmarshal(data, &v))
			assert.Equal(t, "object", v["type"])
			assert.Contains(t, v, "$schema")
		})
	}
}

func TestAlignmentAnalysisSchema_Compiles(t *testing.T) {
	_, err := internalschemas.Compile(AlignmentAnalysis, MustLoad(AlignmentAnalysis))
	assert.NoError(t, err)
}

func TestAlignmentAnalysisSchema_AcceptsExample(t *testing.T) {
	v, err := internalschemas.Compile(AlignmentAnalysis, MustLoad(AlignmentAnalysis))
	require.NoError(t, err)

	doc := `{
		"matchScore": 87,
		"gapAnalysis": ["No Kubernetes experience listed"],
		"optimizedSummary": "Architect of grounded multi-agent systems.",
		"optimizedExperience": [{"company": "Acme", "bullets": ["Built LangGraph agents"]}],
		"linkedinSuggestions": {"headline": "GenAI Architect", "about": "I build agents."}
	}`
	assert.NoError(t, v.Validate([]byte(doc)))
}

func TestAlignmentAnalysisSchema_RejectsOutOfRangeScore(t *testing.T) {
	v, err := internalschemas.Compile(AlignmentAnalysis, MustLoad(AlignmentAnalysis))
	require.NoError(t, err)

	doc := `{
		"matchScore": 101,
		"gapAnalysis": [],
		"optimizedSummary": "",
		"optimizedExperience": [],
		"linkedinSuggestions": {"headline": "", "about": ""}
	}`
	assert.Error(t, v.Validate([]byte(doc)))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("missing.schema.json")
	assert.Error(t, err)
	assert.Panics(t, func() { MustLoad("missing.schema.json") })
}
