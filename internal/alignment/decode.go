package alignment

import (
	"bytes"
	"encoding/json"

	"github.com/blkdmnd/visual-thesis/internal/llm"
	internalschemas "github.com/blkdmnd/visual-thesis/internal/schemas"
	"github.com/blkdmnd/visual-thesis/internal/types"
	"github.com/blkdmnd/visual-thesis/schemas"
)

// NewValidator compiles the embedded analysis schema.
func NewValidator() (*internalschemas.Validator, error) {
	data, err := schemas.Load(schemas.AlignmentAnalysis)
	if err != nil {
		return nil, err
	}
	return internalschemas.Compile(schemas.AlignmentAnalysis, data)
}

// ResponseSchema returns the provider response schema derived from the embedded schema.
func ResponseSchema() (*llm.Schema, error) {
	data, err := schemas.Load(schemas.AlignmentAnalysis)
	if err != nil {
		return nil, err
	}
	return llm.ParseSchema(data)
}

// Decode turns raw model output into an analysis. The output is stripped of
// code fences, validated against the schema and only then unmarshalled, so a
// caller either receives a fully valid analysis or an *AnalysisError.
func Decode(v *internalschemas.Validator, raw string) (*types.AlignmentAnalysis, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if cleaned == "" {
		return nil, &AnalysisError{Message: "empty response"}
	}

	if err := v.Validate([]byte(cleaned)); err != nil {
		return nil, &AnalysisError{Message: "response does not match schema", Cause: err, Raw: cleaned}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.DisallowUnknownFields()

	var analysis types.AlignmentAnalysis
	if err := dec.Decode(&analysis); err != nil {
		return nil, &AnalysisError{Message: "failed to decode response", Cause: err, Raw: cleaned}
	}
	return &analysis, nil
}
