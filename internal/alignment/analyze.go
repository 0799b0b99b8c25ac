// Package alignment compares the candidate profile against a job description
// with one structured LLM call and returns a schema-checked analysis.
package alignment

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/blkdmnd/visual-thesis/internal/llm"
	"github.com/blkdmnd/visual-thesis/internal/observability"
	"github.com/blkdmnd/visual-thesis/internal/prompts"
	internalschemas "github.com/blkdmnd/visual-thesis/internal/schemas"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

const promptFile = "alignment.json"

// User-facing messages.
var (
	UserErrorMessage          = prompts.MustGet(promptFile, "user-error")
	MissingDescriptionMessage = prompts.MustGet(promptFile, "missing-job-description")
)

// Analyzer runs alignment analyses. It is safe for concurrent use.
type Analyzer struct {
	client    llm.Client
	schema    *llm.Schema
	validator *internalschemas.Validator
	tier      llm.ModelTier
	metrics   *observability.Metrics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMetrics records LLM call outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// WithTier overrides the model tier (default standard).
func WithTier(tier llm.ModelTier) Option {
	return func(a *Analyzer) { a.tier = tier }
}

// NewAnalyzer loads the response schema and returns a ready analyzer.
func NewAnalyzer(client llm.Client, opts ...Option) (*Analyzer, error) {
	schema, err := ResponseSchema()
	if err != nil {
		return nil, err
	}
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		client:    client,
		schema:    schema,
		validator: validator,
		tier:      llm.TierStandard,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Analyze asks the model to align profile with jobDescription. A blank job
// description is rejected before any model call. The call is made once; on
// failure the caller keeps its input and may try again.
func (a *Analyzer) Analyze(ctx context.Context, profile *types.Profile, jobDescription string) (*types.AlignmentAnalysis, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Field: "job_description", Message: "missing job description"}
	}
	if profile == nil {
		return nil, &ValidationError{Field: "profile", Message: "missing candidate profile"}
	}

	prompt, err := BuildPrompt(profile, jobDescription)
	if err != nil {
		return nil, &AnalysisError{Message: "failed to build prompt", Cause: err}
	}

	start := time.Now()
	raw, err := a.client.GenerateJSON(ctx, llm.JSONRequest{
		Tier:        a.tier,
		Prompt:      prompt,
		Schema:      a.schema,
		Temperature: llm.DefaultTemperature,
	})
	elapsed := time.Since(start)
	if err != nil {
		outcome := observability.OutcomeError
		if ctx.Err() != nil {
			outcome = observability.OutcomeCancelled
		}
		a.metrics.ObserveLLMCall("alignment", outcome, elapsed)
		log.Printf("[alignment] LLM call failed after %s: %v", elapsed.Round(time.Millisecond), err)
		return nil, &AnalysisError{Message: "provider call failed", Cause: err}
	}

	analysis, err := Decode(a.validator, raw)
	if err != nil {
		a.metrics.ObserveLLMCall("alignment", observability.OutcomeInvalid, elapsed)
		log.Printf("[alignment] rejected model output: %v", err)
		return nil, err
	}

	a.metrics.ObserveLLMCall("alignment", observability.OutcomeOK, elapsed)
	return analysis, nil
}

// BuildPrompt renders the analysis prompt with the profile as JSON.
func BuildPrompt(profile *types.Profile, jobDescription string) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", err
	}
	return prompts.Render(promptFile, "analyze", map[string]string{
		"Profile":        string(profileJSON),
		"JobDescription": strings.TrimSpace(jobDescription),
	})
}
