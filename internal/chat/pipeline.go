// Package chat implements the grounded identity assistant: a system
// instruction built from the portfolio content, single-turn calls against
// the LLM, and per-visitor sessions that own the transcript.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/blkdmnd/visual-thesis/internal/content"
	"github.com/blkdmnd/visual-thesis/internal/llm"
	"github.com/blkdmnd/visual-thesis/internal/observability"
	"github.com/blkdmnd/visual-thesis/internal/prompts"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

const promptFile = "chat.json"

// Fixed replies substituted for empty or failed generations.
var (
	EmptyReply = prompts.MustGet(promptFile, "empty-reply")
	ErrorReply = prompts.MustGet(promptFile, "error-reply")
)

// Grounding is the source of truth the assistant may speak about.
type Grounding struct {
	BrandName         string
	Name              string
	Title             string
	Profile           *types.Profile
	Competencies      []types.Competency
	ArchitectureSpecs []types.ArchitectureSpec
}

// GroundingFrom collects the grounding facts from the content store.
func GroundingFrom(store *content.Store) Grounding {
	id := store.Identity()
	return Grounding{
		BrandName:         id.BrandName,
		Name:              id.Name,
		Title:             id.Title,
		Profile:           store.CandidateProfile(),
		Competencies:      store.Competencies(),
		ArchitectureSpecs: store.ArchitectureSpecs(),
	}
}

// BuildSystemInstruction renders the identity prompt with the grounding facts
// embedded as JSON.
func BuildSystemInstruction(g Grounding) (string, error) {
	if g.Profile == nil {
		return "", &InstructionError{Message: "profile is required"}
	}

	profile, err := json.Marshal(g.Profile)
	if err != nil {
		return "", &InstructionError{Message: "failed to encode profile", Cause: err}
	}
	competencies, err := json.Marshal(g.Competencies)
	if err != nil {
		return "", &InstructionError{Message: "failed to encode competencies", Cause: err}
	}
	specs, err := json.Marshal(g.ArchitectureSpecs)
	if err != nil {
		return "", &InstructionError{Message: "failed to encode architecture specs", Cause: err}
	}

	instruction, err := prompts.Render(promptFile, "system-instruction", map[string]string{
		"BrandName":         g.BrandName,
		"Name":              g.Name,
		"Title":             g.Title,
		"Profile":           string(profile),
		"Competencies":      string(competencies),
		"ArchitectureSpecs": string(specs),
	})
	if err != nil {
		return "", &InstructionError{Message: "failed to render prompt", Cause: err}
	}
	return instruction, nil
}

// Pipeline sends chat turns to the LLM under a fixed system instruction.
// It holds no per-conversation state and is safe for concurrent use.
type Pipeline struct {
	client      llm.Client
	instruction string
	tier        llm.ModelTier
	metrics     *observability.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records LLM call outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithTier overrides the model tier (default standard).
func WithTier(tier llm.ModelTier) Option {
	return func(p *Pipeline) { p.tier = tier }
}

// NewPipeline builds the system instruction once and returns a ready pipeline.
func NewPipeline(client llm.Client, g Grounding, opts ...Option) (*Pipeline, error) {
	instruction, err := BuildSystemInstruction(g)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		client:      client,
		instruction: instruction,
		tier:        llm.TierStandard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SystemInstruction returns the rendered instruction sent with every turn.
func (p *Pipeline) SystemInstruction() string {
	return p.instruction
}

// SendTurn asks the model for the reply to text given the prior transcript.
// Blank text is rejected without calling the model. Provider failures and
// empty generations are replaced by fixed apologies; the raw error is only
// logged. If ctx ends before the reply arrives, SendTurn returns ctx.Err().
func (p *Pipeline) SendTurn(ctx context.Context, transcript []types.TranscriptEntry, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Field: "text", Message: "message text is required"}
	}

	start := time.Now()
	reply, err := p.client.Chat(ctx, llm.ChatRequest{
		Tier:              p.tier,
		SystemInstruction: p.instruction,
		History:           toHistory(transcript),
		Message:           text,
		Temperature:       llm.DefaultTemperature,
	})
	elapsed := time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil || errors.Is(err, context.Canceled) {
			p.metrics.ObserveLLMCall("chat", observability.OutcomeCancelled, elapsed)
			if ctxErr == nil {
				ctxErr = context.Canceled
			}
			return "", ctxErr
		}
		log.Printf("[chat] LLM call failed after %s: %v", elapsed.Round(time.Millisecond), err)
		p.metrics.ObserveLLMCall("chat", observability.OutcomeError, elapsed)
		return ErrorReply, nil
	}

	if strings.TrimSpace(reply) == "" {
		p.metrics.ObserveLLMCall("chat", observability.OutcomeEmpty, elapsed)
		return EmptyReply, nil
	}

	p.metrics.ObserveLLMCall("chat", observability.OutcomeOK, elapsed)
	return reply, nil
}

func toHistory(transcript []types.TranscriptEntry) []llm.Message {
	history := make([]llm.Message, 0, len(transcript))
	for _, entry := range transcript {
		role := llm.RoleUser
		if entry.Role == types.RoleAssistant {
			role = llm.RoleModel
		}
		history = append(history, llm.Message{Role: role, Text: entry.Text})
	}
	return history
}
