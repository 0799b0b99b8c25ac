package llm

import (
	"context"
	"fmt"
)

// MessageRole is the provider-side author of a chat message.
type MessageRole string

// Roles understood by Gemini backends.
const (
	RoleUser  MessageRole = "user"
	RoleModel MessageRole = "model"
)

// Message is one prior turn of a conversation.
type Message struct {
	Role MessageRole
	Text string
}

// ChatRequest is a multi-turn generation request.
type ChatRequest struct {
	Tier              ModelTier
	SystemInstruction string
	History           []Message
	Message           string
	// Temperature defaults to DefaultTemperature when zero.
	Temperature float32
}

// JSONRequest is a single-prompt request whose output is constrained to a schema.
type JSONRequest struct {
	Tier   ModelTier
	Prompt string
	Schema *Schema
	// Temperature defaults to DefaultTemperature when zero.
	Temperature float32
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content from a single prompt
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates JSON content constrained to the request schema
	GenerateJSON(ctx context.Context, req JSONRequest) (string, error)
	// Chat continues a conversation under a system instruction and returns the reply text
	Chat(ctx context.Context, req ChatRequest) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderVertex:
		return NewVertexClient(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

func temperature(t float32) float32 {
	if t == 0 {
		return DefaultTemperature
	}
	return t
}
