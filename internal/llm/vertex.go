package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// VertexClient implements Client for Gemini models served through Vertex AI
type VertexClient struct {
	client *genai.Client
	config *Config
}

// NewVertexClient creates a Vertex AI client using application default credentials
func NewVertexClient(ctx context.Context, config *Config) (*VertexClient, error) {
	if config.Project == "" || config.Location == "" {
		return nil, fmt.Errorf("vertex provider requires project and location")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  config.Project,
		Location: config.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return &VertexClient{client: client, config: config}, nil
}

func (c *VertexClient) generate(ctx context.Context, tier ModelTier, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	resp, err := c.client.Models.GenerateContent(ctx, modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text parts in response")
	}
	return text, nil
}

// GenerateContent generates text content using the specified model tier
func (c *VertexClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, tier, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(DefaultTemperature),
	})
}

// GenerateJSON generates JSON constrained to the request schema
func (c *VertexClient) GenerateJSON(ctx context.Context, req JSONRequest) (string, error) {
	text, err := c.generate(ctx, req.Tier, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature(req.Temperature)),
		ResponseMIMEType: "application/json",
		ResponseSchema:   toVertexSchema(req.Schema),
	})
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Chat sends the history plus the new message in one request
func (c *VertexClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		contents = append(contents, genai.NewContentFromText(m.Text, genai.Role(m.Role)))
	}
	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature(req.Temperature)),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	return c.generate(ctx, req.Tier, contents, cfg)
}

// GetModel returns the model name for a tier
func (c *VertexClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the genai client holds no closable resources.
func (c *VertexClient) Close() error {
	return nil
}

func toVertexSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        vertexType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       toVertexSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toVertexSchema(prop)
		}
	}
	return out
}

func vertexType(t SchemaType) genai.Type {
	switch t {
	case TypeString:
		return genai.TypeString
	case TypeNumber:
		return genai.TypeNumber
	case TypeInteger:
		return genai.TypeInteger
	case TypeBoolean:
		return genai.TypeBoolean
	case TypeArray:
		return genai.TypeArray
	case TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
