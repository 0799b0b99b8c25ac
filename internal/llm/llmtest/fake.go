// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/blkdmnd/visual-thesis/internal/llm"
)

// ErrNoResponse is returned when the script has no reply queued.
var ErrNoResponse = errors.New("llmtest: no scripted response")

// Response is one scripted reply.
type Response struct {
	Text string
	Err  error
}

// Client records requests and replays scripted responses in order.
// When Block is set, every call waits for it to close or for ctx to end.
type Client struct {
	mu        sync.Mutex
	responses []Response

	Block chan struct{}

	ChatRequests []llm.ChatRequest
	JSONRequests []llm.JSONRequest
	Prompts      []string

	inFlight    int
	MaxInFlight int
}

// New returns a client that replies with the given texts in order.
func New(texts ...string) *Client {
	c := &Client{}
	for _, t := range texts {
		c.responses = append(c.responses, Response{Text: t})
	}
	return c
}

// Push queues another response.
func (c *Client) Push(r Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, r)
}

// Calls returns the number of requests of any kind received so far.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ChatRequests) + len(c.JSONRequests) + len(c.Prompts)
}

func (c *Client) next(ctx context.Context) (string, error) {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.MaxInFlight {
		c.MaxInFlight = c.inFlight
	}
	block := c.Block
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.responses) == 0 {
		return "", ErrNoResponse
	}
	r := c.responses[0]
	c.responses = c.responses[1:]
	return r.Text, r.Err
}

// GenerateContent implements llm.Client.
func (c *Client) GenerateContent(ctx context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	c.Prompts = append(c.Prompts, prompt)
	c.mu.Unlock()
	return c.next(ctx)
}

// GenerateJSON implements llm.Client.
func (c *Client) GenerateJSON(ctx context.Context, req llm.JSONRequest) (string, error) {
	c.mu.Lock()
	c.JSONRequests = append(c.JSONRequests, req)
	c.mu.Unlock()
	return c.next(ctx)
}

// Chat implements llm.Client.
func (c *Client) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	req.History = append([]llm.Message(nil), req.History...)
	c.mu.Lock()
	c.ChatRequests = append(c.ChatRequests, req)
	c.mu.Unlock()
	return c.next(ctx)
}

// GetModel implements llm.Client.
func (c *Client) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

// Close implements llm.Client.
func (c *Client) Close() error {
	return nil
}

var _ llm.Client = (*Client)(nil)
