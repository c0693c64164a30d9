// Package llm is a thin, provider-neutral layer over the Anthropic, OpenAI
// and Gemini SDKs that returns schema-validated JSON.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set the output is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider sends requests to.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the provider's native structured output
	// mode. Without it Content is the raw text.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the response must satisfy.
type Schema struct {
	Name        string // kebab-case, e.g. "topic-explanation"
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// SingleTurn builds a request with one user message.
func SingleTurn(system, prompt string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

func (r Request) validate() error {
	if len(r.Messages) == 0 {
		return errors.New("request has no messages")
	}
	if r.MaxTokens <= 0 {
		return errors.New("request MaxTokens must be > 0")
	}
	return nil
}

// finish validates provider output against the request schema and checks
// for truncation.
func finish(req Request, resp *Response) (*Response, error) {
	if resp.StopReason == "max_tokens" && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
