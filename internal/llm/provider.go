package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the interview engine uses to talk to a
// generative model. Implementations exist for Anthropic, OpenAI, OpenRouter,
// Gemini, and a deterministic mock for tests.
type Provider interface {
	// Generate sends a prompt to the model and returns its output. When the
	// request carries a Schema, the provider asks for structured output and
	// validates the response against it before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes one model call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Interview prompts are single-turn, so
	// this usually holds one user message.
	Messages []Message

	// Schema, when set, instructs the provider to use its native structured
	// output mechanism and to validate the result. When nil the response
	// Content is the raw text, which callers route through the extractor.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0–1.0. Zero means deterministic.
	Temperature float64
}

// Message is one turn of the conversation.
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

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name for
	// OpenAI). Kebab-case, e.g. "interview-questions".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output. With a Schema it is the validated
	// JSON document; without one it is the raw text as returned.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
