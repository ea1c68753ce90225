package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rsoni/hireview/internal/llm"
)

// Config holds generation parameters for the model-backed generator.
type Config struct {
	MaxTokens   int
	Temperature float64
	Retry       llm.RetryConfig
}

// DefaultConfig returns sensible defaults for batch generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
		Retry:       llm.DefaultConfig().Retry,
	}
}

// LLMGenerator implements Generator using the model provider. Batch
// generation happens once per session, so transient provider errors are
// retried here (unlike the scoring path, which is single-attempt).
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewLLM creates a model-backed generator.
func NewLLM(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{
		provider: llm.WithRetry(provider, cfg.Retry),
		config:   cfg,
	}
}

// batchOutput is the raw model response before conversion.
type batchOutput struct {
	Questions []Question `json:"questions"`
}

// Generate asks the model for the full question batch.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	count := input.Count
	if count <= 0 {
		count = DefaultCount
	}

	userMsg, err := buildBatchMessage(input, count)
	if err != nil {
		return nil, fmt.Errorf("build question prompt: %w", err)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM question generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse question batch: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, fmt.Errorf("model returned an empty question batch")
	}

	return raw.Questions, nil
}
