package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// maxLoggedContent caps how much of a model response lands in the log.
const maxLoggedContent = 400

// LoggingProvider is a decorator that records every model call with its
// purpose, latency, and token usage.
type LoggingProvider struct {
	inner Provider
	log   *zap.Logger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("purpose", PurposeFrom(ctx)),
		zap.String("model", l.inner.ModelID()),
		zap.Duration("latency", time.Since(start)),
	}

	if resp != nil {
		fields = append(fields,
			zap.String("model_served", resp.Model),
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
			zap.String("stop_reason", resp.StopReason),
		)
	}

	if err != nil {
		fields = append(fields, zap.Error(err))
		l.log.Warn("llm request failed", fields...)
		return resp, err
	}

	if ce := l.log.Check(zap.DebugLevel, "llm request"); ce != nil {
		fields = append(fields, zap.String("content", truncate(string(resp.Content), maxLoggedContent)))
		ce.Write(fields...)
	} else {
		l.log.Info("llm request", fields...)
	}

	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// truncate shortens s to at most limit runes, appending an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
