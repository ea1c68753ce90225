package questiongen

import (
	"context"

	"go.uber.org/zap"
)

// FallbackGenerator tries the primary generator and, if it fails, produces
// the batch from the template bank instead. A session always gets its
// questions; a model outage degrades quality, never availability.
type FallbackGenerator struct {
	primary  Generator
	fallback Generator
	log      *zap.Logger
}

// NewFallback wires a primary generator with the template bank behind it.
// A nil primary skips straight to the fallback (offline mode).
func NewFallback(primary Generator, log *zap.Logger) *FallbackGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &FallbackGenerator{
		primary:  primary,
		fallback: NewTemplateGenerator(),
		log:      log,
	}
}

func (f *FallbackGenerator) Generate(ctx context.Context, input Input) ([]Question, error) {
	if f.primary != nil {
		questions, err := f.primary.Generate(ctx, input)
		if err == nil {
			return questions, nil
		}
		f.log.Warn("model question generation failed, using template bank",
			zap.String("role", input.Role),
			zap.Error(err),
		)
	}
	return f.fallback.Generate(ctx, input)
}
