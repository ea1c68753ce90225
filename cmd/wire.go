package cmd

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rsoni/hireview/internal/interview"
	"github.com/rsoni/hireview/internal/llm"
	"github.com/rsoni/hireview/internal/questiongen"
	"github.com/rsoni/hireview/internal/report"
	"github.com/rsoni/hireview/internal/scoring"
	"github.com/rsoni/hireview/internal/store"
)

// buildService assembles the interview service from flags and environment.
// A missing or misconfigured model provider is not fatal: question
// generation falls back to the template bank and scoring to the heuristic.
func buildService(ctx context.Context, log *zap.Logger) (*interview.Service, func() error, error) {
	repo, closer, err := buildRepo(log)
	if err != nil {
		return nil, nil, err
	}

	provider, err := llm.NewProviderFromEnv(ctx, log)
	if err != nil {
		log.Warn("model provider unavailable, running with deterministic fallbacks", zap.Error(err))
		provider = nil
	}

	var primary questiongen.Generator
	if provider != nil {
		primary = questiongen.NewLLM(provider, questiongen.DefaultConfig())
	}

	svc := interview.NewService(
		repo,
		questiongen.NewFallback(primary, log),
		scoring.NewLLM(provider, scoring.DefaultLLMConfig(), log),
		report.NewLLM(provider, report.DefaultLLMConfig(), log),
		log,
	)
	return svc, closer, nil
}

func buildRepo(log *zap.Logger) (interview.SessionRepo, func() error, error) {
	if viper.GetBool("memory") {
		log.Info("using in-memory session store")
		return store.NewMemory(), func() error { return nil }, nil
	}

	path := viper.GetString("db")
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using sqlite session store", zap.String("path", path))
	return st.Sessions(), st.Close, nil
}
