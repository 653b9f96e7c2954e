package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/luminapath/lumina-api/internal/classifier"
	"github.com/luminapath/lumina-api/internal/config"
	"github.com/luminapath/lumina-api/internal/generation"
	"github.com/luminapath/lumina-api/internal/mail"
	"github.com/luminapath/lumina-api/internal/platform/gemini"
	"github.com/luminapath/lumina-api/internal/platform/perplexity"
	"github.com/luminapath/lumina-api/internal/report"
)

// application holds the wired dependencies of the running server.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	service    *generation.Service
	renderer   *report.Renderer
	mailer     mail.Mailer
	classifier classifier.Classifier
}

// newApplication builds the dependency graph from configuration. Providers
// are constructed in the configured priority order; a provider with a
// missing credential stays in the chain but fails fast with a
// configuration outcome, so the next provider still gets its turn.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	providers, err := buildProviders(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	explainPolicy := generation.RetryPolicy{
		MaxAttempts:    cfg.LLM.MaxAttempts,
		Backoff:        cfg.LLM.RetryBackoff(),
		AttemptTimeout: cfg.LLM.ExplanationTimeout(),
	}
	reportPolicy := generation.RetryPolicy{
		MaxAttempts:    cfg.LLM.MaxAttempts,
		Backoff:        cfg.LLM.RetryBackoff(),
		AttemptTimeout: cfg.LLM.ReportTimeout(),
	}

	service, err := generation.NewService(logger, providers, explainPolicy, reportPolicy)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	mailer, err := mail.NewSMTPMailer(logger, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}

	return &application{
		config:     cfg,
		logger:     logger,
		service:    service,
		renderer:   report.NewRenderer(),
		mailer:     mailer,
		classifier: classifier.NewHTTPClassifier(logger, cfg.Classifier.InferenceURL, cfg.Classifier.Timeout()),
	}, nil
}

// buildProviders instantiates explanation providers in the order named by
// the provider_order setting.
func buildProviders(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) ([]generation.Provider, error) {
	var providers []generation.Provider

	for _, name := range strings.Split(cfg.ProviderOrder, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case gemini.ProviderName:
			p, err := gemini.New(ctx, logger, cfg)
			if err != nil {
				return nil, fmt.Errorf("failed to create gemini provider: %w", err)
			}
			providers = append(providers, p)
		case perplexity.ProviderName:
			p, err := perplexity.New(logger, cfg)
			if err != nil {
				return nil, fmt.Errorf("failed to create perplexity provider: %w", err)
			}
			providers = append(providers, p)
		case "":
			// tolerate stray commas
		default:
			return nil, fmt.Errorf("unknown provider %q in provider order", name)
		}
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("provider order %q names no providers", cfg.ProviderOrder)
	}
	return providers, nil
}
