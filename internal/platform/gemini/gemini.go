package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/luminapath/lumina-api/internal/config"
	"github.com/luminapath/lumina-api/internal/generation"
)

// ProviderName identifies this adapter in configuration and logs.
const ProviderName = "gemini"

// Generator implements generation.Provider using the Gemini API.
type Generator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client. Nil when no API key is configured,
	// in which case every Generate call reports a config failure without
	// network I/O.
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// New creates a Gemini-backed provider from the LLM configuration.
//
// A missing API key is not a construction error: the provider is built in a
// disabled state and reports OutcomeConfig on every call, so the orchestrator
// can skip it and fall through to the next provider.
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiModel == "" {
		return nil, errors.New("gemini model name cannot be empty")
	}

	g := &Generator{
		logger: logger,
		model:  cfg.GeminiModel,
	}

	if cfg.GeminiAPIKey == "" {
		logger.WarnContext(ctx, "gemini API key not configured, provider disabled")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

// Name implements generation.Provider.
func (g *Generator) Name() string {
	return ProviderName
}

// Generate issues exactly one Gemini call bounded by the context deadline and
// classifies the reply. It never retries; that is the caller's job.
func (g *Generator) Generate(ctx context.Context, prompt string) generation.Outcome {
	if g.client == nil {
		return generation.ConfigFailure(
			fmt.Errorf("%w: gemini API key not set", generation.ErrMissingCredential))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), requestConfig())
	if err != nil {
		// Transport faults, timeouts, and API-side errors are all worth a
		// retry; credential absence was already ruled out above.
		g.logger.DebugContext(ctx, "gemini call error", "error", err)
		return generation.Transient(fmt.Errorf("gemini call failed: %w", err))
	}

	return extractOutcome(resp)
}

// requestConfig returns the generation settings used for every call.
func requestConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](0.95),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 2048,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		},
	}
}

// extractOutcome validates a raw Gemini reply and classifies it into the
// shared outcome variants. Blocked verdicts are detected from the reported
// finish reason and prompt feedback, never from provider-internal numeric
// codes.
func extractOutcome(resp *genai.GenerateContentResponse) generation.Outcome {
	if resp == nil {
		return generation.Empty()
	}

	if fb := resp.PromptFeedback; fb != nil {
		if fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
			return generation.Blocked()
		}
	}

	if len(resp.Candidates) == 0 {
		return generation.Empty()
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent:
		return generation.Blocked()
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return generation.Empty()
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return generation.Empty()
	}

	return generation.Success(text)
}
