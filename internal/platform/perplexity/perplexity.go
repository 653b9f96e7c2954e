// Package perplexity implements the generation.Provider interface against the
// Perplexity API, which speaks the OpenAI chat-completions wire format. Like
// the gemini adapter it is a single-attempt primitive; retry and fallback are
// the generation package's responsibility.
package perplexity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/luminapath/lumina-api/internal/config"
	"github.com/luminapath/lumina-api/internal/generation"
)

// ProviderName identifies this adapter in configuration and logs.
const ProviderName = "perplexity"

// DefaultBaseURL is the Perplexity API endpoint.
const DefaultBaseURL = "https://api.perplexity.ai"

// systemPrompt frames every chat completion sent to Perplexity.
const systemPrompt = "You are an expert ophthalmology educator."

// Client implements generation.Provider using Perplexity's OpenAI-compatible
// chat completions API.
type Client struct {
	logger *slog.Logger

	// api is nil when no API key is configured; Generate then reports a
	// config failure without network I/O.
	api   *openai.Client
	model string
}

// Option customizes a Client.
type Option func(*clientSettings)

type clientSettings struct {
	baseURL string
}

// WithBaseURL overrides the API endpoint. Used by tests to point the adapter
// at a fake server.
func WithBaseURL(u string) Option {
	return func(s *clientSettings) {
		s.baseURL = u
	}
}

// New creates a Perplexity-backed provider from the LLM configuration.
// A missing API key produces a disabled provider, not a construction error.
func New(logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.PerplexityModel == "" {
		return nil, errors.New("perplexity model name cannot be empty")
	}

	settings := clientSettings{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&settings)
	}

	c := &Client{
		logger: logger,
		model:  cfg.PerplexityModel,
	}

	if cfg.PerplexityAPIKey == "" {
		logger.Warn("perplexity API key not configured, provider disabled")
		return c, nil
	}

	apiConfig := openai.DefaultConfig(cfg.PerplexityAPIKey)
	apiConfig.BaseURL = settings.baseURL
	c.api = openai.NewClientWithConfig(apiConfig)

	return c, nil
}

// Name implements generation.Provider.
func (c *Client) Name() string {
	return ProviderName
}

// Generate issues exactly one chat completion bounded by the context deadline
// and classifies the reply.
func (c *Client) Generate(ctx context.Context, prompt string) generation.Outcome {
	if c.api == nil {
		return generation.ConfigFailure(
			fmt.Errorf("%w: perplexity API key not set", generation.ErrMissingCredential))
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2048,
	})
	if err != nil {
		return classifyError(err)
	}

	return extractOutcome(resp)
}

// classifyError maps a go-openai error to an outcome. Authentication and
// authorization rejections are configuration problems that no retry fixes;
// everything else is treated as transient.
func classifyError(err error) generation.Outcome {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return generation.ConfigFailure(
				fmt.Errorf("%w: perplexity rejected credentials: %v", generation.ErrMissingCredential, err))
		}
	}
	return generation.Transient(fmt.Errorf("perplexity call failed: %w", err))
}

// extractOutcome validates a raw chat-completion reply and classifies it into
// the shared outcome variants.
func extractOutcome(resp openai.ChatCompletionResponse) generation.Outcome {
	if len(resp.Choices) == 0 {
		return generation.Empty()
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return generation.Blocked()
	}

	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return generation.Empty()
	}

	return generation.Success(text)
}
