package perplexity

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/luminapath/lumina-api/internal/config"
	"github.com/luminapath/lumina-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		PerplexityAPIKey: "test-key",
		PerplexityModel:  "llama-3.1-sonar-small-128k-online",
	}
}

// fakeServer returns a client pointed at an httptest server running the
// given handler.
func fakeServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(testLogger(), testConfig(), WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func completionJSON(content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "cmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "llama-3.1-sonar-small-128k-online",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": finishReason,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := New(nil, testConfig())
	assert.Error(t, err)

	_, err = New(testLogger(), config.LLMConfig{PerplexityAPIKey: "k"})
	assert.Error(t, err)
}

func TestGenerateWithoutCredentialIsConfigFailure(t *testing.T) {
	t.Parallel()

	client, err := New(testLogger(), config.LLMConfig{
		PerplexityModel: "llama-3.1-sonar-small-128k-online",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderName, client.Name())

	outcome := client.Generate(context.Background(), "prompt")

	assert.Equal(t, generation.OutcomeConfig, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, generation.ErrMissingCredential)
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()

	client := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[1].Content, "CNV")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionJSON("  CNV overview text.  ", "stop"))
	})

	outcome := client.Generate(context.Background(), "Explain CNV")

	require.Equal(t, generation.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "CNV overview text.", outcome.Text)
}

func TestGenerateContentFilterIsBlocked(t *testing.T) {
	t.Parallel()

	client := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionJSON("", "content_filter"))
	})

	outcome := client.Generate(context.Background(), "prompt")

	assert.Equal(t, generation.OutcomeSafetyBlocked, outcome.Kind)
}

func TestGenerateEmptyChoices(t *testing.T) {
	t.Parallel()

	client := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[]}`))
	})

	outcome := client.Generate(context.Background(), "prompt")

	assert.Equal(t, generation.OutcomeEmpty, outcome.Kind)
}

func TestGenerateWhitespaceContentIsEmpty(t *testing.T) {
	t.Parallel()

	client := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionJSON("   \n ", "stop"))
	})

	outcome := client.Generate(context.Background(), "prompt")

	assert.Equal(t, generation.OutcomeEmpty, outcome.Kind)
}

func TestGenerateServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	client := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded","type":"server_error"}}`,
			http.StatusBadGateway)
	})

	outcome := client.Generate(context.Background(), "prompt")

	assert.Equal(t, generation.OutcomeTransient, outcome.Kind)
	assert.Error(t, outcome.Err)
}

func TestGenerateUnauthorizedIsConfigFailure(t *testing.T) {
	t.Parallel()

	client := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	})

	outcome := client.Generate(context.Background(), "prompt")

	assert.Equal(t, generation.OutcomeConfig, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, generation.ErrMissingCredential)
}

func TestGenerateTimeoutIsTransient(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	client := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-done
	})
	defer close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	outcome := client.Generate(ctx, "prompt")

	assert.Equal(t, generation.OutcomeTransient, outcome.Kind)
}
