package redact_test

import (
	"errors"
	"testing"

	"github.com/luminapath/lumina-api/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		mustContain string
		mustNotHave string
	}{
		{
			name:        "api key",
			input:       "request failed: api_key=AIzaSyD8kQhN7wXyZ1234 rejected",
			mustContain: redact.RedactedKeyPlaceholder,
			mustNotHave: "AIzaSyD8kQhN7wXyZ1234",
		},
		{
			name:        "bearer token",
			input:       "401 unauthorized: bearer pplx9f8e7d6c5b4a3210",
			mustContain: redact.RedactedKeyPlaceholder,
			mustNotHave: "pplx9f8e7d6c5b4a3210",
		},
		{
			name:        "password",
			input:       "login failed: password=hunter22",
			mustContain: redact.RedactedCredentialPlaceholder,
			mustNotHave: "hunter22",
		},
		{
			name:        "email address",
			input:       "delivery to patient@example.com bounced",
			mustContain: redact.RedactedEmailPlaceholder,
			mustNotHave: "patient@example.com",
		},
		{
			name:        "host and port",
			input:       "dial tcp: lookup api.perplexity.ai:443 failed",
			mustContain: redact.RedactedHostPlaceholder,
			mustNotHave: "api.perplexity.ai",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := redact.String(tt.input)
			assert.Contains(t, got, tt.mustContain)
			assert.NotContains(t, got, tt.mustNotHave)
		})
	}
}

func TestStringKeepsDottedIdentifiers(t *testing.T) {
	t.Parallel()

	tests := []string{
		"assert.AnError general error for testing",
		"context.DeadlineExceeded while waiting for provider",
		"gemini call failed: rpc error details unavailable",
	}

	for _, input := range tests {
		assert.Equal(t, input, redact.String(input))
	}
}

func TestStringRedactsHostWithPort(t *testing.T) {
	t.Parallel()

	got := redact.String("dial tcp internal.corp:8080: connection refused")
	assert.Contains(t, got, redact.RedactedHostPlaceholder)
	assert.NotContains(t, got, "internal.corp")
}

func TestStringEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", redact.String(""))
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", redact.Error(nil))

	got := redact.Error(errors.New("timeout contacting generativelanguage.googleapis.com"))
	assert.NotContains(t, got, "googleapis.com")
}
