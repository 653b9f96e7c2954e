// Package redact provides utilities for redacting sensitive information from
// strings before they are logged or returned in error responses. This package
// helps prevent the accidental leakage of credentials, endpoints, and patient
// email addresses that might be included in provider error messages.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

// Precompiled patterns, applied in order. API keys and passwords first so a
// key embedded in a URL is not half-eaten by the host pattern.
var (
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|bearer|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	// Hosts are only redacted when they look like network endpoints: a
	// recognized public TLD, or any dotted name carrying an explicit port.
	// Dotted Go identifiers in error prose (assert.AnError) stay readable.
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+(?:(?:com|net|org|io|ai|dev|app|co|edu|gov|info)\b(?::\d{1,5})?|[a-zA-Z]{2,}:\d{1,5})`,
	)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	patterns = []*regexp.Regexp{
		apiKeyRegex, passwordRegex, emailRegex, hostPortRegex, unixPathRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		apiKeyRegex:   RedactedKeyPlaceholder,
		passwordRegex: RedactedCredentialPlaceholder,
		emailRegex:    RedactedEmailPlaceholder,
		hostPortRegex: RedactedHostPlaceholder,
		unixPathRegex: RedactedPathPlaceholder,
	}
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		result = pattern.ReplaceAllString(result, patternPlaceholders[pattern])
	}
	return result
}

// Error redacts sensitive information from an error's message.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
