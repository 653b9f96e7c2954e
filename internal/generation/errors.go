package generation

import "errors"

// Common errors carried inside attempt outcomes.
var (
	// ErrEmptyResponse is returned when a provider replied but produced no
	// usable text (missing candidate/choice or whitespace-only content).
	ErrEmptyResponse = errors.New("provider returned no usable text")

	// ErrContentBlocked is returned when the provider declined to answer due
	// to its content safety filters.
	ErrContentBlocked = errors.New("content blocked by provider safety filters")

	// ErrTransientFailure is returned for temporary errors (network faults,
	// timeouts, 5xx responses) that might resolve on retry.
	ErrTransientFailure = errors.New("transient provider failure")

	// ErrMissingCredential is returned when a provider's credential is not
	// configured. Not retryable; the provider is skipped for the call.
	ErrMissingCredential = errors.New("provider credential not configured")
)
