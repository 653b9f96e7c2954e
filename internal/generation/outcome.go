package generation

import "strings"

// OutcomeKind classifies the result of a single provider attempt.
type OutcomeKind int

const (
	// OutcomeSuccess means the provider produced usable text.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeEmpty means the provider replied without usable text.
	// Treated as possibly transient, so it is retryable.
	OutcomeEmpty

	// OutcomeSafetyBlocked means the provider declined to answer. Retrying
	// the same prompt will not change a safety verdict, so this is not
	// retried against the same provider, but the next provider is still tried.
	OutcomeSafetyBlocked

	// OutcomeTransient means a network fault, timeout, or server-side error.
	OutcomeTransient

	// OutcomeConfig means the provider is missing credentials or otherwise
	// misconfigured. The provider is skipped without any network I/O.
	OutcomeConfig
)

// String returns a stable lowercase name for logging and error detail.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty_response"
	case OutcomeSafetyBlocked:
		return "safety_blocked"
	case OutcomeTransient:
		return "transient_error"
	case OutcomeConfig:
		return "config_error"
	default:
		return "unknown"
	}
}

// Retryable reports whether another attempt against the same provider could
// plausibly produce a different result.
func (k OutcomeKind) Retryable() bool {
	return k == OutcomeTransient || k == OutcomeEmpty
}

// Outcome is the tagged result of one provider attempt. All providers funnel
// into this one variant set, which is what lets the orchestrator treat them
// uniformly regardless of each provider's raw reply schema.
type Outcome struct {
	// Kind tags the variant.
	Kind OutcomeKind

	// Text holds the generated text. Non-empty only when Kind is OutcomeSuccess.
	Text string

	// Err holds the underlying cause for failure outcomes. May be nil for
	// outcomes that have no meaningful cause beyond their kind.
	Err error
}

// Success builds a successful outcome carrying trimmed text.
func Success(text string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Text: strings.TrimSpace(text)}
}

// Empty builds an empty-response outcome.
func Empty() Outcome {
	return Outcome{Kind: OutcomeEmpty, Err: ErrEmptyResponse}
}

// Blocked builds a safety-blocked outcome.
func Blocked() Outcome {
	return Outcome{Kind: OutcomeSafetyBlocked, Err: ErrContentBlocked}
}

// Transient builds a transient-failure outcome with the given cause.
func Transient(cause error) Outcome {
	return Outcome{Kind: OutcomeTransient, Err: cause}
}

// ConfigFailure builds a configuration-failure outcome with the given cause.
func ConfigFailure(cause error) Outcome {
	return Outcome{Kind: OutcomeConfig, Err: cause}
}
