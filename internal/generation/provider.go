package generation

import "context"

// Provider defines the interface for a single text-generation service.
// This interface is the boundary between the application core and external
// AI/LLM services, following the hexagonal architecture pattern.
//
// Implementations issue exactly one network call per Generate invocation,
// bounded by the context deadline, and report the result as an Outcome.
// They never retry internally; retrying is the caller's responsibility,
// which keeps each adapter a single-attempt primitive that is testable in
// isolation with a fake transport.
type Provider interface {
	// Name returns a short stable identifier for logging ("gemini",
	// "perplexity").
	Name() string

	// Generate sends the prompt to the provider and classifies the reply.
	// A missing credential must be reported as an OutcomeConfig outcome
	// without attempting network I/O. Generate never panics and never
	// returns a zero Outcome.
	Generate(ctx context.Context, prompt string) Outcome
}
