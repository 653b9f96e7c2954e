// Package generation contains the core text-generation pipeline: prompt
// construction, provider attempt outcomes, bounded retry, ordered fallback
// across providers, and deterministic template degradation.
//
// The package is the application's uniform decision surface over external
// text-generation services. Each provider adapter (see internal/platform)
// implements the Provider interface and reports every attempt as an Outcome
// tagged variant; the Service walks providers in configured priority order
// and guarantees that both GetExplanation and BuildFullReport always return
// usable text, degrading to static templates when every provider fails.
// No failure escapes those two operations as an error.
package generation
