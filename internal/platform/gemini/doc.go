// Package gemini implements the generation.Provider interface using Google's
// Gemini API. It is a single-attempt adapter: one network call per Generate
// invocation, classified into the shared outcome variants. Retry and fallback
// live in the generation package.
package gemini
