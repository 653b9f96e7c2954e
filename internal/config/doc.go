// Package config defines the application configuration structure and loads it
// from environment variables and an optional YAML file.
//
// Configuration is read once at startup and treated as read-only afterwards.
// Provider credentials are deliberately optional at load time: the generation
// pipeline treats a missing key as a per-call condition (the provider is
// skipped), not as a reason to refuse to boot.
package config
