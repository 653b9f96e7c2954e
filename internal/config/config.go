package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Email      EmailConfig      `mapstructure:"email"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all text-generation provider settings.
//
// API keys are intentionally not marked required: a missing credential is a
// valid runtime state that the orchestrator handles by skipping the provider,
// not a startup failure.
type LLMConfig struct {
	// GeminiAPIKey authenticates against the Gemini API. May be empty.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// GeminiModel is the Gemini model identifier.
	GeminiModel string `mapstructure:"gemini_model" validate:"required"`

	// PerplexityAPIKey authenticates against the Perplexity API. May be empty.
	PerplexityAPIKey string `mapstructure:"perplexity_api_key"`

	// PerplexityModel is the Perplexity model identifier.
	PerplexityModel string `mapstructure:"perplexity_model" validate:"required"`

	// ProviderOrder lists provider names in priority order, comma separated.
	// The first entry is the primary provider; either provider may be first.
	ProviderOrder string `mapstructure:"provider_order" validate:"required"`

	// MaxAttempts bounds total call attempts per provider (initial + retries).
	MaxAttempts int `mapstructure:"max_attempts" validate:"required,gte=1,lte=10"`

	// RetryBackoffSeconds is the fixed wait between retries of one provider.
	RetryBackoffSeconds int `mapstructure:"retry_backoff_seconds" validate:"gte=0,lte=60"`

	// ExplanationTimeoutSeconds bounds each short-explanation call.
	ExplanationTimeoutSeconds int `mapstructure:"explanation_timeout_seconds" validate:"required,gte=1,lte=300"`

	// ReportTimeoutSeconds bounds each full-report call. Reports run longer
	// than short explanations, so this gets a separate allowance.
	ReportTimeoutSeconds int `mapstructure:"report_timeout_seconds" validate:"required,gte=1,lte=600"`
}

// RetryBackoff returns the configured backoff as a duration.
func (c LLMConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffSeconds) * time.Second
}

// ExplanationTimeout returns the per-attempt explanation timeout as a duration.
func (c LLMConfig) ExplanationTimeout() time.Duration {
	return time.Duration(c.ExplanationTimeoutSeconds) * time.Second
}

// ReportTimeout returns the per-attempt report timeout as a duration.
func (c LLMConfig) ReportTimeout() time.Duration {
	return time.Duration(c.ReportTimeoutSeconds) * time.Second
}

// ClassifierConfig contains settings for the OCT image classifier collaborator.
type ClassifierConfig struct {
	// InferenceURL is the endpoint of the model inference service. May be
	// empty, in which case the predict endpoint reports itself unavailable.
	InferenceURL string `mapstructure:"inference_url"`

	// TimeoutSeconds bounds a single inference request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0,lte=120"`
}

// Timeout returns the inference timeout as a duration.
func (c ClassifierConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EmailConfig contains SMTP delivery settings for the mail collaborator.
// Like provider keys, missing credentials disable delivery rather than
// failing startup.
type EmailConfig struct {
	SMTPHost   string `mapstructure:"smtp_host"`
	SMTPPort   int    `mapstructure:"smtp_port"   validate:"gte=0,lt=65536"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	SenderName string `mapstructure:"sender_name"`
}
