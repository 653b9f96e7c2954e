package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take precedence
// over file values, which take precedence over defaults.
//
// Environment variables use the LUMINA_ prefix with underscores separating
// nested keys, e.g. LUMINA_SERVER_PORT, LUMINA_LLM_GEMINI_API_KEY.
//
// Returns a populated Config or an error if loading or validation fails.
// Note that absent provider credentials do not fail validation: a provider
// without a key is skipped at call time, not rejected at startup.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("LUMINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not cooperate with Unmarshal for keys absent from the
	// config file, so bind every known key explicitly.
	for _, key := range allKeys() {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values for all configuration keys.
// Retry defaults mirror the provider pipeline contract: 3 total attempts
// with a fixed 2 second backoff.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.gemini_model", "gemini-2.5-flash")
	v.SetDefault("llm.perplexity_model", "llama-3.1-sonar-small-128k-online")
	v.SetDefault("llm.provider_order", "gemini,perplexity")
	v.SetDefault("llm.max_attempts", 3)
	v.SetDefault("llm.retry_backoff_seconds", 2)
	v.SetDefault("llm.explanation_timeout_seconds", 30)
	v.SetDefault("llm.report_timeout_seconds", 60)

	v.SetDefault("classifier.timeout_seconds", 10)

	v.SetDefault("email.smtp_host", "smtp.gmail.com")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.sender_name", "LuminaPath AI System")
}

// allKeys lists every configuration key for explicit env binding.
func allKeys() []string {
	return []string{
		"server.port",
		"server.log_level",
		"llm.gemini_api_key",
		"llm.gemini_model",
		"llm.perplexity_api_key",
		"llm.perplexity_model",
		"llm.provider_order",
		"llm.max_attempts",
		"llm.retry_backoff_seconds",
		"llm.explanation_timeout_seconds",
		"llm.report_timeout_seconds",
		"classifier.inference_url",
		"classifier.timeout_seconds",
		"email.smtp_host",
		"email.smtp_port",
		"email.username",
		"email.password",
		"email.sender_name",
	}
}
