// Package main implements the entry point for the LuminaPath API server,
// which classifies OCT retinal scans and produces patient-facing
// explanations and reports backed by redundant language model providers.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/luminapath/lumina-api/internal/config"
	"github.com/luminapath/lumina-api/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.serve(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application dependencies.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"provider_order", cfg.LLM.ProviderOrder,
		"gemini_key_present", cfg.LLM.GeminiAPIKey != "",
		"perplexity_key_present", cfg.LLM.PerplexityAPIKey != "",
		"email_configured", cfg.Email.Username != "")

	return newApplication(context.Background(), cfg, appLogger)
}
