package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/luminapath/lumina-api/internal/config"
	"github.com/luminapath/lumina-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level        string
		debugEnabled bool
		warnEnabled  bool
	}{
		{level: "debug", debugEnabled: true, warnEnabled: true},
		{level: "info", debugEnabled: false, warnEnabled: true},
		{level: "warn", debugEnabled: false, warnEnabled: true},
		{level: "error", debugEnabled: false, warnEnabled: false},
		// Unknown levels fall back to info.
		{level: "trace", debugEnabled: false, warnEnabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tt.level})
			require.NotNil(t, log)

			assert.Equal(t, tt.debugEnabled, log.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tt.warnEnabled, log.Enabled(context.Background(), slog.LevelWarn))
		})
	}
}

func TestSetupInstallsDefault(t *testing.T) {
	log := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "info"})

	assert.Equal(t, log, slog.Default())
}
