package logger

import (
	"testing"

	"cardscan/backend/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"trace level", "trace", zerolog.TraceLevel},
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"warning level", "warning", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
		{"fatal level", "fatal", zerolog.FatalLevel},
		{"panic level", "panic", zerolog.PanicLevel},
		{"uppercase INFO", "INFO", zerolog.InfoLevel},
		{"unknown defaults to info", "unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.level))
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("development logger initialized", func(t *testing.T) {
		Init(config.LoggerConfig{Level: "debug", Environment: "development"})
		assert.NotNil(t, Get())
		assert.Equal(t, zerolog.DebugLevel, Get().GetLevel())
	})

	t.Run("production logger honors level", func(t *testing.T) {
		Init(config.LoggerConfig{Level: "warn", Environment: "production"})
		assert.Equal(t, zerolog.WarnLevel, Get().GetLevel())
	})
}

func TestComponent(t *testing.T) {
	Init(config.LoggerConfig{Level: "info", Environment: "test"})
	child := Component("extract")
	assert.NotNil(t, child)
}
