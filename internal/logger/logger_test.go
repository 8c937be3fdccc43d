package logger

import (
	"log/slog"
	"testing"

	"github.com/rs/zerolog"
)

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   zerolog.Level
		want slog.Level
	}{
		{zerolog.TraceLevel, slog.LevelDebug},
		{zerolog.DebugLevel, slog.LevelDebug},
		{zerolog.InfoLevel, slog.LevelInfo},
		{zerolog.WarnLevel, slog.LevelWarn},
		{zerolog.ErrorLevel, slog.LevelError},
	}
	for _, tt := range tests {
		if got := slogLevel(tt.in); got != tt.want {
			t.Errorf("slogLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	if err := Setup(cfg); err == nil {
		t.Error("Setup accepted an unknown level")
	}
}
