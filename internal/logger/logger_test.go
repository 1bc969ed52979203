package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLevel_FiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev })

	globalLogger = New(&buf, zerolog.WarnLevel)
	Get().Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at warn level, got %q", buf.String())
	}

	SetLevel(zerolog.DebugLevel)
	Get().Debug().Str("path", "/servers").Msg("visible")
	if !strings.Contains(buf.String(), "visible") || !strings.Contains(buf.String(), "/servers") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestCtx_FallsBackToGlobal(t *testing.T) {
	if Ctx(context.Background()) != Get() {
		t.Error("expected global logger for context without logger")
	}

	l := zerolog.Nop()
	ctx := WithLogger(context.Background(), &l)
	if Ctx(ctx) != &l {
		t.Error("expected context logger")
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		env  string
		want zerolog.Level
	}{
		{"", zerolog.WarnLevel},
		{"debug", zerolog.DebugLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			if got := levelFromEnv(); got != tt.want {
				t.Errorf("levelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}
