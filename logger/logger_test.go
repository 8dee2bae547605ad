package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{verbosity: -1, want: zapcore.WarnLevel},
		{verbosity: 0, want: zapcore.WarnLevel},
		{verbosity: 1, want: zapcore.InfoLevel},
		{verbosity: 2, want: zapcore.DebugLevel},
		{verbosity: 5, want: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, VerbosityToLevel(tt.verbosity)); diff != "" {
			t.Errorf("VerbosityToLevel(%d) diff(-want +got): %s", tt.verbosity, diff)
		}
	}
}

func TestInitializeTo(t *testing.T) {
	defer func() { Logger = zap.NewNop().Sugar() }()

	var buf bytes.Buffer
	if err := InitializeTo(&buf, true, VerbosityInfo); err != nil {
		t.Fatalf("InitializeTo() error = %v", err)
	}

	Logger.Debugw("hidden", FieldClass, "User")
	Logger.Infow("planned", FieldClass, "User", FieldCount, 3)
	Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level: %s", out)
	}
	if !strings.Contains(out, `"class":"User"`) || !strings.Contains(out, `"count":3`) {
		t.Errorf("structured fields missing: %s", out)
	}
}
