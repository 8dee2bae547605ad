package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It is a no-op until Initialize is called
// so library packages can log from tests without setup.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Standard field names.
const (
	FieldClass    = "class"
	FieldFile     = "file"
	FieldMode     = "mode"
	FieldCount    = "count"
	FieldAnchor   = "anchor"
	FieldURI      = "uri"
	FieldError    = "error"
	FieldSkipped  = "skipped"
	FieldFragment = "fragment"
)

// Verbosity levels for the -v flag count.
const (
	VerbosityUser  = 0
	VerbosityInfo  = 1
	VerbosityDebug = 2
)

// VerbosityToLevel maps -v flag counts to zap levels.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Initialize sets up the global logger. Output always goes to stderr because
// stdout carries generated source or the LSP stream.
func Initialize(jsonOutput bool, verbosity int) error {
	return InitializeTo(os.Stderr, jsonOutput, verbosity)
}

// InitializeTo is Initialize with an explicit writer.
func InitializeTo(w io.Writer, jsonOutput bool, verbosity int) error {
	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), VerbosityToLevel(verbosity))
	Logger = zap.New(core).Sugar()
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}
