// Package log is the structured logger used by the binaries. It wraps zap
// behind a small Field vocabulary so callers never import zap directly. The
// geometry packages do not log.
package log

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv switches the default logger to debug level when set to "1".
const DebugEnv = "SWEEP_DEBUG"

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string { return toZapLevel(l).String() }

// LevelFromEnv returns LevelDebug if DebugEnv is "1", LevelInfo otherwise.
func LevelFromEnv() Level {
	if os.Getenv(DebugEnv) == "1" {
		return LevelDebug
	}
	return LevelInfo
}

type Logger struct {
	zapLogger *zap.Logger
	level     zap.AtomicLevel
}

// New returns a console logger writing to stderr at the given level.
func New(level Level) *Logger {
	atom := zap.NewAtomicLevelAt(toZapLevel(level))
	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	encoder.EncodeLevel = zapcore.CapitalLevelEncoder
	config := zap.Config{
		Level:             atom,
		Development:       false,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig:     encoder,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	zapLogger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("log: building zap logger: %v", err))
	}
	return &Logger{zapLogger: zapLogger, level: atom}
}

// NewWithCore wraps an existing zap core. Tests use it with an observer.
func NewWithCore(core zapcore.Core) *Logger {
	atom := zap.NewAtomicLevelAt(zap.DebugLevel)
	return &Logger{zapLogger: zap.New(core), level: atom}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zapLogger: zap.NewNop(), level: zap.NewAtomicLevelAt(zap.FatalLevel)}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.zapLogger.Debug(msg, toZapFields(fields)...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.zapLogger.Info(msg, toZapFields(fields)...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.zapLogger.Warn(msg, toZapFields(fields)...) }
func (l *Logger) Error(msg string, fields ...Field) { l.zapLogger.Error(msg, toZapFields(fields)...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.zapLogger.Fatal(msg, toZapFields(fields)...) }

// With returns a child logger carrying fields on every entry.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{zapLogger: l.zapLogger.With(toZapFields(fields)...), level: l.level}
}

// Named returns a child logger whose entries carry the given component
// name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{zapLogger: l.zapLogger.Named(name), level: l.level}
}

func (l *Logger) SetLevel(level Level) { l.level.SetLevel(toZapLevel(level)) }

func (l *Logger) Enabled(level Level) bool { return l.zapLogger.Core().Enabled(toZapLevel(level)) }

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *Logger) Sync() { _ = l.zapLogger.Sync() }

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zap.DebugLevel
	case LevelInfo:
		return zap.InfoLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	case LevelFatal:
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}
