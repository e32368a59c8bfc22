package logging

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events.
	LogError LogLevel = "error"

	// LogDebug is used for detailed construction traces.
	LogDebug LogLevel = "debug"
)

func (l LogLevel) zapLevel() (zapcore.Level, error) {
	switch l {
	case LogInfo, "":
		return zap.InfoLevel, nil
	case LogWarn:
		return zap.WarnLevel, nil
	case LogError:
		return zap.ErrorLevel, nil
	case LogDebug:
		return zap.DebugLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown log level %q", string(l))
	}
}

// NewLogger builds a console logger writing to stderr at the given level.
func NewLogger(level LogLevel) (*zap.Logger, error) {
	lvl, err := level.zapLevel()
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core), nil
}

// NewTestLogger builds a debug-level console logger on stdout.
func NewTestLogger() *zap.Logger {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return zap.New(consoleCore)
}

// Fields converts a loose field map into zap fields, sorted by key so that
// log lines are stable.
func Fields(fields map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(fields))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

// Log writes msg at level through logger.
func Log(logger *zap.Logger, level LogLevel, msg string, fields map[string]interface{}) {
	zfs := Fields(fields)
	switch level {
	case LogInfo:
		logger.Info(msg, zfs...)
	case LogWarn:
		logger.Warn(msg, zfs...)
	case LogError:
		logger.Error(msg, zfs...)
	case LogDebug:
		logger.Debug(msg, zfs...)
	default:
		logger.Info(msg, zfs...)
	}
}
