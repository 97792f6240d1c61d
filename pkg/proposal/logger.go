package proposal

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger   *zap.Logger
	globalLoggerMu sync.RWMutex
	loggerOnce     sync.Once
)

func initGlobalLogger() {
	loggerOnce.Do(func() {
		logger, err := NewLogger(GetGlobalConfig().LogLevel)
		if err != nil {
			logger = zap.NewNop()
		}
		globalLoggerMu.Lock()
		if globalLogger == nil {
			globalLogger = logger
		}
		globalLoggerMu.Unlock()
	})
}

func parseLogLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "off":
		return zapcore.FatalLevel + 1
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger builds a production zap logger writing to stderr at the given level
// (debug, info, warn, error or off).
func NewLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(strings.TrimSpace(level), "off") {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLogLevel(level))
	config.Sampling = nil
	return config.Build()
}

// SetLogger replaces the package logger. A nil logger disables logging.
func SetLogger(logger *zap.Logger) {
	initGlobalLogger()
	if logger == nil {
		logger = zap.NewNop()
	}
	globalLoggerMu.Lock()
	globalLogger = logger
	globalLoggerMu.Unlock()
}

// GetLogger returns the package logger.
func GetLogger() *zap.Logger {
	initGlobalLogger()
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// UpdateLoggerFromConfig rebuilds the package logger from the current global configuration
func UpdateLoggerFromConfig() {
	logger, err := NewLogger(GetGlobalConfig().LogLevel)
	if err != nil {
		return
	}
	SetLogger(logger)
}
