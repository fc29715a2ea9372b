package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Setup builds the process-wide logger. Development mode logs at debug level.
func Setup(dev bool) *zap.Logger {
	config := zap.NewProductionConfig()
	if dev {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := config.Build()
	if err != nil {
		log.Printf("Warning: failed to initialize logger: %v", err)
		return logger
	}
	logger = l
	return logger
}

// L returns the process-wide logger; a no-op logger until Setup is called.
func L() *zap.Logger {
	return logger
}

// Sync flushes buffered log entries.
func Sync() {
	_ = logger.Sync()
}
