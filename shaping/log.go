package shaping

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the library's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs a logger. Call before any boundary operation;
// it is not synchronized against concurrent use.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}
