package xnb

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/xnb/content"
	"github.com/wippyai/xnb/tide"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the envelope logger. It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the logger of this package and of the content and
// tide decoders. This must be called before any decode operations.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
	content.SetLogger(l.Named("content"))
	tide.SetLogger(l.Named("tide"))
}
