package logging

import "go.uber.org/zap"

// Logger is the package-global logger used when no per-component logger
// is injected. Defaults to the production configuration.
var Logger *zap.Logger

func init() {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	Logger = logger
}

// SetLogger replaces the global logger. Intended for application startup,
// before any sweeper components are constructed.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}
	Logger = logger
}
