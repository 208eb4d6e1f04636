package engine

import "go.uber.org/zap"

// Option configures engine calls.
type Option func(*config)

type config struct {
	logger *zap.Logger
}

// WithLogger routes coercion warnings and debug output to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
