package mpsm

import "go.uber.org/zap"

// Option is a functional option for configuring joins and their phases.
type Option func(*config)

type config struct {
	logger *zap.Logger
}

func defaultConfig() *config {
	return &config{
		logger: zap.NewNop(),
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger that receives per-phase debug records
// (phase name, worker count, elapsed time). A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}
