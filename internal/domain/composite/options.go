package composite

import "github.com/okian/wbdash/pkg/logger"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithNamer sets the fallback country namer.
func WithNamer(n Namer) Option {
	return func(e *Engine) {
		e.namer = n
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithWorkers bounds how many countries Rank evaluates at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}
