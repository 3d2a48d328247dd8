package bus

import "github.com/relab-mx/scoreboard/pkg/logger"

// Option applies a configuration option to the InProcessBus.
type Option func(*InProcessBus)

// WithLogger sets a custom logger for the bus.
func WithLogger(l logger.Logger) Option {
	return func(b *InProcessBus) {
		if l != nil {
			b.logger = l
		}
	}
}
