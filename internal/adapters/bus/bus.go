// Package bus provides the synchronous in-process dispatcher carrying
// domain change events from mutating collaborators to the score engine.
//
// Publish runs every subscribed handler to completion before returning, so
// propagation finishes inside the same unit of work as the mutation that
// triggered it. There is no queue and no deferred delivery.
package bus

import (
	"context"
	"errors"
	"sync"

	"github.com/relab-mx/scoreboard/internal/domain/events"
	"github.com/relab-mx/scoreboard/pkg/logger"
	"github.com/relab-mx/scoreboard/pkg/metrics"
)

// Handler reacts to one domain event. A returned error signals that the
// handler could not honor the event for its directly affected researcher.
type Handler func(ctx context.Context, evt events.Event) error

// Bus delivers domain events to subscribed handlers.
type Bus interface {
	// Subscribe registers a handler for all subsequent publishes.
	Subscribe(h Handler)

	// Publish validates evt and runs every handler synchronously, in
	// subscription order. Handler errors are joined and returned.
	Publish(ctx context.Context, evt events.Event) error
}

// InProcessBus implements Bus with an in-memory handler list.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   logger.Logger
}

// NewInProcessBus creates a bus with configuration options.
func NewInProcessBus(opts ...Option) *InProcessBus {
	b := &InProcessBus{}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Subscribe registers a handler.
func (b *InProcessBus) Subscribe(h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers evt to every handler, synchronously.
func (b *InProcessBus) Publish(ctx context.Context, evt events.Event) error {
	if err := evt.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	metrics.RecordEventPublished(string(evt.Kind))

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, evt); err != nil {
			if b.logger != nil {
				b.logger.Warn(ctx, "event handler failed",
					logger.String("kind", string(evt.Kind)),
					logger.Error(err),
				)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
