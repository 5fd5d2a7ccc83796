package infrastructure

import (
	"context"
	"sync"

	"github.com/coinshop/recharge-system/shared/events"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	_ events.Publisher  = (*MemoryEventBus)(nil)
	_ events.Subscriber = (*MemoryEventBus)(nil)
)

type subscription struct {
	pattern events.Topic
	handler events.EventHandler
}

// MemoryEventBus is an in-process event bus. Events are dispatched
// synchronously in publish order; handlers matching the same event run
// concurrently. All effects stay inside the process, which is what the
// simulated backend requires.
type MemoryEventBus struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewMemoryEventBus creates a new MemoryEventBus
func NewMemoryEventBus() *MemoryEventBus {
	return &MemoryEventBus{}
}

// Subscribe registers a handler for all topics matching the pattern
func (b *MemoryEventBus) Subscribe(_ context.Context, pattern events.Topic, handler events.EventHandler) error {
	if pattern == "" {
		return events.ErrInvalidTopic
	}
	if handler == nil {
		return errors.New("handler is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{pattern: pattern, handler: handler})

	log.WithFields(log.Fields{
		"pattern": pattern.String(),
		"handler": handler.HandlerID(),
	}).Debug("event handler subscribed")

	return nil
}

// Publish dispatches events to every matching subscriber
func (b *MemoryEventBus) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	for _, event := range evts {
		if err := b.dispatch(ctx, event); err != nil {
			return errors.Wrapf(err, "failed to dispatch event %s", event.Topic)
		}
	}

	return nil
}

// Close drops all subscriptions. Events published afterwards go nowhere.
func (b *MemoryEventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = nil
}

func (b *MemoryEventBus) dispatch(ctx context.Context, event *events.Event) error {
	b.mu.RLock()
	matched := make([]events.EventHandler, 0, len(b.subs))
	for _, sub := range b.subs {
		if event.Topic.Matches(sub.pattern) {
			matched = append(matched, sub.handler)
		}
	}
	b.mu.RUnlock()

	if len(matched) == 0 {
		return nil
	}

	gr, ctx := errgroup.WithContext(ctx)
	for _, handler := range matched {
		handler := handler
		gr.Go(func() error {
			if err := handler.Handle(ctx, event); err != nil {
				log.WithFields(log.Fields{
					"topic":   event.Topic.String(),
					"handler": handler.HandlerID(),
				}).WithError(err).Error("event handler failed")
				return err
			}
			return nil
		})
	}

	return gr.Wait()
}
