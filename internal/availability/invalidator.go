package availability

import (
	"context"
	"log/slog"

	"github.com/DelsinneJordan/BigFlix/internal/arr"
	"github.com/DelsinneJordan/BigFlix/internal/availability/cache"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
	"github.com/DelsinneJordan/BigFlix/internal/events"
)

// Invalidator drops the cached manager status of items a manager has just
// accepted, so the next search sees the new state.
type Invalidator struct {
	bus    *events.Bus
	cache  cache.Cache
	logger *slog.Logger
}

// NewInvalidator creates an Invalidator.
func NewInvalidator(bus *events.Bus, c cache.Cache, logger *slog.Logger) *Invalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invalidator{
		bus:    bus,
		cache:  c,
		logger: logger.With("component", "cache-invalidator"),
	}
}

// Name returns the component name.
func (v *Invalidator) Name() string {
	return "cache-invalidator"
}

// Start listens for fulfillment.completed until ctx is canceled.
func (v *Invalidator) Start(ctx context.Context) error {
	ch := v.bus.Subscribe(events.EventFulfillmentCompleted, 100)
	defer v.bus.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-ch:
			if !ok {
				return nil
			}
			v.handle(evt)
		}
	}
}

func (v *Invalidator) handle(evt events.Event) {
	fc, ok := evt.(*events.FulfillmentCompleted)
	if !ok {
		return
	}
	item := catalog.Item{ID: fc.EntityID(), Kind: catalog.Kind(fc.Kind), Title: fc.Title, Year: fc.Year}
	key := arr.StatusKey(fc.ServerID, item)
	v.cache.Delete(key)
	v.logger.Debug("invalidated status", "key", key.String())
}
