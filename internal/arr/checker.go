package arr

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DelsinneJordan/BigFlix/internal/availability/cache"
	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

// StatusKey is the cache key of the manager status of item on server.
// Movies are keyed by TMDB ID, series by title and year.
func StatusKey(server string, item catalog.Item) cache.Key {
	if item.Kind == catalog.KindSeries {
		return cache.Key{Server: server, Checker: cache.CheckerSonarr, Item: cache.TitleItem(item.Title, item.Year)}
	}
	return cache.Key{Server: server, Checker: cache.CheckerRadarr, Item: cache.IDItem(item.ID)}
}

// StatusChecker classifies items against the manager paired with a binding.
type StatusChecker struct {
	loader  *cache.Loader
	factory Factory
	timeout time.Duration
	now     func() time.Time
	log     *slog.Logger
}

// NewStatusChecker creates a StatusChecker.
func NewStatusChecker(loader *cache.Loader, factory Factory, timeout time.Duration, log *slog.Logger) *StatusChecker {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StatusChecker{
		loader:  loader,
		factory: factory,
		timeout: timeout,
		now:     time.Now,
		log:     log.With("component", "status-checker"),
	}
}

// SetClock overrides the time source used to decide whether an item is released.
func (c *StatusChecker) SetClock(now func() time.Time) {
	c.now = now
}

// Check returns the manager status of item on b. Every failure reads as
// StatusNone, and that answer is cached like any other.
func (c *StatusChecker) Check(ctx context.Context, b binding.Binding, item catalog.Item) Status {
	if b.Manager(item.Kind) == nil {
		return StatusNone
	}
	v, cached := c.loader.Load(StatusKey(b.ID, item), func() any {
		return c.check(ctx, b, item)
	})
	if cached {
		c.log.Debug("status cache hit", "server", b.ID, "kind", item.Kind, "id", item.ID)
	}
	s, _ := v.(Status)
	return s
}

func (c *StatusChecker) check(ctx context.Context, b binding.Binding, item catalog.Item) Status {
	mgr, err := c.factory(b, item.Kind)
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			c.log.Warn("build manager failed", "server", b.ID, "kind", item.Kind, "error", err)
		}
		return StatusNone
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	obs, err := mgr.Observe(ctx, item)
	if err != nil {
		c.log.Warn("manager status failed", "server", b.ID, "kind", item.Kind, "id", item.ID, "error", err)
		return StatusNone
	}
	obs.Released = item.Released(c.now())
	return Classify(obs)
}
