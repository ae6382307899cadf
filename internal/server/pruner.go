package server

import (
	"context"
	"log/slog"
	"time"
)

// Default event retention settings.
const (
	DefaultPruneInterval = time.Hour
	DefaultRetention     = 30 * 24 * time.Hour
)

// EventPruner deletes events older than the retention period.
type EventPruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Pruner periodically trims the audit log.
type Pruner struct {
	log       EventPruner
	interval  time.Duration
	retention time.Duration
	logger    *slog.Logger
}

// NewPruner creates a Pruner. Zero durations fall back to the defaults.
func NewPruner(log EventPruner, interval, retention time.Duration, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultPruneInterval
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Pruner{
		log:       log,
		interval:  interval,
		retention: retention,
		logger:    logger.With("component", "event-pruner"),
	}
}

// Name returns the component name.
func (p *Pruner) Name() string {
	return "event-pruner"
}

// Start prunes once, then on every tick until ctx is canceled.
func (p *Pruner) Start(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.prune(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *Pruner) prune(ctx context.Context) {
	n, err := p.log.Prune(ctx, p.retention)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("prune failed", "error", err)
		}
		return
	}
	if n > 0 {
		p.logger.Info("pruned events", "count", n, "retention", p.retention)
	}
}
