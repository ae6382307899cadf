// Package server runs the long-lived daemon components.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 30 * time.Second

// Component is a background job started by the Runner.
// Start blocks until ctx is canceled or the component fails.
type Component interface {
	Name() string
	Start(ctx context.Context) error
}

// Runner manages the daemon's components.
type Runner struct {
	http       *http.Server
	components []Component
	logger     *slog.Logger
}

// NewRunner creates a new runner. srv may be nil.
func NewRunner(srv *http.Server, logger *slog.Logger, components ...Component) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		http:       srv,
		components: components,
		logger:     logger.With("component", "runner"),
	}
}

// Run starts every component and the HTTP server.
// It blocks until the context is canceled or a component fails, then shuts
// everything down.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, c := range r.components {
		g.Go(func() error {
			r.logger.Debug("component started", "name", c.Name())
			if err := c.Start(ctx); err != nil {
				return fmt.Errorf("%s: %w", c.Name(), err)
			}
			r.logger.Debug("component stopped", "name", c.Name())
			return nil
		})
	}

	if r.http != nil {
		g.Go(func() error {
			r.logger.Info("http listening", "addr", r.http.Addr)
			if err := r.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
			defer cancel()
			if err := r.http.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
