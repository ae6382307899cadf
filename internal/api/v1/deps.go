package v1

import (
	"context"
	"errors"

	"github.com/DelsinneJordan/BigFlix/internal/availability"
	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
	"github.com/DelsinneJordan/BigFlix/internal/events"
	"github.com/DelsinneJordan/BigFlix/internal/request"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Catalog defines catalog search and lookup.
type Catalog interface {
	Search(ctx context.Context, query string, kind catalog.Kind, page int) (*catalog.Page, error)
	Get(ctx context.Context, kind catalog.Kind, id int64) (*catalog.Item, error)
}

// Enricher adds availability to catalog items.
type Enricher interface {
	Enrich(ctx context.Context, items []catalog.Item, servers binding.UserServers) []availability.Enriched
}

// Bindings resolves the servers a user may use.
type Bindings interface {
	ForUser(ctx context.Context, userID string) (binding.UserServers, error)
}

// Requests runs the request lifecycle.
type Requests interface {
	Create(ctx context.Context, actor request.Actor, in request.CreateInput) (*request.Result, error)
	Approve(ctx context.Context, actor request.Actor, id int64) (*request.Result, error)
	Reject(ctx context.Context, actor request.Actor, id int64, notes string) (*request.Request, error)
	Delete(ctx context.Context, actor request.Actor, id int64) error
	Get(ctx context.Context, actor request.Actor, id int64) (*request.Request, error)
	List(ctx context.Context, actor request.Actor, f request.Filter) ([]*request.Request, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Catalog      Catalog
	Availability Enricher
	Bindings     Bindings
	Requests     Requests

	// Optional dependencies (nil if not configured)
	EventLog *events.EventLog
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Catalog == nil {
		return errors.New("catalog is required")
	}
	if d.Availability == nil {
		return errors.New("availability aggregator is required")
	}
	if d.Bindings == nil {
		return errors.New("binding store is required")
	}
	if d.Requests == nil {
		return errors.New("request service is required")
	}
	return nil
}
