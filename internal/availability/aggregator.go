package availability

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/DelsinneJordan/BigFlix/internal/arr"
	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
	"github.com/DelsinneJordan/BigFlix/internal/mediaserver"
)

const posterSize = "w500"

// LibraryChecker answers library presence on one server.
type LibraryChecker interface {
	Check(ctx context.Context, b binding.Binding, kind catalog.Kind, title string, year int) mediaserver.Presence
}

// StatusChecker answers the download manager status on one server.
type StatusChecker interface {
	Check(ctx context.Context, b binding.Binding, item catalog.Item) arr.Status
}

// TrackedLookup reports whether an item was pushed toward fulfillment.
type TrackedLookup interface {
	IsTracked(ctx context.Context, serverID string, tmdbID int64, kind catalog.Kind) (bool, error)
}

// Aggregator enriches batches of catalog items.
type Aggregator struct {
	library     LibraryChecker
	status      StatusChecker
	tracked     TrackedLookup
	concurrency int
	log         *slog.Logger
}

// NewAggregator creates an Aggregator. tracked may be nil. A concurrency of
// zero or less runs every check of a batch at once.
func NewAggregator(library LibraryChecker, status StatusChecker, tracked TrackedLookup, concurrency int, log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	if concurrency <= 0 {
		concurrency = -1
	}
	return &Aggregator{
		library:     library,
		status:      status,
		tracked:     tracked,
		concurrency: concurrency,
		log:         log.With("component", "aggregator"),
	}
}

// Enrich checks every item against every bound library and against the
// primary binding's manager and request log. All checks run concurrently;
// the result has the same order as items. Checks are not cancelled when
// ctx is, so their answers still reach the cache.
func (a *Aggregator) Enrich(ctx context.Context, items []catalog.Item, servers binding.UserServers) []Enriched {
	ctx = context.WithoutCancel(ctx)

	type slot struct {
		presence []mediaserver.Presence // per binding
		manager  arr.Status
		tracked  bool
	}
	slots := make([]slot, len(items))
	for i := range slots {
		slots[i].presence = make([]mediaserver.Presence, len(servers.Bindings))
	}

	var g errgroup.Group
	g.SetLimit(a.concurrency) // -1 is unbounded

	for i, item := range items {
		for j, b := range servers.Bindings {
			g.Go(func() error {
				slots[i].presence[j] = a.library.Check(ctx, b, item.Kind, item.Title, item.Year)
				return nil
			})
		}
		if servers.Primary == nil {
			continue
		}
		primary := *servers.Primary
		g.Go(func() error {
			slots[i].manager = a.status.Check(ctx, primary, item)
			return nil
		})
		if a.tracked != nil {
			g.Go(func() error {
				ok, err := a.tracked.IsTracked(ctx, primary.ID, item.ID, item.Kind)
				if err != nil {
					a.log.Warn("tracked lookup failed", "server", primary.ID, "tmdb_id", item.ID, "error", err)
				}
				slots[i].tracked = ok
				return nil
			})
		}
	}
	_ = g.Wait()

	out := make([]Enriched, len(items))
	for i, item := range items {
		s := slots[i]
		e := Enriched{
			Item:               item,
			Poster:             item.PosterURL(posterSize),
			LibraryServerNames: []string{},
			Tracked:            s.tracked,
		}
		for j, p := range s.presence {
			if p.Found {
				e.LibraryAvailable = true
				e.LibraryServerNames = append(e.LibraryServerNames, serverName(servers.Bindings[j]))
			}
		}
		if s.manager.Valid() {
			ms := string(s.manager)
			e.ManagerStatus = &ms
		}
		e.Status = Reduce(Signals{InLibrary: e.LibraryAvailable, Manager: s.manager, Tracked: s.tracked})
		out[i] = e
	}
	return out
}

func serverName(b binding.Binding) string {
	if b.Name != "" {
		return b.Name
	}
	return b.ID
}
