package request

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
	"github.com/DelsinneJordan/BigFlix/internal/events"
	"github.com/DelsinneJordan/BigFlix/internal/fulfillment"
)

// Catalog fetches item details.
type Catalog interface {
	Get(ctx context.Context, kind catalog.Kind, id int64) (*catalog.Item, error)
}

// Bindings resolves server bindings.
type Bindings interface {
	Get(ctx context.Context, id string) (*binding.Binding, error)
	ForUser(ctx context.Context, userID string) (binding.UserServers, error)
}

// Fulfiller pushes an item to a download manager.
type Fulfiller interface {
	Execute(ctx context.Context, cmd fulfillment.Command) fulfillment.Outcome
}

// CreateInput describes a new request.
type CreateInput struct {
	TMDBID   int64        `json:"itemId"`
	Kind     catalog.Kind `json:"kind"`
	ServerID string       `json:"serverId,omitempty"` // empty means the caller's primary server
	Seasons  []int        `json:"seasons,omitempty"`
}

// Result is the answer to a create or approve action.
type Result struct {
	Request     *Request             `json:"request"`
	Fulfillment *fulfillment.Outcome `json:"fulfillment,omitempty"`
	Warning     string               `json:"warning,omitempty"`
}

// Service runs the request lifecycle.
type Service struct {
	store    *Store
	catalog  Catalog
	bindings Bindings
	executor Fulfiller
	bus      *events.Bus
	log      *slog.Logger
}

// NewService creates a Service. bus may be nil.
func NewService(store *Store, cat Catalog, bindings Bindings, executor Fulfiller, bus *events.Bus, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:    store,
		catalog:  cat,
		bindings: bindings,
		executor: executor,
		bus:      bus,
		log:      log.With("component", "requests"),
	}
}

// Create records a request. Callers allowed to direct add get the item
// pushed to the manager at once and a record in state added; everyone
// else gets a pending record.
func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (*Result, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("unknown media kind %q", in.Kind)
	}
	if in.TMDBID <= 0 {
		return nil, fmt.Errorf("invalid item id %d", in.TMDBID)
	}

	target, err := s.target(ctx, actor, in.ServerID)
	if err != nil {
		return nil, err
	}

	item, err := s.catalog.Get(ctx, in.Kind, in.TMDBID)
	if err != nil {
		return nil, fmt.Errorf("fetch item %d: %w", in.TMDBID, err)
	}

	r := &Request{
		UserID:   actor.UserID,
		ServerID: target.ID,
		TMDBID:   item.ID,
		Kind:     item.Kind,
		Title:    item.Title,
		Year:     item.Year,
		Status:   StatusPending,
	}
	if item.Kind == catalog.KindSeries {
		r.Seasons = seasonSubset(in.Seasons)
	}

	direct := actor.CanDirectAdd()
	if direct {
		now := time.Now().UTC()
		r.Status = StatusAdded
		r.ProcessedBy = &actor.UserID
		r.ProcessedAt = &now
	}

	if err := s.store.Add(ctx, r); err != nil {
		return nil, err
	}
	s.publish(ctx, &events.RequestCreated{
		BaseEvent: events.NewBaseEvent(events.EventRequestCreated, events.EntityRequest, r.ID).By(actor.UserID),
		ServerID:  r.ServerID,
		TMDBID:    r.TMDBID,
		Kind:      string(r.Kind),
		Title:     r.Title,
		Status:    string(r.Status),
	})

	res := &Result{Request: r}
	if direct {
		res.Fulfillment, res.Warning = s.fulfill(ctx, actor, r, *item, *target)
	}
	s.log.Info("request created", "id", r.ID, "user", actor.UserID, "server", r.ServerID,
		"tmdb_id", r.TMDBID, "status", r.Status)
	return res, nil
}

// Approve marks a pending request approved, then fulfills it. Fulfillment
// problems are reported as a warning; the request stays approved regardless.
func (s *Service) Approve(ctx context.Context, actor Actor, id int64) (*Result, error) {
	if !actor.CanManage() {
		return nil, ErrForbidden
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Claim the transition first so a concurrent reject leaves managers untouched.
	if err := s.store.Transition(ctx, r, StatusApproved, actor.UserID, nil); err != nil {
		return nil, err
	}

	var (
		outcome *fulfillment.Outcome
		warning string
	)
	b, err := s.bindings.Get(ctx, r.ServerID)
	if err != nil {
		warning = fmt.Sprintf("server %s: %v", r.ServerID, err)
		s.log.Warn("approve without fulfillment", "id", id, "error", err)
	} else {
		item := r.Item()
		if fetched, err := s.catalog.Get(ctx, r.Kind, r.TMDBID); err == nil {
			item = *fetched
		} else {
			s.log.Warn("catalog lookup failed, using stored item", "id", id, "error", err)
		}
		outcome, warning = s.fulfill(ctx, actor, r, item, *b)
	}

	s.publish(ctx, &events.RequestApproved{
		BaseEvent: events.NewBaseEvent(events.EventRequestApproved, events.EntityRequest, r.ID).By(actor.UserID),
		Warning:   warning,
	})
	s.log.Info("request approved", "id", r.ID, "by", actor.UserID)
	return &Result{Request: r, Fulfillment: outcome, Warning: warning}, nil
}

// Reject closes a pending request without touching any manager.
func (s *Service) Reject(ctx context.Context, actor Actor, id int64, notes string) (*Request, error) {
	if !actor.CanManage() {
		return nil, ErrForbidden
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var n *string
	if notes != "" {
		n = &notes
	}
	if err := s.store.Transition(ctx, r, StatusRejected, actor.UserID, n); err != nil {
		return nil, err
	}
	s.publish(ctx, &events.RequestRejected{
		BaseEvent: events.NewBaseEvent(events.EventRequestRejected, events.EntityRequest, r.ID).By(actor.UserID),
		Notes:     notes,
	})
	s.log.Info("request rejected", "id", r.ID, "by", actor.UserID)
	return r, nil
}

// Delete removes a request. Requesters may delete their own pending
// requests; managers may delete any.
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage() {
		if r.UserID != actor.UserID {
			return ErrForbidden
		}
		if r.Status != StatusPending {
			return fmt.Errorf("%w: request %d is %s", ErrInvalidState, id, r.Status)
		}
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, &events.RequestDeleted{
		BaseEvent: events.NewBaseEvent(events.EventRequestDeleted, events.EntityRequest, r.ID).By(actor.UserID),
		Status:    string(r.Status),
	})
	s.log.Info("request deleted", "id", r.ID, "by", actor.UserID, "status", r.Status)
	return nil
}

// Get returns a request the actor may see.
func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*Request, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != actor.UserID && !actor.CanManage() {
		// hide other users' requests
		return nil, fmt.Errorf("get request %d: %w", id, ErrNotFound)
	}
	return r, nil
}

// List returns requests matching f. Callers that can't manage requests only
// ever see their own.
func (s *Service) List(ctx context.Context, actor Actor, f Filter) ([]*Request, error) {
	if !actor.CanManage() {
		f.UserID = &actor.UserID
	}
	return s.store.List(ctx, f)
}

// IsTracked reports whether an item was pushed toward fulfillment on a server.
func (s *Service) IsTracked(ctx context.Context, serverID string, tmdbID int64, kind catalog.Kind) (bool, error) {
	return s.store.IsTracked(ctx, serverID, tmdbID, kind)
}

// target picks the binding a request goes to.
func (s *Service) target(ctx context.Context, actor Actor, serverID string) (*binding.Binding, error) {
	servers, err := s.bindings.ForUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if serverID == "" {
		if servers.Primary == nil {
			return nil, binding.ErrNoServer
		}
		return servers.Primary, nil
	}
	for i := range servers.Bindings {
		if servers.Bindings[i].ID == serverID {
			return &servers.Bindings[i], nil
		}
	}
	if actor.Has(PermAdmin) {
		return s.bindings.Get(ctx, serverID)
	}
	return nil, fmt.Errorf("%w: server %s is not bound to user %s", ErrForbidden, serverID, actor.UserID)
}

// fulfill runs the executor and records the item as tracked whatever the outcome.
func (s *Service) fulfill(ctx context.Context, actor Actor, r *Request, item catalog.Item, b binding.Binding) (*fulfillment.Outcome, string) {
	out := s.executor.Execute(ctx, fulfillment.Command{Item: item, Binding: b, Seasons: r.Seasons})

	var warning string
	if !out.Success {
		warning = out.Error
	}
	err := s.store.Track(ctx, TrackedItem{
		ServerID:    r.ServerID,
		TMDBID:      r.TMDBID,
		Kind:        r.Kind,
		RequestedBy: r.UserID,
	})
	if err != nil {
		s.log.Error("track item failed", "id", r.ID, "by", actor.UserID, "error", err)
		if warning != "" {
			warning += "; "
		}
		warning += err.Error()
	}
	return &out, warning
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		s.log.Warn("publish event failed", "type", e.EventType(), "error", err)
	}
}

// seasonSubset returns the sorted distinct season numbers, or nil.
func seasonSubset(in []int) []int {
	var out []int
	for _, n := range in {
		if n >= 0 && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}
