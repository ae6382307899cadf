package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DelsinneJordan/BigFlix/internal/arr"
	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
	"github.com/DelsinneJordan/BigFlix/internal/events"
	"github.com/DelsinneJordan/BigFlix/internal/fulfillment"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCatalog struct {
	items map[int64]catalog.Item
	err   error
}

func (f *fakeCatalog) Get(_ context.Context, kind catalog.Kind, id int64) (*catalog.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	it, ok := f.items[id]
	if !ok || it.Kind != kind {
		return nil, catalog.ErrNotFound
	}
	return &it, nil
}

type fakeFulfiller struct {
	mu       sync.Mutex
	commands []fulfillment.Command
	outcome  fulfillment.Outcome
}

func (f *fakeFulfiller) Execute(_ context.Context, cmd fulfillment.Command) fulfillment.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	return f.outcome
}

var (
	neo      = Actor{UserID: "neo", Name: "Neo"}
	trinity  = Actor{UserID: "trinity"}
	morpheus = Actor{UserID: "morpheus", Permissions: []Permission{PermManageRequests}}
	oracle   = Actor{UserID: "oracle", Permissions: []Permission{PermAutoApprove}}
	admin    = Actor{UserID: "admin", Permissions: []Permission{PermAdmin}}
)

type fixture struct {
	svc      *Service
	store    *Store
	bindings *binding.Store
	exec     *fakeFulfiller
	cat      *fakeCatalog
	bus      *events.Bus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := setupTestDB(t)

	bindings := binding.NewStore(db)
	radarr := &binding.Endpoint{URL: "http://radarr:7878", APIKey: "k"}
	require.NoError(t, bindings.Sync(ctx,
		[]binding.Binding{
			{ID: "S", Name: "Zion", Plex: binding.Endpoint{URL: "http://plex-s:32400"}, Radarr: radarr},
			{ID: "T", Name: "Nebuchadnezzar", Plex: binding.Endpoint{URL: "http://plex-t:32400"}},
		},
		[]binding.Assignment{
			{UserID: "neo", Servers: []string{"S", "T"}, Primary: "S"},
			{UserID: "trinity", Servers: []string{"S"}},
			{UserID: "oracle", Servers: []string{"S"}},
			{UserID: "morpheus", Servers: []string{"S"}},
		},
	))

	cat := &fakeCatalog{items: map[int64]catalog.Item{
		603:  {ID: 603, Kind: catalog.KindMovie, Title: "The Matrix", Year: 1999},
		1399: {ID: 1399, Kind: catalog.KindSeries, Title: "Game of Thrones", Year: 2011, TVDBID: 121361},
	}}
	exec := &fakeFulfiller{outcome: fulfillment.Outcome{Success: true}}
	bus := events.NewBus(nil, testLogger())
	t.Cleanup(func() { _ = bus.Close() })

	store := NewStore(db)
	return &fixture{
		svc:      NewService(store, cat, bindings, exec, bus, testLogger()),
		store:    store,
		bindings: bindings,
		exec:     exec,
		cat:      cat,
		bus:      bus,
	}
}

func TestService_Create_Pending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, res.Request.Status)
	assert.Equal(t, "S", res.Request.ServerID, "defaults to the primary server")
	assert.Equal(t, "The Matrix", res.Request.Title)
	assert.Nil(t, res.Fulfillment)
	assert.Empty(t, f.exec.commands, "pending requests never reach a manager")

	tracked, err := f.store.IsTracked(ctx, "S", 603, catalog.KindMovie)
	require.NoError(t, err)
	assert.False(t, tracked)
}

func TestService_Create_DuplicateOnSameServer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie, ServerID: "S"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, trinity, CreateInput{TMDBID: 603, Kind: catalog.KindMovie, ServerID: "S"})
	assert.ErrorIs(t, err, ErrDuplicate)

	res, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie, ServerID: "T"})
	require.NoError(t, err)
	assert.Equal(t, "T", res.Request.ServerID)
}

func TestService_Create_UnboundServer(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), trinity, CreateInput{TMDBID: 603, Kind: catalog.KindMovie, ServerID: "T"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Create_NoServer(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), Actor{UserID: "cypher"}, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	assert.ErrorIs(t, err, binding.ErrNoServer)
}

func TestService_Create_CatalogErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 99999, Kind: catalog.KindMovie})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	f.cat.err = fmt.Errorf("%w: 503", catalog.ErrUnavailable)
	_, err = f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	assert.ErrorIs(t, err, catalog.ErrUnavailable)
}

func TestService_Create_BadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: "book"})
	assert.Error(t, err)
	_, err = f.svc.Create(ctx, neo, CreateInput{TMDBID: 0, Kind: catalog.KindMovie})
	assert.Error(t, err)
}

func TestService_Create_DirectAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, oracle, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)

	assert.Equal(t, StatusAdded, res.Request.Status)
	require.NotNil(t, res.Request.ProcessedBy)
	assert.Equal(t, "oracle", *res.Request.ProcessedBy)
	require.NotNil(t, res.Fulfillment)
	assert.True(t, res.Fulfillment.Success)
	assert.Empty(t, res.Warning)

	require.Len(t, f.exec.commands, 1)
	cmd := f.exec.commands[0]
	assert.Equal(t, int64(603), cmd.Item.ID)
	assert.Equal(t, "S", cmd.Binding.ID)
	require.NotNil(t, cmd.Binding.Radarr)

	tracked, err := f.store.IsTracked(ctx, "S", 603, catalog.KindMovie)
	require.NoError(t, err)
	assert.True(t, tracked)

	// an added record does not block a later request
	_, err = f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	assert.NoError(t, err)
}

func TestService_Create_DirectAddFailureStillTracks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.exec.outcome = fulfillment.Outcome{Error: "radarr: remote unavailable"}

	res, err := f.svc.Create(ctx, oracle, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)

	assert.Equal(t, StatusAdded, res.Request.Status)
	assert.False(t, res.Fulfillment.Success)
	assert.Equal(t, "radarr: remote unavailable", res.Warning)

	tracked, err := f.store.IsTracked(ctx, "S", 603, catalog.KindMovie)
	require.NoError(t, err)
	assert.True(t, tracked)
}

func TestService_Create_SeriesSeasons(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Create(context.Background(), neo, CreateInput{
		TMDBID:  1399,
		Kind:    catalog.KindSeries,
		Seasons: []int{3, 1, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, res.Request.Seasons)

	got, err := f.store.Get(context.Background(), res.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, got.Seasons)
}

func TestService_Approve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, neo, created.Request.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	res, err := f.svc.Approve(ctx, morpheus, created.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Request.Status)
	require.NotNil(t, res.Request.ProcessedBy)
	assert.Equal(t, "morpheus", *res.Request.ProcessedBy)
	assert.NotNil(t, res.Request.ProcessedAt)
	require.NotNil(t, res.Fulfillment)
	assert.True(t, res.Fulfillment.Success)
	require.Len(t, f.exec.commands, 1)

	tracked, err := f.store.IsTracked(ctx, "S", 603, catalog.KindMovie)
	require.NoError(t, err)
	assert.True(t, tracked)

	_, err = f.svc.Approve(ctx, morpheus, created.Request.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

// gatedFulfiller blocks inside Execute until released.
type gatedFulfiller struct {
	fakeFulfiller
	entered chan struct{}
	release chan struct{}
}

func (g *gatedFulfiller) Execute(ctx context.Context, cmd fulfillment.Command) fulfillment.Outcome {
	close(g.entered)
	<-g.release
	return g.fakeFulfiller.Execute(ctx, cmd)
}

func TestService_Approve_RejectDuringFulfillment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gate := &gatedFulfiller{
		fakeFulfiller: fakeFulfiller{outcome: fulfillment.Outcome{Success: true}},
		entered:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	svc := NewService(f.store, f.cat, f.bindings, gate, f.bus, testLogger())

	created, err := svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)

	type approveResult struct {
		res *Result
		err error
	}
	done := make(chan approveResult, 1)
	go func() {
		res, err := svc.Approve(ctx, morpheus, created.Request.ID)
		done <- approveResult{res, err}
	}()

	select {
	case <-gate.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("approve never reached fulfillment")
	}

	_, err = svc.Reject(ctx, admin, created.Request.ID, "too late")
	assert.ErrorIs(t, err, ErrInvalidState)
	close(gate.release)

	got := <-done
	require.NoError(t, got.err)
	assert.Equal(t, StatusApproved, got.res.Request.Status)

	stored, err := f.store.Get(ctx, created.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
	assert.Nil(t, stored.Notes)
	assert.Len(t, gate.commands, 1)
}

func TestService_Approve_AfterRejectLeavesManagersUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)
	stale, err := f.store.Get(ctx, created.Request.ID)
	require.NoError(t, err)

	_, err = f.svc.Reject(ctx, morpheus, created.Request.ID, "")
	require.NoError(t, err)

	// A stale pending copy still loses the conditional update.
	assert.ErrorIs(t, f.store.Transition(ctx, stale, StatusApproved, "admin", nil), ErrInvalidState)

	_, err = f.svc.Approve(ctx, admin, created.Request.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, f.exec.commands)

	tracked, err := f.store.IsTracked(ctx, "S", 603, catalog.KindMovie)
	require.NoError(t, err)
	assert.False(t, tracked)
}

func TestService_Approve_LookupFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)

	lookupErr := fmt.Errorf("lookup movie 603: %w", arr.ErrNotFound)
	f.exec.outcome = fulfillment.Outcome{Error: lookupErr.Error()}

	res, err := f.svc.Approve(ctx, morpheus, created.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Request.Status)
	assert.Contains(t, res.Warning, "not found")

	got, err := f.store.Get(ctx, created.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)
}

func TestService_Approve_CatalogDownUsesStoredItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)

	f.cat.err = catalog.ErrUnavailable
	res, err := f.svc.Approve(ctx, admin, created.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Request.Status)

	require.Len(t, f.exec.commands, 1)
	assert.Equal(t, "The Matrix", f.exec.commands[0].Item.Title)
	assert.Equal(t, 1999, f.exec.commands[0].Item.Year)
}

func TestService_Approve_ServerGone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie, ServerID: "T"})
	require.NoError(t, err)

	// T is dropped from the configuration
	require.NoError(t, f.bindings.Sync(ctx,
		[]binding.Binding{{ID: "S", Name: "Zion", Plex: binding.Endpoint{URL: "http://plex-s:32400"}}}, nil))

	res, err := f.svc.Approve(ctx, morpheus, created.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Request.Status)
	assert.NotEmpty(t, res.Warning)
	assert.Nil(t, res.Fulfillment)
	assert.Empty(t, f.exec.commands)
}

func TestService_Reject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)

	_, err = f.svc.Reject(ctx, oracle, created.Request.ID, "no")
	assert.ErrorIs(t, err, ErrForbidden)

	r, err := f.svc.Reject(ctx, morpheus, created.Request.ID, "we have the sequel")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, r.Status)
	require.NotNil(t, r.Notes)
	assert.Equal(t, "we have the sequel", *r.Notes)
	assert.Empty(t, f.exec.commands, "reject never calls a manager")

	_, err = f.svc.Reject(ctx, morpheus, created.Request.ID, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, trinity, mine.Request.ID), ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, neo, mine.Request.ID))

	_, err = f.store.Get(ctx, mine.Request.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_OnlyPendingForOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, morpheus, created.Request.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, neo, created.Request.ID), ErrInvalidState)
	assert.NoError(t, f.svc.Delete(ctx, morpheus, created.Request.ID))
}

func TestService_GetAndList_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, trinity, CreateInput{TMDBID: 1399, Kind: catalog.KindSeries})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, trinity, a.Request.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := f.svc.Get(ctx, morpheus, a.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, "neo", got.UserID)

	list, err := f.svc.List(ctx, neo, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "neo", list[0].UserID)

	list, err = f.svc.List(ctx, morpheus, Filter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_PublishesAuditEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ch := f.bus.SubscribeAll(16)
	created, err := f.svc.Create(ctx, neo, CreateInput{TMDBID: 603, Kind: catalog.KindMovie})
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, morpheus, created.Request.ID, "")
	require.NoError(t, err)

	var got []string
	timeout := time.After(time.Second)
	for len(got) < 2 {
		select {
		case e := <-ch:
			got = append(got, e.EventType())
		case <-timeout:
			t.Fatalf("got events %v", got)
		}
	}
	assert.Equal(t, []string{events.EventRequestCreated, events.EventRequestRejected}, got)
}

func TestService_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Approve(ctx, morpheus, 404)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = f.svc.Reject(ctx, morpheus, 404, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, morpheus, 404), ErrNotFound)
}
