// Package fulfillment pushes an approved item to the download manager
// paired with a server binding.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DelsinneJordan/BigFlix/internal/arr"
	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
	"github.com/DelsinneJordan/BigFlix/internal/events"
)

// Command is one add action.
type Command struct {
	Item    catalog.Item
	Binding binding.Binding
	Seasons []int // series only
}

// Outcome is the result of executing a Command.
type Outcome struct {
	Success       bool   `json:"success"`
	AlreadyExists bool   `json:"alreadyExists"`
	Error         string `json:"error,omitempty"`

	err error
}

// Err returns the error behind a failed outcome.
func (o Outcome) Err() error {
	return o.err
}

func failed(err error) Outcome {
	return Outcome{Error: err.Error(), err: err}
}

// Executor adds items to download managers.
type Executor struct {
	factory arr.Factory
	bus     *events.Bus
	timeout time.Duration
	log     *slog.Logger
}

// NewExecutor creates an Executor. bus may be nil.
func NewExecutor(factory arr.Factory, bus *events.Bus, timeout time.Duration, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Executor{
		factory: factory,
		bus:     bus,
		timeout: timeout,
		log:     log.With("component", "fulfillment"),
	}
}

// Execute resolves the item with the manager, picks the first root folder
// and quality profile and adds the item with a search. An item the manager
// already has is a success with AlreadyExists set. Each manager call gets
// its own timeout.
func (e *Executor) Execute(ctx context.Context, cmd Command) Outcome {
	out := e.execute(ctx, cmd)

	log := e.log.With("server", cmd.Binding.ID, "kind", cmd.Item.Kind, "tmdb_id", cmd.Item.ID)
	if out.Success {
		log.Info("fulfilled", "already_exists", out.AlreadyExists)
	} else {
		log.Warn("fulfillment failed", "error", out.Error)
	}
	e.publish(context.WithoutCancel(ctx), cmd, out)
	return out
}

// call runs one manager call under the per-call timeout.
func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

func (e *Executor) execute(ctx context.Context, cmd Command) Outcome {
	mgr, err := e.factory(cmd.Binding, cmd.Item.Kind)
	if err != nil {
		return failed(err)
	}

	ref, err := call(ctx, e.timeout, func(ctx context.Context) (*arr.Ref, error) {
		return mgr.Lookup(ctx, cmd.Item)
	})
	if err != nil {
		return failed(err)
	}
	if ref.ManagerID > 0 {
		return Outcome{Success: true, AlreadyExists: true}
	}

	roots, err := call(ctx, e.timeout, mgr.RootFolders)
	if err != nil {
		return failed(err)
	}
	if len(roots) == 0 {
		return failed(fmt.Errorf("%w: no root folders", arr.ErrMisconfigured))
	}

	profiles, err := call(ctx, e.timeout, mgr.QualityProfiles)
	if err != nil {
		return failed(err)
	}
	if len(profiles) == 0 {
		return failed(fmt.Errorf("%w: no quality profiles", arr.ErrMisconfigured))
	}

	_, err = call(ctx, e.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, mgr.Add(ctx, arr.AddRequest{
			Ref:              *ref,
			RootFolder:       roots[0],
			QualityProfileID: profiles[0].ID,
			Seasons:          cmd.Seasons,
		})
	})
	if errors.Is(err, arr.ErrAlreadyExists) {
		return Outcome{Success: true, AlreadyExists: true}
	}
	if err != nil {
		return failed(err)
	}
	return Outcome{Success: true}
}

func (e *Executor) publish(ctx context.Context, cmd Command, out Outcome) {
	if e.bus == nil {
		return
	}
	var evt events.Event
	if out.Success {
		evt = &events.FulfillmentCompleted{
			BaseEvent:     events.NewBaseEvent(events.EventFulfillmentCompleted, events.EntityItem, cmd.Item.ID),
			ServerID:      cmd.Binding.ID,
			Kind:          string(cmd.Item.Kind),
			Title:         cmd.Item.Title,
			Year:          cmd.Item.Year,
			AlreadyExists: out.AlreadyExists,
		}
	} else {
		evt = &events.FulfillmentFailed{
			BaseEvent: events.NewBaseEvent(events.EventFulfillmentFailed, events.EntityItem, cmd.Item.ID),
			ServerID:  cmd.Binding.ID,
			Kind:      string(cmd.Item.Kind),
			Title:     cmd.Item.Title,
			Reason:    out.Error,
		}
	}
	if err := e.bus.Publish(ctx, evt); err != nil {
		e.log.Warn("publish event failed", "error", err)
	}
}
