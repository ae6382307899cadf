// Package request tracks content requests from creation to a terminal
// state and hands approved items to fulfillment.
package request

import (
	"errors"
	"slices"
	"time"

	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

var (
	// ErrNotFound indicates the request doesn't exist.
	ErrNotFound = errors.New("request not found")
	// ErrDuplicate indicates an open request already exists for the item on the server.
	ErrDuplicate = errors.New("duplicate request")
	// ErrInvalidState indicates the request is not in a state that allows the action.
	ErrInvalidState = errors.New("invalid request state")
	// ErrForbidden indicates the actor lacks the permission for the action.
	ErrForbidden = errors.New("forbidden")
)

// Status is the lifecycle state of a request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusAdded    Status = "added" // fulfilled directly, never pending
)

// validTransitions defines allowed state transitions.
// Key is the "from" status, value is list of valid "to" statuses.
var validTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
	StatusAdded:    {},
}

// ParseStatus validates s.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := validTransitions[st]; !ok {
		return "", errors.New("unknown request status " + s)
	}
	return st, nil
}

// CanTransitionTo returns true if transitioning from s to target is valid.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(validTransitions[s], target)
}

// IsTerminal returns true if this status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	valid, ok := validTransitions[s]
	return ok && len(valid) == 0
}

// Blocks reports whether a request in this status prevents a new request
// for the same item on the same server.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusApproved
}

// Request is a user's ask for one catalog item on one server.
type Request struct {
	ID          int64        `json:"id"`
	UserID      string       `json:"userId"`
	ServerID    string       `json:"serverId"`
	TMDBID      int64        `json:"tmdbId"`
	Kind        catalog.Kind `json:"kind"`
	Title       string       `json:"title"`
	Year        int          `json:"year,omitempty"`
	Seasons     []int        `json:"seasons,omitempty"`
	Status      Status       `json:"status"`
	ProcessedBy *string      `json:"processedBy,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	ProcessedAt *time.Time   `json:"processedAt,omitempty"`
}

// Item rebuilds the catalog item the request was made for from its stored fields.
func (r *Request) Item() catalog.Item {
	return catalog.Item{ID: r.TMDBID, Kind: r.Kind, Title: r.Title, Year: r.Year}
}

// Filter specifies criteria for listing requests.
type Filter struct {
	UserID   *string
	ServerID *string
	Status   *Status
}

// TrackedItem records that an item was pushed toward fulfillment on a server.
type TrackedItem struct {
	ServerID    string
	TMDBID      int64
	Kind        catalog.Kind
	RequestedBy string
	TrackedAt   time.Time
}

// Permission names carried by an actor.
type Permission string

const (
	PermAdmin          Permission = "admin"
	PermAutoApprove    Permission = "auto_approve"
	PermManageRequests Permission = "manage_requests"
)

// Actor is the authenticated caller.
type Actor struct {
	UserID      string       `json:"userId"`
	Name        string       `json:"name,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// Has reports whether a holds p. Admin holds every permission.
func (a Actor) Has(p Permission) bool {
	return slices.Contains(a.Permissions, PermAdmin) || slices.Contains(a.Permissions, p)
}

// CanDirectAdd reports whether a's requests skip approval.
func (a Actor) CanDirectAdd() bool {
	return a.Has(PermAutoApprove)
}

// CanManage reports whether a may approve, reject and delete any request.
func (a Actor) CanManage() bool {
	return a.Has(PermManageRequests)
}
