// Package binding holds media-server bindings: one Plex server paired with
// optional Radarr and Sonarr instances, and which users may use which server.
package binding

import (
	"errors"

	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

var (
	ErrNotFound = errors.New("server binding not found")
	ErrNoServer = errors.New("user has no server binding")
)

// Endpoint is the address and credential of one remote service.
type Endpoint struct {
	URL    string `json:"url"`
	APIKey string `json:"-"`
}

// Configured reports whether the endpoint has an address.
func (e *Endpoint) Configured() bool {
	return e != nil && e.URL != ""
}

// Binding is one media server plus its paired download managers.
type Binding struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Plex   Endpoint  `json:"plex"`
	Radarr *Endpoint `json:"radarr,omitempty"`
	Sonarr *Endpoint `json:"sonarr,omitempty"`
}

// Manager returns the download manager responsible for kind, or nil.
func (b *Binding) Manager(kind catalog.Kind) *Endpoint {
	var e *Endpoint
	switch kind {
	case catalog.KindMovie:
		e = b.Radarr
	case catalog.KindSeries:
		e = b.Sonarr
	}
	if !e.Configured() {
		return nil
	}
	return e
}

// UserServers is the set of bindings a user may search and request against.
type UserServers struct {
	Bindings []Binding
	Primary  *Binding
}
