// Package arr talks to the Radarr and Sonarr download managers paired with
// a server binding: status checks for availability, and the lookup and add
// primitives fulfillment needs.
package arr

//go:generate mockgen -destination=mocks/starr.go -package=mocks github.com/DelsinneJordan/BigFlix/internal/arr RadarrAPI,SonarrAPI

import (
	"context"
	"net/http"
	"time"

	"golift.io/starr"

	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

// Ref is a manager's representation of a catalog item.
type Ref struct {
	ManagerID  int64 // >0 when the manager already tracks the item
	ExternalID int64 // TMDB ID for movies, TVDB ID for series
	Title      string
	TitleSlug  string
	Year       int
	Seasons    []int // season numbers the manager knows, series only
}

// QualityProfile is a manager quality profile.
type QualityProfile struct {
	ID   int64
	Name string
}

// AddRequest is everything a manager needs to add an item.
type AddRequest struct {
	Ref              Ref
	RootFolder       string
	QualityProfileID int64
	Seasons          []int // series only; empty monitors every season
}

// Manager is a download manager for one media kind.
//
// Movies are identified by TMDB ID. Series are identified by TVDB ID when
// the catalog supplies one, otherwise by cleaned title and year.
type Manager interface {
	Kind() catalog.Kind
	Observe(ctx context.Context, item catalog.Item) (Observation, error)
	Lookup(ctx context.Context, item catalog.Item) (*Ref, error)
	RootFolders(ctx context.Context) ([]string, error)
	QualityProfiles(ctx context.Context) ([]QualityProfile, error)
	Add(ctx context.Context, req AddRequest) error
}

// Factory builds the manager of kind for a binding.
type Factory func(b binding.Binding, kind catalog.Kind) (Manager, error)

// NewFactory returns a Factory that builds starr backed managers whose
// HTTP calls time out after timeout.
func NewFactory(timeout time.Duration) Factory {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := &http.Client{Timeout: timeout}
	return func(b binding.Binding, kind catalog.Kind) (Manager, error) {
		ep := b.Manager(kind)
		if ep == nil {
			return nil, ErrNotConfigured
		}
		cfg := &starr.Config{URL: ep.URL, APIKey: ep.APIKey, Client: hc}
		if kind == catalog.KindSeries {
			return NewSeries(newSonarr(cfg)), nil
		}
		return NewMovies(newRadarr(cfg)), nil
	}
}
