package arr

import (
	"context"
	"fmt"

	"golift.io/starr"
	"golift.io/starr/radarr"

	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

// RadarrAPI is the part of the starr Radarr client Movies uses.
type RadarrAPI interface {
	GetMovieContext(ctx context.Context, params *radarr.GetMovie) ([]*radarr.Movie, error)
	LookupTMDBContext(ctx context.Context, tmdbID int64) (*radarr.Movie, error)
	GetQueueContext(ctx context.Context, records, perPage int) (*radarr.Queue, error)
	GetRootFoldersContext(ctx context.Context) ([]*radarr.RootFolder, error)
	GetQualityProfilesContext(ctx context.Context) ([]*radarr.QualityProfile, error)
	AddMovieContext(ctx context.Context, movie *radarr.AddMovieInput) (*radarr.Movie, error)
}

func newRadarr(cfg *starr.Config) RadarrAPI {
	return radarr.New(cfg)
}

// queuePageSize bounds one queue page; the whole queue is read.
const queuePageSize = 250

// Movies is the Radarr Manager.
type Movies struct {
	api RadarrAPI
}

// NewMovies wraps a Radarr client.
func NewMovies(api RadarrAPI) *Movies {
	return &Movies{api: api}
}

func (m *Movies) Kind() catalog.Kind { return catalog.KindMovie }

// Observe reports Radarr's state for the movie with item's TMDB ID.
// Observation.Released is left to the caller.
func (m *Movies) Observe(ctx context.Context, item catalog.Item) (Observation, error) {
	movies, err := m.api.GetMovieContext(ctx, &radarr.GetMovie{TMDBID: item.ID})
	if err != nil {
		return Observation{}, fmt.Errorf("%w: list movies: %v", ErrRemoteUnavailable, err)
	}

	var movie *radarr.Movie
	for _, mv := range movies {
		if mv.TmdbID == item.ID {
			movie = mv
			break
		}
	}
	if movie == nil {
		return Observation{}, nil
	}

	o := Observation{Found: true, HasFile: movie.HasFile, Monitored: movie.Monitored}
	if o.HasFile || !o.Monitored {
		return o, nil
	}

	queue, err := m.api.GetQueueContext(ctx, 0, queuePageSize)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: queue: %v", ErrRemoteUnavailable, err)
	}
	for _, rec := range queue.Records {
		if rec.MovieID == movie.ID {
			o.Queued = true
			break
		}
	}
	return o, nil
}

// Lookup resolves item through Radarr's TMDB lookup.
func (m *Movies) Lookup(ctx context.Context, item catalog.Item) (*Ref, error) {
	movie, err := m.api.LookupTMDBContext(ctx, item.ID)
	if err != nil {
		return nil, lookupErr(fmt.Sprintf("tmdb %d", item.ID), err)
	}
	if movie == nil || movie.TmdbID == 0 {
		return nil, fmt.Errorf("%w: tmdb %d", ErrNotFound, item.ID)
	}
	return &Ref{
		ManagerID:  movie.ID,
		ExternalID: movie.TmdbID,
		Title:      movie.Title,
		TitleSlug:  movie.TitleSlug,
		Year:       movie.Year,
	}, nil
}

func (m *Movies) RootFolders(ctx context.Context) ([]string, error) {
	folders, err := m.api.GetRootFoldersContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: root folders: %v", ErrRemoteUnavailable, err)
	}
	paths := make([]string, 0, len(folders))
	for _, f := range folders {
		paths = append(paths, f.Path)
	}
	return paths, nil
}

func (m *Movies) QualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	profiles, err := m.api.GetQualityProfilesContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: quality profiles: %v", ErrRemoteUnavailable, err)
	}
	out := make([]QualityProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, QualityProfile{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

// Add adds the movie monitored and asks Radarr to search for it.
func (m *Movies) Add(ctx context.Context, req AddRequest) error {
	_, err := m.api.AddMovieContext(ctx, &radarr.AddMovieInput{
		Title:            req.Ref.Title,
		TitleSlug:        req.Ref.TitleSlug,
		TmdbID:           req.Ref.ExternalID,
		Year:             req.Ref.Year,
		QualityProfileID: req.QualityProfileID,
		RootFolderPath:   req.RootFolder,
		Monitored:        true,
		AddOptions:       &radarr.AddMovieOptions{SearchForMovie: true},
	})
	if isExistsError(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("%w: add movie: %v", ErrRemoteUnavailable, err)
	}
	return nil
}
