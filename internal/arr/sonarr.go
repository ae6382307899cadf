package arr

import (
	"context"
	"fmt"
	"slices"

	"golift.io/starr"
	"golift.io/starr/sonarr"

	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

// SonarrAPI is the part of the starr Sonarr client Series uses.
type SonarrAPI interface {
	GetAllSeriesContext(ctx context.Context) ([]*sonarr.Series, error)
	GetSeriesLookupContext(ctx context.Context, term string, tvdbID int64) ([]*sonarr.Series, error)
	GetQueueContext(ctx context.Context, records, perPage int) (*sonarr.Queue, error)
	GetRootFoldersContext(ctx context.Context) ([]*sonarr.RootFolder, error)
	GetQualityProfilesContext(ctx context.Context) ([]*sonarr.QualityProfile, error)
	AddSeriesContext(ctx context.Context, series *sonarr.AddSeriesInput) (*sonarr.Series, error)
}

func newSonarr(cfg *starr.Config) SonarrAPI {
	return sonarr.New(cfg)
}

// Series is the Sonarr Manager.
type Series struct {
	api SonarrAPI
}

// NewSeries wraps a Sonarr client.
func NewSeries(api SonarrAPI) *Series {
	return &Series{api: api}
}

func (s *Series) Kind() catalog.Kind { return catalog.KindSeries }

// matches reports whether a Sonarr series is the catalog item.
func matches(item catalog.Item, cand *sonarr.Series) bool {
	if item.TVDBID > 0 && cand.TvdbID > 0 {
		return item.TVDBID == cand.TvdbID
	}
	return SameTitle(item.Title, item.Year, cand.Title, cand.Year)
}

// Observe reports Sonarr's state for the series. A series has a file when
// every episode Sonarr expects is on disk.
func (s *Series) Observe(ctx context.Context, item catalog.Item) (Observation, error) {
	all, err := s.api.GetAllSeriesContext(ctx)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: list series: %v", ErrRemoteUnavailable, err)
	}

	var series *sonarr.Series
	for _, cand := range all {
		if matches(item, cand) {
			series = cand
			break
		}
	}
	if series == nil {
		return Observation{}, nil
	}

	o := Observation{Found: true, Monitored: series.Monitored}
	if st := series.Statistics; st != nil && st.EpisodeCount > 0 && st.EpisodeFileCount >= st.EpisodeCount {
		o.HasFile = true
	}
	if o.HasFile || !o.Monitored {
		return o, nil
	}

	queue, err := s.api.GetQueueContext(ctx, 0, queuePageSize)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: queue: %v", ErrRemoteUnavailable, err)
	}
	for _, rec := range queue.Records {
		if rec.SeriesID == series.ID {
			o.Queued = true
			break
		}
	}
	return o, nil
}

// Lookup resolves item through Sonarr's series lookup, by TVDB ID when
// known and by title otherwise.
func (s *Series) Lookup(ctx context.Context, item catalog.Item) (*Ref, error) {
	results, err := s.api.GetSeriesLookupContext(ctx, item.Title, item.TVDBID)
	if err != nil {
		return nil, lookupErr(fmt.Sprintf("series %q", item.Title), err)
	}
	for _, cand := range results {
		if !matches(item, cand) {
			continue
		}
		ref := &Ref{
			ManagerID:  cand.ID,
			ExternalID: cand.TvdbID,
			Title:      cand.Title,
			TitleSlug:  cand.TitleSlug,
			Year:       cand.Year,
		}
		for _, season := range cand.Seasons {
			ref.Seasons = append(ref.Seasons, season.SeasonNumber)
		}
		return ref, nil
	}
	return nil, fmt.Errorf("%w: series %q", ErrNotFound, item.Title)
}

func (s *Series) RootFolders(ctx context.Context) ([]string, error) {
	folders, err := s.api.GetRootFoldersContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: root folders: %v", ErrRemoteUnavailable, err)
	}
	paths := make([]string, 0, len(folders))
	for _, f := range folders {
		paths = append(paths, f.Path)
	}
	return paths, nil
}

func (s *Series) QualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	profiles, err := s.api.GetQualityProfilesContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: quality profiles: %v", ErrRemoteUnavailable, err)
	}
	out := make([]QualityProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, QualityProfile{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

// Add adds the series with season folders and asks Sonarr to search for
// missing episodes. Only req.Seasons are monitored when it is non-empty;
// otherwise every season but specials is.
func (s *Series) Add(ctx context.Context, req AddRequest) error {
	seasons := make([]*sonarr.Season, 0, len(req.Ref.Seasons))
	for _, n := range req.Ref.Seasons {
		monitored := n > 0
		if len(req.Seasons) > 0 {
			monitored = slices.Contains(req.Seasons, n)
		}
		seasons = append(seasons, &sonarr.Season{SeasonNumber: n, Monitored: monitored})
	}

	_, err := s.api.AddSeriesContext(ctx, &sonarr.AddSeriesInput{
		Title:            req.Ref.Title,
		TitleSlug:        req.Ref.TitleSlug,
		TvdbID:           req.Ref.ExternalID,
		QualityProfileID: req.QualityProfileID,
		RootFolderPath:   req.RootFolder,
		Monitored:        true,
		SeasonFolder:     true,
		Seasons:          seasons,
		AddOptions:       &sonarr.AddSeriesOptions{SearchForMissingEpisodes: true},
	})
	if isExistsError(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("%w: add series: %v", ErrRemoteUnavailable, err)
	}
	return nil
}
