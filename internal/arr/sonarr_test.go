package arr_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golift.io/starr"
	"golift.io/starr/sonarr"

	"github.com/DelsinneJordan/BigFlix/internal/arr"
	"github.com/DelsinneJordan/BigFlix/internal/arr/mocks"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

var breakingBad = catalog.Item{ID: 1396, Kind: catalog.KindSeries, Title: "Breaking Bad", Year: 2008, ReleaseDate: "2008-01-20"}

func TestSeries_Observe_MatchesByTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSonarrAPI(ctrl)
	api.EXPECT().GetAllSeriesContext(gomock.Any()).Return([]*sonarr.Series{
		{ID: 1, Title: "Better Call Saul", Year: 2015, Monitored: true},
		{ID: 2, Title: "Breaking Bad", Year: 2008, Monitored: true,
			Statistics: &sonarr.Statistics{EpisodeCount: 62, EpisodeFileCount: 62}},
	}, nil)

	obs, err := arr.NewSeries(api).Observe(context.Background(), breakingBad)
	require.NoError(t, err)
	assert.True(t, obs.Found)
	assert.True(t, obs.HasFile)
}

func TestSeries_Observe_PrefersTVDBID(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSonarrAPI(ctrl)
	api.EXPECT().GetAllSeriesContext(gomock.Any()).Return([]*sonarr.Series{
		// same title, different show
		{ID: 1, Title: "Breaking Bad", Year: 2008, TvdbID: 99, Monitored: true},
	}, nil)

	item := breakingBad
	item.TVDBID = 81189
	obs, err := arr.NewSeries(api).Observe(context.Background(), item)
	require.NoError(t, err)
	assert.False(t, obs.Found)
}

func TestSeries_Observe_YearTooFarApart(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSonarrAPI(ctrl)
	api.EXPECT().GetAllSeriesContext(gomock.Any()).Return([]*sonarr.Series{
		{ID: 1, Title: "Doctor Who", Year: 1963, Monitored: true},
	}, nil)

	item := catalog.Item{ID: 57243, Kind: catalog.KindSeries, Title: "Doctor Who", Year: 2005}
	obs, err := arr.NewSeries(api).Observe(context.Background(), item)
	require.NoError(t, err)
	assert.False(t, obs.Found)
}

func TestSeries_Observe_Queued(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSonarrAPI(ctrl)
	api.EXPECT().GetAllSeriesContext(gomock.Any()).Return([]*sonarr.Series{
		{ID: 2, Title: "Breaking Bad", Year: 2008, Monitored: true,
			Statistics: &sonarr.Statistics{EpisodeCount: 62, EpisodeFileCount: 10}},
	}, nil)
	api.EXPECT().GetQueueContext(gomock.Any(), 0, gomock.Any()).
		Return(&sonarr.Queue{Records: []*sonarr.QueueRecord{{SeriesID: 2}}}, nil)

	obs, err := arr.NewSeries(api).Observe(context.Background(), breakingBad)
	require.NoError(t, err)
	assert.False(t, obs.HasFile)
	assert.True(t, obs.Queued)
}

func TestSeries_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSonarrAPI(ctrl)
	api.EXPECT().GetSeriesLookupContext(gomock.Any(), "Breaking Bad", int64(81189)).Return([]*sonarr.Series{
		{Title: "Breaking Bad", Year: 2008, TvdbID: 81189, TitleSlug: "breaking-bad",
			Seasons: []*sonarr.Season{{SeasonNumber: 0}, {SeasonNumber: 1}, {SeasonNumber: 2}}},
	}, nil)

	item := breakingBad
	item.TVDBID = 81189
	ref, err := arr.NewSeries(api).Lookup(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, int64(81189), ref.ExternalID)
	assert.Equal(t, []int{0, 1, 2}, ref.Seasons)
}

func TestSeries_Lookup_NoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSonarrAPI(ctrl)
	api.EXPECT().GetSeriesLookupContext(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*sonarr.Series{
		{Title: "Breaking Away", Year: 1979, TvdbID: 5},
	}, nil)

	_, err := arr.NewSeries(api).Lookup(context.Background(), breakingBad)
	assert.ErrorIs(t, err, arr.ErrNotFound)
}

func TestSeries_Add_SeasonSubset(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSonarrAPI(ctrl)
	api.EXPECT().AddSeriesContext(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *sonarr.AddSeriesInput) (*sonarr.Series, error) {
			assert.Equal(t, int64(81189), in.TvdbID)
			assert.True(t, in.SeasonFolder)
			require.NotNil(t, in.AddOptions)
			assert.True(t, in.AddOptions.SearchForMissingEpisodes)
			require.Len(t, in.Seasons, 3)
			assert.False(t, in.Seasons[0].Monitored)
			assert.False(t, in.Seasons[1].Monitored)
			assert.True(t, in.Seasons[2].Monitored)
			return &sonarr.Series{ID: 3}, nil
		})

	err := arr.NewSeries(api).Add(context.Background(), arr.AddRequest{
		Ref:              arr.Ref{ExternalID: 81189, Title: "Breaking Bad", Seasons: []int{0, 1, 2}},
		RootFolder:       "/tv",
		QualityProfileID: 1,
		Seasons:          []int{2},
	})
	require.NoError(t, err)
}

func TestSeries_Add_AllSeasonsSkipsSpecials(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSonarrAPI(ctrl)
	api.EXPECT().AddSeriesContext(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *sonarr.AddSeriesInput) (*sonarr.Series, error) {
			require.Len(t, in.Seasons, 2)
			assert.False(t, in.Seasons[0].Monitored)
			assert.True(t, in.Seasons[1].Monitored)
			return &sonarr.Series{ID: 3}, nil
		})

	err := arr.NewSeries(api).Add(context.Background(), arr.AddRequest{
		Ref: arr.Ref{ExternalID: 81189, Seasons: []int{0, 1}},
	})
	require.NoError(t, err)
}

func TestSeries_Add_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSonarrAPI(ctrl)
	api.EXPECT().AddSeriesContext(gomock.Any(), gomock.Any()).Return(nil, &starr.ReqError{
		Code: 400,
		Body: []byte(`[{"errorMessage":"This series has already been added","errorCode":"SeriesExistsValidator"}]`),
	})

	err := arr.NewSeries(api).Add(context.Background(), arr.AddRequest{Ref: arr.Ref{ExternalID: 81189}})
	assert.ErrorIs(t, err, arr.ErrAlreadyExists)
}
