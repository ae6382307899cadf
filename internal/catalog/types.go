// Package catalog provides a client for The Movie Database API and the
// normalized item records the rest of BigFlix works with.
package catalog

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the media kind of a catalog item.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ParseKind accepts the API spellings of a media kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "movie", "movies":
		return KindMovie, nil
	case "series", "tv", "show":
		return KindSeries, nil
	}
	return "", fmt.Errorf("unknown media kind %q", s)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

// Item is a movie or series as known to the catalog.
type Item struct {
	ID          int64    `json:"id"`
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	Year        int      `json:"year,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	PosterPath  string   `json:"posterPath,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"` // "1999-03-30"
	VoteAverage float64  `json:"voteAverage,omitempty"`
	TVDBID      int64    `json:"tvdbId,omitempty"` // series details only
	Seasons     []Season `json:"seasons,omitempty"`
}

// Season is one season of a series.
type Season struct {
	Number       int    `json:"number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episodeCount"`
	AirDate      string `json:"airDate,omitempty"`
}

// Released reports whether the item's release date is on or before now.
// Items without a parseable date are treated as unreleased.
func (i *Item) Released(now time.Time) bool {
	if i.ReleaseDate == "" {
		return false
	}
	d, err := time.Parse("2006-01-02", i.ReleaseDate)
	if err != nil {
		return false
	}
	return !d.After(now)
}

// PosterURL returns the full poster image URL.
// Size can be: w92, w154, w185, w342, w500, w780, original
func (i *Item) PosterURL(size string) string {
	if i.PosterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + i.PosterPath
}

// yearOf extracts the year from a TMDB date string.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// movieRecord is the TMDB movie payload, shared by search and details.
type movieRecord struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

func (m movieRecord) item() Item {
	return Item{
		ID:          m.ID,
		Kind:        KindMovie,
		Title:       m.Title,
		Year:        yearOf(m.ReleaseDate),
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
	}
}

// tvRecord is the TMDB tv payload, shared by search and details.
type tvRecord struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
	Seasons      []struct {
		SeasonNumber int    `json:"season_number"`
		Name         string `json:"name"`
		EpisodeCount int    `json:"episode_count"`
		AirDate      string `json:"air_date"`
	} `json:"seasons"`
	ExternalIDs *struct {
		TVDBID int64 `json:"tvdb_id"`
	} `json:"external_ids"`
}

func (t tvRecord) item() Item {
	it := Item{
		ID:          t.ID,
		Kind:        KindSeries,
		Title:       t.Name,
		Year:        yearOf(t.FirstAirDate),
		Overview:    t.Overview,
		PosterPath:  t.PosterPath,
		ReleaseDate: t.FirstAirDate,
		VoteAverage: t.VoteAverage,
	}
	if t.ExternalIDs != nil {
		it.TVDBID = t.ExternalIDs.TVDBID
	}
	for _, s := range t.Seasons {
		it.Seasons = append(it.Seasons, Season{
			Number:       s.SeasonNumber,
			Name:         s.Name,
			EpisodeCount: s.EpisodeCount,
			AirDate:      s.AirDate,
		})
	}
	return it
}

type searchResponse[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// Page is one page of search results.
type Page struct {
	Page         int    `json:"page"`
	TotalPages   int    `json:"totalPages"`
	TotalResults int    `json:"totalResults"`
	Items        []Item `json:"items"`
}
