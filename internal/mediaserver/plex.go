// Package mediaserver checks whether catalog items are present in a Plex
// server's libraries.
package mediaserver

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable wraps transport and status failures talking to Plex.
var ErrUnavailable = errors.New("plex unavailable")

// Plex section types.
const (
	SectionMovie = "movie"
	SectionShow  = "show"
)

// PlexClient interacts with the Plex Media Server API.
type PlexClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewPlexClient creates a new Plex client.
func NewPlexClient(baseURL, token string, hc *http.Client, log *slog.Logger) *PlexClient {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = slog.Default()
	}
	return &PlexClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: hc,
		log:        log.With("component", "plex"),
	}
}

// Section represents a Plex library section.
type Section struct {
	Key   string `xml:"key,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type sectionsResponse struct {
	XMLName  xml.Name  `xml:"MediaContainer"`
	Sections []Section `xml:"Directory"`
}

// Item is a movie or show inside a section.
type Item struct {
	RatingKey string `xml:"ratingKey,attr"`
	Title     string `xml:"title,attr"`
	Year      int    `xml:"year,attr"`
	Type      string `xml:"type,attr"`
}

type itemsResponse struct {
	XMLName     xml.Name `xml:"MediaContainer"`
	Videos      []Item   `xml:"Video"`     // movies
	Directories []Item   `xml:"Directory"` // shows
}

// GetSections returns all library sections.
func (c *PlexClient) GetSections(ctx context.Context) ([]Section, error) {
	var resp sectionsResponse
	if err := c.get(ctx, "/library/sections", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sections, nil
}

// SectionItems lists the items of a section whose title contains title.
// Plex matches the filter case-insensitively as a substring.
func (c *PlexClient) SectionItems(ctx context.Context, section Section, title string) ([]Item, error) {
	params := url.Values{}
	if title != "" {
		params.Set("title", title)
	}
	switch section.Type {
	case SectionMovie:
		params.Set("type", "1")
	case SectionShow:
		params.Set("type", "2")
	}

	var resp itemsResponse
	if err := c.get(ctx, "/library/sections/"+url.PathEscape(section.Key)+"/all", params, &resp); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(resp.Videos)+len(resp.Directories))
	items = append(items, resp.Videos...)
	items = append(items, resp.Directories...)
	return items, nil
}

func (c *PlexClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status: %d", ErrUnavailable, resp.StatusCode)
	}

	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
