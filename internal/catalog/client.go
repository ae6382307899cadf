package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

var (
	// ErrNotFound is returned when an item doesn't exist in TMDB.
	ErrNotFound = errors.New("catalog item not found")
	// ErrUnavailable is returned when TMDB cannot be reached or answers with an error.
	ErrUnavailable = errors.New("catalog unavailable")
)

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	cache      *cache
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the details cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguage sets the language parameter sent with every request.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l.With("component", "catalog")
		}
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newCache(defaultCacheTTL),
		log:   slog.Default().With("component", "catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search searches the catalog for items of the given kind.
func (c *Client) Search(ctx context.Context, query string, kind Kind, page int) (*Page, error) {
	switch kind {
	case KindMovie:
		return c.SearchMovies(ctx, query, page)
	case KindSeries:
		return c.SearchSeries(ctx, query, page)
	}
	return nil, fmt.Errorf("search: unknown kind %q", kind)
}

// SearchMovies searches TMDB movies by title.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*Page, error) {
	var resp searchResponse[movieRecord]
	if err := c.get(ctx, "/3/search/movie", searchParams(query, page), &resp); err != nil {
		return nil, err
	}
	out := &Page{Page: resp.Page, TotalPages: resp.TotalPages, TotalResults: resp.TotalResults}
	for _, m := range resp.Results {
		out.Items = append(out.Items, m.item())
	}
	return out, nil
}

// SearchSeries searches TMDB tv shows by name.
func (c *Client) SearchSeries(ctx context.Context, query string, page int) (*Page, error) {
	var resp searchResponse[tvRecord]
	if err := c.get(ctx, "/3/search/tv", searchParams(query, page), &resp); err != nil {
		return nil, err
	}
	out := &Page{Page: resp.Page, TotalPages: resp.TotalPages, TotalResults: resp.TotalResults}
	for _, t := range resp.Results {
		out.Items = append(out.Items, t.item())
	}
	return out, nil
}

// Get fetches one item by kind and TMDB ID.
func (c *Client) Get(ctx context.Context, kind Kind, id int64) (*Item, error) {
	switch kind {
	case KindMovie:
		return c.GetMovie(ctx, id)
	case KindSeries:
		return c.GetSeries(ctx, id)
	}
	return nil, fmt.Errorf("get: unknown kind %q", kind)
}

// GetMovie fetches movie metadata by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, id int64) (*Item, error) {
	if item, ok := c.cache.get(KindMovie, id); ok {
		return item, nil
	}

	var rec movieRecord
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", id), nil, &rec); err != nil {
		return nil, err
	}

	item := rec.item()
	c.cache.set(KindMovie, id, &item)
	return &item, nil
}

// GetSeries fetches series metadata, including seasons and the TVDB ID, by TMDB ID.
func (c *Client) GetSeries(ctx context.Context, id int64) (*Item, error) {
	if item, ok := c.cache.get(KindSeries, id); ok {
		return item, nil
	}

	params := url.Values{"append_to_response": {"external_ids"}}
	var rec tvRecord
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d", id), params, &rec); err != nil {
		return nil, err
	}

	item := rec.item()
	c.cache.set(KindSeries, id, &item)
	return &item, nil
}

func searchParams(query string, page int) url.Values {
	v := url.Values{"query": {query}}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	return v
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	c.log.Debug("tmdb request", "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: TMDB API error: %s", ErrUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
