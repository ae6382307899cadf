package mediaserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DelsinneJordan/BigFlix/internal/availability/cache"
	"github.com/DelsinneJordan/BigFlix/internal/binding"
	"github.com/DelsinneJordan/BigFlix/internal/catalog"
)

// Presence is the answer of a library check.
type Presence struct {
	Found     bool     `json:"found"`
	Libraries []string `json:"libraries,omitempty"`
}

// Checker answers library presence questions for any server binding.
type Checker struct {
	loader  *cache.Loader
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// NewChecker creates a checker that stores answers through loader.
func NewChecker(loader *cache.Loader, timeout time.Duration, log *slog.Logger) *Checker {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Checker{
		loader:  loader,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
		log:     log.With("component", "library-checker"),
	}
}

// Check reports whether an item with title and year is in any library of
// the matching kind on b. Errors are logged and read as not present.
func (c *Checker) Check(ctx context.Context, b binding.Binding, kind catalog.Kind, title string, year int) Presence {
	key := cache.Key{
		Server:  b.ID,
		Checker: cache.CheckerLibrary,
		Item:    string(kind) + ":" + cache.TitleItem(title, year),
	}
	v, cached := c.loader.Load(key, func() any {
		return c.check(ctx, b, kind, title, year)
	})
	if cached {
		c.log.Debug("library cache hit", "server", b.ID, "title", title)
	}
	p, _ := v.(Presence)
	return p
}

func (c *Checker) check(ctx context.Context, b binding.Binding, kind catalog.Kind, title string, year int) Presence {
	if b.Plex.URL == "" {
		return Presence{}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client := NewPlexClient(b.Plex.URL, b.Plex.APIKey, c.http, c.log)
	sections, err := client.GetSections(ctx)
	if err != nil {
		c.log.Warn("list sections failed", "server", b.ID, "error", err)
		return Presence{}
	}

	want := sectionType(kind)
	var (
		p      Presence
		failed []string
	)
	for _, s := range sections {
		if s.Type != want {
			continue
		}
		items, err := client.SectionItems(ctx, s, title)
		if err != nil {
			c.log.Warn("list section items failed", "server", b.ID, "section", s.Title, "error", err)
			failed = append(failed, s.Title)
			continue
		}
		for _, it := range items {
			if Matches(it, title, year) {
				p.Found = true
				p.Libraries = append(p.Libraries, s.Title)
				break
			}
		}
	}
	if !p.Found && len(failed) > 0 {
		c.log.Warn("degraded library answer, reporting not present",
			"server", b.ID, "title", title, "failed_sections", failed)
	}
	return p
}

// Matches reports whether a Plex item is the wanted title. Titles compare
// case-insensitively and exactly. Years compare only when both sides have one.
func Matches(it Item, title string, year int) bool {
	if !strings.EqualFold(strings.TrimSpace(it.Title), strings.TrimSpace(title)) {
		return false
	}
	if year > 0 && it.Year > 0 && it.Year != year {
		return false
	}
	return true
}

func sectionType(kind catalog.Kind) string {
	if kind == catalog.KindSeries {
		return SectionShow
	}
	return SectionMovie
}
