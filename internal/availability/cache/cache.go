// Package cache is the short-lived store shared by availability checkers.
//
// Entries are fresh for a fixed window measured from insertion. Expired
// entries read as absent and are overwritten on the next Put; nothing is
// evicted in the background.
package cache

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultFreshness is how long an availability answer may be reused.
const DefaultFreshness = 5 * time.Minute

// Checker names used in keys.
const (
	CheckerLibrary = "library"
	CheckerRadarr  = "radarr"
	CheckerSonarr  = "sonarr"
)

// Key identifies one checker answer for one item on one server binding.
type Key struct {
	Server  string
	Checker string
	Item    string
}

func (k Key) String() string {
	return k.Server + ":" + k.Checker + ":" + k.Item
}

// TitleItem builds the item part of a key for title based checkers.
func TitleItem(title string, year int) string {
	t := strings.ToLower(strings.TrimSpace(title))
	if year > 0 {
		return t + "|" + strconv.Itoa(year)
	}
	return t
}

// IDItem builds the item part of a key for id based checkers.
func IDItem(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Cache is a keyed store of checker answers.
type Cache interface {
	Get(key Key) (any, bool)
	Put(key Key, value any)
	Delete(key Key)
}

type entry struct {
	value    any
	inserted time.Time
}

// Memory is an in-process Cache safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	entries   map[Key]entry
	freshness time.Duration
	now       func() time.Time
}

// Option configures a Memory cache.
type Option func(*Memory)

// WithFreshness overrides the freshness window.
func WithFreshness(d time.Duration) Option {
	return func(m *Memory) {
		if d > 0 {
			m.freshness = d
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an empty in-process cache.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		entries:   make(map[Key]entry),
		freshness: DefaultFreshness,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the value stored under key if it is still fresh.
func (m *Memory) Get(key Key) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.inserted) > m.freshness {
		return nil, false
	}
	return e.value, true
}

// Put stores value under key. The last write wins.
func (m *Memory) Put(key Key, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{value: value, inserted: m.now()}
}

// Delete removes key.
func (m *Memory) Delete(key Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Loader reads through a Cache, coalescing concurrent misses on the same key.
type Loader struct {
	cache Cache
	group singleflight.Group
}

// NewLoader wraps c.
func NewLoader(c Cache) *Loader {
	return &Loader{cache: c}
}

// Cache returns the underlying store.
func (l *Loader) Cache() Cache {
	return l.cache
}

// Load returns the cached value for key or computes, stores and returns it.
// The bool reports whether the value came from the cache.
func (l *Loader) Load(key Key, fetch func() any) (any, bool) {
	if v, ok := l.cache.Get(key); ok {
		return v, true
	}
	v, _, _ := l.group.Do(key.String(), func() (any, error) {
		v := fetch()
		l.cache.Put(key, v)
		return v, nil
	})
	return v, false
}
