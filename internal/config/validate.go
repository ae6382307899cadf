package config

import (
	"fmt"
	"net/url"
	"slices"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, "auth.jwt_secret: required")
	} else if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, "auth.jwt_secret: must be at least 32 characters")
	}

	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required")
	}
	if c.TMDB.BaseURL != "" && !validURL(c.TMDB.BaseURL) {
		errs = append(errs, fmt.Sprintf("tmdb.base_url: invalid URL %q", c.TMDB.BaseURL))
	}

	if c.Availability.Freshness < 0 {
		errs = append(errs, "availability.freshness: must not be negative")
	}
	if c.Availability.Timeout < 0 {
		errs = append(errs, "availability.timeout: must not be negative")
	}
	if c.Availability.Concurrency < 0 {
		errs = append(errs, "availability.concurrency: must not be negative")
	}

	// Server bindings
	if len(c.Servers) == 0 {
		errs = append(errs, "servers: at least one server must be configured")
	}
	for id, s := range c.Servers {
		if s.Plex.URL == "" {
			errs = append(errs, fmt.Sprintf("servers.%s.plex.url: required", id))
		} else if !validURL(s.Plex.URL) {
			errs = append(errs, fmt.Sprintf("servers.%s.plex.url: invalid URL %q", id, s.Plex.URL))
		}
		if s.Plex.Token == "" {
			errs = append(errs, fmt.Sprintf("servers.%s.plex.token: required", id))
		}
		errs = append(errs, validateManager(id, "radarr", s.Radarr)...)
		errs = append(errs, validateManager(id, "sonarr", s.Sonarr)...)
	}

	// Users
	seen := make(map[string]bool)
	for i, u := range c.Users {
		if u.ID == "" {
			errs = append(errs, fmt.Sprintf("users[%d].id: required", i))
			continue
		}
		if seen[u.ID] {
			errs = append(errs, fmt.Sprintf("users[%d].id: duplicate user %q", i, u.ID))
		}
		seen[u.ID] = true
		for _, sid := range u.Servers {
			if _, ok := c.Servers[sid]; !ok {
				errs = append(errs, fmt.Sprintf("users.%s.servers: unknown server %q", u.ID, sid))
			}
		}
		if u.Primary != "" && !slices.Contains(u.Servers, u.Primary) {
			errs = append(errs, fmt.Sprintf("users.%s.primary: %q is not in servers", u.ID, u.Primary))
		}
	}

	slices.Sort(errs)
	return errs
}

func validateManager(id, name string, m *ManagerConfig) []string {
	if m == nil {
		return nil
	}
	var errs []string
	if m.URL == "" {
		errs = append(errs, fmt.Sprintf("servers.%s.%s.url: required when %s is configured", id, name, name))
	} else if !validURL(m.URL) {
		errs = append(errs, fmt.Sprintf("servers.%s.%s.url: invalid URL %q", id, name, m.URL))
	}
	if m.APIKey == "" {
		errs = append(errs, fmt.Sprintf("servers.%s.%s.api_key: required when %s is configured", id, name, name))
	}
	return errs
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
