package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func minimalConfig() *Config {
	return &Config{
		Auth: AuthConfig{JWTSecret: "0123456789abcdef0123456789abcdef"},
		TMDB: TMDBConfig{APIKey: "tmdb-key"},
		Servers: map[string]BindingConfig{
			"home": {Plex: PlexConfig{URL: "http://plex.lan:32400", Token: "plex-token"}},
		},
	}
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidate_MinimalValid(t *testing.T) {
	errs := minimalConfig().Validate()
	assert.Empty(t, errs, "expected no errors for minimal valid config")
}

func TestValidate_Empty(t *testing.T) {
	errs := (&Config{}).Validate()
	assert.True(t, containsError(errs, "auth.jwt_secret: required"), "got %v", errs)
	assert.True(t, containsError(errs, "tmdb.api_key: required"), "got %v", errs)
	assert.True(t, containsError(errs, "at least one server"), "got %v", errs)
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := minimalConfig()
	cfg.Server.Port = 99999
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "server.port"), "expected port error, got %v", errs)
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := minimalConfig()
	cfg.Server.LogLevel = "verbose"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "log_level"), "expected log_level error, got %v", errs)
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := minimalConfig()
	cfg.Auth.JWTSecret = "hunter2"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "at least 32 characters"), "got %v", errs)
}

func TestValidate_Plex(t *testing.T) {
	cfg := minimalConfig()
	cfg.Servers["cabin"] = BindingConfig{Plex: PlexConfig{URL: "cabin.lan"}}
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "servers.cabin.plex.url: invalid URL"), "got %v", errs)
	assert.True(t, containsError(errs, "servers.cabin.plex.token: required"), "got %v", errs)
}

func TestValidate_Managers(t *testing.T) {
	cfg := minimalConfig()
	home := cfg.Servers["home"]
	home.Radarr = &ManagerConfig{URL: "http://radarr.lan:7878"}
	home.Sonarr = &ManagerConfig{APIKey: "key"}
	cfg.Servers["home"] = home

	errs := cfg.Validate()
	assert.True(t, containsError(errs, "servers.home.radarr.api_key: required"), "got %v", errs)
	assert.True(t, containsError(errs, "servers.home.sonarr.url: required"), "got %v", errs)
	assert.Len(t, errs, 2)
}

func TestValidate_Users(t *testing.T) {
	cfg := minimalConfig()
	cfg.Users = []UserConfig{
		{ID: "alice", Servers: []string{"home", "attic"}},
		{ID: "bob", Servers: []string{"home"}, Primary: "cabin"},
		{ID: "alice", Servers: []string{"home"}},
		{Servers: []string{"home"}},
	}

	errs := cfg.Validate()
	assert.True(t, containsError(errs, `users.alice.servers: unknown server "attic"`), "got %v", errs)
	assert.True(t, containsError(errs, `users.bob.primary: "cabin" is not in servers`), "got %v", errs)
	assert.True(t, containsError(errs, `duplicate user "alice"`), "got %v", errs)
	assert.True(t, containsError(errs, "users[3].id: required"), "got %v", errs)
}

func TestValidate_Availability(t *testing.T) {
	cfg := minimalConfig()
	cfg.Availability.Concurrency = -1
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "availability.concurrency"), "got %v", errs)
}
