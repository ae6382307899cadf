// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/DelsinneJordan/BigFlix/internal/binding"
)

// Config is the root configuration structure.
type Config struct {
	Server       ServerConfig             `toml:"server"`
	Database     DatabaseConfig           `toml:"database"`
	Auth         AuthConfig               `toml:"auth"`
	TMDB         TMDBConfig               `toml:"tmdb"`
	Availability AvailabilityConfig       `toml:"availability"`
	Servers      map[string]BindingConfig `toml:"servers"`
	Users        []UserConfig             `toml:"users"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// AuthConfig holds the HS256 secret shared with the token issuer.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

type TMDBConfig struct {
	APIKey   string `toml:"api_key"`
	Language string `toml:"language"`
	BaseURL  string `toml:"base_url"`
}

type AvailabilityConfig struct {
	Freshness   time.Duration `toml:"freshness"`
	Timeout     time.Duration `toml:"timeout"`
	Concurrency int           `toml:"concurrency"`
}

// BindingConfig is one Plex server and its optional download managers.
type BindingConfig struct {
	Name   string         `toml:"name"`
	Plex   PlexConfig     `toml:"plex"`
	Radarr *ManagerConfig `toml:"radarr"`
	Sonarr *ManagerConfig `toml:"sonarr"`
}

type PlexConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

type ManagerConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

// UserConfig assigns servers to a user ID as found in the token subject.
type UserConfig struct {
	ID      string   `toml:"id"`
	Primary string   `toml:"primary"`
	Servers []string `toml:"servers"`
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file and applies
// defaults. Unresolved environment variables are still an error.
func LoadWithoutValidation(path string) (*Config, error) {
	if err := loadEnvFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/bigflix.db"
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = "en-US"
	}
	if c.Availability.Freshness == 0 {
		c.Availability.Freshness = 5 * time.Minute
	}
	if c.Availability.Timeout == 0 {
		c.Availability.Timeout = 10 * time.Second
	}
}

// loadEnvFile loads BIGFLIX_ENV_FILE, or a .env next to the config file.
// Variables already set in the environment win.
func loadEnvFile(configPath string) error {
	envFile := os.Getenv("BIGFLIX_ENV_FILE")
	explicit := envFile != ""
	if !explicit {
		envFile = filepath.Join(filepath.Dir(configPath), ".env")
	}
	if err := godotenv.Load(envFile); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", envFile, err)
	}
	return nil
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces variable references with environment values.
// References that can't be resolved are left in place and reported.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		}
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return out, missing
}

// Bindings converts the [servers] tables, ordered by ID.
func (c *Config) Bindings() []binding.Binding {
	ids := make([]string, 0, len(c.Servers))
	for id := range c.Servers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]binding.Binding, 0, len(ids))
	for _, id := range ids {
		s := c.Servers[id]
		b := binding.Binding{
			ID:   id,
			Name: s.Name,
			Plex: binding.Endpoint{URL: s.Plex.URL, APIKey: s.Plex.Token},
		}
		if b.Name == "" {
			b.Name = id
		}
		if s.Radarr != nil {
			b.Radarr = &binding.Endpoint{URL: s.Radarr.URL, APIKey: s.Radarr.APIKey}
		}
		if s.Sonarr != nil {
			b.Sonarr = &binding.Endpoint{URL: s.Sonarr.URL, APIKey: s.Sonarr.APIKey}
		}
		out = append(out, b)
	}
	return out
}

// Assignments converts the [[users]] tables.
func (c *Config) Assignments() []binding.Assignment {
	out := make([]binding.Assignment, 0, len(c.Users))
	for _, u := range c.Users {
		out = append(out, binding.Assignment{UserID: u.ID, Servers: u.Servers, Primary: u.Primary})
	}
	return out
}
