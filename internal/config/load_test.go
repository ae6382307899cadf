package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `
[auth]
jwt_secret = "0123456789abcdef0123456789abcdef"

[tmdb]
api_key = "tmdb-key"

[servers.home.plex]
url = "http://plex.lan:32400"
token = "plex-token"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 8080\n"+validBody)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "tmdb-key", cfg.TMDB.APIKey)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validBody))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./data/bigflix.db", cfg.Database.Path)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 5*time.Minute, cfg.Availability.Freshness)
	assert.Equal(t, 10*time.Second, cfg.Availability.Timeout)
	assert.Equal(t, 0, cfg.Availability.Concurrency, "unbounded by default")
}

func TestLoad_Durations(t *testing.T) {
	cfg, err := Load(writeConfig(t, validBody+`
[availability]
freshness = "90s"
timeout = "2s"
concurrency = 4
`))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Availability.Freshness)
	assert.Equal(t, 2*time.Second, cfg.Availability.Timeout)
	assert.Equal(t, 4, cfg.Availability.Concurrency)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, validBody+`
[servers.home.radarr]
url = "http://radarr.lan:7878"
api_key = "${BIGFLIX_TEST_MISSING_RADARR_KEY}"
`)

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"BIGFLIX_TEST_MISSING_RADARR_KEY"}, cfgErr.Missing)
}

func TestLoad_ValidationError(t *testing.T) {
	_, err := Load(writeConfig(t, "[server]\nport = 99999\n"+validBody))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoadWithoutValidation(t *testing.T) {
	cfg, err := LoadWithoutValidation(writeConfig(t, "[server]\nport = 99999\n"))
	require.NoError(t, err)
	assert.Equal(t, 99999, cfg.Server.Port)
}

func TestLoad_EnvVarDefault(t *testing.T) {
	t.Setenv("BIGFLIX_TEST_OPTIONAL_HOST", "")
	cfg, err := Load(writeConfig(t, `
[server]
host = "${BIGFLIX_TEST_OPTIONAL_HOST:-localhost}"
`+validBody))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestLoad_DotEnvNextToConfig(t *testing.T) {
	t.Setenv("BIGFLIX_ENV_FILE", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BIGFLIX_TEST_DOTENV_TMDB=from-dotenv\n"), 0o600))
	body := strings.Replace(validBody, `"tmdb-key"`, `"${BIGFLIX_TEST_DOTENV_TMDB}"`, 1)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("BIGFLIX_TEST_DOTENV_TMDB") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.TMDB.APIKey)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	t.Setenv("BIGFLIX_TEST_DOTENV_KEEP", "from-env")
	envFile := filepath.Join(t.TempDir(), "secrets.env")
	require.NoError(t, os.WriteFile(envFile, []byte("BIGFLIX_TEST_DOTENV_KEEP=from-file\n"), 0o600))
	t.Setenv("BIGFLIX_ENV_FILE", envFile)

	body := strings.Replace(validBody, `"tmdb-key"`, `"${BIGFLIX_TEST_DOTENV_KEEP}"`, 1)
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestLoad_ExplicitEnvFileMissing(t *testing.T) {
	t.Setenv("BIGFLIX_ENV_FILE", filepath.Join(t.TempDir(), "nope.env"))
	_, err := Load(writeConfig(t, validBody))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.env")
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}
