// ABOUTME: Tests for layered configuration loading.
// ABOUTME: Covers defaults, TOML files, environment overrides and validation.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Admin.PageSize)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 168*time.Hour, cfg.Retention.MaxAge)
	assert.Equal(t, "@daily", cfg.Retention.Schedule)
	assert.Equal(t, "http://localhost:9000", cfg.APIBaseURL())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "realty.toml")
	contents := `
[server]
port = "8080"
db_path = "/var/lib/realty/realty.db"

[api]
base_url = "https://api.example.com/"
token = "from-file"
timeout = "3s"

[admin]
page_size = 25

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	t.Setenv("REALTY_API__TOKEN", "from-env")
	t.Setenv("REALTY_RETENTION__MAX_AGE", "24h")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/var/lib/realty/realty.db", cfg.Server.DBPath)
	assert.Equal(t, "from-env", cfg.API.Token)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 25, cfg.Admin.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 24*time.Hour, cfg.Retention.MaxAge)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("REALTY_ADMIN__PAGE_SIZE", "0")
	_, err := Load("")
	assert.ErrorContains(t, err, "page_size")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: "9000"},
			API:    APIConfig{Timeout: time.Second},
			Admin:  AdminConfig{PageSize: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"relative base url", func(c *Config) { c.API.BaseURL = "api/v1" }, true},
		{"absolute base url", func(c *Config) { c.API.BaseURL = "http://localhost:9000" }, false},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, true},
		{"negative burst", func(c *Config) { c.API.Burst = -1 }, true},
		{"negative retention", func(c *Config) { c.Retention.MaxAge = -time.Hour }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "api.base_url", envKey("REALTY_API__BASE_URL"))
	assert.Equal(t, "server.port", envKey("REALTY_SERVER__PORT"))
}
