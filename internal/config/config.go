// ABOUTME: Layered configuration: defaults, optional TOML file, then REALTY_ environment.
// ABOUTME: .env files are loaded first so their values reach the environment layer.

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// EnvPrefix prefixes every environment override. Nested keys use a double
// underscore, e.g. REALTY_SERVER__PORT or REALTY_API__BASE_URL.
const EnvPrefix = "REALTY_"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Admin     AdminConfig     `koanf:"admin"`
	Log       LogConfig       `koanf:"log"`
	Retention RetentionConfig `koanf:"retention"`
	Seed      SeedConfig      `koanf:"seed"`
}

type ServerConfig struct {
	Port   string `koanf:"port"`
	DBPath string `koanf:"db_path"`
}

// APIConfig describes the REST API the console and CLI read from.
// An empty BaseURL means the API served by this process.
type APIConfig struct {
	BaseURL string        `koanf:"base_url"`
	Token   string        `koanf:"token"`
	Timeout time.Duration `koanf:"timeout"`
	Rate    float64       `koanf:"rate"`
	Burst   int           `koanf:"burst"`
}

type AdminConfig struct {
	PageSize int `koanf:"page_size"`
}

type LogConfig struct {
	Level      string `koanf:"level"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	Compress   bool   `koanf:"compress"`
}

type RetentionConfig struct {
	MaxAge   time.Duration `koanf:"max_age"`
	Schedule string        `koanf:"schedule"`
}

type SeedConfig struct {
	OpenAIModel string `koanf:"openai_model"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.port":        "9000",
		"server.db_path":     "",
		"api.base_url":       "",
		"api.token":          "",
		"api.timeout":        "10s",
		"api.rate":           20.0,
		"api.burst":          10,
		"admin.page_size":    10,
		"log.level":          "info",
		"log.file":           "",
		"log.max_size_mb":    10,
		"log.max_backups":    3,
		"log.compress":       false,
		"retention.max_age":  "168h",
		"retention.schedule": "@daily",
		"seed.openai_model":  "gpt-5-mini",
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	loadDotEnv()

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps REALTY_API__BASE_URL to api.base_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Admin.PageSize <= 0 {
		return fmt.Errorf("admin.page_size must be positive, got %d", c.Admin.PageSize)
	}
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
		}
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.API.Rate < 0 || c.API.Burst < 0 {
		return fmt.Errorf("api.rate and api.burst cannot be negative")
	}
	if c.Retention.MaxAge < 0 {
		return fmt.Errorf("retention.max_age cannot be negative")
	}
	return nil
}

// APIBaseURL returns the configured API URL, falling back to this server.
func (c *Config) APIBaseURL() string {
	if c.API.BaseURL != "" {
		return strings.TrimRight(c.API.BaseURL, "/")
	}
	return "http://localhost:" + c.Server.Port
}

// loadDotEnv tries .env in the working directory, its parents, then $HOME.
// godotenv never overrides variables that are already set.
func loadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".env"))
	}
}
