// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Plex     PlexConfig     `toml:"plex"`
	Batch    BatchConfig    `toml:"batch"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// PlexConfig describes the media server connection. When FallbackURLs
// are set, the daemon races identity probes across all candidates and
// uses the first responder.
type PlexConfig struct {
	URL              string   `toml:"url"`
	FallbackURLs     []string `toml:"fallback_urls"`
	Token            string   `toml:"token"`
	ClientIdentifier string   `toml:"client_identifier"`
	TimeoutSeconds   int      `toml:"timeout_seconds"`
}

// Candidates returns all connection URLs to probe, primary first.
func (p PlexConfig) Candidates() []string {
	if p.URL == "" {
		return p.FallbackURLs
	}
	return append([]string{p.URL}, p.FallbackURLs...)
}

// BatchConfig tunes the batch update engine. Zero values fall back to
// the engine defaults.
type BatchConfig struct {
	FetchBatchSize     int `toml:"fetch_batch_size"`
	PublishIntervalMS  int `toml:"publish_interval_ms"`
	MaxDetailedResults int `toml:"max_detailed_results"`
}

// Load reads and parses the configuration file. Unresolved ${VAR}
// references are reported through a *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8468
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/trackarr.db"
	}
	if cfg.Plex.TimeoutSeconds == 0 {
		cfg.Plex.TimeoutSeconds = 20
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable
// values and reports the names it could not resolve.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		missing = append(missing, varName)
		return match
	})
	return out, missing
}
