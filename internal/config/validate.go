package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if len(c.Plex.Candidates()) == 0 {
		errs = append(errs, "plex.url: required")
	}
	for _, u := range c.Plex.Candidates() {
		if _, err := url.ParseRequestURI(u); err != nil {
			errs = append(errs, fmt.Sprintf("plex.url: invalid URL %q", u))
		}
	}
	if c.Plex.Token == "" {
		errs = append(errs, "plex.token: required")
	}

	if c.Batch.FetchBatchSize < 0 {
		errs = append(errs, "batch.fetch_batch_size: must not be negative")
	}
	if c.Batch.PublishIntervalMS < 0 {
		errs = append(errs, "batch.publish_interval_ms: must not be negative")
	}
	if c.Batch.MaxDetailedResults < 0 {
		errs = append(errs, "batch.max_detailed_results: must not be negative")
	}

	return errs
}
