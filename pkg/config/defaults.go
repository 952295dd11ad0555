package config

import (
	"os"

	"github.com/ccollicutt/logspan/pkg/matcher"
	"github.com/ccollicutt/logspan/pkg/results"
)

// Default values for configuration.
const (
	DefaultPattern = matcher.DefaultPattern
	DefaultSort    = string(results.DefaultSortKey)
	DefaultOutput  = OutputText
)

// Environment variable names.
const (
	EnvPattern = "LOGSPAN_PATTERN"
	EnvSort    = "LOGSPAN_SORT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogSources: []string{},
		Pattern:    DefaultPattern,
		Sort:       DefaultSort,
		Output:     DefaultOutput,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if pattern := os.Getenv(EnvPattern); pattern != "" {
		c.Pattern = pattern
	}
	if sort := os.Getenv(EnvSort); sort != "" {
		c.Sort = sort
	}
}
