// Package config provides configuration loading and validation for logspan.
package config

import (
	"github.com/ccollicutt/logspan/pkg/matcher"
	"github.com/ccollicutt/logspan/pkg/results"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config is the root configuration, loaded from YAML or TOML.
type Config struct {
	// LogSources lists files or globs to scan when none are given on the
	// command line. Environment variables in entries are expanded.
	LogSources []string `yaml:"log_sources" toml:"log_sources"`

	// Pattern is the regex that matches a timestamp within a line.
	// The whole match is reported.
	Pattern string `yaml:"pattern" toml:"pattern"`

	// Sort is FILENAME, FIRST or LAST.
	Sort string `yaml:"sort" toml:"sort"`

	// Output is text or json.
	Output string `yaml:"output" toml:"output"`

	// Verbose enables per-file diagnostics on stderr.
	Verbose bool `yaml:"verbose" toml:"verbose"`

	// populated during validation
	matcher *matcher.Matcher
	sortKey results.SortKey
}

// Matcher returns the compiled pattern.
func (c *Config) Matcher() *matcher.Matcher {
	return c.matcher
}

// SortKey returns the parsed sort order.
func (c *Config) SortKey() results.SortKey {
	return c.sortKey
}
