package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/logspan/pkg/matcher"
	"github.com/ccollicutt/logspan/pkg/results"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config file format")

// Load reads and validates a configuration file. The format is chosen by
// extension: .yaml, .yml or none for YAML, .toml for TOML.
func Load(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("reading config file: no path given")
	}
	return LoadOrDefault(ctx, path)
}

// LoadOrDefault loads path, or the defaults when path is empty, applies
// environment overrides and validates the result.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Read is LoadOrDefault without validation, for callers that layer more
// overrides (command-line flags) on top before calling Validate.
func Read(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %s (use .yaml, .yml or .toml)", ErrUnknownFormat, filepath.Base(path))
	}
}

// Validate checks a configuration for errors and compiles the pattern.
func Validate(cfg *Config) error {
	if cfg.Pattern == "" {
		return errors.New("pattern: is required")
	}
	m, err := matcher.New(cfg.Pattern)
	if err != nil {
		return fmt.Errorf("pattern: %w", err)
	}
	cfg.matcher = m

	key, err := results.ParseSortKey(cfg.Sort)
	if err != nil {
		return fmt.Errorf("sort: %w", err)
	}
	cfg.sortKey = key
	cfg.Sort = string(key)

	switch cfg.Output {
	case "":
		cfg.Output = DefaultOutput
	case OutputText, OutputJSON:
		// Valid
	default:
		return fmt.Errorf("output: unknown format %q (use text or json)", cfg.Output)
	}

	for i, src := range cfg.LogSources {
		cfg.LogSources[i] = os.ExpandEnv(src)
		if strings.TrimSpace(cfg.LogSources[i]) == "" {
			return fmt.Errorf("log_sources[%d]: is empty", i)
		}
	}

	return nil
}
