// Package config loads fsdoc configuration from a YAML file and FSDOC_
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/grahms/fsdoc/internal/logging"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FSDOC_"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Config is the complete fsdoc configuration.
type Config struct {
	Documenter DocumenterConfig `koanf:"documenter"`
	Staging    StagingConfig    `koanf:"staging"`
	Outline    OutlineConfig    `koanf:"outline"`
	Headings   HeadingsConfig   `koanf:"headings"`
	Validation ValidationConfig `koanf:"validation"`
	Watch      WatchConfig      `koanf:"watch"`
	Logging    logging.Config   `koanf:"logging"`
}

// DocumenterConfig selects the attributes and fields to extract.
type DocumenterConfig struct {
	TypeTag string   `koanf:"type_tag"`
	Fields  []string `koanf:"fields"`
	Unknown string   `koanf:"unknown"` // drop or audit
}

// StagingConfig locates the documentation tree.
type StagingConfig struct {
	Enabled          bool   `koanf:"enabled"`
	DocsDir          string `koanf:"docs_dir"`
	BaseDir          string `koanf:"base_dir"`
	IndexFile        string `koanf:"index_file"`
	NewIndexFile     string `koanf:"new_index_file"`
	ProcessFile      string `koanf:"process_file"`
	ProcessSourceDir string `koanf:"process_source_dir"`
	ProcessPrefix    string `koanf:"process_prefix"`
}

// OutlineConfig holds the toctree section markers.
type OutlineConfig struct {
	Start string `koanf:"start"`
	End   string `koanf:"end"`
}

// HeadingsConfig holds the process section delimiter.
type HeadingsConfig struct {
	Delimiter string `koanf:"delimiter"`
}

// ValidationConfig lists required variables and per-variable patterns.
// Patterns are a list because variable names contain the key delimiter.
type ValidationConfig struct {
	Required []string      `koanf:"required"`
	Patterns []PatternRule `koanf:"patterns"`
}

// PatternRule constrains the printed value of one variable.
type PatternRule struct {
	Variable    string `koanf:"variable"`
	Pattern     string `koanf:"pattern"`
	Description string `koanf:"description"`
}

// WatchConfig controls the response file watcher.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Load reads the YAML file at path, if any, then applies FSDOC_ environment
// overrides and defaults.
//
// Environment variables map to keys by their first underscore:
//
//	FSDOC_STAGING_DOCS_DIR -> staging.docs_dir
//	FSDOC_LOGGING_LEVEL    -> logging.level
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used without a file or environment.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// envKey maps FSDOC_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Documenter.TypeTag == "" {
		cfg.Documenter.TypeTag = "Documenter"
	}
	if len(cfg.Documenter.Fields) == 0 {
		cfg.Documenter.Fields = []string{"variables", "template", "index", "process"}
	}
	if cfg.Documenter.Unknown == "" {
		cfg.Documenter.Unknown = "drop"
	}

	if cfg.Staging.DocsDir == "" {
		cfg.Staging.DocsDir = "."
	}

	if cfg.Outline.Start == "" {
		cfg.Outline.Start = ".. toctree::"
	}
	if cfg.Headings.Delimiter == "" {
		cfg.Headings.Delimiter = ".. _heading"
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 200 * time.Millisecond
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	switch c.Documenter.Unknown {
	case "drop", "audit":
	default:
		return fmt.Errorf("documenter.unknown must be 'drop' or 'audit', got %q", c.Documenter.Unknown)
	}
	for i, r := range c.Validation.Patterns {
		if r.Variable == "" || r.Pattern == "" {
			return fmt.Errorf("validation.patterns[%d]: variable and pattern are required", i)
		}
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce cannot be negative: %s", c.Watch.Debounce)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
