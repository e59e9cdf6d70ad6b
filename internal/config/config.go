// Package config loads the supercollider YAML configuration.
//
// Values may reference environment variables (${VAR}); .env and .env.local
// in the working directory are loaded first without overriding variables
// already set in the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/inful/supercollider/internal/doc"
	"github.com/inful/supercollider/internal/foundation/errors"
)

// Environment overrides applied after the file is decoded.
const (
	EnvDest  = "SUPERCOLLIDER_DEST"
	EnvTitle = "SUPERCOLLIDER_TITLE"
)

// Config is the application configuration.
type Config struct {
	Sources     Sources  `yaml:"sources"`
	Dest        string   `yaml:"dest"`
	Title       string   `yaml:"title,omitempty"`
	Adapters    []string `yaml:"adapters,omitempty"`
	Concurrency int      `yaml:"concurrency,omitempty"`
	MetricsFile string   `yaml:"metrics_file,omitempty"`
}

// Sources lists the scan roots per source type. Each entry may be a
// directory, scanned recursively, or a single file.
type Sources struct {
	Markup     []string `yaml:"markup,omitempty"`
	Stylesheet []string `yaml:"stylesheet,omitempty"`
	Script     []string `yaml:"script,omitempty"`
}

// Roots returns the scan roots keyed by source type.
func (s Sources) Roots() map[doc.SourceType][]string {
	roots := make(map[doc.SourceType][]string, len(doc.SourceTypes))
	if len(s.Markup) > 0 {
		roots[doc.Markup] = s.Markup
	}
	if len(s.Stylesheet) > 0 {
		roots[doc.Stylesheet] = s.Stylesheet
	}
	if len(s.Script) > 0 {
		roots[doc.Script] = s.Script
	}
	return roots
}

// All returns every configured root in source type order.
func (s Sources) All() []string {
	out := make([]string, 0, len(s.Markup)+len(s.Stylesheet)+len(s.Script))
	out = append(out, s.Markup...)
	out = append(out, s.Stylesheet...)
	return append(out, s.Script...)
}

// Load reads, expands, defaults and validates the configuration at path.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes, expanding environment
// variables, then applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	applyEnvOverrides(&cfg)
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvDest); v != "" {
		cfg.Dest = v
	}
	if v := os.Getenv(EnvTitle); v != "" {
		cfg.Title = v
	}
}

// Init writes an example configuration to configPath. An existing file is
// only replaced when force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Config{
		Sources: Sources{
			Markup:     []string{"./templates"},
			Stylesheet: []string{"./styles"},
			Script:     []string{"./scripts"},
		},
		Dest:        DefaultDest,
		Title:       DefaultTitle,
		Adapters:    append([]string(nil), DefaultAdapters...),
		Concurrency: 4,
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Snapshot returns a compact, stable description of the effective settings.
func (c *Config) Snapshot() string {
	return fmt.Sprintf("sources=%d dest=%s adapters=%v concurrency=%s",
		len(c.Sources.All()), c.Dest, c.Adapters, strconv.Itoa(c.Concurrency))
}
