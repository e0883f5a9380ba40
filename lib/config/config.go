// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/ringbuffer/lib/ringstore"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "RINGCTL_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local use.
	Development Environment = "development"
	// Production is for shared or automated hosts.
	Production Environment = "production"
)

// ColorMode controls whether rendered output carries ANSI styling.
type ColorMode string

const (
	// ColorAuto styles output only when stdout is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever emits plain text.
	ColorNever ColorMode = "never"
)

// Config is the master configuration for ringctl.
type Config struct {
	// Environment identifies the deployment type (development, production).
	Environment Environment `yaml:"environment"`

	// Ring configures buffers built by replay.
	Ring RingConfig `yaml:"ring"`

	// Store configures the snapshot store.
	Store StoreConfig `yaml:"store"`

	// Render configures terminal output.
	Render RenderConfig `yaml:"render"`

	// Bench configures the suffix/drop-last timing harness.
	Bench BenchConfig `yaml:"bench"`

	// Per-environment overrides, applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
// Zero values leave the base value in place.
type ConfigOverrides struct {
	Ring   *RingConfig   `yaml:"ring,omitempty"`
	Store  *StoreConfig  `yaml:"store,omitempty"`
	Render *RenderConfig `yaml:"render,omitempty"`
	Bench  *BenchConfig  `yaml:"bench,omitempty"`
}

// RingConfig configures buffers.
type RingConfig struct {
	// DefaultCapacity is used when replay is not given --capacity.
	// Default: 8
	DefaultCapacity int `yaml:"default_capacity"`
}

// StoreConfig configures the snapshot store.
type StoreConfig struct {
	// Root is the base directory for ringctl data.
	Root string `yaml:"root"`

	// Directory holds snapshot files.
	// Default: ${RINGCTL_ROOT}/snapshots
	Directory string `yaml:"directory"`

	// Compression is the tag applied to new snapshots: none, lz4, or zstd.
	// Default: lz4 (development), zstd (production)
	Compression string `yaml:"compression"`
}

// RenderConfig configures terminal output.
type RenderConfig struct {
	// Color is auto, always, or never.
	// Default: auto (development), never (production)
	Color ColorMode `yaml:"color"`
}

// BenchConfig configures the timing harness.
type BenchConfig struct {
	// Elements is the length of the benchmarked sequence.
	// Default: 4096
	Elements int `yaml:"elements"`

	// Window is the suffix length and drop-last count.
	// Default: 1024
	Window int `yaml:"window"`

	// Iterations is how many times each workload runs.
	// Default: 100
	Iterations int `yaml:"iterations"`
}

// Default returns the default configuration. It is used as the base
// before loading a config file, and as-is when no file is named.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "ringctl")

	return &Config{
		Environment: Development,
		Ring: RingConfig{
			DefaultCapacity: 8,
		},
		Store: StoreConfig{
			Root:        defaultRoot,
			Directory:   filepath.Join(defaultRoot, "snapshots"),
			Compression: "lz4",
		},
		Render: RenderConfig{
			Color: ColorAuto,
		},
		Bench: BenchConfig{
			Elements:   4096,
			Window:     1024,
			Iterations: 100,
		},
	}
}

// Load loads configuration from the file named by RINGCTL_CONFIG. It
// fails when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your ringctl.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. The only expansion
// performed is ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{
				Store:  &StoreConfig{Compression: "zstd"},
				Render: &RenderConfig{Color: ColorNever},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Ring != nil && overrides.Ring.DefaultCapacity != 0 {
		c.Ring.DefaultCapacity = overrides.Ring.DefaultCapacity
	}

	if overrides.Store != nil {
		if overrides.Store.Root != "" {
			c.Store.Root = overrides.Store.Root
		}
		if overrides.Store.Directory != "" {
			c.Store.Directory = overrides.Store.Directory
		}
		if overrides.Store.Compression != "" {
			c.Store.Compression = overrides.Store.Compression
		}
	}

	if overrides.Render != nil && overrides.Render.Color != "" {
		c.Render.Color = overrides.Render.Color
	}

	if overrides.Bench != nil {
		if overrides.Bench.Elements != 0 {
			c.Bench.Elements = overrides.Bench.Elements
		}
		if overrides.Bench.Window != 0 {
			c.Bench.Window = overrides.Bench.Window
		}
		if overrides.Bench.Iterations != 0 {
			c.Bench.Iterations = overrides.Bench.Iterations
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"RINGCTL_ROOT": c.Store.Root,
		"HOME":         os.Getenv("HOME"),
	}

	c.Store.Root = expandVars(c.Store.Root, vars)
	vars["RINGCTL_ROOT"] = c.Store.Root // Update for dependent paths.

	c.Store.Directory = expandVars(c.Store.Directory, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Ring.DefaultCapacity < 1 {
		errs = append(errs, fmt.Errorf("ring.default_capacity must be at least 1, got %d", c.Ring.DefaultCapacity))
	}

	if c.Store.Directory == "" {
		errs = append(errs, fmt.Errorf("store.directory is required"))
	}

	if _, err := ringstore.ParseCompressionTag(c.Store.Compression); err != nil {
		errs = append(errs, fmt.Errorf("store.compression: %w", err))
	}

	colorModes := []ColorMode{ColorAuto, ColorAlways, ColorNever}
	if !slices.Contains(colorModes, c.Render.Color) {
		errs = append(errs, fmt.Errorf("render.color must be one of: %v", colorModes))
	}

	if c.Bench.Elements < 1 {
		errs = append(errs, fmt.Errorf("bench.elements must be at least 1"))
	}
	if c.Bench.Window < 1 || c.Bench.Window > c.Bench.Elements {
		errs = append(errs, fmt.Errorf("bench.window must be between 1 and bench.elements"))
	}
	if c.Bench.Iterations < 1 {
		errs = append(errs, fmt.Errorf("bench.iterations must be at least 1"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Compression returns the parsed store compression tag. Call after
// [Config.Validate]; an unparseable value yields none.
func (c *Config) Compression() ringstore.CompressionTag {
	tag, _ := ringstore.ParseCompressionTag(c.Store.Compression)
	return tag
}

// EnsurePaths creates the configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	for _, path := range []string{c.Store.Root, c.Store.Directory} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
