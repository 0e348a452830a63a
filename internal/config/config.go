// Package config loads the optional md2epub configuration file, which supplies
// defaults for command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2epub/internal/fileutil"
	"github.com/alnah/go-md2epub/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when --config is not given.
const DefaultName = "md2epub"

// Field limits.
const (
	MaxPathLength  = 4096
	MaxThemeLength = 4096 // a theme may be a directory path
	MaxWorkers     = 64
)

// Config holds defaults for the command. Flags win over every field.
type Config struct {
	Theme   string       `yaml:"theme"` // built-in name or theme directory
	Build   BuildConfig  `yaml:"build"`
	Output  OutputConfig `yaml:"output"`
	Workers int          `yaml:"workers"` // 0 = auto
	Log     LogConfig    `yaml:"log"`
	Watch   WatchConfig  `yaml:"watch"`
}

// BuildConfig defines the build directory.
type BuildConfig struct {
	Dir string `yaml:"dir"` // empty = <source>/_build
}

// OutputConfig defines the archive destination.
type OutputConfig struct {
	Path string `yaml:"path"` // empty = <build>/output.epub
}

// LogConfig defines the default log verbosity.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. "300ms"
}

// validLogLevels are the accepted log.level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("theme", c.Theme, MaxThemeLength); err != nil {
		return err
	}
	if err := validateFieldLength("build.dir", c.Build.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	if c.Log.Level != "" {
		level := strings.ToLower(c.Log.Level)
		valid := false
		for _, l := range validLogLevels {
			if level == l {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: log.level: %q (must be one of %s)",
				ErrInvalidValue, c.Log.Level, strings.Join(validLogLevels, ", "))
		}
	}
	if c.Watch.Debounce != "" {
		if _, err := c.Watch.DebounceDuration(); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that leaves every flag at its default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if strings.ContainsAny(nameOrPath, "/\\") {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// the current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2epub", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// DefaultDebounce is the watch debounce used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// DebounceDuration parses Debounce, returning DefaultDebounce when unset.
func (w WatchConfig) DebounceDuration() (time.Duration, error) {
	if w.Debounce == "" {
		return DefaultDebounce, nil
	}
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0, fmt.Errorf("%w: watch.debounce: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: watch.debounce: must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}
