package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2epub/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2EPUB_CONFIG: config file name or path
	Theme      string // MD2EPUB_THEME: theme name or directory
	BuildDir   string // MD2EPUB_BUILD_DIR: build directory
	Output     string // MD2EPUB_OUTPUT: archive path
	Workers    int    // MD2EPUB_WORKERS: parallel chapter renders
	LogLevel   string // MD2EPUB_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid MD2EPUB_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2EPUB_CONFIG":    true,
	"MD2EPUB_THEME":     true,
	"MD2EPUB_BUILD_DIR": true,
	"MD2EPUB_OUTPUT":    true,
	"MD2EPUB_WORKERS":   true,
	"MD2EPUB_LOG_LEVEL": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2EPUB_CONFIG"),
		Theme:      os.Getenv("MD2EPUB_THEME"),
		BuildDir:   os.Getenv("MD2EPUB_BUILD_DIR"),
		Output:     os.Getenv("MD2EPUB_OUTPUT"),
		LogLevel:   os.Getenv("MD2EPUB_LOG_LEVEL"),
	}

	if workers := os.Getenv("MD2EPUB_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2EPUB_* variables.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2EPUB_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig applies environment values to cfg.
// Environment wins over the config file; flags are applied afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.BuildDir != "" {
		cfg.Build.Dir = env.BuildDir
	}
	if env.Output != "" {
		cfg.Output.Path = env.Output
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}
