package md2epub

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures Load.
type Option func(*bookConfig)

type bookConfig struct {
	sourceDir    string
	buildDir     string
	metadataPath string
	outputPath   string
	theme        string
	themeLoader  ThemeLoader
	workers      int
	logger       *log.Logger
	now          func() time.Time
}

// MetadataFile is the description file name looked up in the source directory.
const MetadataFile = "metadata.yaml"

// BuildDirName is the default build directory, inside the source directory.
const BuildDirName = "_build"

// OutputName is the default archive name, inside the build directory.
const OutputName = "output.epub"

func defaultConfig() bookConfig {
	return bookConfig{
		sourceDir: ".",
		logger:    log.New(io.Discard),
		now:       time.Now,
	}
}

// WithSourceDir sets the directory holding metadata.yaml and the chapters.
// Default: the working directory.
func WithSourceDir(dir string) Option {
	return func(c *bookConfig) { c.sourceDir = dir }
}

// WithBuildDir sets where build artifacts are written.
// Default: <source>/_build.
func WithBuildDir(dir string) Option {
	return func(c *bookConfig) { c.buildDir = dir }
}

// WithMetadataPath overrides the description file location.
func WithMetadataPath(path string) Option {
	return func(c *bookConfig) { c.metadataPath = path }
}

// WithOutputPath sets the archive path. Default: <build>/output.epub.
func WithOutputPath(path string) Option {
	return func(c *bookConfig) { c.outputPath = path }
}

// WithTheme selects a built-in theme by name or a theme directory by path.
// Default: the built-in "default" theme.
func WithTheme(ref string) Option {
	return func(c *bookConfig) { c.theme = ref }
}

// WithThemeLoader supplies theme assets directly. It takes precedence over WithTheme.
func WithThemeLoader(l ThemeLoader) Option {
	return func(c *bookConfig) { c.themeLoader = l }
}

// WithWorkers bounds the number of chapters rendered (and resources copied)
// concurrently. Zero or less picks a value from GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *bookConfig) { c.workers = n }
}

// WithLogger sets the logger for stage progress. Default: discard.
func WithLogger(l *log.Logger) Option {
	return func(c *bookConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the time source used to resolve "date: auto".
func WithClock(now func() time.Time) Option {
	return func(c *bookConfig) {
		if now != nil {
			c.now = now
		}
	}
}
