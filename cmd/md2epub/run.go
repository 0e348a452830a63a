package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	md2epub "github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/assets"
	"github.com/alnah/go-md2epub/internal/config"
	"github.com/alnah/go-md2epub/internal/hints"
)

// ErrUsage reports invalid flag combinations or arguments.
var ErrUsage = errors.New("usage error")

// settings is the resolved run configuration: flags over environment over
// config file over library defaults.
type settings struct {
	sourceDir  string
	buildDir   string
	metadata   string
	output     string
	theme      string
	workers    int
	mode       md2epub.Mode
	watch      bool
	debounce   time.Duration
	level      log.Level
	configName string
}

// runMain runs the command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "md2epub %s\n", Version)
		return ExitSuccess
	}

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	s, err := resolveSettings(flags, positional, loadEnvConfig())
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, s))
		return exitCodeFor(err)
	}

	logger := newLogger(env, s.level)
	warnUnknownEnvVars(logger)

	if err := run(ctx, s, logger, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, s))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// newLogger returns the command logger on stderr.
func newLogger(env *Environment, level log.Level) *log.Logger {
	return log.NewWithOptions(env.Stderr, log.Options{
		Prefix: "md2epub",
		Level:  level,
	})
}

// resolveSettings merges flags, environment and config file.
// On error it still returns the settings known so far, for hints.
func resolveSettings(flags *cliFlags, positional []string, env *envConfig) (*settings, error) {
	s := &settings{sourceDir: ".", mode: md2epub.ModeAll, level: log.InfoLevel}

	switch len(positional) {
	case 0:
	case 1:
		s.sourceDir = positional[0]
	default:
		return s, fmt.Errorf("%w: expected at most one source directory, got %d arguments", ErrUsage, len(positional))
	}

	if flags.compileOnly && flags.packOnly {
		return s, fmt.Errorf("%w: --compile-only and --pack-only are mutually exclusive", ErrUsage)
	}
	if flags.watch && flags.packOnly {
		return s, fmt.Errorf("%w: --watch rebuilds the book and cannot be combined with --pack-only", ErrUsage)
	}
	if flags.quiet && flags.verbose {
		return s, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	if flags.workers < 0 {
		return s, fmt.Errorf("%w: --workers must be 0 or more, got %d", ErrUsage, flags.workers)
	}

	cfg, err := loadConfig(flags.config, env, s)
	if err != nil {
		return s, err
	}
	applyEnvConfig(env, cfg)

	s.theme = firstNonEmpty(flags.theme, cfg.Theme)
	s.buildDir = firstNonEmpty(flags.buildDir, cfg.Build.Dir)
	s.output = firstNonEmpty(flags.output, cfg.Output.Path)
	s.metadata = flags.metadata
	s.workers = cfg.Workers
	if flags.workers > 0 {
		s.workers = flags.workers
	}

	switch {
	case flags.compileOnly:
		s.mode = md2epub.ModeBuild
	case flags.packOnly:
		s.mode = md2epub.ModePack
	}
	s.watch = flags.watch
	if s.debounce, err = cfg.Watch.DebounceDuration(); err != nil {
		return s, err
	}

	switch {
	case flags.verbose:
		s.level = log.DebugLevel
	case flags.quiet:
		s.level = log.ErrorLevel
	case cfg.Log.Level != "":
		if s.level, err = log.ParseLevel(cfg.Log.Level); err != nil {
			return s, fmt.Errorf("%w: log level: %w", config.ErrInvalidValue, err)
		}
	}
	return s, nil
}

// loadConfig loads the config named by the flag or MD2EPUB_CONFIG. Without
// either, the default name is tried and its absence is not an error.
func loadConfig(flagValue string, env *envConfig, s *settings) (*config.Config, error) {
	name := firstNonEmpty(flagValue, env.ConfigPath)
	if name != "" {
		s.configName = name
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		s.configName = config.DefaultName
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// options turns settings into library options.
func (s *settings) options(logger *log.Logger, now func() time.Time) []md2epub.Option {
	opts := []md2epub.Option{
		md2epub.WithSourceDir(s.sourceDir),
		md2epub.WithTheme(s.theme),
		md2epub.WithWorkers(s.workers),
		md2epub.WithLogger(logger),
		md2epub.WithClock(now),
	}
	if s.buildDir != "" {
		opts = append(opts, md2epub.WithBuildDir(s.buildDir))
	}
	if s.metadata != "" {
		opts = append(opts, md2epub.WithMetadataPath(s.metadata))
	}
	if s.output != "" {
		opts = append(opts, md2epub.WithOutputPath(s.output))
	}
	return opts
}

// run executes one build, or a build followed by watch mode.
func run(ctx context.Context, s *settings, logger *log.Logger, env *Environment) error {
	if !s.watch {
		return buildOnce(ctx, s, logger, env)
	}

	// The first build may fail on a half-written source; keep watching.
	if err := buildOnce(ctx, s, logger, env); err != nil {
		logger.Error("build failed", "err", err)
	}
	buildDir := s.buildDir
	if buildDir == "" {
		buildDir = filepath.Join(s.sourceDir, md2epub.BuildDirName)
	}
	output := s.output
	if output == "" {
		output = filepath.Join(buildDir, md2epub.OutputName)
	}
	return watchSource(ctx, s.sourceDir, buildDir, output, s.debounce, logger, func(ctx context.Context) {
		if err := buildOnce(ctx, s, logger, env); err != nil {
			logger.Error("build failed", "err", err)
		}
	})
}

// buildOnce loads the book description and runs the selected stages.
func buildOnce(ctx context.Context, s *settings, logger *log.Logger, env *Environment) error {
	start := env.Now()
	book, err := md2epub.Load(ctx, s.options(logger, env.Now)...)
	if err != nil {
		return err
	}
	out, err := book.Run(ctx, s.mode)
	if err != nil {
		return err
	}

	logger.Debug("done", "mode", s.mode, "elapsed", env.Now().Sub(start).Round(time.Millisecond))
	if s.level <= log.InfoLevel {
		if out != "" {
			fmt.Fprintln(env.Stdout, out)
		} else {
			fmt.Fprintln(env.Stdout, book.BuildDir())
		}
	}
	return nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, s *settings) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		name := config.DefaultName
		if s != nil && s.configName != "" {
			name = s.configName
		}
		return hints.ForConfigNotFound(config.SearchPaths(name))
	case errors.Is(err, md2epub.ErrConfig) && errors.Is(err, fs.ErrNotExist):
		dir := "."
		if s != nil {
			dir = s.sourceDir
		}
		return hints.ForMetadataNotFound(dir)
	case errors.Is(err, assets.ErrThemeNotFound):
		return hints.ForThemeNotFound(md2epub.ThemeNames())
	case errors.Is(err, md2epub.ErrPack):
		return hints.ForPackMissing()
	case errors.Is(err, md2epub.ErrIO) && errors.Is(err, fs.ErrPermission):
		return hints.ForOutputDirectory()
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
