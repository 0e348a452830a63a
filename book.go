package md2epub

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/alnah/go-md2epub/internal/epub"
)

// Book is the session state of one build: the description read at Load, plus
// the manifest and table of contents accumulated by Build.
//
// A Book is not safe for concurrent use. Stages must be called in order:
// Build after Load, Pack after Load or Build, each at most once.
type Book struct {
	Metadata      Metadata
	Resources     []string // declared resource directories, slash-relative
	ResourceFiles []string // files found in them, as dir/file
	Catalog       []string // chapter sources in spine order

	cfg           bookConfig
	styleDeclared bool
	manifest      *epub.Manifest
	toc           epub.Toc

	mu     sync.Mutex
	state  State
	failed bool
}

// Load reads the book description and returns a Book in StateLoaded.
// It is the only place session state is created.
func Load(ctx context.Context, opts ...Option) (*Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.buildDir == "" {
		cfg.buildDir = filepath.Join(cfg.sourceDir, BuildDirName)
	}
	if cfg.metadataPath == "" {
		cfg.metadataPath = filepath.Join(cfg.sourceDir, MetadataFile)
	}
	if cfg.outputPath == "" {
		cfg.outputPath = filepath.Join(cfg.buildDir, OutputName)
	}

	cfg.logger.Info("loading", "metadata", cfg.metadataPath)
	d, err := readDescription(cfg.metadataPath)
	if err != nil {
		return nil, err
	}

	meta := d.Metadata
	if meta == nil {
		meta = d.Info
	}
	if meta == nil {
		return nil, wrap(ErrConfig, cfg.metadataPath, errNoMetadata)
	}

	b := &Book{
		Metadata: *meta,
		cfg:      cfg,
		manifest: epub.NewManifest(),
	}
	if b.styleDeclared, err = b.Metadata.normalize(&b.cfg); err != nil {
		return nil, wrap(ErrConfig, cfg.metadataPath, err)
	}
	if b.Catalog, err = cleanCatalog(d.Catalog); err != nil {
		return nil, wrap(ErrConfig, cfg.metadataPath, err)
	}
	b.Resources, b.ResourceFiles, err = listResources(cfg.sourceDir, d.Resource, &b.cfg)
	if err != nil {
		if errors.Is(err, ErrIO) {
			return nil, err
		}
		return nil, wrap(ErrConfig, cfg.metadataPath, err)
	}

	if b.Metadata.Title == "" {
		cfg.logger.Warn("book has no title", "metadata", cfg.metadataPath)
	}
	cfg.logger.Info("loaded",
		"title", b.Metadata.Title,
		"chapters", len(b.Catalog),
		"resources", len(b.ResourceFiles))

	b.state = StateLoaded
	return b, nil
}

// State returns the current pipeline state.
func (b *Book) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Manifest returns the items recorded so far, in processing order.
func (b *Book) Manifest() []ManifestItem { return b.manifest.Items() }

// Toc returns one entry per built chapter, in catalog order.
func (b *Book) Toc() []TocEntry { return b.toc.Entries() }

// BuildDir returns the directory build artifacts are written to.
func (b *Book) BuildDir() string { return b.cfg.buildDir }

// SourceDir returns the directory chapters and resources are read from.
func (b *Book) SourceDir() string { return b.cfg.sourceDir }

// OutputPath returns where Pack writes the archive.
func (b *Book) OutputPath() string { return b.cfg.outputPath }

// Run executes the stages selected by mode and returns the archive path, or
// "" for ModeBuild.
func (b *Book) Run(ctx context.Context, mode Mode) (string, error) {
	switch mode {
	case ModeAll:
		if err := b.Build(ctx); err != nil {
			return "", err
		}
		return b.Pack(ctx)
	case ModeBuild:
		return "", b.Build(ctx)
	case ModePack:
		return b.Pack(ctx)
	default:
		return "", fmt.Errorf("%w: unknown mode %v", ErrState, mode)
	}
}

// checkState reports whether the book may enter next from its current state.
// A stage that failed leaves the book unusable.
func (b *Book) checkState(next State, from ...State) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failed {
		return fmt.Errorf("%w: a previous stage failed", ErrState)
	}
	for _, s := range from {
		if b.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot enter %s from %s", ErrState, next, b.state)
}

// finish records the outcome of a stage.
func (b *Book) finish(next State, err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failed = true
		return err
	}
	b.state = next
	return nil
}
