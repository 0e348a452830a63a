package md2epub

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2epub/internal/assets"
	"github.com/alnah/go-md2epub/internal/epub"
	"github.com/alnah/go-md2epub/internal/fileutil"
	"github.com/alnah/go-md2epub/internal/pipeline"
)

// Build renders every artifact of the book into the build directory and
// records them in the manifest and table of contents. The book must be in
// StateLoaded; on success it moves to StateBuilt.
//
// Resources and the cover are copied, the stylesheets merged, chapters
// rendered concurrently and recorded in catalog order, then content.opf,
// toc.ncx and the front matter pages are rendered.
func (b *Book) Build(ctx context.Context) error {
	if err := b.checkState(StateBuilt, StateLoaded); err != nil {
		return err
	}
	return b.finish(StateBuilt, b.build(ctx))
}

func (b *Book) build(ctx context.Context) error {
	log := b.cfg.logger
	theme, err := b.cfg.resolveThemeLoader()
	if err != nil {
		return err
	}
	log.Info("building", "theme", theme.Source(), "dir", b.cfg.buildDir)

	if err := os.MkdirAll(b.cfg.buildDir, fileutil.DirPermissions); err != nil {
		return wrap(ErrIO, b.cfg.buildDir, err)
	}

	if err := b.copyResources(ctx); err != nil {
		return err
	}
	if err := b.buildStylesheet(theme); err != nil {
		return err
	}

	themeEngine := pipeline.NewTemplateEngine(theme)
	if err := b.buildChapters(ctx, themeEngine); err != nil {
		return err
	}
	if err := b.buildControlDocuments(); err != nil {
		return err
	}
	if err := b.buildFrontMatter(themeEngine); err != nil {
		return err
	}

	log.Info("built", "items", b.manifest.Len(), "chapters", b.toc.Len())
	return nil
}

// sourcePath maps a slash-relative source path to the filesystem.
func (b *Book) sourcePath(rel string) string {
	return filepath.Join(b.cfg.sourceDir, filepath.FromSlash(rel))
}

// buildPath maps a slash-relative archive path into the build directory.
func (b *Book) buildPath(rel string) string {
	return filepath.Join(b.cfg.buildDir, filepath.FromSlash(rel))
}

// addItem records p in the manifest. It reports false when p was already there.
func (b *Book) addItem(p string) (bool, error) {
	if b.manifest.Contains(p) {
		return false, nil
	}
	if _, err := b.manifest.Add(p); err != nil {
		return false, wrap(ErrConfig, p, err)
	}
	return true, nil
}

// copyResources manifests resource files and the cover, then copies them.
// A path that is both a resource and the cover is handled once.
func (b *Book) copyResources(ctx context.Context) error {
	var copies []string
	for _, p := range b.ResourceFiles {
		added, err := b.addItem(p)
		if err != nil {
			return err
		}
		if added {
			copies = append(copies, p)
		}
	}
	if b.Metadata.Cover != "" {
		added, err := b.addItem(b.Metadata.Cover)
		if err != nil {
			return err
		}
		if added {
			copies = append(copies, b.Metadata.Cover)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ResolveWorkers(b.cfg.workers))
	for _, p := range copies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b.cfg.logger.Debug("copy", "path", p)
			if err := fileutil.CopyFile(b.buildPath(p), b.sourcePath(p)); err != nil {
				return wrap(ErrIO, p, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	b.cfg.logger.Info("resources", "count", len(copies))
	return nil
}

// buildStylesheet merges the theme stylesheet with the book's and writes the
// result next to where the book stylesheet would be, with a .css extension.
func (b *Book) buildStylesheet(theme assets.AssetLoader) error {
	name, content, err := assets.LoadStylesheet(theme)
	if err != nil {
		if errors.Is(err, assets.ErrStylesheetNotFound) {
			return wrap(ErrStyle, theme.Source(), err)
		}
		return wrap(ErrTemplate, theme.Source(), err)
	}
	themeStyle := pipeline.StyleSource{Name: name, Content: content}

	var bookStyle pipeline.StyleSource
	if b.styleDeclared {
		data, err := os.ReadFile(b.sourcePath(b.Metadata.Stylesheet)) // #nosec G304 -- declared in the description
		if err != nil {
			return wrap(ErrStyle, b.Metadata.Stylesheet, err)
		}
		bookStyle = pipeline.StyleSource{Name: b.Metadata.Stylesheet, Content: string(data)}
	}

	css, err := pipeline.MergeStyles(pipeline.LessCompiler{}, themeStyle, bookStyle)
	if err != nil {
		return wrap(ErrStyle, b.Metadata.Stylesheet, err)
	}

	out := fileutil.ChangeExt(b.Metadata.Stylesheet, "css")
	if _, err := b.addItem(out); err != nil {
		return err
	}
	if err := fileutil.WriteFile(b.buildPath(out), []byte(css)); err != nil {
		return wrap(ErrIO, out, err)
	}
	b.Metadata.Stylesheet = out
	b.cfg.logger.Info("stylesheet", "path", out)
	return nil
}

// chapterResult is what one concurrent chapter render hands back.
type chapterResult struct {
	file     string
	headings []epub.Heading
}

// buildChapters renders chapters concurrently. Manifest and table of contents
// are appended afterwards, in catalog order, whatever the completion order.
func (b *Book) buildChapters(ctx context.Context, engine *pipeline.TemplateEngine) error {
	renderer := pipeline.NewRenderer()
	meta := b.metadataContext()
	results := make([]chapterResult, len(b.Catalog))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ResolveWorkers(b.cfg.workers))
	for i, src := range b.Catalog {
		g.Go(func() error {
			ch, err := renderer.Render(gctx, b.sourcePath(src))
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				return wrap(ErrContent, src, err)
			}

			file := fileutil.ChangeExt(src, "xhtml")
			title := ch.Title()
			if title == "" {
				title = b.Metadata.Title
			}
			doc, err := engine.Render(assets.ChapterTemplate, map[string]any{
				"metadata":   meta,
				"content":    ch.Fragment,
				"title":      title,
				"file":       file,
				"stylesheet": fileutil.RelHref(file, b.Metadata.Stylesheet),
			})
			if err != nil {
				return wrap(ErrTemplate, file, err)
			}
			if err := fileutil.WriteFile(b.buildPath(file), []byte(doc)); err != nil {
				return wrap(ErrIO, file, err)
			}
			b.cfg.logger.Debug("chapter", "path", file, "headings", len(ch.Headings))
			results[i] = chapterResult{file: file, headings: ch.Headings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if _, err := b.addItem(r.file); err != nil {
			return err
		}
		b.toc.AddChapter(r.file, r.headings)
	}
	b.cfg.logger.Info("chapters", "count", len(results))
	return nil
}

// buildControlDocuments renders content.opf and toc.ncx from the built-in
// bundle and normalizes their whitespace.
func (b *Book) buildControlDocuments() error {
	engine := pipeline.NewTemplateEngine(assets.NewBundleLoader())
	data := b.bookContext()
	for _, name := range []string{assets.PackageTemplate, assets.NCXTemplate} {
		raw, err := engine.Render(name, data)
		if err != nil {
			return wrap(ErrTemplate, name, err)
		}
		doc, err := pipeline.FormatXML(raw)
		if err != nil {
			return wrap(ErrTemplate, name, err)
		}
		if err := fileutil.WriteFile(b.buildPath(name), []byte(doc)); err != nil {
			return wrap(ErrIO, name, err)
		}
		b.cfg.logger.Debug("control document", "path", name)
	}
	return nil
}

// frontMatter lists the theme pages written at the archive root.
var frontMatter = []string{assets.CoverTemplate, assets.PrefaceTemplate, assets.CopyrightTemplate}

func (b *Book) buildFrontMatter(engine *pipeline.TemplateEngine) error {
	data := b.bookContext()
	for _, name := range frontMatter {
		doc, err := engine.Render(name, data)
		if err != nil {
			return wrap(ErrTemplate, name, err)
		}
		if err := fileutil.WriteFile(b.buildPath(name), []byte(doc)); err != nil {
			return wrap(ErrIO, name, err)
		}
		b.cfg.logger.Debug("front matter", "path", name)
	}
	return nil
}
