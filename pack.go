package md2epub

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2epub/internal/assets"
	"github.com/alnah/go-md2epub/internal/epub"
	"github.com/alnah/go-md2epub/internal/fileutil"
)

var (
	errMissingArtifact = errors.New("build artifact missing, run a build first")
	errArtifactIsDir   = errors.New("build artifact is a directory")
)

// archiveEntry is one file to pack: its archive path and where it was built.
type archiveEntry struct {
	name string
	src  string
}

// Pack writes the EPUB archive from the build directory and returns its path.
// The book must be in StateLoaded (packing an earlier build) or StateBuilt;
// on success it moves to StatePacked.
//
// Every artifact is checked before the archive is created. The archive is
// written to a temporary file next to the destination and renamed into place,
// so a failed Pack leaves no archive behind.
func (b *Book) Pack(ctx context.Context) (string, error) {
	if err := b.checkState(StatePacked, StateLoaded, StateBuilt); err != nil {
		return "", err
	}
	out, err := b.pack(ctx)
	return out, b.finish(StatePacked, err)
}

// archiveEntries lists the build artifacts in archive order. The mimetype
// entry and META-INF/container.xml are not files of the build directory.
func (b *Book) archiveEntries() []archiveEntry {
	var names []string
	names = append(names, assets.PackageTemplate, assets.NCXTemplate)
	names = append(names, frontMatter...)
	if b.Metadata.Cover != "" {
		names = append(names, b.Metadata.Cover)
	}
	names = append(names, fileutil.ChangeExt(b.Metadata.Stylesheet, "css"))
	names = append(names, b.ResourceFiles...)
	for _, c := range b.Catalog {
		names = append(names, fileutil.ChangeExt(c, "xhtml"))
	}

	entries := make([]archiveEntry, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		entries = append(entries, archiveEntry{name: n, src: b.buildPath(n)})
	}
	return entries
}

func (b *Book) pack(ctx context.Context) (string, error) {
	log := b.cfg.logger
	entries := b.archiveEntries()

	for _, e := range entries {
		info, err := os.Stat(e.src)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", wrap(ErrPack, e.src, errMissingArtifact)
			}
			return "", wrap(ErrIO, e.src, err)
		}
		if info.IsDir() {
			return "", wrap(ErrPack, e.src, errArtifactIsDir)
		}
	}

	container, err := assets.NewBundleLoader().Load(assets.ContainerDocument)
	if err != nil {
		return "", wrap(ErrTemplate, assets.ContainerDocument, err)
	}

	dest := b.cfg.outputPath
	log.Info("packing", "entries", len(entries)+2, "output", dest)
	if err := os.MkdirAll(filepath.Dir(dest), fileutil.DirPermissions); err != nil {
		return "", wrap(ErrIO, filepath.Dir(dest), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".md2epub-*.tmp")
	if err != nil {
		return "", wrap(ErrIO, dest, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := b.writeArchive(ctx, tmp, container, entries); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", wrap(ErrIO, tmpName, err)
	}
	if err := os.Chmod(tmpName, fileutil.FilePermissions); err != nil {
		return "", wrap(ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return "", wrap(ErrIO, dest, err)
	}
	committed = true

	log.Info("packed", "output", dest)
	return dest, nil
}

func (b *Book) writeArchive(ctx context.Context, f *os.File, container string, entries []archiveEntry) error {
	w, err := epub.NewWriter(f)
	if err != nil {
		return wrap(ErrIO, f.Name(), err)
	}
	if err := w.Add(assets.ContainerDocument, []byte(container)); err != nil {
		return wrap(ErrIO, assets.ContainerDocument, err)
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.AddFile(e.name, e.src); err != nil {
			return wrap(ErrIO, e.name, err)
		}
		b.cfg.logger.Debug("pack", "path", e.name)
	}
	if err := w.Close(); err != nil {
		return wrap(ErrIO, f.Name(), err)
	}
	return nil
}
