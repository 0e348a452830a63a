package main

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// watchSource rebuilds whenever a file under sourceDir changes. Changes are
// debounced so an editor save that touches several files triggers one build.
// Writes to buildDir and to the output archive are ignored.
// It returns nil when ctx is done.
func watchSource(ctx context.Context, sourceDir, buildDir, output string, debounce time.Duration,
	logger *log.Logger, rebuild func(context.Context),
) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	dirs, err := watchDirs(sourceDir, buildDir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", sourceDir, err)
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}
	logger.Info("watching", "dir", sourceDir, "dirs", len(dirs))

	handle := func(ev fsnotify.Event) bool {
		if ignoreEvent(ev, buildDir, output) {
			return false
		}
		// fsnotify is not recursive: follow new directories.
		if ev.Has(fsnotify.Create) && fileutil.DirExists(ev.Name) {
			if err := w.Add(ev.Name); err != nil {
				logger.Warn("cannot watch directory", "dir", ev.Name, "err", err)
			}
		}
		logger.Debug("change", "path", ev.Name, "op", ev.Op.String())
		return true
	}
	watchLoop(ctx, w.Events, w.Errors, debounce, handle, func() { rebuild(ctx) }, logger)
	return nil
}

// watchLoop calls rebuild once per burst of accepted events, debounce after
// the last one. It returns when ctx is done or a channel closes.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error,
	debounce time.Duration, accept func(fsnotify.Event) bool, rebuild func(), logger *log.Logger,
) {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if accept(ev) {
				timer.Reset(debounce)
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Warn("watch error", "err", err)
		case <-timer.C:
			rebuild()
		}
	}
}

// watchDirs lists sourceDir and its subdirectories, skipping hidden ones and
// the build directory.
func watchDirs(sourceDir, buildDir string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(sourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != sourceDir && (fileutil.IsHidden(d.Name()) || within(p, buildDir)) {
			return filepath.SkipDir
		}
		dirs = append(dirs, p)
		return nil
	})
	return dirs, err
}

// ignoreEvent filters events that must not trigger a build: attribute-only
// changes, dotfiles, editor backups and anything the build itself writes.
// The archive is packed through a dotfile in its directory, so only its
// final path needs a check here.
func ignoreEvent(ev fsnotify.Event, buildDir, output string) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(ev.Name)
	if fileutil.IsHidden(base) || strings.HasSuffix(base, "~") {
		return true
	}
	return within(ev.Name, buildDir) || samePath(ev.Name, output)
}

// samePath reports whether a and b name the same location.
func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// within reports whether p is dir or inside it.
func within(p, dir string) bool {
	if dir == "" {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
