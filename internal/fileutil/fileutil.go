// Package fileutil provides file and path utility functions shared by the
// build and pack stages.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for file utility operations.
var (
	ErrUnsafePath = errors.New("path is absolute or escapes its root")
)

// ChangeExt replaces the extension of a slash-separated path.
// The extension may be given with or without its leading dot.
//
// Examples:
//   - ChangeExt("ch1.md", "xhtml") -> "ch1.xhtml"
//   - ChangeExt("text/ch1.markdown", ".xhtml") -> "text/ch1.xhtml"
//   - ChangeExt("README", "txt") -> "README.txt"
func ChangeExt(p, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(p, path.Ext(p)) + ext
}

// CleanRelative normalizes a source-relative path to slash form and rejects
// absolute paths and paths that climb out of their root.
func CleanRelative(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsafePath)
	}
	slashed := filepath.ToSlash(p)
	if path.IsAbs(slashed) || filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, p)
	}
	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, p)
	}
	return cleaned, nil
}

// RelHref returns the href that reaches target from the document at from.
// Both are slash-separated paths relative to the same root.
//
// Examples:
//   - RelHref("ch1.xhtml", "style.css") -> "style.css"
//   - RelHref("text/ch1.xhtml", "css/style.css") -> "../css/style.css"
func RelHref(from, target string) string {
	fromDir := path.Dir(from)
	if fromDir == "." {
		return target
	}
	depth := strings.Count(fromDir, "/") + 1
	// Strip the shared prefix so sibling files do not bounce through "..".
	prefix := fromDir + "/"
	if strings.HasPrefix(target, prefix) {
		return strings.TrimPrefix(target, prefix)
	}
	return strings.Repeat("../", depth) + target
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsHidden reports whether a file name is a dotfile.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) or starting with a dot is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./mytheme" -> true (relative path)
//   - "/abs/theme" -> true (absolute)
//   - "themes/dark" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasPrefix(s, ".")
}

// WriteFile writes data to p, creating parent directories as needed.
func WriteFile(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), DirPermissions); err != nil {
		return fmt.Errorf("creating directory for %s: %w", p, err)
	}
	if err := os.WriteFile(p, data, FilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	return nil
}

// CopyFile copies src to dst, creating parent directories of dst as needed.
func CopyFile(dst, src string) (err error) {
	in, err := os.Open(src) // #nosec G304 -- path comes from the book description
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), DirPermissions); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FilePermissions) // #nosec G304 -- build path
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dst, closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// ListFiles returns the names of the regular, non-hidden files directly inside
// dir, in lexical order. Subdirectories are not descended into.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || IsHidden(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
