package md2epub

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2epub/internal/assets"
)

// Error kinds. Every error returned by Load, Build and Pack wraps exactly one
// of them together with the underlying cause, so both can be tested with
// errors.Is.
var (
	// ErrConfig: the book description is missing, unparsable or invalid.
	ErrConfig = errors.New("configuration error")

	// ErrContent: a chapter source cannot be read or rendered.
	ErrContent = errors.New("content error")

	// ErrStyle: a stylesheet is missing or cannot be compiled.
	ErrStyle = errors.New("style error")

	// ErrTemplate: a template is missing, malformed, or references an
	// undefined value.
	ErrTemplate = errors.New("template error")

	// ErrPack: a build artifact is missing at pack time.
	ErrPack = errors.New("pack error")

	// ErrIO: a read, write or copy failed.
	ErrIO = errors.New("I/O error")

	// ErrState: a stage was called out of order.
	ErrState = errors.New("invalid pipeline state")
)

// ErrAssetNotFound is returned by theme loaders for assets they do not have.
// Custom ThemeLoader implementations should wrap it so stylesheet lookup can
// fall back from style.less to style.css.
var ErrAssetNotFound = assets.ErrTemplateNotFound

// wrap attaches an error kind and the offending path to a cause.
func wrap(kind error, path string, cause error) error {
	return fmt.Errorf("%w: %s: %w", kind, path, cause)
}
