package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrStylesheetNotFound indicates a theme ships neither style.less nor style.css.
	ErrStylesheetNotFound = errors.New("theme stylesheet not found")

	// ErrThemeNotFound indicates the theme reference matches no built-in
	// theme and no readable directory.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidAssetName indicates the asset name is empty, absolute, or
	// contains traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
