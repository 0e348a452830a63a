package main

import (
	"errors"
	"os"

	md2epub "github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/config"
)

// Exit codes for md2epub CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Book built and/or packed
	ExitGeneral = 1 // General/unexpected error, interrupted run
	ExitUsage   = 2 // Invalid flags, config, description, theme or stylesheet
	ExitIO      = 3 // Unreadable chapter, failed write, missing build artifact
)

// exitCodeFor returns the appropriate exit code for an error.
// The usage group is checked first: a missing metadata.yaml is a description
// problem even though it also wraps os.ErrNotExist.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, md2epub.ErrConfig) ||
		errors.Is(err, md2epub.ErrTemplate) ||
		errors.Is(err, md2epub.ErrStyle) {
		return ExitUsage
	}

	if errors.Is(err, md2epub.ErrIO) ||
		errors.Is(err, md2epub.ErrContent) ||
		errors.Is(err, md2epub.ErrPack) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
