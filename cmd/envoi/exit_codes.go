package main

import (
	"errors"
	"os"

	"github.com/envoi-pdf/envoi"
	"github.com/envoi-pdf/envoi/internal/config"
	"github.com/envoi-pdf/envoi/internal/source"
)

// Exit codes for the envoi CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All invoices built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or invoice source
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // Asset or layout errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// For joined errors the first matching class in the order below wins.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Asset and render errors (exit 4)
	if errors.Is(err, envoi.ErrAsset) ||
		errors.Is(err, envoi.ErrRender) ||
		errors.Is(err, envoi.ErrLayoutOverflow) ||
		errors.Is(err, envoi.ErrInvalidTable) ||
		errors.Is(err, envoi.ErrPageState) {
		return ExitRender
	}

	// Usage/config/source errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, source.ErrNoPayer) ||
		errors.Is(err, source.ErrPayerHasPayer) ||
		errors.Is(err, source.ErrPayerNotFound) ||
		errors.Is(err, source.ErrInvalidSource) ||
		errors.Is(err, source.ErrDuplicateOutput) ||
		errors.Is(err, envoi.ErrInvalidRecord) ||
		errors.Is(err, envoi.ErrInvalidColor) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrNoSources) {
		return ExitIO
	}

	return ExitGeneral
}
