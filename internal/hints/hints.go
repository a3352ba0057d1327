// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/envoi.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/envoi/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForPayerNotFound returns hints for a source naming a missing payer file.
func ForPayerNotFound(payerPath string) string {
	return format("create " + payerPath + " or fix the payer key")
}

// ForAssets returns hints for missing or unreadable fonts and logo.
func ForAssets(basePath string) string {
	return formatHints([]string{
		"check assets.basePath (" + basePath + ")",
		"set an asset name to \"\" to use core fonts or skip the logo",
	})
}

// ForLayoutOverflow returns hints for blocks too tall for a page.
func ForLayoutOverflow() string {
	return format("an address box or the notes must fit on a single page")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
