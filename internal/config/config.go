// Package config loads the envoi.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/envoi-pdf/envoi"
	"github.com/envoi-pdf/envoi/internal/fileutil"
	"github.com/envoi-pdf/envoi/internal/hints"
	"github.com/envoi-pdf/envoi/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "envoi"

// Field length limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxNameLength   = 100  // Author
	MaxColorLength  = 20   // "#0a3678"
	MaxFileLength   = 255  // NAME_MAX
	MaxWorkers      = 64
	MaxLogoAspect   = 100.0
	defaultWorkers  = 0 // auto
	defaultAssetDir = "assets"
)

// Config holds all configuration for building invoices.
type Config struct {
	Dirs   DirsConfig   `yaml:"dirs"`
	Style  StyleConfig  `yaml:"style"`
	Assets AssetsConfig `yaml:"assets"`
	Build  BuildConfig  `yaml:"build"`
}

// DirsConfig locates invoice sources, payer files and generated PDFs.
// Relative paths are resolved against the config file's directory.
type DirsConfig struct {
	Sources string `yaml:"sources"`
	Payers  string `yaml:"payers"`
	Output  string `yaml:"output"`
}

// StyleConfig defines the document look.
type StyleConfig struct {
	Accent string `yaml:"accent"` // #rgb or #rrggbb
	Author string `yaml:"author"` // PDF author metadata
}

// AssetsConfig names the fonts and logo. An empty file name skips that asset.
type AssetsConfig struct {
	BasePath   string  `yaml:"basePath"`
	FontLight  string  `yaml:"fontLight"`
	FontMedium string  `yaml:"fontMedium"`
	FontBlack  string  `yaml:"fontBlack"`
	Logo       string  `yaml:"logo"`
	LogoAspect float64 `yaml:"logoAspect"` // width / height, 0 = default
}

// BuildConfig tunes the batch build.
type BuildConfig struct {
	Workers int `yaml:"workers"` // 0 = auto from GOMAXPROCS
}

// Files returns the asset file names for envoi.LoadAssets.
func (a AssetsConfig) Files() envoi.AssetFiles {
	return envoi.AssetFiles{
		Light:  a.FontLight,
		Medium: a.FontMedium,
		Black:  a.FontBlack,
		Logo:   a.Logo,
	}
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	paths := []struct{ name, value string }{
		{"dirs.sources", c.Dirs.Sources},
		{"dirs.payers", c.Dirs.Payers},
		{"dirs.output", c.Dirs.Output},
		{"assets.basePath", c.Assets.BasePath},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	files := []struct{ name, value string }{
		{"assets.fontLight", c.Assets.FontLight},
		{"assets.fontMedium", c.Assets.FontMedium},
		{"assets.fontBlack", c.Assets.FontBlack},
		{"assets.logo", c.Assets.Logo},
	}
	for _, f := range files {
		if err := validateFieldLength(f.name, f.value, MaxFileLength); err != nil {
			return err
		}
		if fileutil.IsFilePath(f.value) {
			return fmt.Errorf("%w: %s: %q must be a file name inside assets.basePath", ErrInvalidValue, f.name, f.value)
		}
	}

	if err := validateFieldLength("style.author", c.Style.Author, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("style.accent", c.Style.Accent, MaxColorLength); err != nil {
		return err
	}
	if c.Style.Accent != "" {
		if _, err := envoi.ParseColor(c.Style.Accent); err != nil {
			return fmt.Errorf("%w: style.accent: %v", ErrInvalidValue, err)
		}
	}

	if c.Assets.LogoAspect < 0 || c.Assets.LogoAspect > MaxLogoAspect {
		return fmt.Errorf("%w: assets.logoAspect: must be between 0 and %.0f, got %.3f", ErrInvalidValue, MaxLogoAspect, c.Assets.LogoAspect)
	}
	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the layout of a fresh project directory.
func DefaultConfig() *Config {
	files := envoi.DefaultAssetFiles()
	return &Config{
		Dirs: DirsConfig{
			Sources: "sources",
			Payers:  "payers",
			Output:  "output",
		},
		Style: StyleConfig{
			Accent: envoi.DefaultAccent.String(),
			Author: envoi.DefaultAuthor,
		},
		Assets: AssetsConfig{
			BasePath:   defaultAssetDir,
			FontLight:  files.Light,
			FontMedium: files.Medium,
			FontBlack:  files.Black,
			Logo:       files.Logo,
		},
		Build: BuildConfig{Workers: defaultWorkers},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file (or an empty file) keep their DefaultConfig
// values, and relative
// directories are resolved against the file's directory.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil && !errors.Is(err, yamlutil.ErrNilData) {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.ResolvePaths(filepath.Dir(configPath))
	return cfg, nil
}

// ResolvePaths makes relative directories absolute against base.
func (c *Config) ResolvePaths(base string) {
	for _, p := range []*string{&c.Dirs.Sources, &c.Dirs.Payers, &c.Dirs.Output, &c.Assets.BasePath} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/envoi/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "envoi", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound, strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}
