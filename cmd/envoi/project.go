package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/envoi-pdf/envoi"
	"github.com/envoi-pdf/envoi/internal/config"
	"github.com/envoi-pdf/envoi/internal/fileutil"
	"github.com/envoi-pdf/envoi/internal/hints"
)

// filePermissions is rw-r--r--: invoices are meant to be shared.
const filePermissions = 0o644

// ErrWritePDF indicates the rendered invoice could not be saved.
var ErrWritePDF = errors.New("failed to write PDF file")

// loadConfig loads the named config. Without a name, envoi.yaml is used
// when present and the default layout relative to the working directory
// otherwise.
func loadConfig(nameOrPath string, log *zap.Logger) (*config.Config, error) {
	if nameOrPath != "" {
		return config.LoadConfig(nameOrPath)
	}
	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		log.Debug("no config file, using defaults", zap.Error(err))
		cfg = config.DefaultConfig()
		cfg.ResolvePaths(".")
		return cfg, nil
	}
	return cfg, err
}

// newRenderer builds a renderer from the config's style and assets.
func newRenderer(cfg *config.Config, env *Environment, log *zap.Logger) (*envoi.Renderer, error) {
	opts := []envoi.Option{
		envoi.WithClock(env.Now),
		envoi.WithLogger(log),
	}
	if cfg.Style.Accent != "" {
		accent, err := envoi.ParseColor(cfg.Style.Accent)
		if err != nil {
			return nil, err
		}
		opts = append(opts, envoi.WithAccentColor(accent))
	}
	if cfg.Style.Author != "" {
		opts = append(opts, envoi.WithAuthor(cfg.Style.Author))
	}
	if cfg.Assets.LogoAspect > 0 {
		opts = append(opts, envoi.WithLogoAspect(cfg.Assets.LogoAspect))
	}

	if files := cfg.Assets.Files(); files != (envoi.AssetFiles{}) {
		a, err := envoi.LoadAssets(cfg.Assets.BasePath, files)
		if err != nil {
			return nil, fmt.Errorf("%w%s", err, hints.ForAssets(cfg.Assets.BasePath))
		}
		opts = append(opts, envoi.WithAssets(a))
		log.Debug("assets loaded", zap.String("dir", cfg.Assets.BasePath), zap.Int("fonts", len(a.Fonts)), zap.Bool("logo", a.Logo != nil))
	}
	return envoi.NewRenderer(opts...), nil
}

// renderTo renders rec and writes it to path atomically, or to w when path
// is "-". No file is touched when rendering fails.
func renderTo(ctx context.Context, r *envoi.Renderer, rec *envoi.Record, path string, w io.Writer) error {
	var buf bytes.Buffer
	if err := r.Render(ctx, rec, &buf); err != nil {
		if errors.Is(err, envoi.ErrLayoutOverflow) {
			return fmt.Errorf("%w%s", err, hints.ForLayoutOverflow())
		}
		return err
	}
	if path == "-" {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("%w: %v", ErrWritePDF, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), filePermissions); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w: %w%s", ErrWritePDF, err, hints.ForOutputDirectory())
		}
		return fmt.Errorf("%w: %v%s", ErrWritePDF, err, hints.ForOutputDirectory())
	}
	return nil
}
