package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/envoi-pdf/envoi/internal/source"
)

// runRender renders a single source regardless of staleness.
// The output defaults to the path build would use; "-" writes to stdout.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, path, err := parseRenderFlags(args)
	if err != nil {
		if errors.Is(err, errHelpShown) {
			printRenderUsage(env.Stdout)
		}
		return err
	}

	log := newLogger(flags.common.verbose, env.Stderr)
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig(flags.common.config, log)
	if err != nil {
		return err
	}

	resolver := source.Resolver{PayersDir: cfg.Dirs.Payers, OutputDir: cfg.Dirs.Output}
	src, err := resolver.Resolve(path)
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg, env, log)
	if err != nil {
		return err
	}

	out := src.Output
	if flags.output != "" {
		out = flags.output
	}
	log.Debug("rendering", zap.String("source", src.Path), zap.String("payer", src.Payer), zap.String("output", out))

	if err := renderTo(ctx, r, src.Record, out, env.Stdout); err != nil {
		return err
	}
	if out != "-" && !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Building %s... done.\n", out)
	}
	return nil
}
