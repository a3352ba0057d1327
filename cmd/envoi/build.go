package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/envoi-pdf/envoi"
	"github.com/envoi-pdf/envoi/internal/config"
	"github.com/envoi-pdf/envoi/internal/source"
)

// ErrNoSources indicates the sources directory holds no invoice files.
var ErrNoSources = errors.New("no invoice sources found")

// buildResult is the outcome of one source in a batch.
type buildResult struct {
	src     *source.Source
	skipped bool
	err     error
}

// runBuild renders every stale source in the configured sources directory.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseBuildFlags(args)
	if err != nil {
		if errors.Is(err, errHelpShown) {
			printBuildUsage(env.Stdout)
		}
		return err
	}

	log := newLogger(flags.common.verbose, env.Stderr)
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig(flags.common.config, log)
	if err != nil {
		return err
	}

	sources, err := resolveSources(cfg)
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg, env, log)
	if err != nil {
		return err
	}

	workers := cfg.Build.Workers
	if flags.workersSet {
		workers = flags.workers
	}
	workers = envoi.ResolveWorkers(workers)
	log.Debug("building", zap.Int("sources", len(sources)), zap.Int("workers", workers), zap.Bool("force", flags.force))

	start := time.Now()
	b := &builder{r: r, log: log, out: env.Stdout, force: flags.force, quiet: flags.common.quiet}
	results := b.buildAll(ctx, sources, workers)

	var built, upToDate int
	var errs []error
	for _, res := range results {
		switch {
		case res.err != nil:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", res.src.Path, res.err)
			errs = append(errs, fmt.Errorf("%s: %w", res.src.Path, res.err))
		case res.skipped:
			upToDate++
		default:
			built++
		}
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%d built, %d up to date, %d failed\n", built, upToDate, len(errs))
	}
	log.Debug("build finished", zap.Duration("elapsed", time.Since(start)))
	return errors.Join(errs...)
}

// resolveSources discovers and resolves every source. A single bad source
// aborts the build before anything is rendered.
func resolveSources(cfg *config.Config) ([]*source.Source, error) {
	paths, err := source.Discover(cfg.Dirs.Sources)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, cfg.Dirs.Sources)
	}

	resolver := source.Resolver{PayersDir: cfg.Dirs.Payers, OutputDir: cfg.Dirs.Output}
	sources := make([]*source.Source, 0, len(paths))
	for _, p := range paths {
		src, err := resolver.Resolve(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if err := source.CheckOutputs(sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// builder renders one batch. Progress lines are serialized on out.
type builder struct {
	r     *envoi.Renderer
	log   *zap.Logger
	out   io.Writer
	force bool
	quiet bool

	mu sync.Mutex
}

// buildAll renders sources concurrently. A failed source does not stop the
// others; cancellation stops sources that have not started yet.
func (b *builder) buildAll(ctx context.Context, sources []*source.Source, workers int) []buildResult {
	results := make([]buildResult, len(sources))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = b.buildOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (b *builder) buildOne(ctx context.Context, src *source.Source) buildResult {
	res := buildResult{src: src}
	if err := ctx.Err(); err != nil {
		res.err = err
		return res
	}
	if !b.force {
		stale, err := src.Stale()
		if err != nil {
			res.err = err
			return res
		}
		if !stale {
			b.log.Debug("up to date", zap.String("output", src.Output))
			res.skipped = true
			return res
		}
	}

	start := time.Now()
	if res.err = renderTo(ctx, b.r, src.Record, src.Output, nil); res.err != nil {
		return res
	}
	b.log.Debug("built", zap.String("output", src.Output), zap.Duration("elapsed", time.Since(start)))
	if !b.quiet {
		b.mu.Lock()
		fmt.Fprintf(b.out, "Building %s... done.\n", src.Output)
		b.mu.Unlock()
	}
	return res
}
