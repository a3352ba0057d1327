package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for flag handling.
var (
	ErrUsage = errors.New("invalid usage")

	// errHelpShown reports that -h printed command help.
	errHelpShown = errors.New("help shown")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	workers int
	force   bool

	// workersSet records an explicit --workers, which beats the config file.
	workersSet bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	output string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timings and debug logs")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseBuildFlags parses build arguments. build takes no positional arguments.
func parseBuildFlags(args []string) (*buildFlags, error) {
	f := &buildFlags{}
	fs := newFlagSet("build")
	addCommonFlags(fs, &f.common)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = auto)")
	fs.BoolVarP(&f.force, "force", "f", false, "rebuild up-to-date invoices")

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: build takes no arguments, got %q", ErrUsage, fs.Args())
	}
	if f.workers < 0 {
		return nil, fmt.Errorf("%w: --workers must be >= 0, got %d", ErrUsage, f.workers)
	}
	if f.common.quiet && f.common.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	f.workersSet = fs.Changed("workers")
	return f, nil
}

// parseRenderFlags parses render arguments and returns the source path.
func parseRenderFlags(args []string) (*renderFlags, string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render")
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file (- for stdout)")

	if err := parse(fs, args); err != nil {
		return nil, "", err
	}
	if fs.NArg() != 1 {
		return nil, "", fmt.Errorf("%w: render takes exactly one source file", ErrUsage)
	}
	if f.common.quiet && f.common.verbose {
		return nil, "", fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, fs.Arg(0), nil
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelpShown
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// hasVerboseFlag reports whether args ask for verbose output, before any
// command-specific parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" || a == "--verbose=true" {
			return true
		}
	}
	return false
}
