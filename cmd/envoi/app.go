package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/envoi-pdf/envoi"
)

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "envoi %s (go-pdf/fpdf %s)\n", envoi.ToolVersion(), envoi.BackendVersion())
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		if errors.Is(err, errHelpShown) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "envoi %s: %v\n", cmd, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
