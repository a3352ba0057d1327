package main

// Notes:
// - runBuild: we test the batch against real files. Staleness is driven by
//   backdating outputs with os.Chtimes rather than sleeping.
// - Render failures use an address too tall for any page, which the renderer
//   reports as a layout overflow.

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/envoi-pdf/envoi"
	"github.com/envoi-pdf/envoi/internal/config"
	"github.com/envoi-pdf/envoi/internal/source"
)

// ---------------------------------------------------------------------------
// TestRunBuild - Batch rendering
// ---------------------------------------------------------------------------

func TestRunBuild(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	env, stdout, stderr := testEnv()

	if err := runBuild(context.Background(), []string{"-c", p.config}, env); err != nil {
		t.Fatalf("runBuild() error = %v\nstderr: %s", err, stderr)
	}

	out := p.path("output/240305.pdf")
	assertPDF(t, out)
	if !strings.Contains(stdout.String(), "Building "+out+"... done.") {
		t.Errorf("stdout missing progress line:\n%s", stdout)
	}
	if !strings.Contains(stdout.String(), "1 built, 0 up to date, 0 failed") {
		t.Errorf("stdout missing summary:\n%s", stdout)
	}
}

func TestRunBuild_SkipsUpToDate(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	env, _, _ := testEnv()
	if err := runBuild(context.Background(), []string{"-c", p.config}, env); err != nil {
		t.Fatalf("first runBuild() error = %v", err)
	}
	p.backdate(t, "sources/240305.yaml")
	p.backdate(t, "payers/acme.yaml")

	env, stdout, _ := testEnv()
	if err := runBuild(context.Background(), []string{"-c", p.config}, env); err != nil {
		t.Fatalf("second runBuild() error = %v", err)
	}
	if strings.Contains(stdout.String(), "Building") {
		t.Errorf("up-to-date invoice was rebuilt:\n%s", stdout)
	}
	if !strings.Contains(stdout.String(), "0 built, 1 up to date, 0 failed") {
		t.Errorf("stdout missing summary:\n%s", stdout)
	}

	t.Run("force rebuilds", func(t *testing.T) {
		env, stdout, _ := testEnv()
		if err := runBuild(context.Background(), []string{"-c", p.config, "--force"}, env); err != nil {
			t.Fatalf("runBuild(--force) error = %v", err)
		}
		if !strings.Contains(stdout.String(), "1 built, 0 up to date") {
			t.Errorf("stdout:\n%s", stdout)
		}
	})
}

func TestRunBuild_PayerChangeRebuilds(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	p.backdate(t, "sources/240305.yaml")
	p.backdate(t, "payers/acme.yaml")
	env, _, _ := testEnv()
	if err := runBuild(context.Background(), []string{"-c", p.config}, env); err != nil {
		t.Fatalf("first runBuild() error = %v", err)
	}
	p.backdate(t, "output/240305.pdf")
	p.write(t, "payers/acme.yaml", testPayer+"notes: Net 15\n")

	env, stdout, _ := testEnv()
	if err := runBuild(context.Background(), []string{"-c", p.config}, env); err != nil {
		t.Fatalf("second runBuild() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "1 built, 0 up to date") {
		t.Errorf("payer change did not trigger a rebuild:\n%s", stdout)
	}
}

func TestRunBuild_PaidOutputName(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	p.write(t, "sources/240305.yaml", testSource+"paid: true\n")
	env, _, _ := testEnv()

	if err := runBuild(context.Background(), []string{"-c", p.config, "-q"}, env); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}
	assertPDF(t, p.path("output/240305.paid.pdf"))
	if _, err := os.Stat(p.path("output/240305.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unpaid output should not exist, stat error = %v", err)
	}
}

func TestRunBuild_Quiet(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	env, stdout, _ := testEnv()

	if err := runBuild(context.Background(), []string{"-c", p.config, "--quiet"}, env); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet build wrote to stdout:\n%s", stdout)
	}
}

func TestRunBuild_Verbose(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	env, _, stderr := testEnv()

	if err := runBuild(context.Background(), []string{"-c", p.config, "-v", "-w", "1"}, env); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}
	for _, want := range []string{"building", "workers", "built", "build finished"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("verbose log missing %q:\n%s", want, stderr)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunBuild_Failures - Error paths
// ---------------------------------------------------------------------------

func TestRunBuild_RenderFailureIsolated(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	tall := "payer: acme\ninvoice_date: 2024-03-06\ninvoice_seq: 1\nbill_to_address:\n" +
		strings.Repeat("  - line\n", 80) +
		"ledger:\n  - date: 2024-03-01\n    description: x\n    qty: 1\n"
	p.write(t, "sources/240306.yaml", tall)
	env, stdout, stderr := testEnv()

	err := runBuild(context.Background(), []string{"-c", p.config}, env)
	if !errors.Is(err, envoi.ErrLayoutOverflow) {
		t.Fatalf("runBuild() error = %v, want ErrLayoutOverflow", err)
	}
	if exitCodeFor(err) != ExitRender {
		t.Errorf("exitCodeFor() = %d, want %d", exitCodeFor(err), ExitRender)
	}

	assertPDF(t, p.path("output/240305.pdf"))
	if _, err := os.Stat(p.path("output/240306.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("failed invoice left an output, stat error = %v", err)
	}
	if !strings.Contains(stderr.String(), "FAILED "+p.path("sources/240306.yaml")) {
		t.Errorf("stderr missing failure line:\n%s", stderr)
	}
	if !strings.Contains(stdout.String(), "1 built, 0 up to date, 1 failed") {
		t.Errorf("stdout missing summary:\n%s", stdout)
	}
}

func TestRunBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T, p *testProject)
		wantErr error
	}{
		{
			name: "unknown payer aborts before rendering",
			setup: func(t *testing.T, p *testProject) {
				p.write(t, "sources/240306.yaml", strings.Replace(testSource, "acme", "globex", 1))
			},
			wantErr: source.ErrPayerNotFound,
		},
		{
			name: "duplicate outputs",
			setup: func(t *testing.T, p *testProject) {
				p.write(t, "sources/more/240305.yaml", testSource)
			},
			wantErr: source.ErrDuplicateOutput,
		},
		{
			name: "no sources",
			setup: func(t *testing.T, p *testProject) {
				if err := os.Remove(p.path("sources/240305.yaml")); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrNoSources,
		},
		{
			name: "invalid accent",
			setup: func(t *testing.T, p *testProject) {
				p.write(t, "envoi.yaml", strings.Replace(testConfig, "#0a3678", "navy", 1))
			},
			wantErr: config.ErrInvalidValue,
		},
		{
			name: "missing asset",
			setup: func(t *testing.T, p *testProject) {
				p.write(t, "envoi.yaml", strings.Replace(testConfig, `logo: ""`, "logo: Logo.png", 1))
			},
			wantErr: envoi.ErrAsset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestProject(t)
			tt.setup(t, p)
			env, _, _ := testEnv()

			err := runBuild(context.Background(), []string{"-c", p.config}, env)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runBuild() error = %v, want %v", err, tt.wantErr)
			}
			if _, statErr := os.Stat(p.path("output")); !errors.Is(statErr, os.ErrNotExist) {
				t.Errorf("output directory created on failure, stat error = %v", statErr)
			}
		})
	}
}

func TestRunBuild_CancelledContext(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	env, _, _ := testEnv()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runBuild(ctx, []string{"-c", p.config}, env)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("runBuild() error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(p.path("output/240305.pdf")); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("cancelled build wrote output, stat error = %v", statErr)
	}
}

func TestRunBuild_UsageErrors(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	err := runBuild(context.Background(), []string{"extra"}, env)
	if !errors.Is(err, ErrUsage) {
		t.Errorf("runBuild() error = %v, want ErrUsage", err)
	}
}

func TestRunBuild_HelpFlag(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	err := runBuild(context.Background(), []string{"-h"}, env)
	if !errors.Is(err, errHelpShown) {
		t.Fatalf("runBuild(-h) error = %v, want errHelpShown", err)
	}
	if !strings.Contains(stdout.String(), "Usage: envoi build") {
		t.Errorf("stdout:\n%s", stdout)
	}
}
