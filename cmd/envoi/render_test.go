package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/envoi-pdf/envoi/internal/source"
)

// ---------------------------------------------------------------------------
// TestRunRender - Single invoice rendering
// ---------------------------------------------------------------------------

func TestRunRender(t *testing.T) {
	t.Parallel()

	t.Run("default output path", func(t *testing.T) {
		t.Parallel()

		p := newTestProject(t)
		env, stdout, _ := testEnv()

		err := runRender(context.Background(), []string{"-c", p.config, p.path("sources/240305.yaml")}, env)
		if err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		out := p.path("output/240305.pdf")
		assertPDF(t, out)
		if !strings.Contains(stdout.String(), "Building "+out+"... done.") {
			t.Errorf("stdout:\n%s", stdout)
		}
	})

	t.Run("explicit output path", func(t *testing.T) {
		t.Parallel()

		p := newTestProject(t)
		env, _, _ := testEnv()
		out := p.path("elsewhere/march.pdf")

		err := runRender(context.Background(), []string{p.path("sources/240305.yaml"), "-c", p.config, "-o", out}, env)
		if err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		assertPDF(t, out)
	})

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()

		p := newTestProject(t)
		env, stdout, _ := testEnv()

		err := runRender(context.Background(), []string{"-c", p.config, "-o", "-", p.path("sources/240305.yaml")}, env)
		if err != nil {
			t.Fatalf("runRender() error = %v", err)
		}
		if !bytes.HasPrefix(stdout.Bytes(), []byte("%PDF-")) {
			t.Errorf("stdout does not hold a PDF: %.20q", stdout.String())
		}
		if strings.Contains(stdout.String(), "Building") {
			t.Error("progress line mixed into PDF output")
		}
	})

	t.Run("ignores staleness", func(t *testing.T) {
		t.Parallel()

		p := newTestProject(t)
		env, _, _ := testEnv()
		args := []string{"-c", p.config, "-q", p.path("sources/240305.yaml")}
		if err := runRender(context.Background(), args, env); err != nil {
			t.Fatalf("first runRender() error = %v", err)
		}
		p.backdate(t, "sources/240305.yaml")
		p.backdate(t, "payers/acme.yaml")

		env, stdout, _ := testEnv()
		args[2] = "-v"
		if err := runRender(context.Background(), args, env); err != nil {
			t.Fatalf("second runRender() error = %v", err)
		}
		if !strings.Contains(stdout.String(), "Building") {
			t.Errorf("up-to-date invoice was not re-rendered:\n%s", stdout)
		}
	})
}

func TestRunRender_Errors(t *testing.T) {
	t.Parallel()

	p := newTestProject(t)
	noPayer := p.write(t, "loose/nopayer.yaml", "invoice_date: 2024-03-05\n")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no source", []string{"-c", p.config}, ErrUsage},
		{"two sources", []string{"-c", p.config, "a.yaml", "b.yaml"}, ErrUsage},
		{"quiet and verbose", []string{"-q", "-v", "a.yaml"}, ErrUsage},
		{"missing payer key", []string{"-c", p.config, noPayer}, source.ErrNoPayer},
		{"output under a file", []string{"-c", p.config, "-o", filepath.Join(p.config, "x.pdf"), p.path("sources/240305.yaml")}, ErrWritePDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv()
			err := runRender(context.Background(), tt.args, env)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("runRender() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
