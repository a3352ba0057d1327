package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Notes:
// - Projects render with the real PDF backend and the core fonts: the test
//   config clears every asset name so no font or logo files are needed.

const testConfig = `dirs:
  sources: sources
  payers: payers
  output: output
style:
  accent: "#0a3678"
assets:
  fontLight: ""
  fontMedium: ""
  fontBlack: ""
  logo: ""
build:
  workers: 2
`

const testPayer = `header_address:
  - "**Envoi Consulting**"
  - 1 Main St
footer_address:
  - hello@example.com
bill_to_address:
  - ACME Corp
  - 2 Side St
days_due_in: 15
default_rate: 50
`

const testSource = `payer: acme
invoice_date: 2024-03-05
invoice_seq: 7
ledger:
  - date: 2024-03-01
    description: Consulting
    qty: 10
`

// testProject is a project directory with a config, one payer and one source.
type testProject struct {
	root   string
	config string
}

func newTestProject(t *testing.T) *testProject {
	t.Helper()
	p := &testProject{root: t.TempDir()}
	p.config = p.write(t, "envoi.yaml", testConfig)
	p.write(t, "payers/acme.yaml", testPayer)
	p.write(t, "sources/240305.yaml", testSource)
	return p
}

func (p *testProject) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(p.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

func (p *testProject) path(rel string) string {
	return filepath.Join(p.root, rel)
}

// backdate moves a file's mtime an hour into the past.
func (p *testProject) backdate(t *testing.T, rel string) {
	t.Helper()
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(p.path(rel), old, old); err != nil {
		t.Fatalf("failed to backdate %s: %v", rel, err)
	}
}

// assertPDF fails unless path holds a complete PDF.
func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("%s does not start with %%PDF-", path)
	}
	if !strings.Contains(string(data[max(0, len(data)-32):]), "%%EOF") {
		t.Errorf("%s is missing the %%%%EOF trailer", path)
	}
}

func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}
