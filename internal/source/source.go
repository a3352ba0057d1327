// Package source resolves invoice source files into envoi records.
//
// A source file names a payer; the payer file supplies shared values such as
// addresses and payment terms, and the source overrides any of them.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/envoi-pdf/envoi"
	"github.com/envoi-pdf/envoi/internal/dateutil"
	"github.com/envoi-pdf/envoi/internal/fileutil"
	"github.com/envoi-pdf/envoi/internal/hints"
	"github.com/envoi-pdf/envoi/internal/yamlutil"
)

// Sentinel errors for source resolution.
var (
	ErrNoPayer       = errors.New("source does not name a payer")
	ErrPayerHasPayer = errors.New("payer file must not name a payer")
	ErrPayerNotFound = errors.New("payer file not found")
	ErrInvalidSource = errors.New("invalid invoice source")
)

// payerExt is the extension of payer files.
const payerExt = ".yaml"

// paidTag marks the output name of paid invoices.
const paidTag = ".paid"

// Source is one resolved invoice.
type Source struct {
	Path      string
	Payer     string
	PayerPath string
	Output    string
	Record    *envoi.Record
}

// Stale reports whether the output is missing or older than the source or
// the payer file.
func (s *Source) Stale() (bool, error) {
	return fileutil.IsStale(s.Output, s.Path, s.PayerPath)
}

// Resolver turns source files into records.
type Resolver struct {
	PayersDir string
	OutputDir string
}

// Resolve reads the source at path and its payer file, merges them and
// builds the record. Source values replace payer values key by key.
func (r Resolver) Resolve(path string) (*Source, error) {
	var src fields
	if err := yamlutil.ReadFileStrict(path, &src); err != nil {
		return nil, readError(path, err)
	}
	if src.Payer == nil || strings.TrimSpace(*src.Payer) == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoPayer, path)
	}
	payer := *src.Payer
	if fileutil.IsFilePath(payer) || strings.HasPrefix(payer, ".") {
		return nil, fmt.Errorf("%w: %s: payer %q must be a plain name", ErrInvalidSource, path, payer)
	}

	payerPath := filepath.Join(r.PayersDir, payer+payerExt)
	var base fields
	if err := yamlutil.ReadFileStrict(payerPath, &base); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (named by %s)%s", ErrPayerNotFound, payerPath, path, hints.ForPayerNotFound(payerPath))
		}
		return nil, readError(payerPath, err)
	}
	if base.Payer != nil {
		return nil, fmt.Errorf("%w: %s", ErrPayerHasPayer, payerPath)
	}

	rec, err := base.overlay(src).record()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Source{
		Path:      path,
		Payer:     payer,
		PayerPath: payerPath,
		Output:    r.outputPath(path, rec.Paid),
		Record:    rec,
	}, nil
}

// outputPath returns <output>/<stem>[.paid].pdf.
func (r Resolver) outputPath(path string, paid bool) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if paid {
		stem += paidTag
	}
	return filepath.Join(r.OutputDir, stem+".pdf")
}

func readError(path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidSource, err)
}

// fields is the union of source and payer keys. Pointers distinguish an
// absent key from a zero value so the overlay can tell them apart.
type fields struct {
	Payer         *string      `yaml:"payer"`
	DefaultRate   *amount      `yaml:"default_rate"`
	HeaderAddress *[]string    `yaml:"header_address"`
	FooterAddress *[]string    `yaml:"footer_address"`
	BillToAddress *[]string    `yaml:"bill_to_address"`
	InvoiceDate   *date        `yaml:"invoice_date"`
	InvoiceSeq    *int         `yaml:"invoice_seq"`
	DaysDueIn     *int         `yaml:"days_due_in"`
	Ledger        *[]ledgerRow `yaml:"ledger"`
	Adjustments   *amount      `yaml:"adjustments"`
	Notes         *string      `yaml:"notes"`
	Paid          *bool        `yaml:"paid"`
}

type ledgerRow struct {
	Date        date    `yaml:"date"`
	Description string  `yaml:"description"`
	Qty         amount  `yaml:"qty"`
	Rate        *amount `yaml:"rate"`
}

// overlay returns f with every key set in top replaced.
func (f fields) overlay(top fields) fields {
	return fields{
		Payer:         pick(top.Payer, f.Payer),
		DefaultRate:   pick(top.DefaultRate, f.DefaultRate),
		HeaderAddress: pick(top.HeaderAddress, f.HeaderAddress),
		FooterAddress: pick(top.FooterAddress, f.FooterAddress),
		BillToAddress: pick(top.BillToAddress, f.BillToAddress),
		InvoiceDate:   pick(top.InvoiceDate, f.InvoiceDate),
		InvoiceSeq:    pick(top.InvoiceSeq, f.InvoiceSeq),
		DaysDueIn:     pick(top.DaysDueIn, f.DaysDueIn),
		Ledger:        pick(top.Ledger, f.Ledger),
		Adjustments:   pick(top.Adjustments, f.Adjustments),
		Notes:         pick(top.Notes, f.Notes),
		Paid:          pick(top.Paid, f.Paid),
	}
}

func pick[T any](top, base *T) *T {
	if top != nil {
		return top
	}
	return base
}

// record checks required keys, applies default_rate and builds the record.
func (f fields) record() (*envoi.Record, error) {
	required := []struct {
		key string
		set bool
	}{
		{"header_address", f.HeaderAddress != nil},
		{"footer_address", f.FooterAddress != nil},
		{"bill_to_address", f.BillToAddress != nil},
		{"invoice_date", f.InvoiceDate != nil},
		{"invoice_seq", f.InvoiceSeq != nil},
		{"days_due_in", f.DaysDueIn != nil},
		{"ledger", f.Ledger != nil},
	}
	for _, r := range required {
		if !r.set {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidSource, r.key)
		}
	}

	rec := &envoi.Record{
		HeaderAddress: *f.HeaderAddress,
		FooterAddress: *f.FooterAddress,
		BillToAddress: *f.BillToAddress,
		InvoiceDate:   time.Time(*f.InvoiceDate),
		InvoiceSeq:    *f.InvoiceSeq,
		DaysDueIn:     *f.DaysDueIn,
		Adjustments:   decimal.Zero,
	}
	if f.Adjustments != nil {
		rec.Adjustments = decimal.Decimal(*f.Adjustments)
	}
	if f.Notes != nil {
		rec.Notes = *f.Notes
	}
	if f.Paid != nil {
		rec.Paid = *f.Paid
	}

	for i, row := range *f.Ledger {
		rate := row.Rate
		if rate == nil {
			rate = f.DefaultRate
		}
		if rate == nil {
			return nil, fmt.Errorf("%w: ledger[%d] has no rate and no default_rate is set", ErrInvalidSource, i)
		}
		rec.Ledger = append(rec.Ledger, envoi.LedgerEntry{
			Date:        time.Time(row.Date),
			Description: row.Description,
			Quantity:    decimal.Decimal(row.Qty),
			Rate:        decimal.Decimal(*rate),
		})
	}
	return rec, nil
}

// date is a calendar date read from YAML.
type date time.Time

// UnmarshalYAML reads a bare or quoted YYYY-MM-DD scalar.
func (d *date) UnmarshalYAML(b []byte) error {
	t, err := dateutil.ParseDate(unquote(b))
	if err != nil {
		return err
	}
	*d = date(t)
	return nil
}

// amount is an exact decimal read from YAML.
type amount decimal.Decimal

// UnmarshalYAML reads an integer, a decimal or a quoted decimal scalar.
func (a *amount) UnmarshalYAML(b []byte) error {
	s := unquote(b)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*a = amount(d)
	return nil
}

func unquote(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return s
}
