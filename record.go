package envoi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/envoi-pdf/envoi/internal/dateutil"
)

// Invoice sequence bounds. The sequence is printed as two digits.
const (
	MinInvoiceSeq = 1
	MaxInvoiceSeq = 99
)

// Record is the resolved data for one invoice.
// The renderer only reads it; derived values are computed on demand.
type Record struct {
	HeaderAddress []string
	FooterAddress []string
	BillToAddress []string
	InvoiceDate   time.Time
	InvoiceSeq    int
	DaysDueIn     int
	Ledger        []LedgerEntry
	Adjustments   decimal.Decimal
	Notes         string
	Paid          bool
}

// LedgerEntry is one billable line item.
type LedgerEntry struct {
	Date        time.Time
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
}

// Amount returns quantity times rate.
func (e LedgerEntry) Amount() decimal.Decimal {
	return e.Quantity.Mul(e.Rate)
}

// InvoiceNumber returns the stable identifier YYMMDD-NN.
func (r *Record) InvoiceNumber() string {
	return fmt.Sprintf("%s-%02d", r.InvoiceDate.Format("060102"), r.InvoiceSeq)
}

// DueDate returns the invoice date plus DaysDueIn, moved to the following
// Monday when it lands on a weekend.
func (r *Record) DueDate() time.Time {
	return dateutil.DueDate(r.InvoiceDate, r.DaysDueIn)
}

// Subtotal returns the sum of all ledger amounts.
func (r *Record) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range r.Ledger {
		sum = sum.Add(e.Amount())
	}
	return sum
}

// Total returns the ledger sum plus adjustments.
func (r *Record) Total() decimal.Decimal {
	return r.Subtotal().Add(r.Adjustments)
}

// Validate checks that the record is structurally usable.
// Business rules (positive quantities, non-empty ledger) are not enforced;
// the renderer draws whatever it is given.
func (r *Record) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	if r.InvoiceDate.IsZero() {
		return fmt.Errorf("%w: invoice_date is required", ErrInvalidRecord)
	}
	if r.InvoiceSeq < MinInvoiceSeq || r.InvoiceSeq > MaxInvoiceSeq {
		return fmt.Errorf("%w: invoice_seq %d (must be between %d and %d)",
			ErrInvalidRecord, r.InvoiceSeq, MinInvoiceSeq, MaxInvoiceSeq)
	}
	for i, e := range r.Ledger {
		if e.Date.IsZero() {
			return fmt.Errorf("%w: ledger[%d].date is required", ErrInvalidRecord, i)
		}
	}
	return nil
}
