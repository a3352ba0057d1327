package envoi

import (
	"github.com/shopspring/decimal"
)

// Ledger column headings.
var ledgerHeading = []string{"DATE", "ITEM DESCRIPTION", "QTY", "PRICE", "AMOUNT"}

// ledgerColumns are proportioned 2:6:1:2:2.
var ledgerColumns = []Column{
	{Weight: 2, Align: AlignLeft},
	{Weight: 6, Align: AlignLeft},
	{Weight: 1, Align: AlignRight},
	{Weight: 2, Align: AlignRight},
	{Weight: 2, Align: AlignRight},
}

// LedgerTable builds the itemized table: one row per entry followed by the
// adjustments and total rows.
func LedgerTable(entries []LedgerEntry, adjustments, total decimal.Decimal) *Table {
	bold := []StyleOption{WithFace(FaceMedium)}

	t := &Table{
		Columns: ledgerColumns,
		VAlign:  VAlignTop,
		Borders: BordersSelective,
		Padding: DefaultPadding,
	}
	for _, h := range ledgerHeading {
		t.Heading = append(t.Heading, TableCell{Text: h})
	}

	for _, e := range entries {
		t.Rows = append(t.Rows, []TableCell{
			{Text: FormatDate(e.Date)},
			{Text: e.Description},
			{Text: FormatQuantity(e.Quantity)},
			{Text: FormatPrice(e.Rate)},
			{Text: FormatPrice(e.Amount()), Style: bold},
		})
	}

	t.Rows = append(t.Rows,
		[]TableCell{
			{Colspan: 2, Rowspan: 2},
			{Text: "ADJUSTMENTS", Colspan: 2, Heading: true},
			{Text: FormatPrice(adjustments), Style: bold},
		},
		[]TableCell{
			{Text: "TOTAL", Colspan: 2, Heading: true},
			{Text: FormatPrice(total), Style: bold},
		},
	)
	return t
}

// RenderLedger draws the ledger table with accent borders.
func (rc *RenderContext) RenderLedger(entries []LedgerEntry, adjustments, total decimal.Decimal) error {
	t := LedgerTable(entries, adjustments, total)
	return rc.With(func() error {
		return rc.RenderTable(t)
	}, WithDrawColor(rc.accent))
}
