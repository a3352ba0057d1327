package envoi

import "strings"

// document is one invoice being drawn.
type document struct {
	rec    *Record
	canvas Canvas
	rc     *RenderContext
	pages  *PageRenderer
}

// compose lays out the invoice: summary boxes, ledger, notes.
func (d *document) compose() error {
	rec := d.rec
	if err := d.pages.OpenPage(); err != nil {
		return err
	}
	if err := d.summary(); err != nil {
		return err
	}
	if err := d.rc.RenderLedger(rec.Ledger, rec.Adjustments, rec.Total()); err != nil {
		return err
	}
	if rec.Notes != "" {
		err := d.rc.RenderBox("NOTES", rec.Notes, AlignLeft, WideBoxWidth, WithFace(FaceMedium))
		if err != nil {
			return err
		}
	}
	return d.pages.Finish()
}

// summary places the bill-to box on the left and the date and amount boxes
// stacked on the right, both starting at the same height. The cursor ends
// below whichever stack is longer.
func (d *document) summary() error {
	rc, rec := d.rc, d.rec
	bold := WithFace(FaceMedium)

	startPage, startY := rc.Page(), rc.Y()
	if err := rc.RenderBox("BILL TO", strings.Join(rec.BillToAddress, "\n"), AlignLeft, WideBoxWidth, bold); err != nil {
		return err
	}
	leftPage, leftY := rc.Page(), rc.Y()
	if leftPage == startPage {
		rc.SetY(startY)
	}

	right := []struct{ label, value string }{
		{"INVOICE DATE", FormatDate(rec.InvoiceDate)},
		{"TOTAL DUE", FormatPrice(rec.Total())},
		{"DUE DATE", FormatDate(rec.DueDate())},
	}
	for _, b := range right {
		if err := rc.RenderBox(b.label, b.value, AlignRight, NarrowBoxWidth, bold); err != nil {
			return err
		}
	}

	if rc.Page() == leftPage {
		rc.SetY(max(leftY, rc.Y()))
	}
	return nil
}
