package envoi

// Summary box widths in inches.
const (
	WideBoxWidth   = 3.9
	NarrowBoxWidth = 1.9
)

// RenderBox draws a bordered two-row box: label in the heading style, value
// below it. The value may span several lines. align places the box against
// the left or right margin; the box moves to a new page rather than split.
// The cursor ends one blank line below the box.
func (rc *RenderContext) RenderBox(label, value string, align Align, width float64, valueStyle ...StyleOption) error {
	t := &Table{
		Columns:      []Column{{Weight: 1, Align: AlignLeft}},
		Heading:      []TableCell{{Text: label}},
		Rows:         [][]TableCell{{{Text: value, Style: valueStyle}}},
		Width:        width,
		Align:        align,
		Borders:      BordersAll,
		KeepTogether: true,
		Padding:      DefaultPadding,
	}
	return rc.With(func() error {
		return rc.RenderTable(t)
	}, WithDrawColor(rc.accent))
}
