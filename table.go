package envoi

import "fmt"

// BorderPolicy decides which table cells are outlined.
type BorderPolicy int

const (
	// BordersAll outlines every cell, heading included.
	BordersAll BorderPolicy = iota
	// BordersSelective outlines body cells that have text. Heading row
	// cells and empty cells are never outlined.
	BordersSelective
)

// VAlign is the vertical placement of text inside a cell.
type VAlign int

// Vertical alignments.
const (
	VAlignMiddle VAlign = iota
	VAlignTop
)

// Column describes one table column. Widths are proportional to Weight.
type Column struct {
	Weight float64
	Align  Align
}

// Padding is the space between a cell's border and its text, in inches.
type Padding struct {
	Vertical   float64
	Horizontal float64
}

// DefaultPadding is used by boxes and the ledger.
var DefaultPadding = Padding{Vertical: 0.1, Horizontal: 0.05}

// TableCell is one cell of a row. Spans of 0 count as 1.
type TableCell struct {
	Text    string
	Colspan int
	Rowspan int
	// Heading draws the cell in the heading style outside the heading row.
	Heading bool
	Style   []StyleOption
}

// Table is a grid of cells with an optional heading row that is repeated
// at the top of every page the table continues on.
type Table struct {
	Columns []Column
	Heading []TableCell
	Rows    [][]TableCell

	// Width in inches; zero spans the effective page width.
	Width float64
	// Align places the table between the side margins.
	Align   Align
	VAlign  VAlign
	Borders BorderPolicy
	// KeepTogether moves the whole table to a new page instead of splitting it.
	KeepTogether bool
	// HeadingStyle defaults to the context's heading style.
	HeadingStyle []StyleOption
	Padding      Padding
	// LineHeight defaults to 1.5 times the font size.
	LineHeight float64
}

type placedCell struct {
	TableCell
	row, col         int
	colspan, rowspan int
	inHeading        bool
	x, w             float64
	lines            []string
	height           float64
}

// styled reports whether the cell uses the heading style.
func (pc *placedCell) styled() bool { return pc.inHeading || pc.Heading }

type rowGroup struct {
	first, last int
	height      float64
}

type tableLayout struct {
	t        *Table
	headOpts []StyleOption
	colX     []float64
	colW     []float64
	lineH    float64
	heading  []*placedCell
	headingH float64
	rows     [][]*placedCell
	rowH     []float64
	groups   []rowGroup
}

// RenderTable draws t at the cursor, breaking pages between row groups.
// A row group is a row plus every row its rowspans reach; groups are never
// split. The heading row is kept with the first group on each page.
// The cursor ends one blank line below the table.
func (rc *RenderContext) RenderTable(t *Table) error {
	lay, err := rc.layoutTable(t)
	if err != nil {
		return err
	}
	hasHeading := len(lay.heading) > 0

	if t.KeepTogether || len(lay.groups) == 0 {
		total := lay.headingH
		for _, g := range lay.groups {
			total += g.height
		}
		if _, err := rc.EnsureRoom(total); err != nil {
			return err
		}
	}

	headingOnPage := false
	if len(lay.groups) == 0 && hasHeading {
		rc.drawHeading(lay)
	}
	for _, g := range lay.groups {
		need := g.height
		if hasHeading && !headingOnPage {
			need += lay.headingH
		}
		if !rc.Fits(need) {
			if rc.AtPageTop() {
				return rc.overflow(need)
			}
			if err := rc.BreakPage(); err != nil {
				return err
			}
			headingOnPage = false
			need = g.height + lay.headingH
			if !rc.Fits(need) {
				return rc.overflow(need)
			}
		}
		if hasHeading && !headingOnPage {
			rc.drawHeading(lay)
			headingOnPage = true
		}
		rc.drawGroup(lay, g)
	}

	rc.Ln(rc.BlankLine())
	return nil
}

func (rc *RenderContext) layoutTable(t *Table) (*tableLayout, error) {
	ncol := len(t.Columns)
	if ncol == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidTable)
	}

	epw := rc.EffectiveWidth()
	width := t.Width
	if width <= 0 {
		width = epw
	}
	x := rc.margins.Left
	switch t.Align {
	case AlignRight:
		x += epw - width
	case AlignCenter:
		x += (epw - width) / 2
	}

	var weights float64
	for i, c := range t.Columns {
		if c.Weight <= 0 {
			return nil, fmt.Errorf("%w: column %d has weight %g", ErrInvalidTable, i, c.Weight)
		}
		weights += c.Weight
	}
	lay := &tableLayout{
		t:     t,
		colX:  make([]float64, ncol),
		colW:  make([]float64, ncol),
		lineH: t.LineHeight,
	}
	lay.headOpts = t.HeadingStyle
	if lay.headOpts == nil {
		lay.headOpts = rc.HeadingStyle()
	}
	if lay.lineH <= 0 {
		lay.lineH = rc.LineHeight()
	}
	for i, c := range t.Columns {
		lay.colX[i] = x
		lay.colW[i] = width * c.Weight / weights
		x += lay.colW[i]
	}

	// Heading row.
	col := 0
	for _, cell := range t.Heading {
		if cell.Rowspan > 1 {
			return nil, fmt.Errorf("%w: heading cell %q spans rows", ErrInvalidTable, cell.Text)
		}
		pc, err := lay.place(cell, -1, col)
		if err != nil {
			return nil, err
		}
		pc.inHeading = true
		rc.measureCell(lay, pc)
		lay.heading = append(lay.heading, pc)
		lay.headingH = max(lay.headingH, pc.height)
		col += pc.colspan
	}

	// Body rows.
	nrows := len(t.Rows)
	occupied := make([][]bool, nrows)
	for r := range occupied {
		occupied[r] = make([]bool, ncol)
	}
	lay.rows = make([][]*placedCell, nrows)
	for r, row := range t.Rows {
		col := 0
		for _, cell := range row {
			for col < ncol && occupied[r][col] {
				col++
			}
			pc, err := lay.place(cell, r, col)
			if err != nil {
				return nil, err
			}
			if r+pc.rowspan > nrows {
				return nil, fmt.Errorf("%w: row %d: cell %q spans past the last row", ErrInvalidTable, r, cell.Text)
			}
			for rr := r; rr < r+pc.rowspan; rr++ {
				for cc := col; cc < col+pc.colspan; cc++ {
					if occupied[rr][cc] {
						return nil, fmt.Errorf("%w: row %d: cell %q overlaps a spanned cell", ErrInvalidTable, r, cell.Text)
					}
					occupied[rr][cc] = true
				}
			}
			rc.measureCell(lay, pc)
			lay.rows[r] = append(lay.rows[r], pc)
			col += pc.colspan
		}
	}

	lay.rowHeights(t.Padding)
	lay.groupRows()
	return lay, nil
}

// place resolves spans and the horizontal extent of a cell.
func (lay *tableLayout) place(cell TableCell, row, col int) (*placedCell, error) {
	if cell.Colspan < 0 || cell.Rowspan < 0 {
		return nil, fmt.Errorf("%w: negative span on cell %q", ErrInvalidTable, cell.Text)
	}
	pc := &placedCell{
		TableCell: cell,
		row:       row,
		col:       col,
		colspan:   max(cell.Colspan, 1),
		rowspan:   max(cell.Rowspan, 1),
	}
	if col+pc.colspan > len(lay.colW) {
		return nil, fmt.Errorf("%w: row %d: cell %q needs column %d of %d",
			ErrInvalidTable, row, cell.Text, col+pc.colspan, len(lay.colW))
	}
	pc.x = lay.colX[col]
	for c := col; c < col+pc.colspan; c++ {
		pc.w += lay.colW[c]
	}
	return pc, nil
}

// measureCell wraps the cell text in its own style and records its height.
func (rc *RenderContext) measureCell(lay *tableLayout, pc *placedCell) {
	pad := lay.t.Padding
	_ = rc.With(func() error {
		pc.lines = rc.WrapText(pc.Text, pc.w-2*pad.Horizontal)
		return nil
	}, lay.style(pc)...)
	pc.height = float64(len(pc.lines))*lay.lineH + 2*pad.Vertical
}

// rowHeights sizes rows from their single-row cells, then grows the last row
// of each span that is too short for a multi-row cell.
func (lay *tableLayout) rowHeights(pad Padding) {
	lay.rowH = make([]float64, len(lay.rows))
	for r, cells := range lay.rows {
		for _, pc := range cells {
			if pc.rowspan == 1 {
				lay.rowH[r] = max(lay.rowH[r], pc.height)
			}
		}
		if lay.rowH[r] == 0 {
			lay.rowH[r] = lay.lineH + 2*pad.Vertical
		}
	}
	for _, cells := range lay.rows {
		for _, pc := range cells {
			if pc.rowspan == 1 {
				continue
			}
			last := pc.row + pc.rowspan - 1
			if short := pc.height - lay.spanHeight(pc.row, last); short > 0 {
				lay.rowH[last] += short
			}
		}
	}
}

func (lay *tableLayout) spanHeight(first, last int) float64 {
	var h float64
	for r := first; r <= last; r++ {
		h += lay.rowH[r]
	}
	return h
}

func (lay *tableLayout) groupRows() {
	for r := 0; r < len(lay.rows); {
		last := r
		for rr := r; rr <= last; rr++ {
			for _, pc := range lay.rows[rr] {
				last = max(last, pc.row+pc.rowspan-1)
			}
		}
		lay.groups = append(lay.groups, rowGroup{first: r, last: last, height: lay.spanHeight(r, last)})
		r = last + 1
	}
}

// style returns the scope options for a cell.
func (lay *tableLayout) style(pc *placedCell) []StyleOption {
	var opts []StyleOption
	if pc.styled() {
		opts = append(opts, lay.headOpts...)
	}
	return append(opts, pc.Style...)
}

// outlined applies the border policy to a cell.
func (p BorderPolicy) outlined(pc *placedCell) bool {
	if p == BordersSelective {
		return !pc.inHeading && pc.Text != ""
	}
	return true
}

func (rc *RenderContext) drawHeading(lay *tableLayout) {
	for _, pc := range lay.heading {
		rc.drawCell(lay, pc, rc.y, lay.headingH)
	}
	rc.Ln(lay.headingH)
}

func (rc *RenderContext) drawGroup(lay *tableLayout, g rowGroup) {
	top := rc.y
	for r := g.first; r <= g.last; r++ {
		for _, pc := range lay.rows[r] {
			h := lay.spanHeight(pc.row, pc.row+pc.rowspan-1)
			rc.drawCell(lay, pc, top, h)
		}
		top += lay.rowH[r]
	}
	rc.Ln(g.height)
}

func (rc *RenderContext) drawCell(lay *tableLayout, pc *placedCell, y, h float64) {
	t := lay.t
	pad := t.Padding
	align := t.Columns[pc.col].Align

	_ = rc.With(func() error {
		fill, border := pc.styled(), t.Borders.outlined(pc)
		switch {
		case fill && border:
			rc.canvas.Rect(pc.x, y, pc.w, h, RectFillStroke)
		case fill:
			rc.canvas.Rect(pc.x, y, pc.w, h, RectFill)
		case border:
			rc.canvas.Rect(pc.x, y, pc.w, h, RectStroke)
		}

		ty := y + pad.Vertical
		if t.VAlign == VAlignMiddle {
			ty = y + (h-float64(len(pc.lines))*lay.lineH)/2
		}
		for i, line := range pc.lines {
			if line == "" {
				continue
			}
			tw := rc.TextWidth(line)
			var tx float64
			switch align {
			case AlignRight:
				tx = pc.x + pc.w - pad.Horizontal - tw
			case AlignCenter:
				tx = pc.x + (pc.w-tw)/2
			default:
				tx = pc.x + pad.Horizontal
			}
			rc.Text(tx, rc.baseline(ty+float64(i)*lay.lineH, lay.lineH), line)
		}
		return nil
	}, lay.style(pc)...)
}
