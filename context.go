package envoi

import (
	"fmt"
	"strings"
)

// Margins in inches.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// DefaultMargins leave a 6in wide effective page on letter paper.
var DefaultMargins = Margins{Left: 1.25, Top: 0.5, Right: 1.25, Bottom: 0.5}

// Text metrics shared by every text primitive.
const (
	pointsPerInch = 72.0
	// lineHeightFactor scales the font size to a table line.
	lineHeightFactor = 1.5
	// baselineFactor places the baseline below a cell's vertical center.
	baselineFactor = 0.3
	// cellMargin is the horizontal inset of free-standing cells (1mm).
	cellMargin = 1 / 25.4
)

// RenderContext holds the mutable state of one document being rendered:
// cursor, page geometry and the style scope stack. It is owned by a single
// render call and never shared.
type RenderContext struct {
	canvas  Canvas
	margins Margins
	pageW   float64
	pageH   float64

	x, y float64
	// contentTop is where content starts on the current page.
	contentTop float64
	page       int

	state  State
	scopes []*Scope

	accent  Color
	breaker PageBreaker
}

// PageBreaker starts a new page when content runs out of room.
type PageBreaker interface {
	BreakPage() error
}

// NewRenderContext wraps a canvas and pushes the default state to it.
// Accent is the brand color used by headings and borders.
func NewRenderContext(c Canvas, m Margins, accent Color) *RenderContext {
	w, h := c.PageSize()
	rc := &RenderContext{
		canvas:  c,
		margins: m,
		pageW:   w,
		pageH:   h,
		x:       m.Left,
		y:       m.Top,
		state:   DefaultState(),
		accent:  accent,
	}
	rc.push(State{}, rc.state, true)
	return rc
}

// SetPageBreaker installs the hook used when content overflows a page.
func (rc *RenderContext) SetPageBreaker(b PageBreaker) { rc.breaker = b }

// Accent returns the brand color.
func (rc *RenderContext) Accent() Color { return rc.accent }

// HeadingStyle is white text on an accent fill.
func (rc *RenderContext) HeadingStyle() []StyleOption {
	return []StyleOption{WithTextColor(White), WithFillColor(rc.accent)}
}

// Canvas returns the underlying drawing surface.
func (rc *RenderContext) Canvas() Canvas { return rc.canvas }

// State returns the active drawing state.
func (rc *RenderContext) State() State { return rc.state }

// Margins returns the page margins.
func (rc *RenderContext) Margins() Margins { return rc.margins }

// PageSize returns the page width and height.
func (rc *RenderContext) PageSize() (float64, float64) { return rc.pageW, rc.pageH }

// EffectiveWidth is the page width between the side margins.
func (rc *RenderContext) EffectiveWidth() float64 {
	return rc.pageW - rc.margins.Left - rc.margins.Right
}

// Page returns the current page number, 0 before the first page.
func (rc *RenderContext) Page() int { return rc.page }

// X returns the horizontal cursor.
func (rc *RenderContext) X() float64 { return rc.x }

// Y returns the vertical cursor.
func (rc *RenderContext) Y() float64 { return rc.y }

// SetY moves the cursor to y and back to the left margin.
// Negative values are measured from the bottom edge.
func (rc *RenderContext) SetY(y float64) {
	if y < 0 {
		y = rc.pageH + y
	}
	rc.x = rc.margins.Left
	rc.y = y
}

// Ln moves the cursor down by h and back to the left margin.
func (rc *RenderContext) Ln(h float64) {
	rc.x = rc.margins.Left
	rc.y += h
}

// PageBottom is the lowest y content may reach.
func (rc *RenderContext) PageBottom() float64 {
	return rc.pageH - rc.margins.Bottom
}

// Fits reports whether h more inches fit above the bottom margin.
func (rc *RenderContext) Fits(h float64) bool {
	return rc.y+h <= rc.PageBottom()+1e-9
}

// AtPageTop reports whether nothing has been placed below the header yet.
func (rc *RenderContext) AtPageTop() bool {
	return rc.y <= rc.contentTop+1e-9
}

// EnsureRoom breaks the page when h does not fit under the cursor.
// It reports whether a break happened. Content that cannot fit even at the
// top of a page yields ErrLayoutOverflow.
func (rc *RenderContext) EnsureRoom(h float64) (bool, error) {
	if rc.Fits(h) {
		return false, nil
	}
	if rc.AtPageTop() {
		return false, rc.overflow(h)
	}
	if err := rc.BreakPage(); err != nil {
		return false, err
	}
	if !rc.Fits(h) {
		return true, rc.overflow(h)
	}
	return true, nil
}

// BreakPage asks the installed PageBreaker for a new page.
func (rc *RenderContext) BreakPage() error {
	if rc.breaker == nil {
		return fmt.Errorf("%w: no page breaker installed", ErrPageState)
	}
	return rc.breaker.BreakPage()
}

func (rc *RenderContext) overflow(h float64) error {
	return fmt.Errorf("%w: %.3fin needed, %.3fin available on %s",
		ErrLayoutOverflow, h, rc.PageBottom()-rc.y, rc)
}

// newPage starts a page on the canvas and resets the cursor.
func (rc *RenderContext) newPage() {
	rc.canvas.AddPage()
	rc.page++
	rc.x = rc.margins.Left
	rc.y = rc.margins.Top
	rc.contentTop = rc.y
}

// markContentTop records the cursor as the start of page content.
func (rc *RenderContext) markContentTop() {
	rc.contentTop = rc.y
}

// FontHeight is the current font size in inches.
func (rc *RenderContext) FontHeight() float64 {
	return rc.state.Font.Size / pointsPerInch
}

// LineHeight is the height of one line of table or box text.
func (rc *RenderContext) LineHeight() float64 {
	return lineHeightFactor * rc.FontHeight()
}

// BlankLine is the gap left after a block.
func (rc *RenderContext) BlankLine() float64 {
	return rc.LineHeight()
}

// TextWidth measures s in the active font.
func (rc *RenderContext) TextWidth(s string) float64 {
	return rc.canvas.TextWidth(s)
}

// Text draws s at baseline (x, y) honoring the active text mode.
func (rc *RenderContext) Text(x, y float64, s string) {
	if s == "" {
		return
	}
	if rc.state.TextMode == TextClip {
		rc.canvas.ClipText(x, y, s)
		if top := rc.top(); top != nil {
			top.clips++
		}
		return
	}
	rc.canvas.Text(x, y, s)
}

// Cell draws s inside the box (x, y, w, h), vertically centered and aligned
// horizontally with a small inset. It does not move the cursor.
func (rc *RenderContext) Cell(x, y, w, h float64, s string, align Align) {
	if s == "" {
		return
	}
	tw := rc.TextWidth(s)
	var tx float64
	switch align {
	case AlignRight:
		tx = x + w - cellMargin - tw
	case AlignCenter:
		tx = x + (w-tw)/2
	default:
		tx = x + cellMargin
	}
	rc.Text(tx, rc.baseline(y, h), s)
}

// CellLn draws a full-width cell of the current font height at the cursor
// and moves the cursor to the next line.
func (rc *RenderContext) CellLn(s string, align Align) {
	h := rc.FontHeight()
	rc.Cell(rc.margins.Left, rc.y, rc.EffectiveWidth(), h, s, align)
	rc.Ln(h)
}

// baseline returns the text baseline for a cell of height h starting at y.
func (rc *RenderContext) baseline(y, h float64) float64 {
	return y + h/2 + baselineFactor*rc.FontHeight()
}

// WrapText splits s into lines no wider than w in the active font.
// Explicit newlines are kept; words wider than w are broken by rune.
func (rc *RenderContext) WrapText(s string, w float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, rc.wrapParagraph(para, w)...)
	}
	return lines
}

func (rc *RenderContext) wrapParagraph(s string, w float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if rc.TextWidth(candidate) <= w {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		// Break words that cannot fit on a line of their own.
		for rc.TextWidth(word) > w {
			head := rc.fitRunes(word, w)
			lines = append(lines, head)
			word = word[len(head):]
		}
		line = word
	}
	return append(lines, line)
}

// fitRunes returns the longest prefix of s narrower than w, at least one rune.
func (rc *RenderContext) fitRunes(s string, w float64) string {
	end := 0
	for i, r := range s {
		next := i + len(string(r))
		if end > 0 && rc.TextWidth(s[:next]) > w {
			break
		}
		end = next
	}
	return s[:end]
}

// ---------------------------------------------------------------------------
// Style scopes
// ---------------------------------------------------------------------------

// Scope is a token for a bounded region with overridden drawing state.
// End restores what Begin changed.
type Scope struct {
	rc      *RenderContext
	saved   State
	rotated bool
	clips   int
	ended   bool
}

// Begin captures the active state, applies opts and returns the scope token.
// Rotation is applied before the other attributes and undone after them.
func (rc *RenderContext) Begin(opts ...StyleOption) *Scope {
	edit := styleEdit{state: rc.state}
	for _, opt := range opts {
		opt(&edit)
	}

	s := &Scope{rc: rc, saved: rc.state}
	if r := edit.rotate; r != nil {
		rc.canvas.RotateBegin(r.angle, r.cx, r.cy)
		s.rotated = true
	}
	rc.push(rc.state, edit.state, false)
	rc.scopes = append(rc.scopes, s)
	return s
}

// End closes clips opened in the scope, restores every attribute the scope
// changed and undoes its rotation. Scopes opened after s and still active are
// ended first. Calling End more than once is a no-op.
func (s *Scope) End() {
	if s == nil || s.ended {
		return
	}
	rc := s.rc
	for {
		top := rc.top()
		if top == nil || top == s {
			break
		}
		top.End()
	}

	for ; s.clips > 0; s.clips-- {
		rc.canvas.ClipEnd()
	}
	rc.push(rc.state, s.saved, false)
	if s.rotated {
		rc.canvas.RotateEnd()
	}
	if n := len(rc.scopes); n > 0 && rc.scopes[n-1] == s {
		rc.scopes = rc.scopes[:n-1]
	}
	s.ended = true
}

// With runs fn inside a scope. The scope ends when fn returns, fails or panics.
func (rc *RenderContext) With(fn func() error, opts ...StyleOption) error {
	s := rc.Begin(opts...)
	defer s.End()
	return fn()
}

// Depth returns the number of active scopes.
func (rc *RenderContext) Depth() int { return len(rc.scopes) }

func (rc *RenderContext) top() *Scope {
	if len(rc.scopes) == 0 {
		return nil
	}
	return rc.scopes[len(rc.scopes)-1]
}

// push sends the attributes that differ between from and to to the canvas
// and makes to the active state. With all set, every attribute is sent.
func (rc *RenderContext) push(from, to State, all bool) {
	c := rc.canvas
	if all || from.Font != to.Font {
		c.SetFont(to.Font)
	}
	if all || from.TextColor != to.TextColor {
		c.SetTextColor(to.TextColor)
	}
	if all || from.FillColor != to.FillColor {
		c.SetFillColor(to.FillColor)
	}
	if all || from.DrawColor != to.DrawColor {
		c.SetDrawColor(to.DrawColor)
	}
	if all || from.LineWidth != to.LineWidth {
		c.SetLineWidth(to.LineWidth)
	}
	rc.state = to
}

// String describes the cursor position for log and error messages.
func (rc *RenderContext) String() string {
	return fmt.Sprintf("page %d at (%.3f, %.3f)", rc.page, rc.x, rc.y)
}
