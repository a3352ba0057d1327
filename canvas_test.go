package envoi

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Notes:
// - fakeCanvas records every drawing command with the page it landed on.
// - Glyph metrics are deterministic: each rune is half an em wide.
// - The page-count alias "{nb}" is substituted on Output, like the real backend.

const fakeAlias = "{nb}"

type call struct {
	op    string
	page  int
	text  string
	x, y  float64
	w, h  float64
	style RectStyle
	state canvasState
}

type canvasState struct {
	font      Font
	text      Color
	fill      Color
	draw      Color
	lineWidth float64
}

type fakeCanvas struct {
	w, h     float64
	pages    int
	cur      canvasState
	calls    []call
	images   map[string][]byte
	meta     Metadata
	rotDepth int
	clips    int
	err      error
	imageErr error
}

var _ Canvas = (*fakeCanvas)(nil)

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{w: 8.5, h: 11, images: map[string][]byte{}}
}

func (f *fakeCanvas) record(c call) {
	c.page = f.pages
	c.state = f.cur
	f.calls = append(f.calls, c)
}

func (f *fakeCanvas) PageSize() (float64, float64) { return f.w, f.h }

func (f *fakeCanvas) AddPage() {
	f.pages++
	f.record(call{op: "page"})
}

func (f *fakeCanvas) PageCountAlias() string { return fakeAlias }

func (f *fakeCanvas) SetFont(font Font) {
	f.cur.font = font
	f.record(call{op: "font"})
}

func (f *fakeCanvas) SetTextColor(c Color) {
	f.cur.text = c
	f.record(call{op: "textcolor"})
}

func (f *fakeCanvas) SetFillColor(c Color) {
	f.cur.fill = c
	f.record(call{op: "fillcolor"})
}

func (f *fakeCanvas) SetDrawColor(c Color) {
	f.cur.draw = c
	f.record(call{op: "drawcolor"})
}

func (f *fakeCanvas) SetLineWidth(w float64) {
	f.cur.lineWidth = w
	f.record(call{op: "linewidth"})
}

func (f *fakeCanvas) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.cur.font.Size / pointsPerInch * 0.5
}

func (f *fakeCanvas) Text(x, y float64, s string) {
	f.record(call{op: "text", x: x, y: y, text: s})
}

func (f *fakeCanvas) ClipText(x, y float64, s string) {
	f.clips++
	f.record(call{op: "cliptext", x: x, y: y, text: s})
}

func (f *fakeCanvas) ClipEnd() {
	f.clips--
	f.record(call{op: "clipend"})
}

func (f *fakeCanvas) Rect(x, y, w, h float64, style RectStyle) {
	f.record(call{op: "rect", x: x, y: y, w: w, h: h, style: style})
}

func (f *fakeCanvas) Line(x1, y1, x2, y2 float64) {
	f.record(call{op: "line", x: x1, y: y1, w: x2 - x1, h: y2 - y1})
}

func (f *fakeCanvas) RegisterImage(name string, data []byte) error {
	if f.imageErr != nil {
		return f.imageErr
	}
	f.images[name] = data
	return nil
}

func (f *fakeCanvas) Image(name string, x, y, w, h float64) {
	f.record(call{op: "image", text: name, x: x, y: y, w: w, h: h})
}

func (f *fakeCanvas) RotateBegin(angle, x, y float64) {
	f.rotDepth++
	f.record(call{op: "rotate", w: angle, x: x, y: y})
}

func (f *fakeCanvas) RotateEnd() {
	f.rotDepth--
	f.record(call{op: "rotateend"})
}

func (f *fakeCanvas) SetMetadata(m Metadata) { f.meta = m }

func (f *fakeCanvas) Err() error { return f.err }

// Output writes one line per text command with the page alias resolved.
func (f *fakeCanvas) Output(w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	if f.rotDepth != 0 || f.clips != 0 {
		return errors.New("unbalanced transform or clip")
	}
	total := strconv.Itoa(f.pages)
	if _, err := fmt.Fprintf(w, "%%PDF-fake pages=%d\n", f.pages); err != nil {
		return err
	}
	for _, c := range f.calls {
		if c.op != "text" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d: %s\n", c.page, strings.ReplaceAll(c.text, fakeAlias, total)); err != nil {
			return err
		}
	}
	return nil
}

// ops returns the recorded calls with the given op.
func (f *fakeCanvas) ops(op string) []call {
	var out []call
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

// texts returns the text drawn on page, in order.
func (f *fakeCanvas) texts(page int) []string {
	var out []string
	for _, c := range f.ops("text") {
		if c.page == page {
			out = append(out, c.text)
		}
	}
	return out
}

// findText returns the first text call with exactly s.
func (f *fakeCanvas) findText(s string) (call, bool) {
	for _, c := range f.ops("text") {
		if c.text == s {
			return c, true
		}
	}
	return call{}, false
}

// countText counts text calls with exactly s.
func (f *fakeCanvas) countText(s string) int {
	n := 0
	for _, c := range f.ops("text") {
		if c.text == s {
			n++
		}
	}
	return n
}

// newTestContext returns a context on a fresh fake page.
func newTestContext() (*RenderContext, *fakeCanvas) {
	fc := newFakeCanvas()
	rc := NewRenderContext(fc, DefaultMargins, DefaultAccent)
	rc.newPage()
	return rc, fc
}

// stubBreaker opens a bare page on every break.
type stubBreaker struct {
	rc     *RenderContext
	breaks int
	top    float64
}

func (b *stubBreaker) BreakPage() error {
	b.breaks++
	b.rc.newPage()
	if b.top > 0 {
		b.rc.SetY(b.top)
		b.rc.markContentTop()
	}
	return nil
}
