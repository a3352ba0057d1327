package envoi

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Run is a span of text drawn with one set of inline attributes.
type Run struct {
	Text      string
	Bold      bool
	Underline bool
}

// inlineParser only knows paragraphs, so address lines such as "1. Main St"
// or "# 4" are never read as lists or headings.
var inlineParser = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(parser.DefaultInlineParsers()...),
)

// ParseInline splits one line of text into runs.
// **strong** selects the medium face and *emphasis* underlines.
// Code spans and links contribute their text only.
func ParseInline(s string) []Run {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	src := []byte(s)
	doc := inlineParser.Parse(text.NewReader(src))

	var runs []Run
	var walk func(n ast.Node, bold, underline bool)
	walk = func(n ast.Node, bold, underline bool) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				runs = appendRun(runs, Run{
					Text:      string(util.UnescapePunctuations(node.Segment.Value(src))),
					Bold:      bold,
					Underline: underline,
				})
				if node.SoftLineBreak() || node.HardLineBreak() {
					runs = appendRun(runs, Run{Text: " ", Bold: bold, Underline: underline})
				}
			case *ast.String:
				runs = appendRun(runs, Run{Text: string(node.Value), Bold: bold, Underline: underline})
			case *ast.CodeSpan:
				walk(node, bold, underline)
			case *ast.Emphasis:
				if node.Level >= 2 {
					walk(node, true, underline)
				} else {
					walk(node, bold, true)
				}
			case *ast.RawHTML:
				segs := node.Segments
				for i := 0; i < segs.Len(); i++ {
					seg := segs.At(i)
					runs = appendRun(runs, Run{Text: string(seg.Value(src)), Bold: bold, Underline: underline})
				}
			default:
				walk(c, bold, underline)
			}
		}
	}
	walk(doc, false, false)
	return runs
}

// appendRun merges r into the previous run when their attributes match.
func appendRun(runs []Run, r Run) []Run {
	if r.Text == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Bold == r.Bold && runs[n-1].Underline == r.Underline {
		runs[n-1].Text += r.Text
		return runs
	}
	return append(runs, r)
}

// PlainRuns wraps s in a single unstyled run.
func PlainRuns(s string) []Run {
	if s == "" {
		return nil
	}
	return []Run{{Text: s}}
}

// runStyle returns the scope options for a run's attributes.
func runStyle(r Run) []StyleOption {
	var opts []StyleOption
	if r.Bold {
		opts = append(opts, WithFace(FaceMedium))
	}
	if r.Underline {
		opts = append(opts, WithUnderline(true))
	}
	return opts
}

// RunsWidth measures runs, each in its own face.
func (rc *RenderContext) RunsWidth(runs []Run) float64 {
	var w float64
	for _, r := range runs {
		_ = rc.With(func() error {
			w += rc.TextWidth(r.Text)
			return nil
		}, runStyle(r)...)
	}
	return w
}

// RichCell draws runs on one line inside the box (x, y, w, h).
func (rc *RenderContext) RichCell(x, y, w, h float64, runs []Run, align Align) {
	if len(runs) == 0 {
		return
	}
	total := rc.RunsWidth(runs)
	var tx float64
	switch align {
	case AlignRight:
		tx = x + w - cellMargin - total
	case AlignCenter:
		tx = x + (w-total)/2
	default:
		tx = x + cellMargin
	}
	base := rc.baseline(y, h)
	for _, r := range runs {
		_ = rc.With(func() error {
			rc.Text(tx, base, r.Text)
			tx += rc.TextWidth(r.Text)
			return nil
		}, runStyle(r)...)
	}
}

// RichCellLn draws runs in a full-width cell at the cursor and moves to the
// next line.
func (rc *RenderContext) RichCellLn(runs []Run, align Align) {
	h := rc.FontHeight()
	rc.RichCell(rc.margins.Left, rc.y, rc.EffectiveWidth(), h, runs, align)
	rc.Ln(h)
}
