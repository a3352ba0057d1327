package envoi

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/envoi-pdf/envoi/internal/assets"
)

// Page geometry, in inches.
const (
	pageOrientation = "P"
	pageUnit        = "in"
	pageSize        = "Letter"
	fontFamilyBase  = "envoi-"
	coreFontFamily  = "Helvetica"
)

// fpdfCanvas implements Canvas on top of go-pdf/fpdf.
// Faces without font data fall back to the core Helvetica fonts, which are
// cp1252 encoded; text for those faces goes through a translator.
type fpdfCanvas struct {
	pdf     *fpdf.Fpdf
	utf8    map[Face]bool
	tr      func(string) string
	current Font
}

// Compile-time interface check.
var _ Canvas = (*fpdfCanvas)(nil)

// newFPDFCanvas creates a letter-size canvas and registers the asset fonts.
func newFPDFCanvas(a *Assets) (Canvas, error) {
	pdf := fpdf.New(pageOrientation, pageUnit, pageSize, "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	c := &fpdfCanvas{
		pdf:  pdf,
		utf8: make(map[Face]bool, len(Faces)),
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
	}

	if a != nil {
		for _, face := range Faces {
			data, ok := a.Fonts[face]
			if !ok {
				continue
			}
			pdf.AddUTF8FontFromBytes(fontFamilyBase+string(face), "", data)
			if pdf.Err() {
				return nil, fmt.Errorf("%w: font %q: %v", ErrAsset, face, pdf.Error())
			}
			c.utf8[face] = true
		}
	}

	return c, nil
}

func (c *fpdfCanvas) PageSize() (float64, float64) {
	return c.pdf.GetPageSize()
}

func (c *fpdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *fpdfCanvas) PageCountAlias() string {
	return "{nb}"
}

func (c *fpdfCanvas) SetFont(f Font) {
	family, style := c.family(f.Face)
	if f.Underline {
		style += "U"
	}
	c.pdf.SetFont(family, style, f.Size)
	c.current = f
}

// family maps a face to a registered family and style.
func (c *fpdfCanvas) family(face Face) (string, string) {
	if c.utf8[face] {
		return fontFamilyBase + string(face), ""
	}
	if face == FaceLight {
		return coreFontFamily, ""
	}
	return coreFontFamily, "B"
}

// encode converts s for the current font.
func (c *fpdfCanvas) encode(s string) string {
	if c.utf8[c.current.Face] {
		return s
	}
	return c.tr(s)
}

func (c *fpdfCanvas) SetTextColor(col Color) {
	c.pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
}

func (c *fpdfCanvas) SetFillColor(col Color) {
	c.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
}

func (c *fpdfCanvas) SetDrawColor(col Color) {
	c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
}

func (c *fpdfCanvas) SetLineWidth(w float64) {
	c.pdf.SetLineWidth(w)
}

func (c *fpdfCanvas) TextWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.encode(s))
}

func (c *fpdfCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, y, c.encode(s))
}

func (c *fpdfCanvas) ClipText(x, y float64, s string) {
	c.pdf.ClipText(x, y, c.encode(s), false)
}

func (c *fpdfCanvas) ClipEnd() {
	c.pdf.ClipEnd()
}

func (c *fpdfCanvas) Rect(x, y, w, h float64, style RectStyle) {
	c.pdf.Rect(x, y, w, h, string(style))
}

func (c *fpdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *fpdfCanvas) RegisterImage(name string, data []byte) error {
	typ, err := assets.DetectImageType(data)
	if err != nil {
		return err
	}
	c.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: typ}, bytes.NewReader(data))
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return nil
}

func (c *fpdfCanvas) Image(name string, x, y, w, h float64) {
	c.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
}

func (c *fpdfCanvas) RotateBegin(angle, x, y float64) {
	c.pdf.TransformBegin()
	c.pdf.TransformRotate(angle, x, y)
}

func (c *fpdfCanvas) RotateEnd() {
	c.pdf.TransformEnd()
}

func (c *fpdfCanvas) SetMetadata(m Metadata) {
	c.pdf.SetTitle(m.Title, true)
	c.pdf.SetAuthor(m.Author, true)
	c.pdf.SetCreator(m.Creator, true)
	c.pdf.SetProducer(m.Producer, true)
	c.pdf.SetCreationDate(m.Created)
}

func (c *fpdfCanvas) Err() error {
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return nil
}

func (c *fpdfCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}
