package envoi

import (
	"io"
	"time"
)

// RectStyle selects how a rectangle is painted.
type RectStyle string

// Rectangle paint styles.
const (
	RectFill       RectStyle = "F"
	RectStroke     RectStyle = "D"
	RectFillStroke RectStyle = "FD"
)

// Metadata is written into the document information dictionary.
type Metadata struct {
	Title    string
	Author   string
	Creator  string
	Producer string
	Created  time.Time
}

// Canvas is the drawing surface the layout engine issues commands to.
// Coordinates are in inches from the top-left corner of the current page.
// Implementations own text shaping and byte emission; the layout engine owns
// cursor, pagination and style state.
type Canvas interface {
	// PageSize returns the page width and height.
	PageSize() (w, h float64)
	AddPage()
	// PageCountAlias returns a token replaced by the final page count on output.
	PageCountAlias() string

	SetFont(f Font)
	SetTextColor(c Color)
	SetFillColor(c Color)
	SetDrawColor(c Color)
	SetLineWidth(w float64)

	// TextWidth measures s in the current font.
	TextWidth(s string) float64
	// Text draws s with its baseline starting at (x, y).
	Text(x, y float64, s string)
	// ClipText intersects the clipping path with the outlines of s until ClipEnd.
	ClipText(x, y float64, s string)
	ClipEnd()

	Rect(x, y, w, h float64, style RectStyle)
	Line(x1, y1, x2, y2 float64)
	// RegisterImage makes image data available under name.
	RegisterImage(name string, data []byte) error
	Image(name string, x, y, w, h float64)

	// RotateBegin rotates subsequent drawing counter-clockwise about (x, y)
	// until the matching RotateEnd.
	RotateBegin(angle, x, y float64)
	RotateEnd()

	SetMetadata(m Metadata)
	// Err reports the first error recorded by the backend, if any.
	Err() error
	// Output finalizes the document and writes it to w.
	Output(w io.Writer) error
}
