package envoi

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB drawing color.
type Color struct {
	R, G, B uint8
}

// Gray returns a color with equal components.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v}
}

// Common colors.
var (
	White         = Gray(255)
	Black         = Gray(0)
	DefaultAccent = Color{R: 0x0a, G: 0x36, B: 0x78}
	footerGray    = Gray(96)
	hatchRed      = Color{R: 0xff}
)

// ParseColor reads #rgb or #rrggbb.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q (want #rgb or #rrggbb)", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// String returns the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Face names one of the document's font faces.
type Face string

// Font faces used by the invoice layout.
const (
	FaceLight  Face = "light"  // body text
	FaceMedium Face = "medium" // emphasized values
	FaceBlack  Face = "black"  // stamp
)

// Faces lists every face in registration order.
var Faces = []Face{FaceLight, FaceMedium, FaceBlack}

// Font selects a face and a size in points.
type Font struct {
	Face      Face
	Size      float64
	Underline bool
}

// TextMode controls how glyphs are painted.
type TextMode int

const (
	// TextFill paints glyphs normally.
	TextFill TextMode = iota
	// TextClip adds glyph outlines to the clipping path instead of painting them.
	TextClip
)

// Align is a horizontal alignment.
type Align int

// Alignments.
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// State is the drawing state managed by style scopes.
type State struct {
	Font      Font
	TextColor Color
	FillColor Color
	DrawColor Color
	LineWidth float64
	TextMode  TextMode
}

// defaultLineWidth is 0.2mm in inches.
const defaultLineWidth = 0.2 / 25.4

// DefaultState is the state a document starts with.
func DefaultState() State {
	return State{
		Font:      Font{Face: FaceLight, Size: 11},
		TextColor: Black,
		FillColor: Black,
		DrawColor: Black,
		LineWidth: defaultLineWidth,
		TextMode:  TextFill,
	}
}

// rotation is a transform applied for the lifetime of a scope.
type rotation struct {
	angle, cx, cy float64
}

// styleEdit collects the effect of StyleOptions for one scope.
type styleEdit struct {
	state  State
	rotate *rotation
}

// StyleOption overrides one drawing attribute for the lifetime of a scope.
type StyleOption func(*styleEdit)

// WithFont replaces the whole font.
func WithFont(f Font) StyleOption {
	return func(e *styleEdit) { e.state.Font = f }
}

// WithFace switches the font face, keeping the size.
func WithFace(face Face) StyleOption {
	return func(e *styleEdit) { e.state.Font.Face = face }
}

// WithFontSize sets the font size in points.
func WithFontSize(pt float64) StyleOption {
	return func(e *styleEdit) { e.state.Font.Size = pt }
}

// WithUnderline toggles underlined text.
func WithUnderline(on bool) StyleOption {
	return func(e *styleEdit) { e.state.Font.Underline = on }
}

// WithTextColor sets the text color.
func WithTextColor(c Color) StyleOption {
	return func(e *styleEdit) { e.state.TextColor = c }
}

// WithFillColor sets the fill color.
func WithFillColor(c Color) StyleOption {
	return func(e *styleEdit) { e.state.FillColor = c }
}

// WithDrawColor sets the stroke color.
func WithDrawColor(c Color) StyleOption {
	return func(e *styleEdit) { e.state.DrawColor = c }
}

// WithLineWidth sets the stroke width in inches.
func WithLineWidth(w float64) StyleOption {
	return func(e *styleEdit) { e.state.LineWidth = w }
}

// WithTextMode sets the text rendering mode.
func WithTextMode(m TextMode) StyleOption {
	return func(e *styleEdit) { e.state.TextMode = m }
}

// WithRotation rotates everything drawn in the scope counter-clockwise by
// angle degrees about (cx, cy).
func WithRotation(angle, cx, cy float64) StyleOption {
	return func(e *styleEdit) { e.rotate = &rotation{angle: angle, cx: cx, cy: cy} }
}
