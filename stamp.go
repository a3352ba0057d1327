package envoi

import "math"

// Paid stamp geometry.
const (
	stampText = "PAID"
	// stampScale divides the page width in points into the font size.
	stampScale = 2.4
	// stampLift raises the text cell so the glyphs sit on the page center.
	stampLift    = 2.25
	hatchSpacing = 0.05
	hatchWidth   = 0.01
)

// RenderPaidStamp draws "PAID" across the page diagonal. The glyphs are
// used as a clipping path and filled with thin horizontal red lines.
func (rc *RenderContext) RenderPaidStamp() error {
	w, h := rc.pageW, rc.pageH
	size := w * pointsPerInch / stampScale
	sizeUnits := size / pointsPerInch
	angle := math.Atan2(h, w) * 180 / math.Pi
	top := h/2 - sizeUnits/stampLift

	return rc.With(func() error {
		rc.Cell(0, top, w, sizeUnits, stampText, AlignCenter)

		return rc.With(func() error {
			for i := 0; float64(i)*hatchSpacing < h; i++ {
				y := float64(i) * hatchSpacing
				rc.canvas.Line(0, y, w, y)
			}
			return nil
		}, WithLineWidth(hatchWidth), WithDrawColor(hatchRed))
	},
		WithRotation(angle, w/2, h/2),
		WithTextMode(TextClip),
		WithFont(Font{Face: FaceBlack, Size: size}),
	)
}
