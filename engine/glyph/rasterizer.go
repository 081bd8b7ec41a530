package glyph

import (
	"image"

	"golang.org/x/image/math/fixed"
)

// GlyphMetrics holds the measurements of one glyph in 26.6 fixed point,
// plus the integer pixel region it occupies in its page texture.
//
// Bearing Y values follow font conventions and grow upwards.
type GlyphMetrics struct {
	Size              fixed.Point26_6
	HorizontalBearing fixed.Point26_6
	VerticalBearing   fixed.Point26_6
	HorizontalAdvance fixed.Int26_6
	VerticalAdvance   fixed.Int26_6

	// TexRegion is only set once the glyph is packed into a page.
	TexRegion image.Rectangle
}

// Bitmap is a single-channel coverage buffer. Rows are Stride bytes apart,
// which may be more than Width.
type Bitmap struct {
	Width  int
	Rows   int
	Stride int
	Pix    []byte
}

// Row returns the Width coverage bytes of row y.
func (b *Bitmap) Row(y int) []byte {
	start := y * b.Stride
	return b.Pix[start : start+b.Width]
}

// Rasterizer is the font backend behind a Face. It works on one open font at
// one pixel size and keeps a single active glyph slot, so a Bitmap returned
// by Render is only valid until the next call.
//
// Implementations are not expected to be safe for concurrent use.
type Rasterizer interface {
	// Measure returns the metrics of c without rendering it, or
	// ErrGlyphNotFound.
	Measure(c rune) (GlyphMetrics, error)
	// Render rasterizes c, or fails with ErrGlyphNotFound.
	Render(c rune) (*Bitmap, GlyphMetrics, error)
	// Kerning returns the adjustment for the ordered pair, or
	// ErrNoKerningData.
	Kerning(left, right rune) (fixed.Point26_6, error)
	// LineHeight is the recommended baseline to baseline distance.
	LineHeight() fixed.Int26_6
}
