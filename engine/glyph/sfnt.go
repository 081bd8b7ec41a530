package glyph

import (
	"image"
	"image/draw"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// SfntRasterizer is the default Rasterizer, backed by golang.org/x/image.
//
// Glyph boxes are aligned to the pixel grid before they are reported, so the
// size returned by Measure is exactly the size of the bitmap Render produces.
type SfntRasterizer struct {
	font    *sfnt.Font
	buf     sfnt.Buffer
	ppem    fixed.Int26_6
	hinting font.Hinting
	height  fixed.Int26_6

	// the glyph slot
	raster *vector.Rasterizer
	slot   []byte
}

// NewSfntRasterizer parses TrueType or OpenType data and prepares it for
// rendering at pixelSize pixels per em.
func NewSfntRasterizer(data []byte, pixelSize int) (*SfntRasterizer, error) {
	if pixelSize <= 0 {
		return nil, errors.Errorf("glyph: invalid pixel size %d", pixelSize)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "glyph: parse font")
	}
	r := &SfntRasterizer{
		font:    f,
		ppem:    fixed.I(pixelSize),
		hinting: font.HintingFull,
		raster:  vector.NewRasterizer(0, 0),
	}
	m, err := f.Metrics(&r.buf, r.ppem, r.hinting)
	if err != nil {
		return nil, errors.Wrap(err, "glyph: read font metrics")
	}
	r.height = m.Height
	return r, nil
}

// LineHeight implements Rasterizer.
func (r *SfntRasterizer) LineHeight() fixed.Int26_6 {
	return r.height
}

// Measure implements Rasterizer.
func (r *SfntRasterizer) Measure(c rune) (GlyphMetrics, error) {
	_, metrics, err := r.load(c)
	return metrics, err
}

// Render implements Rasterizer. The returned bitmap aliases the glyph slot.
func (r *SfntRasterizer) Render(c rune) (*Bitmap, GlyphMetrics, error) {
	segments, metrics, err := r.load(c)
	if err != nil {
		return nil, GlyphMetrics{}, err
	}
	width := metrics.Size.X.Floor()
	rows := metrics.Size.Y.Floor()
	stride := (width + 3) &^ 3
	if need := stride * rows; len(r.slot) < need {
		r.slot = make([]byte, need)
	}
	dst := &image.Alpha{
		Pix:    r.slot[:stride*rows],
		Stride: stride,
		Rect:   image.Rect(0, 0, width, rows),
	}

	// segments are relative to the pen origin; shift them so the glyph box
	// starts at (0, 0) of the slot
	ox := float32(metrics.HorizontalBearing.X.Floor())
	oy := float32(metrics.HorizontalBearing.Y.Floor())
	px := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - ox, float32(p.Y)/64 + oy
	}

	r.raster.Reset(width, rows)
	r.raster.DrawOp = draw.Src
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			r.raster.MoveTo(px(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.raster.LineTo(px(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := px(seg.Args[0])
			cx, cy := px(seg.Args[1])
			r.raster.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := px(seg.Args[0])
			cx, cy := px(seg.Args[1])
			dx, dy := px(seg.Args[2])
			r.raster.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	r.raster.ClosePath()
	r.raster.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	return &Bitmap{Width: width, Rows: rows, Stride: stride, Pix: dst.Pix}, metrics, nil
}

// Kerning implements Rasterizer.
func (r *SfntRasterizer) Kerning(left, right rune) (fixed.Point26_6, error) {
	l, err := r.index(left)
	if err != nil {
		return fixed.Point26_6{}, ErrNoKerningData
	}
	rt, err := r.index(right)
	if err != nil {
		return fixed.Point26_6{}, ErrNoKerningData
	}
	k, err := r.font.Kern(&r.buf, l, rt, r.ppem, r.hinting)
	if err != nil {
		return fixed.Point26_6{}, errors.Wrapf(ErrNoKerningData, "U+%04X U+%04X: %v", left, right, err)
	}
	return fixed.Point26_6{X: k}, nil
}

func (r *SfntRasterizer) index(c rune) (sfnt.GlyphIndex, error) {
	x, err := r.font.GlyphIndex(&r.buf, c)
	if err != nil {
		return 0, errors.Wrapf(ErrGlyphNotFound, "U+%04X: %v", c, err)
	}
	if x == 0 {
		return 0, ErrGlyphNotFound
	}
	return x, nil
}

// load returns the outline and pixel-aligned metrics of c. The segments are
// only valid until r.buf is used again.
func (r *SfntRasterizer) load(c rune) (sfnt.Segments, GlyphMetrics, error) {
	x, err := r.index(c)
	if err != nil {
		return nil, GlyphMetrics{}, err
	}
	// advance first: LoadGlyph's segments live in r.buf
	advance, err := r.font.GlyphAdvance(&r.buf, x, r.ppem, r.hinting)
	if err != nil {
		return nil, GlyphMetrics{}, errors.Wrapf(ErrGlyphNotFound, "U+%04X advance: %v", c, err)
	}
	segments, err := r.font.LoadGlyph(&r.buf, x, r.ppem, nil)
	if err != nil {
		return nil, GlyphMetrics{}, errors.Wrapf(ErrGlyphNotFound, "U+%04X outline: %v", c, err)
	}
	if len(segments) == 0 {
		return nil, GlyphMetrics{}, ErrGlyphNotFound
	}
	b := segments.Bounds()
	minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
	maxX, maxY := b.Max.X.Ceil(), b.Max.Y.Ceil()
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return nil, GlyphMetrics{}, ErrGlyphNotFound
	}

	// sfnt coordinates grow downwards, font bearings grow upwards
	return segments, GlyphMetrics{
		Size:              fixed.P(w, h),
		HorizontalBearing: fixed.P(minX, -minY),
		VerticalBearing:   fixed.Point26_6{X: -fixed.I(w) / 2, Y: (r.height - fixed.I(h)) / 2},
		HorizontalAdvance: advance,
		VerticalAdvance:   r.height,
	}, nil
}
