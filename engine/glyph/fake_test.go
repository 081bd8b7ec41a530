package glyph

import (
	"golang.org/x/image/math/fixed"
)

type kernPair struct{ left, right rune }

// fakeRasterizer is a monospaced face: every covered code point measures
// width x height pixels with rows padded to stride.
type fakeRasterizer struct {
	first, last   rune
	width, height int
	stride        int
	advance       fixed.Int26_6
	bearing       fixed.Point26_6
	sizes         map[rune][2]int
	kerning       map[kernPair]fixed.Int26_6
	lineHeight    fixed.Int26_6
	// renderGrow is added to the rendered size to break the measure contract
	renderGrow int
	// renderErr fails Render for code points that still measure fine
	renderErr map[rune]error

	measures, renders int
}

func newFakeRasterizer(first, last rune, width, height int) *fakeRasterizer {
	return &fakeRasterizer{
		first:      first,
		last:       last,
		width:      width,
		height:     height,
		stride:     width + 3,
		advance:    fixed.I(width + 2),
		bearing:    fixed.P(1, height-2),
		sizes:      make(map[rune][2]int),
		kerning:    make(map[kernPair]fixed.Int26_6),
		lineHeight: fixed.I(height + 4),
	}
}

func (f *fakeRasterizer) size(c rune) (int, int, bool) {
	if c < f.first || c > f.last {
		return 0, 0, false
	}
	if s, ok := f.sizes[c]; ok {
		return s[0], s[1], s[0] > 0 && s[1] > 0
	}
	return f.width, f.height, true
}

func (f *fakeRasterizer) metrics(w, h int) GlyphMetrics {
	return GlyphMetrics{
		Size:              fixed.P(w, h),
		HorizontalBearing: f.bearing,
		HorizontalAdvance: f.advance,
		VerticalAdvance:   f.lineHeight,
	}
}

func (f *fakeRasterizer) Measure(c rune) (GlyphMetrics, error) {
	f.measures++
	w, h, ok := f.size(c)
	if !ok {
		return GlyphMetrics{}, ErrGlyphNotFound
	}
	return f.metrics(w, h), nil
}

func (f *fakeRasterizer) Render(c rune) (*Bitmap, GlyphMetrics, error) {
	f.renders++
	w, h, ok := f.size(c)
	if !ok {
		return nil, GlyphMetrics{}, ErrGlyphNotFound
	}
	if err := f.renderErr[c]; err != nil {
		return nil, GlyphMetrics{}, err
	}
	w += f.renderGrow
	h += f.renderGrow
	stride := w + (f.stride - f.width)
	pix := make([]byte, stride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < stride; x++ {
			if x < w {
				pix[y*stride+x] = byte(c)
			} else {
				pix[y*stride+x] = 0xEE // padding must never reach the texture
			}
		}
	}
	return &Bitmap{Width: w, Rows: h, Stride: stride, Pix: pix}, f.metrics(w, h), nil
}

func (f *fakeRasterizer) Kerning(left, right rune) (fixed.Point26_6, error) {
	k, ok := f.kerning[kernPair{left, right}]
	if !ok {
		return fixed.Point26_6{}, ErrNoKerningData
	}
	return fixed.Point26_6{X: k}, nil
}

func (f *fakeRasterizer) LineHeight() fixed.Int26_6 {
	return f.lineHeight
}
