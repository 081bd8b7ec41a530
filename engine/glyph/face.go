package glyph

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/math/fixed"
)

// Face is a loaded font at a fixed pixel size. It owns its Rasterizer, whose
// glyph slot is mutated by every call, so a Face must not be used from more
// than one goroutine at a time.
type Face struct {
	backend   Rasterizer
	pixelSize int
}

// OpenFace reads a TrueType or OpenType file and opens it at pixelSize.
func OpenFace(path string, pixelSize int) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "glyph: open face %s", path)
	}
	face, err := NewFace(data, pixelSize)
	if err != nil {
		return nil, errors.Wrapf(err, "glyph: open face %s", path)
	}
	return face, nil
}

// NewFace opens font data at pixelSize using the SfntRasterizer.
func NewFace(data []byte, pixelSize int) (*Face, error) {
	backend, err := NewSfntRasterizer(data, pixelSize)
	if err != nil {
		return nil, err
	}
	return NewFaceFromRasterizer(backend, pixelSize), nil
}

// NewFaceFromRasterizer wraps an already configured backend.
func NewFaceFromRasterizer(backend Rasterizer, pixelSize int) *Face {
	return &Face{backend: backend, pixelSize: pixelSize}
}

// PixelSize returns the size the face was opened at.
func (f *Face) PixelSize() int {
	return f.pixelSize
}

// LineHeight returns the baseline to baseline distance.
func (f *Face) LineHeight() fixed.Int26_6 {
	return f.backend.LineHeight()
}

// LoadMetricsAndBitmap measures c and, if render is set, rasterizes it too.
// The bitmap is nil when render is false. A code point the font does not
// cover fails with ErrGlyphNotFound.
func (f *Face) LoadMetricsAndBitmap(c rune, render bool) (GlyphMetrics, *Bitmap, error) {
	if !render {
		m, err := f.backend.Measure(c)
		return m, nil, err
	}
	bmp, m, err := f.backend.Render(c)
	return m, bmp, err
}

// Kerning returns the 26.6 adjustment between left and right, or
// ErrNoKerningData.
func (f *Face) Kerning(left, right rune) (fixed.Point26_6, error) {
	return f.backend.Kerning(left, right)
}
