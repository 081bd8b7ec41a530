package glyph

import (
	"github.com/pkg/errors"
	"golang.org/x/image/math/fixed"
)

// Font couples a Face with the Atlas of its glyphs. Unlike Atlas, its lookups
// load missing pages.
//
// A Font is not safe for concurrent use.
type Font struct {
	face  *Face
	atlas *Atlas
}

func NewFont(face *Face, textures TextureUploader) *Font {
	return &Font{
		face:  face,
		atlas: NewAtlas(textures),
	}
}

func (f *Font) Face() *Face   { return f.face }
func (f *Font) Atlas() *Atlas { return f.atlas }

// PixelSize returns the pixel size of the face.
func (f *Font) PixelSize() int { return f.face.PixelSize() }

// LineHeight returns the face line height.
func (f *Font) LineHeight() fixed.Int26_6 { return f.face.LineHeight() }

// LoadPage makes sure page n is in the atlas.
func (f *Font) LoadPage(n int) error {
	return f.atlas.LoadPage(f.face, n)
}

// Glyph returns the metrics of c, loading its page first if needed. The bool
// is false for code points without a renderable glyph.
func (f *Font) Glyph(c rune) (GlyphMetrics, bool, error) {
	n, _ := PageOf(c)
	if n < 0 || n >= MaxPages {
		return GlyphMetrics{}, false, nil
	}
	if err := f.LoadPage(n); err != nil {
		return GlyphMetrics{}, false, err
	}
	m, ok := f.atlas.Glyph(c)
	return m, ok, nil
}

// TexCoords returns the normalized texture rectangle of c, loading its page
// first if needed.
func (f *Font) TexCoords(c rune) (Rect, bool, error) {
	if _, ok, err := f.Glyph(c); !ok || err != nil {
		return Rect{}, false, err
	}
	uv, ok := f.atlas.TexCoords(c)
	return uv, ok, nil
}

// Texture returns the texture of page n, or false if it is not loaded.
func (f *Font) Texture(n int) (Texture, bool) {
	return f.atlas.Texture(n)
}

// Kerning returns the adjustment between two code points. Missing kerning
// data counts as no adjustment.
func (f *Font) Kerning(left, right rune) fixed.Point26_6 {
	k, err := f.face.Kerning(left, right)
	if err != nil {
		if !errors.Is(err, ErrNoKerningData) {
			Logger().Debug("kerning lookup failed", "left", left, "right", right, "err", err)
		}
		return fixed.Point26_6{}
	}
	return k
}
