package glhf

import (
	"image"

	"github.com/memmaker/glsandbox/engine/glyph"
	"github.com/pkg/errors"
)

// GlyphTextures uploads atlas pages into OpenGL textures. Alpha pages become
// single-channel Red textures.
type GlyphTextures struct {
	smooth bool
}

func NewGlyphTextures(smooth bool) *GlyphTextures {
	return &GlyphTextures{smooth: smooth}
}

func pixelFormat(format glyph.TextureFormat) (PixelFormat, error) {
	switch format {
	case glyph.FormatAlpha:
		return Red, nil
	case glyph.FormatRGBA:
		return RGBA, nil
	}
	return 0, errors.Errorf("glyph textures: unknown format %d", format)
}

func (g *GlyphTextures) AllocateTexture(width, height int, format glyph.TextureFormat) (glyph.Texture, error) {
	pf, err := pixelFormat(format)
	if err != nil {
		return nil, err
	}
	tex, err := NewTextureWithFormat(width, height, pf, g.smooth, nil)
	if err != nil {
		return nil, errors.Wrap(err, "glyph textures")
	}
	return tex, nil
}

func (g *GlyphTextures) WriteTextureRegion(tex glyph.Texture, rect image.Rectangle, format glyph.TextureFormat, pix []byte) error {
	t, ok := tex.(*Texture)
	if !ok {
		return errors.Errorf("glyph textures: foreign texture %T", tex)
	}
	pf, err := pixelFormat(format)
	if err != nil {
		return err
	}
	if pf != t.format {
		return errors.Errorf("glyph textures: writing format %d into format %d texture", pf, t.format)
	}
	t.Begin()
	defer t.End()
	n := rect.Dx() * rect.Dy() * pf.BytesPerPixel()
	if len(pix) < n {
		return errors.Errorf("glyph textures: %d bytes for region %v", len(pix), rect)
	}
	return errors.Wrap(t.SetPixels(rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), pix[:n]), "glyph textures")
}

func (g *GlyphTextures) ReleaseTexture(tex glyph.Texture) error {
	t, ok := tex.(*Texture)
	if !ok {
		return errors.Errorf("glyph textures: foreign texture %T", tex)
	}
	t.Release()
	return nil
}
