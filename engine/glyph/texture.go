package glyph

import (
	"image"

	"github.com/pkg/errors"
)

type TextureFormat int

const (
	// FormatAlpha is one coverage byte per pixel.
	FormatAlpha TextureFormat = iota
	FormatRGBA
)

// BytesPerPixel returns the pixel size of the format.
func (f TextureFormat) BytesPerPixel() int {
	if f == FormatRGBA {
		return 4
	}
	return 1
}

// Texture is a handle to GPU texture storage owned by a TextureUploader.
type Texture interface {
	Width() int
	Height() int
}

// TextureUploader is the GPU side of the atlas. Pages allocate one texture
// each and fill it glyph by glyph with region writes.
type TextureUploader interface {
	AllocateTexture(width, height int, format TextureFormat) (Texture, error)
	// WriteTextureRegion uploads tightly packed rows covering rect.
	WriteTextureRegion(tex Texture, rect image.Rectangle, format TextureFormat, pix []byte) error
	// ReleaseTexture frees a texture whose page load was aborted.
	ReleaseTexture(tex Texture) error
}

// MemoryTexture is a CPU texture created by MemoryTextures.
type MemoryTexture struct {
	ID  int
	Pix *image.Alpha
}

func (t *MemoryTexture) Width() int  { return t.Pix.Rect.Dx() }
func (t *MemoryTexture) Height() int { return t.Pix.Rect.Dy() }

// MemoryTextures keeps atlas pages in main memory. It is used for headless
// tools and tests.
type MemoryTextures struct {
	Allocated []*MemoryTexture
	Writes    int
	lastID    int
}

func NewMemoryTextures() *MemoryTextures {
	return &MemoryTextures{}
}

func (m *MemoryTextures) AllocateTexture(width, height int, format TextureFormat) (Texture, error) {
	if format != FormatAlpha {
		return nil, errors.Errorf("glyph: memory textures only hold alpha, got format %d", format)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("glyph: invalid texture size %dx%d", width, height)
	}
	m.lastID++
	tex := &MemoryTexture{
		ID:  m.lastID,
		Pix: image.NewAlpha(image.Rect(0, 0, width, height)),
	}
	m.Allocated = append(m.Allocated, tex)
	return tex, nil
}

func (m *MemoryTextures) WriteTextureRegion(tex Texture, rect image.Rectangle, format TextureFormat, pix []byte) error {
	mt, ok := tex.(*MemoryTexture)
	if !ok {
		return errors.Errorf("glyph: foreign texture %T", tex)
	}
	if format != FormatAlpha {
		return errors.Errorf("glyph: memory textures only hold alpha, got format %d", format)
	}
	if !rect.In(mt.Pix.Rect) {
		return errors.Errorf("glyph: region %v outside texture %v", rect, mt.Pix.Rect)
	}
	w := rect.Dx()
	if len(pix) < w*rect.Dy() {
		return errors.Errorf("glyph: %d bytes for a %dx%d region", len(pix), w, rect.Dy())
	}
	for y := 0; y < rect.Dy(); y++ {
		copy(mt.Pix.Pix[mt.Pix.PixOffset(rect.Min.X, rect.Min.Y+y):], pix[y*w:(y+1)*w])
	}
	m.Writes++
	return nil
}

func (m *MemoryTextures) ReleaseTexture(tex Texture) error {
	for i, t := range m.Allocated {
		if t == tex {
			m.Allocated = append(m.Allocated[:i], m.Allocated[i+1:]...)
			return nil
		}
	}
	return errors.Errorf("glyph: release of unknown texture %T", tex)
}
