package glyph

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Rect is an axis aligned rectangle. Texture coordinates use it normalized
// to [0,1], layout bounds in pixels.
type Rect struct {
	Min, Max mgl32.Vec2
}

// Atlas is the sparse set of loaded pages of one face. Pages are loaded on
// request and kept for the lifetime of the atlas.
type Atlas struct {
	textures TextureUploader
	pages    map[uint8]*Page
}

// NewAtlas returns an empty atlas that allocates its pages from textures.
func NewAtlas(textures TextureUploader) *Atlas {
	return &Atlas{
		textures: textures,
		pages:    make(map[uint8]*Page),
	}
}

// PageOf returns the page number and slot of c.
func PageOf(c rune) (page int, slot uint8) {
	return int(c >> 8), uint8(c & 0xFF)
}

// LoadPage packs page n from face unless it is already loaded.
func (a *Atlas) LoadPage(face *Face, n int) error {
	if n < 0 || n >= MaxPages {
		return errors.Wrapf(ErrPageOutOfRange, "page %d", n)
	}
	if _, ok := a.pages[uint8(n)]; ok {
		return nil
	}
	page, err := loadPage(face, a.textures, n)
	if err != nil {
		return err
	}
	a.pages[uint8(n)] = page
	return nil
}

// Page returns page n if it is loaded.
func (a *Atlas) Page(n int) (*Page, bool) {
	if n < 0 || n >= MaxPages {
		return nil, false
	}
	p, ok := a.pages[uint8(n)]
	return p, ok
}

// PageNumbers returns the loaded page numbers in ascending order.
func (a *Atlas) PageNumbers() []int {
	numbers := make([]int, 0, len(a.pages))
	for n := range a.pages {
		numbers = append(numbers, int(n))
	}
	sort.Ints(numbers)
	return numbers
}

// Glyph looks c up in its page. It never loads pages: an unloaded page
// reports no glyph.
func (a *Atlas) Glyph(c rune) (GlyphMetrics, bool) {
	n, slot := PageOf(c)
	p, ok := a.Page(n)
	if !ok {
		return GlyphMetrics{}, false
	}
	return p.Glyph(slot)
}

// TexCoords returns the normalized texture rectangle of c.
func (a *Atlas) TexCoords(c rune) (Rect, bool) {
	n, slot := PageOf(c)
	p, ok := a.Page(n)
	if !ok {
		return Rect{}, false
	}
	m, ok := p.Glyph(slot)
	if !ok {
		return Rect{}, false
	}
	w, h := float32(p.width), float32(p.height)
	r := m.TexRegion
	return Rect{
		Min: mgl32.Vec2{float32(r.Min.X) / w, float32(r.Min.Y) / h},
		Max: mgl32.Vec2{float32(r.Max.X) / w, float32(r.Max.Y) / h},
	}, true
}

// Texture returns the texture of page n if it is loaded.
func (a *Atlas) Texture(n int) (Texture, bool) {
	p, ok := a.Page(n)
	if !ok {
		return nil, false
	}
	return p.texture, true
}
