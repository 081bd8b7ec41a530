package glyph

import (
	"image"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/runenames"
)

const (
	// PageSize is the number of code points covered by one page.
	PageSize = 256
	// MaxPages covers the Basic Multilingual Plane.
	MaxPages = 256

	// first code point packed into page 0, the C0 controls have no glyphs
	firstPrintable = 0x20
	// gap between neighbouring glyphs against bilinear filter bleed
	glyphGap = 1
)

// Page is one packed texture covering 256 contiguous code points. It is
// immutable once loaded.
type Page struct {
	number  int
	texture Texture
	width   int
	height  int
	glyphs  map[uint8]*GlyphMetrics
}

// Number returns the page number, the code point bits above the low byte.
func (p *Page) Number() int { return p.number }

// Texture returns the backing texture.
func (p *Page) Texture() Texture { return p.texture }

// Size returns the texture size in pixels.
func (p *Page) Size() (width, height int) { return p.width, p.height }

// Len returns the number of renderable glyphs on the page.
func (p *Page) Len() int { return len(p.glyphs) }

// Glyph returns the metrics stored in slot.
func (p *Page) Glyph(slot uint8) (GlyphMetrics, bool) {
	m, ok := p.glyphs[slot]
	if !ok {
		return GlyphMetrics{}, false
	}
	return *m, true
}

// pageRange returns the code points packed into page n.
func pageRange(n int) (first, last rune) {
	first = rune(n) << 8
	last = first + PageSize - 1
	if n == 0 {
		first = firstPrintable
	}
	return first, last
}

// loadPage packs page n of face into a new texture.
//
// The texture has to be allocated at its final size before any glyph can be
// uploaded, so packing runs in three steps: measure every glyph and reserve
// its region on a single shelf, allocate, then render and upload. The steps
// must not be merged.
func loadPage(face *Face, textures TextureUploader, n int) (*Page, error) {
	log := Logger()
	first, last := pageRange(n)
	page := &Page{
		number: n,
		glyphs: make(map[uint8]*GlyphMetrics),
	}

	// measure
	currentWidth, maxHeight := 0, 0
	for c := first; c <= last; c++ {
		m, _, err := face.LoadMetricsAndBitmap(c, false)
		if err != nil {
			log.Debug("skipping code point", "page", n, "codepoint", c, "name", runenames.Name(c), "err", err)
			continue
		}
		w, h := CeilToInt(m.Size.X), CeilToInt(m.Size.Y)
		m.TexRegion = image.Rect(currentWidth, 0, currentWidth+w, h)
		currentWidth += w + glyphGap
		if h+glyphGap > maxHeight {
			maxHeight = h + glyphGap
		}
		page.glyphs[uint8(c&0xFF)] = &m
	}

	// allocate
	page.width, page.height = max(currentWidth, 1), max(maxHeight, 1)
	tex, err := textures.AllocateTexture(page.width, page.height, FormatAlpha)
	if err != nil {
		return nil, errors.Wrapf(err, "glyph: allocate page %d (%dx%d)", n, page.width, page.height)
	}
	page.texture = tex

	if err := renderGlyphs(face, textures, page, first, last); err != nil {
		if rerr := textures.ReleaseTexture(tex); rerr != nil {
			log.Debug("releasing aborted page texture", "page", n, "err", rerr)
		}
		return nil, err
	}

	log.Debug("page loaded", "page", n, "glyphs", len(page.glyphs), "width", page.width, "height", page.height)
	return page, nil
}

// renderGlyphs rasterizes the measured glyphs of page and uploads them into
// page.texture at their reserved regions.
func renderGlyphs(face *Face, textures TextureUploader, page *Page, first, last rune) error {
	tex := page.texture
	var scratch []byte
	for c := first; c <= last; c++ {
		m, ok := page.glyphs[uint8(c&0xFF)]
		if !ok {
			continue
		}
		_, bmp, err := face.LoadMetricsAndBitmap(c, true)
		if err != nil {
			// measured before, so the backend contradicts itself
			return &RegionOverflowError{CodePoint: c, Reserved: m.TexRegion, Cause: err}
		}
		if bmp.Rows > m.TexRegion.Dy() || bmp.Width > m.TexRegion.Dx() {
			return &RegionOverflowError{CodePoint: c, Reserved: m.TexRegion, Width: bmp.Width, Rows: bmp.Rows}
		}
		if bmp.Width == 0 || bmp.Rows == 0 {
			continue
		}
		need := bmp.Width * bmp.Rows
		if cap(scratch) < need {
			scratch = make([]byte, need)
		}
		scratch = scratch[:need]
		for y := 0; y < bmp.Rows; y++ {
			copy(scratch[y*bmp.Width:(y+1)*bmp.Width], bmp.Row(y))
		}
		dst := image.Rect(m.TexRegion.Min.X, m.TexRegion.Min.Y, m.TexRegion.Min.X+bmp.Width, m.TexRegion.Min.Y+bmp.Rows)
		if err := textures.WriteTextureRegion(tex, dst, FormatAlpha, scratch); err != nil {
			return errors.Wrapf(err, "glyph: upload U+%04X", c)
		}
	}

	return nil
}
