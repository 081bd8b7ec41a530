package glyph

import (
	"image"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func newTestFont(r *fakeRasterizer, pixelSize int) (*Font, *MemoryTextures) {
	textures := NewMemoryTextures()
	return NewFont(NewFaceFromRasterizer(r, pixelSize), textures), textures
}

func TestPageSizeForPrintableASCII(t *testing.T) {
	r := newFakeRasterizer(0x20, 0x7E, 10, 12)
	f, textures := newTestFont(r, 16)

	if err := f.LoadPage(0); err != nil {
		t.Fatal(err)
	}
	page, ok := f.Atlas().Page(0)
	if !ok {
		t.Fatal("page 0 not loaded")
	}
	w, h := page.Size()
	if w != 95*11 || h != 13 {
		t.Errorf("page size = %dx%d, want %dx%d", w, h, 95*11, 13)
	}
	if page.Len() != 95 {
		t.Errorf("page holds %d glyphs, want 95", page.Len())
	}
	if len(textures.Allocated) != 1 {
		t.Errorf("allocated %d textures, want 1", len(textures.Allocated))
	}
	if textures.Writes != 95 {
		t.Errorf("wrote %d regions, want 95", textures.Writes)
	}
}

func TestPageRangeSkipsControlCharacters(t *testing.T) {
	r := newFakeRasterizer(0, 0x1FF, 4, 4)
	f, _ := newTestFont(r, 8)

	for _, n := range []int{0, 1} {
		if err := f.LoadPage(n); err != nil {
			t.Fatal(err)
		}
	}
	p0, _ := f.Atlas().Page(0)
	p1, _ := f.Atlas().Page(1)
	if p0.Len() != 256-0x20 {
		t.Errorf("page 0 holds %d glyphs, want %d", p0.Len(), 256-0x20)
	}
	if _, ok := p0.Glyph(0x0A); ok {
		t.Error("control character packed into page 0")
	}
	if p1.Len() != 256 {
		t.Errorf("page 1 holds %d glyphs, want 256", p1.Len())
	}
	if _, ok := p1.Glyph(0x0A); !ok {
		t.Error("slot 0x0A missing from page 1")
	}
}

func TestPackingRegionsAreDisjointAndInBounds(t *testing.T) {
	r := newFakeRasterizer(0x20, 0xFF, 7, 9)
	r.sizes['i'] = [2]int{2, 9}
	r.sizes['W'] = [2]int{13, 10}
	r.sizes['g'] = [2]int{6, 14}
	f, _ := newTestFont(r, 12)

	if err := f.LoadPage(0); err != nil {
		t.Fatal(err)
	}
	page, _ := f.Atlas().Page(0)
	w, h := page.Size()
	bounds := image.Rect(0, 0, w, h)
	if h != 15 {
		t.Errorf("page height = %d, want tallest glyph + 1", h)
	}

	var regions []image.Rectangle
	for slot := 0; slot < PageSize; slot++ {
		m, ok := page.Glyph(uint8(slot))
		if !ok {
			continue
		}
		if !m.TexRegion.In(bounds) {
			t.Errorf("slot %#x region %v outside %v", slot, m.TexRegion, bounds)
		}
		regions = append(regions, m.TexRegion)
	}
	for i := range regions {
		for j := i + 1; j < len(regions); j++ {
			if regions[i].Overlaps(regions[j]) {
				t.Errorf("regions %v and %v overlap", regions[i], regions[j])
			}
		}
	}
}

func TestRenderedBitmapFitsReservedRegion(t *testing.T) {
	r := newFakeRasterizer(0x20, 0x7E, 5, 8)
	face := NewFaceFromRasterizer(r, 10)
	for c := rune(0x20); c <= 0x7E; c++ {
		m, _, err := face.LoadMetricsAndBitmap(c, false)
		if err != nil {
			t.Fatal(err)
		}
		_, bmp, err := face.LoadMetricsAndBitmap(c, true)
		if err != nil {
			t.Fatal(err)
		}
		if bmp.Width > CeilToInt(m.Size.X) || bmp.Rows > CeilToInt(m.Size.Y) {
			t.Errorf("%q rendered %dx%d, measured %v", c, bmp.Width, bmp.Rows, m.Size)
		}
	}
}

func TestPageCopyHonoursStride(t *testing.T) {
	r := newFakeRasterizer('A', 'C', 3, 2)
	f, textures := newTestFont(r, 4)
	if err := f.LoadPage(0); err != nil {
		t.Fatal(err)
	}
	tex := textures.Allocated[0]
	for _, c := range "ABC" {
		m, _ := f.Atlas().Glyph(c)
		for y := m.TexRegion.Min.Y; y < m.TexRegion.Max.Y; y++ {
			for x := m.TexRegion.Min.X; x < m.TexRegion.Max.X; x++ {
				if got := tex.Pix.AlphaAt(x, y).A; got != byte(c) {
					t.Fatalf("%q pixel (%d,%d) = %#x, want %#x", c, x, y, got, byte(c))
				}
			}
		}
		// the gap column stays empty
		if got := tex.Pix.AlphaAt(m.TexRegion.Max.X, 0).A; got != 0 {
			t.Errorf("gap after %q = %#x, want 0", c, got)
		}
	}
}

func TestRegionOverflowAbortsPageLoad(t *testing.T) {
	r := newFakeRasterizer(0x20, 0x7E, 6, 6)
	r.renderGrow = 1
	f, textures := newTestFont(r, 8)

	err := f.LoadPage(0)
	if !errors.Is(err, ErrRegionOverflow) {
		t.Fatalf("LoadPage error = %v, want region overflow", err)
	}
	var overflow *RegionOverflowError
	if !errors.As(err, &overflow) || overflow.CodePoint != 0x20 {
		t.Errorf("overflow = %+v", overflow)
	}
	if _, ok := f.Atlas().Page(0); ok {
		t.Error("aborted page was cached")
	}
	if len(textures.Allocated) != 0 {
		t.Errorf("aborted page left %d textures allocated", len(textures.Allocated))
	}
}

func TestRenderFailureAfterMeasureAbortsPageLoad(t *testing.T) {
	r := newFakeRasterizer('A', 'Z', 6, 6)
	r.renderErr = map[rune]error{'K': errors.New("broken outline")}
	f, textures := newTestFont(r, 8)

	err := f.LoadPage(0)
	var overflow *RegionOverflowError
	if !errors.As(err, &overflow) || !errors.Is(err, ErrRegionOverflow) {
		t.Fatalf("LoadPage error = %v, want region overflow", err)
	}
	if overflow.CodePoint != 'K' || overflow.Cause == nil {
		t.Errorf("overflow = %+v", overflow)
	}
	msg := err.Error()
	if !strings.Contains(msg, "failed to render") || !strings.Contains(msg, "broken outline") || strings.Contains(msg, "0x0") {
		t.Errorf("message %q", msg)
	}
	if len(textures.Allocated) != 0 {
		t.Errorf("aborted page left %d textures allocated", len(textures.Allocated))
	}

	// a retry measures again and succeeds once the backend recovers
	delete(r.renderErr, 'K')
	if err := f.LoadPage(0); err != nil {
		t.Fatal(err)
	}
	if len(textures.Allocated) != 1 {
		t.Errorf("%d textures after retry, want 1", len(textures.Allocated))
	}
}

func TestEmptyPageStillHasTexture(t *testing.T) {
	r := newFakeRasterizer('a', 'z', 4, 4)
	f, _ := newTestFont(r, 8)
	if err := f.LoadPage(3); err != nil {
		t.Fatal(err)
	}
	tex, ok := f.Texture(3)
	if !ok || tex.Width() != 1 || tex.Height() != 1 {
		t.Errorf("empty page texture = %v %v", tex, ok)
	}
}
