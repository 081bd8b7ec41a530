package glyph

import (
	"testing"

	"github.com/pkg/errors"
)

func TestLoadPageIsIdempotent(t *testing.T) {
	r := newFakeRasterizer(0x20, 0x7E, 10, 12)
	f, textures := newTestFont(r, 16)

	if err := f.LoadPage(0); err != nil {
		t.Fatal(err)
	}
	first, _ := f.Atlas().Page(0)
	tex, _ := f.Texture(0)
	measures, renders := r.measures, r.renders

	if err := f.LoadPage(0); err != nil {
		t.Fatal(err)
	}
	second, _ := f.Atlas().Page(0)
	tex2, _ := f.Texture(0)
	if first != second || tex != tex2 {
		t.Error("second load replaced the page")
	}
	if len(textures.Allocated) != 1 {
		t.Errorf("allocated %d textures, want 1", len(textures.Allocated))
	}
	if r.measures != measures || r.renders != renders {
		t.Error("second load touched the rasterizer")
	}
}

func TestPagesLoadIndependently(t *testing.T) {
	r := newFakeRasterizer(0, 0x1FF, 8, 8)
	f, _ := newTestFont(r, 10)

	if err := f.LoadPage(0); err != nil {
		t.Fatal(err)
	}
	before, _ := f.Atlas().Glyph('A')
	if err := f.LoadPage(1); err != nil {
		t.Fatal(err)
	}
	t0, ok0 := f.Texture(0)
	t1, ok1 := f.Texture(1)
	if !ok0 || !ok1 {
		t.Fatal("textures missing")
	}
	if t0 == t1 {
		t.Error("pages share a texture")
	}
	after, _ := f.Atlas().Glyph('A')
	if before != after {
		t.Error("loading page 1 changed page 0")
	}
	if _, ok := f.Atlas().Glyph(0x141); !ok {
		t.Error("U+0141 missing from page 1")
	}
	if got := f.Atlas().PageNumbers(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("PageNumbers = %v", got)
	}
}

func TestAtlasGlyphDoesNotLoad(t *testing.T) {
	r := newFakeRasterizer(0x20, 0x7E, 8, 8)
	f, _ := newTestFont(r, 10)

	if _, ok := f.Atlas().Glyph('A'); ok {
		t.Error("glyph found on an unloaded page")
	}
	if _, ok := f.Texture(0); ok {
		t.Error("texture found for an unloaded page")
	}
	if r.measures != 0 {
		t.Error("atlas lookup measured glyphs")
	}

	m, ok, err := f.Glyph('A')
	if err != nil || !ok {
		t.Fatalf("Font.Glyph = %v %v", ok, err)
	}
	if m.Size.X.Floor() != 8 {
		t.Errorf("size = %v", m.Size)
	}
	if _, ok := f.Atlas().Page(0); !ok {
		t.Error("Font.Glyph did not load the page")
	}
}

func TestGlyphNotFound(t *testing.T) {
	r := newFakeRasterizer(0x20, 0x7E, 8, 8)
	face := NewFaceFromRasterizer(r, 10)
	_, _, err := face.LoadMetricsAndBitmap(0xE123, false)
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("err = %v, want ErrGlyphNotFound", err)
	}

	f := NewFont(face, NewMemoryTextures())
	_, ok, err := f.Glyph(0xE123)
	if err != nil || ok {
		t.Errorf("Font.Glyph(U+E123) = %v %v", ok, err)
	}
	_, ok, err = f.Glyph(0x1F600)
	if err != nil || ok {
		t.Errorf("Font.Glyph(U+1F600) = %v %v", ok, err)
	}
}

func TestPageOutOfRange(t *testing.T) {
	r := newFakeRasterizer(0x20, 0x7E, 8, 8)
	f, _ := newTestFont(r, 10)
	for _, n := range []int{-1, MaxPages, 0x1F6} {
		if err := f.LoadPage(n); !errors.Is(err, ErrPageOutOfRange) {
			t.Errorf("LoadPage(%d) = %v", n, err)
		}
	}
}

func TestTexCoordsAreNormalized(t *testing.T) {
	r := newFakeRasterizer(0x20, 0xFF, 9, 11)
	r.sizes['M'] = [2]int{15, 11}
	r.sizes['j'] = [2]int{4, 16}
	f, _ := newTestFont(r, 14)
	if err := f.LoadPage(0); err != nil {
		t.Fatal(err)
	}
	for c := rune(0x20); c <= 0xFF; c++ {
		uv, ok := f.Atlas().TexCoords(c)
		if !ok {
			t.Fatalf("no tex coords for %q", c)
		}
		for i := 0; i < 2; i++ {
			if uv.Min[i] < 0 || uv.Min[i] > uv.Max[i] || uv.Max[i] > 1 {
				t.Errorf("%q tex coords %v out of bounds", c, uv)
			}
		}
	}

	uv, _, err := f.TexCoords('j')
	if err != nil {
		t.Fatal(err)
	}
	if uv.Min.Y() != 0 || uv.Max.Y() != 16.0/17.0 {
		t.Errorf("'j' tex coords %v", uv)
	}
}

func TestFontKerning(t *testing.T) {
	r := newFakeRasterizer(0x20, 0x7E, 8, 8)
	r.kerning[kernPair{'A', 'V'}] = -128
	f, _ := newTestFont(r, 10)
	if k := f.Kerning('A', 'V'); k.X != -128 {
		t.Errorf("Kerning(A, V) = %v", k)
	}
	if k := f.Kerning('V', 'A'); k.X != 0 || k.Y != 0 {
		t.Errorf("Kerning(V, A) = %v, want zero", k)
	}
}
