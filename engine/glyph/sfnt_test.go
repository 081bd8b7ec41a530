package glyph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

func newGoRegular(t testing.TB, size int) *Face {
	t.Helper()
	face, err := NewFace(goregular.TTF, size)
	if err != nil {
		t.Fatal(err)
	}
	return face
}

func TestSfntMeasureMatchesRender(t *testing.T) {
	face := newGoRegular(t, 18)
	for c := rune(0x21); c <= 0x7E; c++ {
		m, _, err := face.LoadMetricsAndBitmap(c, false)
		if err != nil {
			t.Fatalf("measure %q: %v", c, err)
		}
		rm, bmp, err := face.LoadMetricsAndBitmap(c, true)
		if err != nil {
			t.Fatalf("render %q: %v", c, err)
		}
		if rm != m {
			t.Errorf("%q metrics differ between measure and render", c)
		}
		if bmp.Width != CeilToInt(m.Size.X) || bmp.Rows != CeilToInt(m.Size.Y) {
			t.Errorf("%q bitmap %dx%d, measured %v", c, bmp.Width, bmp.Rows, m.Size)
		}
		if bmp.Stride < bmp.Width || bmp.Stride%4 != 0 || len(bmp.Pix) < bmp.Stride*bmp.Rows {
			t.Errorf("%q bad bitmap layout %d/%d/%d", c, bmp.Width, bmp.Stride, len(bmp.Pix))
		}
		ink := 0
		for y := 0; y < bmp.Rows; y++ {
			for _, v := range bmp.Row(y) {
				ink += int(v)
			}
		}
		if ink == 0 {
			t.Errorf("%q rendered blank", c)
		}
	}
}

func TestSfntSpaceHasNoGlyph(t *testing.T) {
	face := newGoRegular(t, 18)
	if _, _, err := face.LoadMetricsAndBitmap(' ', false); !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("space: %v, want ErrGlyphNotFound", err)
	}
	if _, _, err := face.LoadMetricsAndBitmap(0xE000, false); !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("U+E000: %v, want ErrGlyphNotFound", err)
	}
}

func TestSfntBearingsAndAdvance(t *testing.T) {
	face := newGoRegular(t, 32)
	h, _, err := face.LoadMetricsAndBitmap('H', false)
	if err != nil {
		t.Fatal(err)
	}
	p, _, err := face.LoadMetricsAndBitmap('p', false)
	if err != nil {
		t.Fatal(err)
	}
	if h.HorizontalBearing.Y <= 0 || h.Size.Y-h.HorizontalBearing.Y > fixed.I(1) {
		t.Errorf("'H' sits on the baseline: bearing %v size %v", h.HorizontalBearing, h.Size)
	}
	if p.Size.Y <= p.HorizontalBearing.Y {
		t.Errorf("'p' has no descender: bearing %v size %v", p.HorizontalBearing, p.Size)
	}
	if h.HorizontalAdvance < h.Size.X {
		t.Errorf("'H' advance %v narrower than glyph %v", h.HorizontalAdvance, h.Size.X)
	}
	if face.LineHeight() < h.Size.Y {
		t.Errorf("line height %v below cap height %v", face.LineHeight(), h.Size.Y)
	}
}

func TestSfntKerningUnmapped(t *testing.T) {
	face := newGoRegular(t, 18)
	if _, err := face.Kerning('A', 0xE000); !errors.Is(err, ErrNoKerningData) {
		t.Errorf("Kerning(A, U+E000) = %v, want ErrNoKerningData", err)
	}
}

func TestInvalidFontData(t *testing.T) {
	if _, err := NewFace([]byte("not a font"), 12); err == nil {
		t.Error("parsed garbage")
	}
	if _, err := NewFace(goregular.TTF, 0); err == nil {
		t.Error("accepted pixel size 0")
	}
	if _, err := OpenFace("testdata/missing.ttf", 12); err == nil {
		t.Error("opened a missing file")
	}
}

func TestGoRegularPageZero(t *testing.T) {
	face := newGoRegular(t, 16)
	textures := NewMemoryTextures()
	f := NewFont(face, textures)

	text, err := Layout("Hello, World!", mgl32.Vec2{10, 40}, f)
	if err != nil {
		t.Fatal(err)
	}
	if text.QuadCount() != 12 {
		t.Errorf("QuadCount = %d, want 12 (space has no quad)", text.QuadCount())
	}
	page, _ := f.Atlas().Page(0)
	w, h := page.Size()
	for slot := 0; slot < PageSize; slot++ {
		m, ok := page.Glyph(uint8(slot))
		if !ok {
			continue
		}
		if m.TexRegion.Max.X > w || m.TexRegion.Max.Y > h {
			t.Errorf("slot %#x region %v outside %dx%d", slot, m.TexRegion, w, h)
		}
	}
}
