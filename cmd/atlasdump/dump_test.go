package main

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/memmaker/glsandbox/engine/glyph"
	"github.com/pkg/errors"
	"github.com/spakin/netpbm"
	"golang.org/x/image/font/gofont/goregular"
)

func goRegular(t *testing.T, size int) *glyph.Face {
	t.Helper()
	face, err := glyph.NewFace(goregular.TTF, size)
	if err != nil {
		t.Fatal(err)
	}
	return face
}

func TestRenderPageZero(t *testing.T) {
	img, page, err := renderPage(goRegular(t, 16), 0)
	if err != nil {
		t.Fatal(err)
	}
	w, h := page.Size()
	if img.Bounds() != image.Rect(0, 0, w, h) {
		t.Errorf("image %v, page %dx%d", img.Bounds(), w, h)
	}
	if page.Len() < 94 {
		t.Errorf("%d glyphs on page 0", page.Len())
	}
	if _, _, err := renderPage(goRegular(t, 16), 256); !errors.Is(err, glyph.ErrPageOutOfRange) {
		t.Errorf("page 256: %v", err)
	}
}

func TestWriteImageFormats(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 3, 2))
	img.Pix = []byte{0, 128, 255, 1, 2, 3}

	var pngBuf bytes.Buffer
	if err := writeImage(&pngBuf, img, "page.PNG"); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&pngBuf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != 3 {
		t.Errorf("png bounds %v", decoded.Bounds())
	}

	var pgmBuf bytes.Buffer
	if err := writeImage(&pgmBuf, img, "page.pgm"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pgmBuf.Bytes(), []byte("P5")) {
		t.Errorf("pgm header %q", pgmBuf.Bytes()[:2])
	}
	gray, err := netpbm.Decode(&pgmBuf, nil)
	if err != nil {
		t.Fatal(err)
	}
	r, _, _, _ := gray.At(1, 0).RGBA()
	if r>>8 != 128 {
		t.Errorf("pixel (1,0) = %d, want 128", r>>8)
	}
}

func TestASCIIPreview(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 4; x < 8; x++ {
			img.Pix[y*img.Stride+x] = 255
		}
	}
	lines := asciiPreview(img, 4)
	if len(lines) != 1 {
		t.Fatalf("lines %q", lines)
	}
	if lines[0] != "  @@" {
		t.Errorf("preview %q", lines[0])
	}
	if got := asciiPreview(img, 100); len(got) != 2 || !strings.HasSuffix(got[0], "@@@@") {
		t.Errorf("full width preview %q", got)
	}
	if asciiPreview(img, 0) != nil {
		t.Error("zero width preview")
	}
}

func TestRunArguments(t *testing.T) {
	if err := run("", 16, "zero", "", true); err == nil {
		t.Error("bad page accepted")
	}
	if err := run("", 16, "0", "", false); err == nil {
		t.Error("no output accepted")
	}
}
