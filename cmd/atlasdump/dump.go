package main

import (
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/memmaker/glsandbox/engine/glyph"
	"github.com/pkg/errors"
	"github.com/spakin/netpbm"
)

// renderPage loads page n of face into a CPU texture.
func renderPage(face *glyph.Face, n int) (*image.Alpha, *glyph.Page, error) {
	textures := glyph.NewMemoryTextures()
	atlas := glyph.NewAtlas(textures)
	if err := atlas.LoadPage(face, n); err != nil {
		return nil, nil, err
	}
	page, _ := atlas.Page(n)
	tex, ok := page.Texture().(*glyph.MemoryTexture)
	if !ok {
		return nil, nil, errors.Errorf("page %d: unexpected texture %T", n, page.Texture())
	}
	return tex.Pix, page, nil
}

// writeImage encodes img as PGM for .pgm/.pnm names and as PNG otherwise.
func writeImage(w io.Writer, img *image.Alpha, name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pgm", ".pnm":
		gray := &image.Gray{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
		return netpbm.Encode(w, gray, &netpbm.EncodeOptions{
			Format:   netpbm.PGM,
			MaxValue: 255,
			Comments: []string{"glyph atlas page"},
		})
	default:
		return png.Encode(w, img)
	}
}

const ramp = " .:-=+*#%@"

// asciiPreview renders img with at most width columns. Terminal cells are
// about twice as tall as wide, so each row covers two pixel rows per column.
func asciiPreview(img *image.Alpha, width int) []string {
	b := img.Bounds()
	if width <= 0 || b.Empty() {
		return nil
	}
	scale := (b.Dx() + width - 1) / width
	if scale < 1 {
		scale = 1
	}
	cellW, cellH := scale, scale*2
	var lines []string
	for y := b.Min.Y; y < b.Max.Y; y += cellH {
		var sb strings.Builder
		for x := b.Min.X; x < b.Max.X; x += cellW {
			sum, n := 0, 0
			for yy := y; yy < y+cellH && yy < b.Max.Y; yy++ {
				for xx := x; xx < x+cellW && xx < b.Max.X; xx++ {
					sum += int(img.AlphaAt(xx, yy).A)
					n++
				}
			}
			sb.WriteByte(ramp[sum/n*(len(ramp)-1)/255])
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}
