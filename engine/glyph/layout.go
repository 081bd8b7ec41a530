package glyph

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/unicode/norm"
)

// quarter pixel positioning
const layoutPrecision = 2

// Options switch on layout behaviour beyond a single run of glyphs.
type Options struct {
	// Normalize composes the input to NFC first, so decomposed accents use
	// precomposed glyphs where the font has them.
	Normalize bool
	// LineBreaks moves the pen to the next line on '\n'.
	LineBreaks bool
}

// Text is a laid out string. It does not reference the Font it was built
// from and can be shared freely once returned.
type Text struct {
	// Batches are ordered by the first occurrence of their page in the string.
	Batches []*Batch
	Origin  mgl32.Vec2
	// Pen is the pen position after the last code point.
	Pen mgl32.Vec2
	// Bounds encloses every emitted quad. It is zero when there are none.
	Bounds Rect
}

// QuadCount returns the number of glyph quads over all batches.
func (t *Text) QuadCount() int {
	n := 0
	for _, b := range t.Batches {
		n += b.QuadCount()
	}
	return n
}

// Layout turns s into per-page quad batches, with the pen starting at pen.
// Pen space y grows downwards. Pages touched by s are loaded into f.
func Layout(s string, pen mgl32.Vec2, f *Font) (*Text, error) {
	return LayoutWithOptions(s, pen, f, Options{})
}

// LayoutWithOptions is Layout with extra options.
func LayoutWithOptions(s string, origin mgl32.Vec2, f *Font, opts Options) (*Text, error) {
	if opts.Normalize {
		s = norm.NFC.String(s)
	}

	// pages first, so every texture exists before any quad refers to it
	batches := make(map[int]*Batch)
	var order []*Batch
	for _, c := range s {
		n, _ := PageOf(c)
		if n >= MaxPages || (opts.LineBreaks && c == '\n') {
			continue
		}
		if _, ok := batches[n]; ok {
			continue
		}
		if err := f.LoadPage(n); err != nil {
			return nil, err
		}
		tex, _ := f.Texture(n)
		b := &Batch{Page: n, Texture: tex}
		batches[n] = b
		order = append(order, b)
	}

	atlas := f.Atlas()
	text := &Text{Origin: origin}
	pen := origin
	var last rune
	hasLast := false
	hasBounds := false
	for _, c := range s {
		if opts.LineBreaks && c == '\n' {
			pen = mgl32.Vec2{origin.X(), pen.Y() + ToFloat(f.LineHeight(), layoutPrecision)}
			hasLast = false
			continue
		}
		m, ok := atlas.Glyph(c)
		if !ok {
			if c == ' ' {
				// no space metrics are used, a third of the em is the width
				pen[0] += float32(f.PixelSize()) / 3
			}
			hasLast = false
			continue
		}
		uv, _ := atlas.TexCoords(c)
		n, _ := PageOf(c)

		// bearing y grows upwards, pen space downwards
		topLeft := pen.Add(mgl32.Vec2{
			ToFloat(m.HorizontalBearing.X, layoutPrecision),
			-ToFloat(m.HorizontalBearing.Y, layoutPrecision),
		})
		size := PointToVec(m.Size, layoutPrecision)
		batches[n].addQuad(topLeft, size, uv)

		bottomRight := topLeft.Add(size)
		if !hasBounds {
			text.Bounds = Rect{Min: topLeft, Max: bottomRight}
			hasBounds = true
		} else {
			text.Bounds.Min = mgl32.Vec2{min(text.Bounds.Min.X(), topLeft.X()), min(text.Bounds.Min.Y(), topLeft.Y())}
			text.Bounds.Max = mgl32.Vec2{max(text.Bounds.Max.X(), bottomRight.X()), max(text.Bounds.Max.Y(), bottomRight.Y())}
		}

		pen[0] += ToFloat(m.HorizontalAdvance, layoutPrecision)
		if hasLast {
			pen[0] += ToFloat(f.Kerning(last, c).X, layoutPrecision)
		}
		last, hasLast = c, true
	}
	text.Pen = pen

	for _, b := range order {
		if len(b.Positions) > 0 {
			text.Batches = append(text.Batches, b)
		}
	}
	return text, nil
}
