package util

import (
	"image"
	"image/color"

	"github.com/ojrac/opensimplex-go"
)

// NoiseImage fills a size x size image with two octaves of simplex noise
// shading between dark and light. Equal seeds give equal images.
func NoiseImage(size int, seed int64, frequency float64, dark, light color.NRGBA) *image.NRGBA {
	noise := opensimplex.NewNormalized(seed)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)*frequency, float64(y)*frequency
			v := 0.7*noise.Eval2(fx, fy) + 0.3*noise.Eval2(fx*4, fy*4)
			img.SetNRGBA(x, y, lerpColor(dark, light, v))
		}
	}
	return img
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
