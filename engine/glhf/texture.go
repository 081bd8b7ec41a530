package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// PixelFormat selects the storage of a Texture.
type PixelFormat int

const (
	// RGBA is four bytes per pixel, the default for images.
	RGBA PixelFormat = iota
	// Red is one byte per pixel stored in the red channel (GL_R8), used for glyph coverage.
	Red
)

func (f PixelFormat) BytesPerPixel() int {
	if f == Red {
		return 1
	}
	return 4
}

func (f PixelFormat) glFormats() (internal int32, format uint32) {
	if f == Red {
		return gl.R8, gl.RED
	}
	return gl.RGBA, gl.RGBA
}

// Texture is an OpenGL texture.
type Texture struct {
	tex           binder
	width, height int
	format        PixelFormat
	smooth        bool
}

// NewCheckerTexture creates a size x size RGBA texture of two alternating colors in
// cells of cell pixels.
func NewCheckerTexture(size, cell int, a, b [3]uint8) *Texture {
	if cell <= 0 {
		cell = 1
	}
	pixels := make([]uint8, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			i := (y*size + x) * 4
			pixels[i] = c[0]
			pixels[i+1] = c[1]
			pixels[i+2] = c[2]
			pixels[i+3] = 255
		}
	}
	return NewTexture(size, size, false, pixels)
}

// NewTexture creates a new RGBA texture with the specified width and height with some initial
// pixel values. The pixels must be a sequence of RGBA values (one byte per component).
func NewTexture(width, height int, smooth bool, pixels []uint8) *Texture {
	tex, err := NewTextureWithFormat(width, height, RGBA, smooth, pixels)
	if err != nil {
		panic(err)
	}
	return tex
}

// NewTextureWithFormat creates a texture of the given format. A nil pixels slice leaves
// the texture cleared to zero.
func NewTextureWithFormat(width, height int, format PixelFormat, smooth bool, pixels []uint8) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("new texture: invalid size %dx%d", width, height)
	}
	size := width * height * format.BytesPerPixel()
	if pixels == nil {
		pixels = make([]uint8, size)
	}
	if len(pixels) < size {
		return nil, errors.Errorf("new texture: %d bytes for %dx%d", len(pixels), width, height)
	}

	tex := &Texture{
		tex: binder{
			restoreLoc: gl.TEXTURE_BINDING_2D,
			bindFunc: func(obj uint32) {
				gl.BindTexture(gl.TEXTURE_2D, obj)
			},
		},
		width:  width,
		height: height,
		format: format,
	}

	gl.GenTextures(1, &tex.tex.obj)

	tex.Begin()
	defer tex.End()

	internal, glFormat := format.glFormats()
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		internal,
		int32(width),
		int32(height),
		0,
		glFormat,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)

	tex.SetSmooth(smooth)
	if format == Red {
		tex.SetWrapToEdge()
	} else {
		tex.SetWrapToRepeat()
	}
	if err := checkError("new texture"); err != nil {
		gl.DeleteTextures(1, &tex.tex.obj)
		return nil, err
	}
	runtime.SetFinalizer(tex, (*Texture).delete)

	return tex, nil
}

func (t *Texture) delete() {
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &t.tex.obj)
	})
}

// Release deletes the texture right away. It must be called on the GL
// thread, and the Texture must not be used afterwards.
func (t *Texture) Release() {
	if t.tex.obj == 0 {
		return
	}
	runtime.SetFinalizer(t, nil)
	gl.DeleteTextures(1, &t.tex.obj)
	t.tex.obj = 0
}

// ID returns the OpenGL ID of this Texture.
func (t *Texture) ID() uint32 {
	return t.tex.obj
}

// Width returns the width of the Texture in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the Texture in pixels.
func (t *Texture) Height() int {
	return t.height
}

// Format returns the pixel format the Texture was created with.
func (t *Texture) Format() PixelFormat {
	return t.format
}

// SetPixels sets the content of a sub-region of the Texture. Pixels must be tightly packed
// rows in the Texture's format. The Texture must be bound.
func (t *Texture) SetPixels(x, y, w, h int, pixels []uint8) error {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > t.width || y+h > t.height {
		return errors.Errorf("set pixels: region (%d,%d %dx%d) outside %dx%d texture", x, y, w, h, t.width, t.height)
	}
	if len(pixels) != w*h*t.format.BytesPerPixel() {
		return errors.Errorf("set pixels: wrong number of pixels (%d for %dx%d)", len(pixels), w, h)
	}
	if w == 0 || h == 0 {
		return nil
	}
	_, glFormat := t.format.glFormats()
	gl.TexSubImage2D(
		gl.TEXTURE_2D,
		0,
		int32(x),
		int32(y),
		int32(w),
		int32(h),
		glFormat,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
	return checkError("set pixels")
}

// Pixels returns the content of a sub-region of the Texture in the Texture's format.
// The Texture must be bound.
func (t *Texture) Pixels(x, y, w, h int) []uint8 {
	bpp := t.format.BytesPerPixel()
	pixels := make([]uint8, t.width*t.height*bpp)
	_, glFormat := t.format.glFormats()
	gl.GetTexImage(
		gl.TEXTURE_2D,
		0,
		glFormat,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
	subPixels := make([]uint8, w*h*bpp)
	for i := 0; i < h; i++ {
		row := pixels[((i+y)*t.width+x)*bpp : ((i+y)*t.width+x+w)*bpp]
		copy(subPixels[i*w*bpp:(i+1)*w*bpp], row)
	}
	return subPixels
}

// SetSmooth sets whether the Texture should be drawn "smoothly" or "pixely".
//
// It affects how the Texture is drawn when zoomed. Smooth interpolates between the neighbour
// pixels, while pixely always chooses the nearest pixel.
func (t *Texture) SetSmooth(smooth bool) {
	t.smooth = smooth
	if smooth {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
}

func (t *Texture) SetWrapToRepeat() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
}

// SetWrapToEdge clamps sampling to the texture border. Glyph pages use it so
// neighbouring glyphs never bleed in.
func (t *Texture) SetWrapToEdge() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Smooth returns whether the Texture is set to be drawn "smooth" or "pixely".
func (t *Texture) Smooth() bool {
	return t.smooth
}

// Begin binds the Texture. This is necessary before using the Texture.
func (t *Texture) Begin() {
	t.tex.bind()
}

// End unbinds the Texture and restores the previous one.
func (t *Texture) End() {
	t.tex.restore()
}
