package glhf

import "github.com/go-gl/gl/v3.3-core/gl"

// Init initializes OpenGL by loading function pointers from the active OpenGL context.
//
// This function must be run inside the main thread (using "github.com/faiface/mainthread"
// package) after a context has been made current. It also sets the unpack alignment to 1
// so tightly packed single-channel uploads of any width are valid.
func Init() {
	err := gl.Init()
	if err != nil {
		panic(err)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
}

// Clear clears the current framebuffer or window with the given color.
func Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Bounds sets the drawing bounds in pixels. Drawing outside bounds is always discarded.
//
// Calling this function is equivalent to setting viewport and scissor in OpenGL.
func Bounds(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
}

// BlendAlpha enables standard "source over" alpha blending, used for text overlays.
func BlendAlpha(enabled bool) {
	if !enabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// DepthTest toggles the depth test.
func DepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// CullFaces toggles back-face culling.
func CullFaces(enabled bool) {
	if enabled {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}
