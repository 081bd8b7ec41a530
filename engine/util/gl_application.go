package util

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/glsandbox/engine/glhf"
)

type GlApplication struct {
	Window             *glfw.Window
	Title              string
	TerminateFunc      func()
	UpdateFunc         func(elapsed float64)
	DrawFunc           func(elapsed float64)
	KeyHandler         func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	MousePosHandler    func(xpos float64, ypos float64)
	MouseButtonHandler func(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey)
	ScrollHandler      func(xoff float64, yoff float64)
	FocusHandler       func(focused bool)
	CursorEnterHandler func(entered bool)
	ClearColor         mgl32.Vec4
	WindowWidth        int
	WindowHeight       int
	ticks              uint64
	FramesPerSecond    float64
	FPSRunningAvg      float64
	FPSMin             float64
	FPSMax             float64
}

// RegisterCallbacks routes the window's input events to the handler fields.
func (a *GlApplication) RegisterCallbacks() {
	a.Window.SetKeyCallback(a.KeyCallback)
	a.Window.SetCursorPosCallback(a.MousePosCallback)
	a.Window.SetMouseButtonCallback(a.MouseButtonCallback)
	a.Window.SetScrollCallback(a.ScrollCallback)
	a.Window.SetFocusCallback(a.FocusCallback)
	a.Window.SetCursorEnterCallback(a.CursorEnterCallback)
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.KeyHandler != nil {
		a.KeyHandler(
			key,
			scancode,
			action,
			mods,
		)
	}
}
func (a *GlApplication) MousePosCallback(w *glfw.Window, xpos float64, ypos float64) {
	if a.MousePosHandler != nil {
		a.MousePosHandler(xpos, ypos)
	}
}

func (a *GlApplication) ScrollCallback(w *glfw.Window, xoff float64, yoff float64) {
	if a.ScrollHandler != nil {
		a.ScrollHandler(xoff, yoff)
	}
}

func (a *GlApplication) MouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if a.MouseButtonHandler != nil {
		a.MouseButtonHandler(button, action, mods)
	}
}

func (a *GlApplication) FocusCallback(w *glfw.Window, focused bool) {
	if a.FocusHandler != nil {
		a.FocusHandler(focused)
	}
}

func (a *GlApplication) CursorEnterCallback(w *glfw.Window, entered bool) {
	if a.CursorEnterHandler != nil {
		a.CursorEnterHandler(entered)
	}
}

// IsKeyPressed reports the current state of key.
func (a *GlApplication) IsKeyPressed(key glfw.Key) bool {
	return a.Window.GetKey(key) == glfw.Press
}

func (a *GlApplication) Run() {
	defer a.TerminateFunc()
	previousTime := glfw.GetTime()
	a.FPSMin = math.MaxFloat64
	// Start Render Loop
	for !a.Window.ShouldClose() {
		glhf.Clear(a.ClearColor[0], a.ClearColor[1], a.ClearColor[2], a.ClearColor[3])

		time := glfw.GetTime()
		elapsed := time - previousTime
		previousTime = time
		a.UpdateFunc(elapsed)

		a.DrawFunc(elapsed)

		if elapsed > 0 {
			a.FramesPerSecond = 1.0 / elapsed
		}
		if a.ticks%60 == 0 {
			sixtyTicksAverage := a.FPSRunningAvg
			a.Window.SetTitle(fmt.Sprintf("%s - FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f) / Elapsed: %.3f", a.Title, a.FramesPerSecond, sixtyTicksAverage, a.FPSMin, a.FPSMax, elapsed*1000))
			a.FPSRunningAvg = 0 + a.FramesPerSecond*(1.0/60.0)
			a.FPSMin = math.MaxFloat64
			a.FPSMax = 0
		} else {
			a.FPSRunningAvg = a.FPSRunningAvg + a.FramesPerSecond*(1.0/60.0)
			if a.FramesPerSecond < a.FPSMin {
				a.FPSMin = a.FramesPerSecond
			}
			if a.FramesPerSecond > a.FPSMax {
				a.FPSMax = a.FramesPerSecond
			}
		}

		a.Window.SwapBuffers()
		glfw.PollEvents()
		a.ticks++
	}
}

// InitOpenGL opens a non-resizable OpenGL 3.3 core window and makes its
// context current. It must run on the main thread.
func InitOpenGL(title string, width, height int) (*glfw.Window, func()) {
	glErr := glfw.Init()
	if glErr != nil {
		LogGlError("glfw: " + glErr.Error())
		panic(glErr)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		panic(err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1) // enable (1) vsync

	glhf.Init()

	version := gl.GoStr(gl.GetString(gl.VERSION))
	LogGlInfo("OpenGL version " + version)

	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.DEPTH_TEST)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	return win, func() {
		glfw.Terminate()
	}
}

func Get2DPixelCoordOrthographicProjectionMatrix(width, height int) mgl32.Mat4 {
	// we want 0,0 to be at the top left
	return mgl32.Ortho2D(0, float32(width), float32(height), 0)
}
