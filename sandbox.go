package main

import (
	_ "embed"
	"fmt"
	"image/color"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/glsandbox/engine/glhf"
	"github.com/memmaker/glsandbox/engine/glyph"
	"github.com/memmaker/glsandbox/engine/gltext"
	"github.com/memmaker/glsandbox/engine/util"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

//go:embed shaders/mesh.vert
var meshVertexShader string

//go:embed shaders/mesh.frag
var meshFragmentShader string

const (
	meshUniformProjection = iota
	meshUniformView
	meshUniformModel
	meshUniformLightDir
)

const (
	overlayMargin  = 12
	statusInterval = 0.5
)

type Sandbox struct {
	*util.GlApplication
	config     Config
	camera     *util.FlyCamera
	controller *util.FlyController

	meshShader *glhf.Shader
	mesh       *util.Mesh

	text         *gltext.Renderer
	overlay      *gltext.TextMesh
	status       *gltext.TextMesh
	statusTimer  float64
	typewriter   *Typewriter
	projection2D mgl32.Mat4

	timer        *util.Timer
	overlayAlpha float32
	fade         *util.Lerper[float32]
}

// NewSandbox opens the window and creates every GL resource. It must run on
// the main thread.
func NewSandbox(cfg Config) (*Sandbox, error) {
	window, terminateFunc := util.InitOpenGL(cfg.Title, cfg.Width, cfg.Height)
	glApp := &util.GlApplication{
		Title:         cfg.Title,
		WindowWidth:   cfg.Width,
		WindowHeight:  cfg.Height,
		Window:        window,
		TerminateFunc: terminateFunc,
		ClearColor:    mgl32.Vec4{0.1, 0.1, 0.12, 1},
	}
	glApp.RegisterCallbacks()

	s := &Sandbox{
		GlApplication: glApp,
		config:        cfg,
		camera:        util.NewDefaultFlyCamera(cfg.Width, cfg.Height),
		controller:    util.NewFlyController(cfg.CameraSpeed),
		projection2D:  util.Get2DPixelCoordOrthographicProjectionMatrix(cfg.Width, cfg.Height),
		typewriter:    NewTypewriter(cfg.Text, time.Duration(cfg.TypewriterMs)*time.Millisecond),
		timer:         util.NewTimer(),
		overlayAlpha:  1,
	}
	s.fade = util.NewLerper(util.LerpFloat32, func(a float32) { s.overlayAlpha = a }, 1, 1, 0.25)
	if err := s.loadScene(); err != nil {
		terminateFunc()
		return nil, err
	}
	if err := s.loadText(); err != nil {
		terminateFunc()
		return nil, err
	}
	if err := util.CheckForGLError("sandbox setup"); err != nil {
		terminateFunc()
		return nil, err
	}
	if err := s.typewriter.Start(); err != nil {
		terminateFunc()
		return nil, errors.Wrap(err, "typewriter")
	}

	s.UpdateFunc = s.Update
	s.DrawFunc = s.Draw
	s.KeyHandler = s.handleKeyEvents
	s.MouseButtonHandler = s.handleMouseButtonEvents
	s.FocusHandler = func(focused bool) {
		if !focused {
			s.releaseCursor()
		}
	}
	s.CursorEnterHandler = func(entered bool) {
		if !entered {
			s.releaseCursor()
		}
	}
	return s, nil
}

func (s *Sandbox) loadScene() error {
	shader, err := glhf.NewShader(util.MeshVertexFormat, glhf.AttrFormat{
		{Name: "projection", Type: glhf.Mat4},
		{Name: "view", Type: glhf.Mat4},
		{Name: "model", Type: glhf.Mat4},
		{Name: "lightDir", Type: glhf.Vec3},
	}, meshVertexShader, meshFragmentShader)
	if err != nil {
		return errors.Wrap(err, "mesh shader")
	}
	s.meshShader = shader

	var texture *glhf.Texture
	if s.config.MeshPath != "" {
		model, err := util.LoadGLTF(s.config.MeshPath)
		if err != nil {
			return err
		}
		if s.mesh, err = util.NewMesh(shader, model.Data); err != nil {
			return err
		}
		if model.BaseColor != nil {
			texture = util.NewTextureFromImage(model.BaseColor, false)
		}
		util.LogIOInfo(fmt.Sprintf("loaded %s: %d vertices", s.config.MeshPath, model.Data.VertexCount()))
	} else if s.mesh, err = util.NewQuadMesh(shader, 1, 2); err != nil {
		return err
	}

	if s.config.TexturePath != "" {
		if texture, err = util.LoadTexture(s.config.TexturePath); err != nil {
			return err
		}
	}
	if texture == nil && s.config.Pattern == "noise" {
		img := util.NoiseImage(256, 1, 0.03, color.NRGBA{R: 30, G: 60, B: 110, A: 255}, color.NRGBA{R: 235, G: 225, B: 200, A: 255})
		texture = util.NewTextureFromImage(img, false)
	}
	if texture == nil {
		texture = glhf.NewCheckerTexture(64, 8, [3]uint8{230, 230, 230}, [3]uint8{40, 90, 160})
	}
	s.mesh.SetTexture(texture)
	return nil
}

func (s *Sandbox) loadText() error {
	var face *glyph.Face
	var err error
	if s.config.FontPath == "" {
		face, err = glyph.NewFace(goregular.TTF, s.config.FontSize)
	} else {
		face, err = glyph.OpenFace(s.config.FontPath, s.config.FontSize)
	}
	if err != nil {
		return err
	}
	shader, err := gltext.NewTextShader()
	if err != nil {
		return err
	}
	s.text = gltext.NewRendererForFace(shader, face)
	s.text.SetOptions(glyph.Options{LineBreaks: true, Normalize: s.config.Normalize})
	s.text.SetColor(mgl32.Vec4(s.config.TextColor))
	fontName := s.config.FontPath
	if fontName == "" {
		fontName = "Go Regular"
	}
	util.Logf(util.LogTextInfo, "font %s at %dpx, line height %.2f", fontName, face.PixelSize(), glyph.ToFloat(face.LineHeight(), 2))
	return nil
}

// baseline of the first overlay line
func (s *Sandbox) overlayPen() mgl32.Vec2 {
	lineHeight := glyph.ToFloat(s.text.Font().LineHeight(), 2)
	return mgl32.Vec2{overlayMargin, overlayMargin + lineHeight}
}

func (s *Sandbox) statusPen() mgl32.Vec2 {
	return mgl32.Vec2{overlayMargin, float32(s.WindowHeight) - overlayMargin}
}

func (s *Sandbox) Update(elapsed float64) {
	x, y := s.Window.GetCursorPos()
	s.controller.Update(s.camera, elapsed, s.IsKeyPressed, mgl32.Vec2{float32(x), float32(y)})

	if visible, changed := s.typewriter.Update(); changed {
		s.overlay = s.layoutOrLog(visible, s.overlayPen())
	}
	s.fade.Update(elapsed)

	s.statusTimer -= elapsed
	if s.statusTimer <= 0 {
		s.statusTimer = statusInterval
		p := s.camera.Position
		status := fmt.Sprintf("pos %.1f %.1f %.1f  pages %v  %.0f fps", p.X(), p.Y(), p.Z(), s.text.Font().Atlas().PageNumbers(), s.FPSRunningAvg)
		if layout := s.timer.GetState("text"); layout != nil {
			status += "  " + layout.String()
		}
		s.status = s.layoutOrLog(status, s.statusPen())
	}
}

func (s *Sandbox) layoutOrLog(text string, pen mgl32.Vec2) *gltext.TextMesh {
	stop := s.timer.Start("text")
	mesh, err := s.text.DrawText(text, pen)
	stop()
	if err != nil {
		util.LogTextError(err.Error())
		return nil
	}
	return mesh
}

func (s *Sandbox) Draw(elapsed float64) {
	s.meshShader.Begin()
	s.meshShader.SetUniformAttr(meshUniformProjection, s.camera.GetProjectionMatrix())
	s.meshShader.SetUniformAttr(meshUniformView, s.camera.GetViewMatrix())
	s.meshShader.SetUniformAttr(meshUniformLightDir, mgl32.Vec3{1, 0.5, 2})
	s.mesh.Draw(s.meshShader, meshUniformModel)
	s.meshShader.End()

	s.text.Begin()
	s.text.SetProjection(s.projection2D)
	if s.overlay != nil {
		tint := mgl32.Vec4(s.config.TextColor)
		tint[3] *= s.overlayAlpha
		s.overlay.SetColor(tint)
		s.overlay.Draw()
	}
	if s.status != nil {
		s.status.Draw()
	}
	s.text.End()
}

func (s *Sandbox) captureCursor() {
	if s.controller.IsActive() {
		return
	}
	s.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	s.controller.Activate()
	s.fade.Retarget(s.overlayAlpha, 0.35)
	util.LogInputDebug("camera control on")
}

func (s *Sandbox) releaseCursor() {
	if !s.controller.IsActive() {
		return
	}
	s.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	s.controller.Deactivate()
	s.fade.Retarget(s.overlayAlpha, 1)
	util.LogInputDebug("camera control off")
}

func (s *Sandbox) handleMouseButtonEvents(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press {
		s.captureCursor()
	}
}

func (s *Sandbox) handleKeyEvents(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		if s.controller.IsActive() {
			s.releaseCursor()
		} else {
			s.Window.SetShouldClose(true)
		}
	case glfw.KeySpace:
		s.typewriter.Skip()
	case glfw.KeyR:
		if err := s.typewriter.Start(); err != nil {
			util.LogTextError(err.Error())
		}
	}
}
