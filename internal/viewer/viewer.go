// Package viewer wires the window, renderer, model loader, control panel
// and picking into the interactive model viewer.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glbview/internal/config"
	"github.com/Faultbox/glbview/internal/engine/animation"
	"github.com/Faultbox/glbview/internal/engine/audio"
	"github.com/Faultbox/glbview/internal/engine/camera"
	"github.com/Faultbox/glbview/internal/engine/debug"
	"github.com/Faultbox/glbview/internal/engine/input"
	"github.com/Faultbox/glbview/internal/engine/lighting"
	"github.com/Faultbox/glbview/internal/engine/loader"
	"github.com/Faultbox/glbview/internal/engine/renderer"
	"github.com/Faultbox/glbview/internal/engine/scene"
	"github.com/Faultbox/glbview/internal/engine/texture"
	"github.com/Faultbox/glbview/internal/engine/ui2d"
	"github.com/Faultbox/glbview/internal/engine/window"
	"github.com/Faultbox/glbview/internal/logger"
)

const (
	skyRadius = 500
	axesSize  = 5

	// A left press that travels further than this orbits instead of picking
	clickSlop = 4
)

// Viewer is the running application.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	input    *input.Input
	renderer *renderer.Renderer
	ui       *ui2d.Context

	audio     *audio.Manager
	pickSound *audio.Sound
	shots     *debug.ScreenshotCapture

	camera   *camera.Perspective
	controls *camera.OrbitControls
	scene    *scene.Node

	state  *AnimationState
	panel  *Panel
	picker *Picker
	loop   *FrameLoop

	pending <-chan loader.Outcome

	// Pointer gesture in progress
	orbiting, panning bool
	travel            int
	captureNext       bool
}

// New creates the window and scene and starts loading the model.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.String("model", cfg.Assets.Model),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	clearColor, err := config.ParseHexColor(cfg.Graphics.Background)
	if err != nil {
		return nil, fmt.Errorf("background colour: %w", err)
	}

	v := &Viewer{
		cfg:   cfg,
		input: input.New(),
		scene: scene.NewNode("Scene"),
		state: NewAnimationState(cfg.Animation.PlaceholderMaxTime, cfg.Animation.AutoPlay),
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := v.window.DrawableSize()
	axes := float32(0)
	if cfg.Graphics.ShowAxes {
		axes = axesSize
	}
	v.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		ClearColor: clearColor,
		Exposure:   cfg.Graphics.Exposure,
		SkyRadius:  skyRadius,
		AxesSize:   axes,
		Lights:     lighting.DefaultLights(),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	ww, wh := v.window.GetSize()
	v.ui, err = ui2d.NewContext(ww, wh)
	if err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, fmt.Errorf("failed to create ui: %w", err)
	}

	v.setupCamera(ww, wh)
	v.setupBackground()
	v.setupPicking()

	v.shots, err = debug.NewScreenshotCapture(cfg.Screenshot.Dir, "glbview", cfg.Screenshot.Format)
	if err != nil {
		logger.Warn("screenshots disabled", zap.Error(err))
	}

	v.panel = NewPanel(v.state)
	v.picker.Title = &v.panel.Title
	v.loop = &FrameLoop{
		State:    v.state,
		Display:  v.panel,
		Controls: v.controls,
		Clock:    newWallClock(),
		Render:   func() { v.renderer.Render(v.scene, v.camera) },
	}

	path := cfg.Assets.Model
	v.pending = loader.LoadAsync(path, loader.LogProgress(path))

	logger.Info("viewer initialized")
	return v, nil
}

func (v *Viewer) setupCamera(width, height int) {
	c := v.cfg.Camera
	v.camera = camera.NewPerspective(c.FOV, float32(width)/float32(max(height, 1)), c.Near, c.Far)

	v.controls = camera.NewOrbitControls(v.camera)
	v.controls.EnableDamping = c.Damping
	v.controls.DampingFactor = c.DampingFactor
	v.controls.MinDistance = c.MinDistance
	v.controls.MaxDistance = c.MaxDistance
	v.controls.SetViewportHeight(float32(height))
	v.controls.Target = mgl32.Vec3(c.InitialTarget)
	v.controls.Update()
}

func (v *Viewer) setupBackground() {
	path := v.cfg.Assets.Background
	if path == "" {
		return
	}
	img, err := texture.Load(path)
	if err != nil {
		logger.Warn("background image unusable", zap.String("path", path), zap.Error(err))
		return
	}
	v.renderer.SetBackground(img)
}

func (v *Viewer) setupPicking() {
	p := v.cfg.Picking

	var alerter Alerter = logAlerter{}
	if p.Alert {
		alerter = dialogAlerter{title: v.cfg.Graphics.Title}
	}
	v.picker = NewPicker(v.camera, alerter, nil)
	v.picker.OnPick = v.onPick

	if p.Sound == "" {
		return
	}
	sound, err := audio.LoadWAV(p.Sound)
	if err != nil {
		logger.Warn("pick sound unusable", zap.String("path", p.Sound), zap.Error(err))
		return
	}
	v.audio = audio.New()
	if err := v.audio.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		v.audio = nil
		return
	}
	v.audio.SetVolume(p.Volume)
	v.pickSound = sound
}

func (v *Viewer) onPick(n *scene.Node) {
	v.renderer.SetSelection(n)
	if v.audio == nil {
		return
	}
	if err := v.audio.Play(v.pickSound); err != nil {
		logger.Warn("pick sound failed", zap.Error(err))
	}
}

// Run starts the main loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents(v.input.Events())

		// 2. Pick up the model once it has loaded
		v.pollModel()

		// 3. Animate, settle the camera and draw the scene
		v.loop.Tick()

		// 4. Panel on top
		v.ui.Begin()
		v.panel.Draw(v.ui)
		v.ui.End()

		if v.captureNext {
			v.captureNext = false
			v.capture()
		}

		// 5. Present (swap buffers)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents(events []input.Event) {
	ui := v.ui.Input()

	for _, e := range events {
		switch e.Type {
		case input.EventWindowResize:
			v.resize(e.Width, e.Height)

		case input.EventKeyDown:
			if e.Repeat {
				continue
			}
			switch e.Key {
			case sdl.SCANCODE_SPACE:
				v.state.ToggleAutoPlay()
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F12:
				v.captureNext = true
			}

		case input.EventMouseMove:
			ui.MouseX, ui.MouseY = float32(e.MouseX), float32(e.MouseY)
			if v.orbiting {
				v.travel += abs(e.RelX) + abs(e.RelY)
				v.controls.HandleDrag(float32(e.RelX), float32(e.RelY))
			}
			if v.panning {
				v.controls.HandlePan(float32(e.RelX), float32(e.RelY))
			}

		case input.EventMouseDown:
			x, y := float32(e.MouseX), float32(e.MouseY)
			ui.MouseX, ui.MouseY = x, y
			if e.Button == sdl.BUTTON_LEFT {
				ui.MouseLeftDown = true
				ui.MouseLeftClicked = true
			}
			if v.ui.WantsMouse(x, y) {
				continue
			}
			switch e.Button {
			case sdl.BUTTON_LEFT:
				v.orbiting = true
				v.travel = 0
			case sdl.BUTTON_RIGHT:
				v.panning = true
			}

		case input.EventMouseUp:
			switch e.Button {
			case sdl.BUTTON_LEFT:
				ui.MouseLeftDown = false
				if v.orbiting && v.travel <= clickSlop {
					w, h := v.ui.GetScreenSize()
					v.picker.Click(float32(e.MouseX), float32(e.MouseY), w, h)
				}
				v.orbiting = false
			case sdl.BUTTON_RIGHT:
				v.panning = false
			}

		case input.EventMouseWheel:
			if !v.ui.WantsMouse(ui.MouseX, ui.MouseY) {
				v.controls.HandleZoom(e.Wheel)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// drawable resizes the renderer to the framebuffer size, which differs
// from the window size on HiDPI displays.
type drawable struct {
	window   *window.Window
	renderer *renderer.Renderer
}

func (d drawable) Resize(int, int) {
	d.renderer.Resize(d.window.DrawableSize())
}

func (v *Viewer) resize(width, height int) {
	if !Resize(v.camera, width, height, v.ui, drawable{v.window, v.renderer}) {
		return
	}
	v.controls.SetViewportHeight(float32(height))
	logger.Debug("window resized", zap.Int("width", width), zap.Int("height", height))
}

func (v *Viewer) pollModel() {
	select {
	case out, ok := <-v.pending:
		v.pending = nil
		if !ok {
			return
		}
		if out.Err != nil {
			logger.Error("failed to load model", zap.String("path", out.Path), zap.Error(out.Err))
			return
		}
		v.onModelLoaded(out.Result)
	default:
	}
}

func (v *Viewer) onModelLoaded(res *loader.Result) {
	c := v.cfg

	model := res.Root
	model.SetUniformScale(c.Animation.ModelScale)
	v.scene.Add(model)
	v.picker.SetModel(model)

	v.camera.Position = mgl32.Vec3(c.Camera.Position)
	v.controls.Target = mgl32.Vec3(c.Camera.Target)
	v.controls.Update()

	if len(res.Clips) == 0 {
		logger.Warn("model has no animation", zap.String("path", c.Assets.Model))
		return
	}
	clip := res.Clips[0]
	v.state.MaxTime = clip.Duration
	v.panel.Progress.SetRange(0, clip.Duration)

	mixer := animation.NewMixer()
	mixer.ClipAction(clip).Play()
	v.loop.Mixer = mixer

	logger.Info("model loaded",
		zap.String("path", c.Assets.Model),
		zap.String("clip", clip.Name),
		zap.Float64("duration", clip.Duration),
		zap.Int("clips", len(res.Clips)),
	)
}

func (v *Viewer) capture() {
	if v.shots == nil {
		return
	}
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

// Close releases everything New created.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.audio != nil {
		v.audio.Close()
	}
	if v.ui != nil {
		v.ui.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
