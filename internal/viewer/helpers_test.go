package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glbview/internal/config"
	"github.com/Faultbox/glbview/internal/engine/animation"
	"github.com/Faultbox/glbview/internal/engine/loader"
	"github.com/Faultbox/glbview/internal/engine/scene"
	"github.com/Faultbox/glbview/internal/engine/ui2d"
)

type fakeMixer struct {
	time    float64
	sets    []float64
	updates []float64
}

func (m *fakeMixer) Time() float64 { return m.time }

func (m *fakeMixer) SetTime(t float64) {
	m.time = t
	m.sets = append(m.sets, t)
}

func (m *fakeMixer) Update(dt float64) {
	m.time += dt
	m.updates = append(m.updates, dt)
}

type countingDisplay struct {
	progress, autoPlay int
}

func (d *countingDisplay) UpdateProgressDisplay() { d.progress++ }
func (d *countingDisplay) UpdateAutoPlayDisplay() { d.autoPlay++ }

type countingControls struct{ n int }

func (c *countingControls) Update() bool {
	c.n++
	return false
}

type fixedClock float64

func (c fixedClock) Delta() float64 { return float64(c) }

type recordingAlerter struct{ messages []string }

func (a *recordingAlerter) Alert(message string) { a.messages = append(a.messages, message) }

// screen is a painter that draws nothing, for driving ui2d without GL.
type screen struct{ w, h int }

func (s *screen) Begin() {}
func (s *screen) End() {}
func (s *screen) Resize(w, h int) { s.w, s.h = w, h }
func (s *screen) GetScreenSize() (int, int) { return s.w, s.h }
func (s *screen) DrawRect(_, _, _, _ float32, _ ui2d.Color) {}
func (s *screen) DrawRectOutline(_, _, _, _, _ float32, _ ui2d.Color) {}
func (s *screen) DrawPanel(_, _, _, _ float32, _, _ ui2d.Color) {}
func (s *screen) DrawText(_, _ float32, _ string, _ float32, _ ui2d.Color) {}
func (s *screen) Close() {}

func (s *screen) MeasureText(text string, scale float32) (float32, float32) {
	return float32(len(text)*7) * scale, 13 * scale
}

// quad is a 2x2 square in the XY plane facing +Z.
func quad(name string) *scene.Node {
	prim := &scene.Primitive{
		Positions: [][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
		Material:  scene.DefaultMaterial(),
	}
	prim.ComputeNormals()
	prim.ComputeBounds()

	n := scene.NewNode(name)
	n.Mesh = &scene.Mesh{Name: name + "Mesh", Primitives: []*scene.Primitive{prim}}
	return n
}

// doorModel is a body with a door that slides along X over two seconds.
func doorModel() *loader.Result {
	root := scene.NewNode("Scene")
	body := quad("Body")
	body.Translation = mgl32.Vec3{0, 0, -5}
	door := quad("Door")
	root.Add(body)
	root.Add(door)

	clip := animation.NewClip("Open", []*animation.Track{{
		Target: door,
		Path:   animation.PathTranslation,
		Times:  []float32{0, 2},
		Values: []float32{0, 0, 0, 2, 0, 0},
	}})
	return &loader.Result{Root: root, Clips: []*animation.Clip{clip}}
}

// headless builds a viewer with everything except the window, GL and audio.
func headless() *Viewer {
	v := &Viewer{cfg: config.Default(), scene: scene.NewNode("Scene")}
	v.state = NewAnimationState(v.cfg.Animation.PlaceholderMaxTime, true)
	v.setupCamera(800, 800)
	v.ui = ui2d.NewContextWithPainter(&screen{w: 800, h: 800})
	v.panel = NewPanel(v.state)
	v.picker = NewPicker(v.camera, &recordingAlerter{}, &v.panel.Title)
	v.loop = &FrameLoop{
		State:    v.state,
		Display:  v.panel,
		Controls: v.controls,
		Clock:    fixedClock(0),
	}
	return v
}
