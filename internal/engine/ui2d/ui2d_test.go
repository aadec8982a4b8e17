package ui2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

type fakePainter struct {
	w, h  int
	texts []string
}

func (p *fakePainter) Begin() { p.texts = p.texts[:0] }
func (p *fakePainter) End() {}
func (p *fakePainter) Resize(w, h int) { p.w, p.h = w, h }
func (p *fakePainter) GetScreenSize() (int, int) { return p.w, p.h }
func (p *fakePainter) DrawRect(_, _, _, _ float32, _ Color) {}
func (p *fakePainter) DrawRectOutline(_, _, _, _, _ float32, _ Color) {}
func (p *fakePainter) DrawPanel(_, _, _, _ float32, _, _ Color) {}
func (p *fakePainter) Close() {}

func (p *fakePainter) DrawText(_, _ float32, text string, _ float32, _ Color) {
	p.texts = append(p.texts, text)
}

func (p *fakePainter) MeasureText(text string, scale float32) (float32, float32) {
	return float32(len(text)*7) * scale, 13 * scale
}

// panel lays out a window at x=500 on an 800x600 screen: the slider
// track spans x 592..704 at y 30..50, the checkbox box x 592..606 at y 57..71.
type panel struct {
	value   float32
	moved   bool
	checked bool
}

func (s *panel) draw(c *Context) {
	if !c.BeginWindow("controls", 500, 0, 260, 100, "Controls") {
		return
	}
	c.Row(20)
	s.value, s.moved = c.Slider("progress", "progress", s.value, 0, 6)
	c.Row(20)
	s.checked = c.Checkbox("autoplay", "autoplay", s.checked)
	c.EndWindow()
}

func newTestContext() (*Context, *fakePainter) {
	p := &fakePainter{w: 800, h: 600}
	return NewContextWithPainter(p), p
}

func step(c *Context, s *panel, x, y float32, down bool) {
	in := c.Input()
	in.MouseX, in.MouseY, in.MouseLeftDown = x, y, down
	c.Begin()
	s.draw(c)
	c.End()
}

func TestSliderDrag(t *testing.T) {
	c, _ := newTestContext()
	s := &panel{}

	step(c, s, 10, 10, false)
	assert.False(t, s.moved)
	assert.Zero(t, s.value)

	step(c, s, 648, 40, true)
	assert.True(t, s.moved)
	assert.InDelta(t, 3, s.value, 1e-5)

	// Dragging past the end clamps to the maximum
	step(c, s, 900, 300, true)
	assert.True(t, s.moved)
	assert.InDelta(t, 6, s.value, 1e-5)
	assert.True(t, c.WantsMouse(900, 300), "drag keeps the mouse")

	step(c, s, 900, 300, false)
	assert.False(t, s.moved)
	assert.False(t, c.WantsMouse(900, 300))
}

func TestSliderIgnoresPressOutside(t *testing.T) {
	c, _ := newTestContext()
	s := &panel{value: 2}

	step(c, s, 100, 40, true)
	step(c, s, 648, 40, true)
	assert.False(t, s.moved, "press started outside the track")
	assert.Equal(t, float32(2), s.value)
}

func TestSliderShowsValue(t *testing.T) {
	c, p := newTestContext()
	s := &panel{value: 1.5}
	step(c, s, 0, 0, false)
	assert.Contains(t, p.texts, "1.50")
	assert.Contains(t, p.texts, "Controls")
}

func TestCheckboxTogglesOnRelease(t *testing.T) {
	c, _ := newTestContext()
	s := &panel{}

	step(c, s, 599, 64, true)
	assert.False(t, s.checked, "press alone does not toggle")
	step(c, s, 599, 64, false)
	assert.True(t, s.checked)

	// Released away from the box
	step(c, s, 599, 64, true)
	step(c, s, 300, 300, false)
	assert.True(t, s.checked)
}

func TestCheckboxClickEventWithinOneFrame(t *testing.T) {
	c, _ := newTestContext()
	s := &panel{}

	c.Input().MouseLeftClicked = true
	step(c, s, 599, 64, false)
	assert.True(t, s.checked)
	assert.False(t, c.Input().MouseLeftClicked, "click consumed")
}

func TestWantsMouse(t *testing.T) {
	c, _ := newTestContext()
	s := &panel{}
	step(c, s, 0, 0, false)

	assert.True(t, c.WantsMouse(600, 50))
	assert.False(t, c.WantsMouse(100, 300))

	// A window not drawn this frame no longer captures the mouse
	in := c.Input()
	in.MouseX, in.MouseY = 0, 0
	c.Begin()
	c.End()
	assert.False(t, c.WantsMouse(600, 50))
}

func TestWindowDragAndClamp(t *testing.T) {
	c, p := newTestContext()
	s := &panel{}

	step(c, s, 600, 10, false)
	step(c, s, 600, 10, true)
	step(c, s, 550, 40, true)
	ws := c.windows["controls"]
	assert.Equal(t, float32(450), ws.X)
	assert.Equal(t, float32(30), ws.Y)
	step(c, s, 550, 40, false)
	assert.False(t, ws.Moving)

	p.Resize(400, 300)
	step(c, s, 0, 0, false)
	assert.Equal(t, float32(140), ws.X, "pulled back on screen")
}

func TestBanner(t *testing.T) {
	c, p := newTestContext()
	c.Begin()
	c.Banner("")
	c.Banner("Door")
	c.End()
	assert.Equal(t, []string{"Door"}, p.texts)
}

func TestAtlas(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13)
	require.Equal(t, 7, a.GlyphW)
	require.Equal(t, 13, a.GlyphH)
	assert.Equal(t, 16*7, a.Image.Bounds().Dx())
	assert.Equal(t, 6*13, a.Image.Bounds().Dy())

	u0, v0, u1, v1 := a.GlyphUV('A')
	assert.Less(t, u0, u1)
	assert.Less(t, v0, v1)

	// 'A' has ink in its cell, ' ' has none
	covered := func(r rune) bool {
		i := int(r - firstGlyph)
		x0, y0 := (i%atlasColumns)*a.GlyphW, (i/atlasColumns)*a.GlyphH
		for y := y0; y < y0+a.GlyphH; y++ {
			for x := x0; x < x0+a.GlyphW; x++ {
				if a.Image.AlphaAt(x, y).A > 0 {
					return true
				}
			}
		}
		return false
	}
	assert.True(t, covered('A'))
	assert.False(t, covered(' '))

	qu0, qv0, _, _ := a.GlyphUV('?')
	eu0, ev0, _, _ := a.GlyphUV('é')
	assert.Equal(t, qu0, eu0)
	assert.Equal(t, qv0, ev0)
}

func TestAtlasMeasure(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13)
	w, h := a.Measure("abc\nde", 2)
	assert.Equal(t, float32(42), w)
	assert.Equal(t, float32(52), h)

	w, h = a.Measure("", 1)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
