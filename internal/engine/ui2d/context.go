package ui2d

import (
	"fmt"
	"strconv"
)

// Layout metrics in pixels.
const (
	textScale   = float32(1)
	titleBarH   = float32(22)
	padding     = float32(8)
	rowSpacing  = float32(4)
	defaultRowH = float32(20)
	labelWidth  = float32(84)
	valueWidth  = float32(48)
	checkSize   = float32(14)
)

// Context is the main UI context that manages rendering and input.
type Context struct {
	painter Painter
	input   *InputState

	// Active widget keeps the mouse until the button is released
	activeWidget string

	windows map[string]*WindowState

	// Current window being drawn
	currentWindow *WindowState
	frame         uint64

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID     string
	X, Y   float32
	W, H   float32
	Open   bool
	Moving bool

	// Frame the window was last drawn in
	frame uint64
}

// NewContext creates a UI context drawing through a GL renderer.
func NewContext(width, height int) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return NewContextWithPainter(r), nil
}

// NewContextWithPainter creates a UI context drawing through p.
func NewContextWithPainter(p Painter) *Context {
	return &Context{
		painter: p,
		input:   &InputState{},
		windows: make(map[string]*WindowState),
	}
}

// Close releases resources.
func (c *Context) Close() {
	if c.painter != nil {
		c.painter.Close()
	}
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.painter.Resize(width, height)
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.frame++
	c.input.Update()
	c.painter.Begin()
}

// End finishes the UI frame.
func (c *Context) End() {
	c.painter.End()
	c.input.EndFrame()
}

// WantsMouse reports whether the pointer at x, y belongs to the UI:
// it is over a window drawn last frame or a widget is being dragged.
func (c *Context) WantsMouse(x, y float32) bool {
	if c.activeWidget != "" {
		return true
	}
	for _, ws := range c.windows {
		if ws.Open && ws.frame == c.frame && (Rect{ws.X, ws.Y, ws.W, ws.H}).Contains(x, y) {
			return true
		}
	}
	return false
}

func (c *Context) clicked() bool {
	return c.input.MouseLeftPressed || c.input.MouseLeftClicked
}

// BeginWindow starts a new window.
// Returns false if the window is closed.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id, X: x, Y: y, W: w, H: h, Open: true}
		c.windows[id] = ws
	} else if !ws.Moving {
		ws.W = w
		ws.H = h
	}

	if !ws.Open {
		return false
	}

	c.currentWindow = ws
	ws.frame = c.frame

	titleID := id + "_titlebar"
	if c.clicked() && (Rect{ws.X, ws.Y, ws.W, titleBarH}).Contains(c.input.MouseX, c.input.MouseY) {
		ws.Moving = true
		c.activeWidget = titleID
		c.input.MouseLeftClicked = false
	}
	if ws.Moving && c.input.MouseLeftDown {
		ws.X += c.input.MouseDeltaX
		ws.Y += c.input.MouseDeltaY
	}
	if !c.input.MouseLeftDown {
		ws.Moving = false
		if c.activeWidget == titleID {
			c.activeWidget = ""
		}
	}

	// Keep the title bar on screen after a resize
	sw, sh := c.GetScreenSize()
	ws.X = clamp(ws.X, 0, max(sw-ws.W, 0))
	ws.Y = clamp(ws.Y, 0, max(sh-titleBarH, 0))

	c.painter.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)
	c.painter.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorTitleBar)

	_, textH := c.painter.MeasureText(title, textScale)
	c.painter.DrawText(ws.X+padding, ws.Y+(titleBarH-textH)/2, title, textScale, ColorText)

	c.cursorX = ws.X + padding
	c.cursorY = ws.Y + titleBarH + padding
	c.rowH = 0

	return true
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + padding
	if c.rowH > 0 {
		c.cursorY += c.rowH + rowSpacing
	}
	c.rowH = height
}

func (c *Context) rowHeight() float32 {
	if c.rowH == 0 {
		return defaultRowH
	}
	return c.rowH
}

func (c *Context) contentWidth() float32 {
	return c.currentWindow.W - padding*2
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	w, h := c.painter.MeasureText(text, textScale)
	c.painter.DrawText(c.cursorX, c.cursorY+(c.rowHeight()-h)/2, text, textScale, color)
	c.cursorX += w + rowSpacing
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + rowSpacing
	c.rowH = 0
	x := c.currentWindow.X + padding
	c.painter.DrawRect(x, c.cursorY, c.contentWidth(), 1, ColorPanelBorder)
	c.cursorY += padding
	c.cursorX = x
}

// Checkbox draws a labelled checkbox and returns its new state.
// The state flips when the button is released over the box.
func (c *Context) Checkbox(id string, label string, checked bool) bool {
	if c.currentWindow == nil {
		return checked
	}

	h := c.rowHeight()
	c.drawFieldLabel(label, h)

	x := c.cursorX
	y := c.cursorY + (h-checkSize)/2
	fullID := c.currentWindow.ID + "_" + id
	hovered := (Rect{x, y, checkSize, checkSize}).Contains(c.input.MouseX, c.input.MouseY)

	if hovered && c.clicked() {
		c.activeWidget = fullID
		c.input.MouseLeftClicked = false
	}
	if c.activeWidget == fullID && !c.input.MouseLeftDown {
		if hovered {
			checked = !checked
		}
		c.activeWidget = ""
	}

	bg := ColorWidgetBg
	if hovered {
		bg = ColorWidgetHover
	}
	c.painter.DrawRect(x, y, checkSize, checkSize, bg)
	c.painter.DrawRectOutline(x, y, checkSize, checkSize, 1, ColorPanelBorder)
	if checked {
		inset := float32(3)
		c.painter.DrawRect(x+inset, y+inset, checkSize-inset*2, checkSize-inset*2, ColorHighlight)
	}

	c.cursorX += checkSize + rowSpacing
	return checked
}

// Slider draws a labelled horizontal slider over [lo, hi] followed by
// the numeric value. It returns the new value and whether the user
// moved it this frame. Values outside the range are drawn clamped but
// returned untouched unless the user drags.
func (c *Context) Slider(id, label string, value, lo, hi float32) (float32, bool) {
	if c.currentWindow == nil {
		return value, false
	}

	h := c.rowHeight()
	c.drawFieldLabel(label, h)

	track := Rect{c.cursorX, c.cursorY, c.currentWindow.X + c.currentWindow.W - padding - valueWidth - c.cursorX, h}
	fullID := c.currentWindow.ID + "_" + id
	hovered := track.Contains(c.input.MouseX, c.input.MouseY)

	grabbed := hovered && c.clicked()
	if grabbed {
		c.activeWidget = fullID
		c.input.MouseLeftClicked = false
	}

	changed := false
	if c.activeWidget == fullID {
		if (grabbed || c.input.MouseLeftDown) && hi > lo && track.W > 0 {
			t := clamp((c.input.MouseX-track.X)/track.W, 0, 1)
			if v := lo + t*(hi-lo); v != value {
				value = v
				changed = true
			}
		}
		if !c.input.MouseLeftDown {
			c.activeWidget = ""
		}
	}

	bg := ColorWidgetBg
	switch {
	case c.activeWidget == fullID:
		bg = ColorWidgetActive
	case hovered:
		bg = ColorWidgetHover
	}
	c.painter.DrawRect(track.X, track.Y, track.W, track.H, bg)

	fill := float32(0)
	if hi > lo {
		fill = clamp((value-lo)/(hi-lo), 0, 1)
	}
	if fill > 0 {
		c.painter.DrawRect(track.X, track.Y, track.W*fill, track.H, ColorHighlight.Darken(0.35))
	}

	text := strconv.FormatFloat(float64(value), 'f', 2, 32)
	tw, th := c.painter.MeasureText(text, textScale)
	vx := track.X + track.W + valueWidth - tw
	c.painter.DrawText(vx, track.Y+(h-th)/2, text, textScale, ColorHighlight.Lighten(0.3))

	c.cursorX += track.W + valueWidth
	return value, changed
}

func (c *Context) drawFieldLabel(label string, rowH float32) {
	_, th := c.painter.MeasureText(label, textScale)
	c.painter.DrawText(c.cursorX, c.cursorY+(rowH-th)/2, label, textScale, ColorTextDim.Lighten(0.4))
	c.cursorX += labelWidth
}

// Banner draws text in a panel centred at the top of the screen.
// It is not interactive.
func (c *Context) Banner(text string) {
	if text == "" {
		return
	}
	sw, _ := c.GetScreenSize()
	tw, th := c.painter.MeasureText(text, textScale)
	w, h := tw+padding*3, th+padding*2
	x, y := (sw-w)/2, padding

	c.painter.DrawPanel(x, y, w, h, ColorPanelBg.WithAlpha(0.75), ColorPanelBorder)
	c.painter.DrawText(x+(w-tw)/2, y+padding, text, textScale, ColorText)
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.painter.GetScreenSize()
	return float32(w), float32(h)
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
