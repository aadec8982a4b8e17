package viewer

import (
	"github.com/Faultbox/glbview/internal/engine/ui2d"
)

const (
	panelWidth  = float32(260)
	panelHeight = float32(112)
	panelMargin = float32(12)
	panelRowH   = float32(20)
)

// NumberController binds a float field to a slider. The shown value only
// follows the field when UpdateDisplay is called.
type NumberController struct {
	Label    string
	Min, Max float64

	target   *float64
	shown    float64
	onChange func(float64)
}

// Value returns the value the slider shows.
func (c *NumberController) Value() float64 { return c.shown }

// UpdateDisplay copies the bound field into the shown value.
func (c *NumberController) UpdateDisplay() { c.shown = *c.target }

// SetRange changes the slider bounds.
func (c *NumberController) SetRange(lo, hi float64) {
	c.Min, c.Max = lo, hi
}

// SetValue writes v, clamped to the range, to the field and the display
// and runs the change callback.
func (c *NumberController) SetValue(v float64) {
	v = max(c.Min, min(v, c.Max))
	*c.target = v
	c.shown = v
	if c.onChange != nil {
		c.onChange(v)
	}
}

// BoolController binds a bool field to a checkbox.
type BoolController struct {
	Label string

	target *bool
	shown  bool
}

// Value returns the state the checkbox shows.
func (c *BoolController) Value() bool { return c.shown }

// UpdateDisplay copies the bound field into the shown state.
func (c *BoolController) UpdateDisplay() { c.shown = *c.target }

// SetValue writes v to the field and the display.
func (c *BoolController) SetValue(v bool) {
	*c.target = v
	c.shown = v
}

// Title is a caption hidden until a part is picked.
type Title struct {
	Text    string
	Visible bool
}

// Show makes the title visible with text.
func (t *Title) Show(text string) {
	t.Text = text
	t.Visible = true
}

// Widgets is the immediate-mode toolkit the panel draws with.
type Widgets interface {
	GetScreenSize() (float32, float32)
	BeginWindow(id string, x, y, w, h float32, title string) bool
	EndWindow()
	Row(height float32)
	Slider(id, label string, value, lo, hi float32) (float32, bool)
	Checkbox(id, label string, checked bool) bool
	Separator()
	LabelColored(text string, color ui2d.Color)
	Banner(text string)
}

// Panel is the floating control window plus the pick title.
type Panel struct {
	Progress *NumberController
	AutoPlay *BoolController
	Title    Title
}

// NewPanel binds a progress slider and an auto play checkbox to state.
// Moving the slider turns auto play off.
func NewPanel(state *AnimationState) *Panel {
	p := &Panel{
		Progress: &NumberController{
			Label:  "Progress",
			Max:    state.MaxTime,
			target: &state.Progress,
			shown:  state.Progress,
		},
		AutoPlay: &BoolController{
			Label:  "Auto Play",
			target: &state.AutoPlay,
			shown:  state.AutoPlay,
		},
	}
	p.Progress.onChange = func(float64) {
		if state.AutoPlay {
			state.AutoPlay = false
		}
	}
	return p
}

// UpdateProgressDisplay refreshes the slider from the state.
func (p *Panel) UpdateProgressDisplay() { p.Progress.UpdateDisplay() }

// UpdateAutoPlayDisplay refreshes the checkbox from the state.
func (p *Panel) UpdateAutoPlayDisplay() { p.AutoPlay.UpdateDisplay() }

// Draw lays the panel out in the top right corner and applies any edits.
func (p *Panel) Draw(ui Widgets) {
	sw, _ := ui.GetScreenSize()
	if ui.BeginWindow("controls", sw-panelWidth-panelMargin, panelMargin, panelWidth, panelHeight, "Controls") {
		ui.Row(panelRowH)
		pc := p.Progress
		if v, changed := ui.Slider("progress", pc.Label, float32(pc.Value()), float32(pc.Min), float32(pc.Max)); changed {
			pc.SetValue(float64(v))
		}

		ui.Row(panelRowH)
		ac := p.AutoPlay
		if on := ui.Checkbox("autoplay", ac.Label, ac.Value()); on != ac.Value() {
			ac.SetValue(on)
		}

		ui.Separator()
		ui.Row(panelRowH)
		ui.LabelColored("Space: play/pause", ui2d.ColorTextDim)
		ui.EndWindow()
	}

	if p.Title.Visible {
		ui.Banner(p.Title.Text)
	}
}
