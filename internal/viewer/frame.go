package viewer

import "time"

// Mixer is the animation clock the frame loop drives.
type Mixer interface {
	Time() float64
	SetTime(t float64)
	Update(dt float64)
}

// Display refreshes the panel controls from the state.
type Display interface {
	UpdateProgressDisplay()
	UpdateAutoPlayDisplay()
}

// Controls are camera controls that settle a little every frame.
type Controls interface {
	Update() bool
}

// Clock reports the seconds elapsed since its previous call.
type Clock interface {
	Delta() float64
}

// FrameLoop reconciles the animation state with the mixer once per frame.
// Mixer stays nil until a model with an animation has loaded.
type FrameLoop struct {
	State    *AnimationState
	Mixer    Mixer
	Display  Display
	Controls Controls
	Clock    Clock
	Render   func()
}

// Tick runs one frame.
func (f *FrameLoop) Tick() {
	s := f.State
	dt := f.Clock.Delta()

	if f.Mixer != nil {
		if !s.AutoPlay {
			// Scrubbing: the slider drives the clock
			f.Mixer.SetTime(s.Progress)
		} else {
			s.Progress = f.Mixer.Time()
			f.Display.UpdateProgressDisplay()
		}

		f.Mixer.Update(dt)

		if s.Progress >= s.MaxTime {
			s.Progress = 0
			f.Mixer.SetTime(0)
		}
	}

	f.Display.UpdateAutoPlayDisplay()

	if f.Controls != nil {
		f.Controls.Update()
	}
	if f.Render != nil {
		f.Render()
	}
}

// wallClock measures real time between calls. The first call returns 0.
type wallClock struct {
	last time.Time
	now  func() time.Time
}

func newWallClock() *wallClock {
	return &wallClock{now: time.Now}
}

func (c *wallClock) Delta() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return dt
}
