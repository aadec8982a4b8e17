package animation

import "math"

// LoopMode controls what an action does when it runs past the clip end.
type LoopMode int

const (
	// LoopRepeat wraps local time back to the start.
	LoopRepeat LoopMode = iota
	// LoopOnce holds the last frame and stops.
	LoopOnce
)

// Action is the playback state of one clip inside a mixer.
type Action struct {
	clip    *Clip
	time    float64
	running bool

	Loop      LoopMode
	TimeScale float64
}

// Play starts (or resumes) the action.
func (a *Action) Play() *Action {
	a.running = true
	return a
}

// Stop halts the action and rewinds it.
func (a *Action) Stop() *Action {
	a.running = false
	a.time = 0
	return a
}

// IsRunning reports whether the action advances on Update.
func (a *Action) IsRunning() bool {
	return a.running
}

// Time returns the action-local time, always within [0, duration].
func (a *Action) Time() float64 {
	return a.time
}

// Clip returns the clip the action plays.
func (a *Action) Clip() *Clip {
	return a.clip
}

func (a *Action) advance(dt float64) {
	d := a.clip.Duration
	a.time += dt * a.TimeScale
	if d <= 0 {
		a.time = 0
		return
	}
	switch a.Loop {
	case LoopOnce:
		if a.time >= d {
			a.time = d
			a.running = false
		} else if a.time < 0 {
			a.time = 0
			a.running = false
		}
	default:
		a.time = math.Mod(a.time, d)
		if a.time < 0 {
			a.time += d
		}
	}
}

// Mixer advances a set of actions on a shared clock.
//
// The mixer clock is global: it keeps growing across loop boundaries,
// while each action keeps its own wrapped local time.
type Mixer struct {
	actions []*Action
	time    float64

	TimeScale float64
}

// NewMixer creates an empty mixer running at normal speed.
func NewMixer() *Mixer {
	return &Mixer{TimeScale: 1}
}

// ClipAction returns the action for clip, creating it on first use.
func (m *Mixer) ClipAction(clip *Clip) *Action {
	for _, a := range m.actions {
		if a.clip == clip {
			return a
		}
	}
	a := &Action{clip: clip, TimeScale: 1}
	m.actions = append(m.actions, a)
	return a
}

// Time returns the global mixer time in seconds.
func (m *Mixer) Time() float64 {
	return m.time
}

// Update advances the clock and every running action by dt seconds, then applies poses.
func (m *Mixer) Update(dt float64) {
	dt *= m.TimeScale
	m.time += dt
	for _, a := range m.actions {
		if !a.running {
			continue
		}
		a.advance(dt)
		a.clip.Apply(a.time)
	}
}

// SetTime rewinds the clock and all actions to zero, then advances to t.
func (m *Mixer) SetTime(t float64) {
	m.time = 0
	for _, a := range m.actions {
		a.time = 0
	}
	m.Update(t)
}
