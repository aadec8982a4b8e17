package animation

// Clip is a named set of tracks with a fixed duration.
type Clip struct {
	Name     string
	Duration float64 // Seconds
	Tracks   []*Track
}

// NewClip creates a clip whose duration is the latest keyframe of any track.
func NewClip(name string, tracks []*Track) *Clip {
	c := &Clip{Name: name, Tracks: tracks}
	for _, tr := range tracks {
		if d := float64(tr.Duration()); d > c.Duration {
			c.Duration = d
		}
	}
	return c
}

// Apply samples every track at time.
func (c *Clip) Apply(time float64) {
	for _, tr := range c.Tracks {
		tr.Sample(float32(time))
	}
}
