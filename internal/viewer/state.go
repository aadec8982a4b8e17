package viewer

// AnimationState is the playback state shared by the frame loop, the
// panel and the keyboard handler. All of them run on the main thread.
type AnimationState struct {
	MaxTime  float64 // Clip duration, seconds
	Progress float64 // Scrub position in [0, MaxTime]
	AutoPlay bool
}

// NewAnimationState creates a state with a placeholder duration that is
// replaced once the clip loads.
func NewAnimationState(placeholderMaxTime float64, autoPlay bool) *AnimationState {
	return &AnimationState{MaxTime: placeholderMaxTime, AutoPlay: autoPlay}
}

// ToggleAutoPlay flips AutoPlay. The next tick picks the change up.
func (s *AnimationState) ToggleAutoPlay() {
	s.AutoPlay = !s.AutoPlay
}
