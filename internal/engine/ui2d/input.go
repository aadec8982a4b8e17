package ui2d

// InputState holds the current input state for the UI.
type InputState struct {
	// Mouse state
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	// Mouse buttons (current frame)
	MouseLeftDown   bool
	MouseRightDown  bool
	MouseMiddleDown bool

	// Mouse buttons (pressed this frame)
	MouseLeftPressed   bool
	MouseRightPressed  bool
	MouseMiddlePressed bool

	// Mouse buttons (released this frame)
	MouseLeftReleased   bool
	MouseRightReleased  bool
	MouseMiddleReleased bool

	// MouseLeftClicked is set from a button-down event so a press and
	// release inside one frame is not lost. Widgets consume it.
	MouseLeftClicked bool

	// Scroll
	ScrollX float32
	ScrollY float32

	// Previous frame state for edge detection
	prevMouseLeft   bool
	prevMouseRight  bool
	prevMouseMiddle bool
	prevMouseX      float32
	prevMouseY      float32
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after updating raw input values.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	i.MouseLeftPressed = i.MouseLeftDown && !i.prevMouseLeft
	i.MouseRightPressed = i.MouseRightDown && !i.prevMouseRight
	i.MouseMiddlePressed = i.MouseMiddleDown && !i.prevMouseMiddle

	i.MouseLeftReleased = !i.MouseLeftDown && i.prevMouseLeft
	i.MouseRightReleased = !i.MouseRightDown && i.prevMouseRight
	i.MouseMiddleReleased = !i.MouseMiddleDown && i.prevMouseMiddle

	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseRight = i.MouseRightDown
	i.prevMouseMiddle = i.MouseMiddleDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
// Call this at the end of each frame.
func (i *InputState) EndFrame() {
	i.MouseLeftClicked = false
	i.ScrollX = 0
	i.ScrollY = 0
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return i.MouseX >= x && i.MouseX < x+w &&
		i.MouseY >= y && i.MouseY < y+h
}
