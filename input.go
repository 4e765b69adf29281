package segment

import "time"

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// InputState holds mouse state for the current frame.
// Hosts that poll input once per frame (GLFW, game loops) fill this in and
// call PointerEvents to turn the frame diff into a pointer stream.
type InputState struct {
	// Mouse position
	MouseX, MouseY float32

	// Mouse buttons - current frame state
	mouseDown    [MouseButtonCount]bool
	mouseClicked [MouseButtonCount]bool // True on the frame button was pressed
	mouseUp      [MouseButtonCount]bool // True on the frame button was released

	// Interrupted is set when the platform took input away this frame
	// (window lost focus, a system gesture started).
	Interrupted bool

	// Stream state carried across frames by PointerEvents
	streaming bool
	lastX     float32
	lastY     float32
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{}
}

// Reset clears per-frame input state.
// Call this at the start of each frame before collecting input.
func (s *InputState) Reset() {
	for i := range s.mouseClicked {
		s.mouseClicked[i] = false
	}
	for i := range s.mouseUp {
		s.mouseUp[i] = false
	}
	s.Interrupted = false
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX = x
	s.MouseY = y
}

// SetMouseButton sets mouse button state.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}

	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down

	if down && !wasDown {
		s.mouseClicked[button] = true
	}
	if !down && wasDown {
		s.mouseUp[button] = true
	}
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was just clicked (pressed this frame).
func (s *InputState) MouseClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseClicked[button]
}

// MouseReleased returns true if a mouse button was just released.
func (s *InputState) MouseReleased(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseUp[button]
}

// PointerEvents appends the pointer events implied by this frame's state
// to dst and returns it. Only the left button drives the stream. A press
// and release inside one frame yields down followed by up.
func (s *InputState) PointerEvents(now time.Duration, dst []PointerEvent) []PointerEvent {
	pos := Vec2{X: s.MouseX, Y: s.MouseY}

	if s.Interrupted {
		if s.streaming {
			s.streaming = false
			dst = append(dst, PointerEvent{Kind: PointerCancel, ID: MousePointer, Pos: pos, Time: now})
		}
		return dst
	}

	if s.MouseClicked(MouseButtonLeft) && !s.streaming {
		s.streaming = true
		s.lastX, s.lastY = pos.X, pos.Y
		dst = append(dst, PointerEvent{Kind: PointerDown, ID: MousePointer, Pos: pos, Time: now})
	} else if s.streaming && (pos.X != s.lastX || pos.Y != s.lastY) {
		s.lastX, s.lastY = pos.X, pos.Y
		dst = append(dst, PointerEvent{Kind: PointerMove, ID: MousePointer, Pos: pos, Time: now})
	}

	if s.MouseReleased(MouseButtonLeft) && s.streaming {
		s.streaming = false
		dst = append(dst, PointerEvent{Kind: PointerUp, ID: MousePointer, Pos: pos, Time: now})
	}

	return dst
}
