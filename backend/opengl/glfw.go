package opengl

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/segment"
)

// PointerAdapter turns GLFW mouse callbacks into a segment pointer stream.
// Events are queued in callback order and drained once per frame. Losing
// window focus while the button is held produces a cancel.
type PointerAdapter struct {
	window *glfw.Window
	queue  []segment.PointerEvent
	down   bool
	x, y   float32
}

// NewPointerAdapter installs callbacks on window.
func NewPointerAdapter(window *glfw.Window) *PointerAdapter {
	a := &PointerAdapter{
		window: window,
		queue:  make([]segment.PointerEvent, 0, 16),
	}

	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)
	window.SetFocusCallback(a.focusCallback)

	return a
}

// Drain appends queued events to dst, clears the queue and returns dst.
// Call after glfw.PollEvents.
func (a *PointerAdapter) Drain(dst []segment.PointerEvent) []segment.PointerEvent {
	dst = append(dst, a.queue...)
	a.queue = a.queue[:0]
	return dst
}

// now returns GLFW's monotonic clock as a duration.
func now() time.Duration {
	return time.Duration(glfw.GetTime() * float64(time.Second))
}

func (a *PointerAdapter) push(kind segment.PointerKind) {
	a.queue = append(a.queue, segment.PointerEvent{
		Kind: kind,
		ID:   segment.MousePointer,
		Pos:  segment.Vec2{X: a.x, Y: a.y},
		Time: now(),
	})
}

func (a *PointerAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	switch action {
	case glfw.Press:
		if !a.down {
			a.down = true
			a.push(segment.PointerDown)
		}
	case glfw.Release:
		if a.down {
			a.down = false
			a.push(segment.PointerUp)
		}
	}
}

func (a *PointerAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.x, a.y = float32(xpos), float32(ypos)
	if a.down {
		a.push(segment.PointerMove)
	}
}

func (a *PointerAdapter) focusCallback(w *glfw.Window, focused bool) {
	if !focused && a.down {
		a.down = false
		a.push(segment.PointerCancel)
	}
}
