package segment

import (
	"fmt"
	"time"
)

// PointerKind is the type of a pointer event.
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel // Input taken away by the platform (focus loss, system gesture)
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerKind(%d)", uint8(k))
	}
}

// PointerID identifies one pointer stream (mouse, or a single touch).
type PointerID int

// MousePointer is the id used for the primary mouse.
const MousePointer PointerID = 0

// PointerEvent is one sample of the raw pointer stream.
// Time is measured from an arbitrary host epoch; only differences matter.
type PointerEvent struct {
	Kind PointerKind
	ID   PointerID
	Pos  Vec2
	Time time.Duration
}

func (e PointerEvent) String() string {
	return fmt.Sprintf("%s#%d(%.1f,%.1f @%s)", e.Kind, e.ID, e.Pos.X, e.Pos.Y, e.Time)
}

// Down builds a pointer-down event for the mouse pointer.
func Down(x, y float32, at time.Duration) PointerEvent {
	return PointerEvent{Kind: PointerDown, ID: MousePointer, Pos: Vec2{X: x, Y: y}, Time: at}
}

// Move builds a pointer-move event for the mouse pointer.
func Move(x, y float32, at time.Duration) PointerEvent {
	return PointerEvent{Kind: PointerMove, ID: MousePointer, Pos: Vec2{X: x, Y: y}, Time: at}
}

// Up builds a pointer-up event for the mouse pointer.
func Up(x, y float32, at time.Duration) PointerEvent {
	return PointerEvent{Kind: PointerUp, ID: MousePointer, Pos: Vec2{X: x, Y: y}, Time: at}
}

// Cancel builds a pointer-cancel event for the mouse pointer.
func Cancel(at time.Duration) PointerEvent {
	return PointerEvent{Kind: PointerCancel, ID: MousePointer, Time: at}
}

// millis converts a duration to fractional milliseconds.
func millis(d time.Duration) float32 {
	return float32(d) / float32(time.Millisecond)
}
