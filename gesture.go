package segment

import (
	"fmt"
	"time"
)

// Phase is the gesture tracker's state.
type Phase uint8

const (
	PhaseIdle        Phase = iota // No pointer held
	PhasePointerDown              // Pressed, displacement still under the drag threshold
	PhaseDragging                 // Threshold exceeded; indicator follows the pointer
	PhaseReleased                 // Pointer lifted; decision being handed off
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePointerDown:
		return "pointer-down"
	case PhaseDragging:
		return "dragging"
	case PhaseReleased:
		return "released"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// GestureState is the per-gesture record. It is created on pointer-down
// and discarded when the gesture ends.
type GestureState struct {
	Phase   Phase
	Pointer PointerID

	OriginX    float32
	OriginTime time.Duration
	LastX      float32
	LastTime   time.Duration

	InstantVelocity float32 // px/ms, signed
	PeakVelocity    float32 // px/ms, max |InstantVelocity| this gesture

	// PressedIndex is the provisional target captured at pointer-down.
	PressedIndex int
	// DragTargetIndex is the last option the pointer was strictly inside
	// while dragging, or -1.
	DragTargetIndex int
}

// NetDisplacement returns LastX - OriginX.
func (g GestureState) NetDisplacement() float32 {
	return g.LastX - g.OriginX
}

func idleGesture() GestureState {
	return GestureState{Phase: PhaseIdle, PressedIndex: -1, DragTargetIndex: -1}
}

// GestureKind says what a pointer event meant to the tracker.
type GestureKind uint8

const (
	GestureIgnored     GestureKind = iota // Event did not belong to the active stream
	GesturePressed                        // Idle -> PointerDown
	GestureHeld                           // Move below threshold, still PointerDown
	GestureDragStarted                    // PointerDown -> Dragging
	GestureDragged                        // Move while Dragging
	GestureClicked                        // PointerDown -> Idle via release (plain click)
	GestureDragEnded                      // Dragging -> Released -> Idle
	GestureCancelled                      // Any -> Idle without a decision
)

func (k GestureKind) String() string {
	switch k {
	case GestureIgnored:
		return "ignored"
	case GesturePressed:
		return "pressed"
	case GestureHeld:
		return "held"
	case GestureDragStarted:
		return "drag-started"
	case GestureDragged:
		return "dragged"
	case GestureClicked:
		return "clicked"
	case GestureDragEnded:
		return "drag-ended"
	case GestureCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("GestureKind(%d)", uint8(k))
	}
}

// GestureEvent reports one tracker step. State is a snapshot taken before
// per-gesture state is discarded, so terminal events still carry the
// final velocity and targets. Pos is the event position.
type GestureEvent struct {
	Kind  GestureKind
	From  Phase
	To    Phase
	Pos   Vec2
	State GestureState
}

// Tracker turns one pointer stream into gesture phases and velocity.
// It only reads the registry; it never animates or selects.
type Tracker struct {
	registry  *Registry
	threshold float32
	state     GestureState
}

// NewTracker creates a tracker. threshold is the drag distance in pixels
// from the origin that turns a press into a drag.
func NewTracker(registry *Registry, threshold float32) *Tracker {
	return &Tracker{registry: registry, threshold: threshold, state: idleGesture()}
}

// SetThreshold changes the drag threshold. Takes effect on the next move.
func (t *Tracker) SetThreshold(threshold float32) {
	t.threshold = threshold
}

// Threshold returns the drag threshold in pixels.
func (t *Tracker) Threshold() float32 {
	return t.threshold
}

// State returns a copy of the current gesture state.
func (t *Tracker) State() GestureState {
	return t.state
}

// Phase returns the current phase.
func (t *Tracker) Phase() Phase {
	return t.state.Phase
}

// Handle dispatches ev to Down, Move, Up or Cancel.
func (t *Tracker) Handle(ev PointerEvent) GestureEvent {
	switch ev.Kind {
	case PointerDown:
		return t.Down(ev)
	case PointerMove:
		return t.Move(ev)
	case PointerUp:
		return t.Up(ev)
	case PointerCancel:
		return t.Cancel(ev)
	}
	return t.ignored(ev)
}

// Down starts a gesture. A second pointer-down while one is in progress
// is ignored.
func (t *Tracker) Down(ev PointerEvent) GestureEvent {
	if t.state.Phase != PhaseIdle {
		return t.ignored(ev)
	}

	t.state = GestureState{
		Phase:           PhasePointerDown,
		Pointer:         ev.ID,
		OriginX:         ev.Pos.X,
		OriginTime:      ev.Time,
		LastX:           ev.Pos.X,
		LastTime:        ev.Time,
		PressedIndex:    t.registry.HitTest(ev.Pos.X),
		DragTargetIndex: -1,
	}
	return GestureEvent{Kind: GesturePressed, From: PhaseIdle, To: PhasePointerDown, Pos: ev.Pos, State: t.state}
}

// Move advances a pressed or dragging gesture.
func (t *Tracker) Move(ev PointerEvent) GestureEvent {
	if !t.owns(ev) {
		return t.ignored(ev)
	}

	from := t.state.Phase
	switch from {
	case PhasePointerDown:
		// Only displacement from the origin counts; wandering out and back
		// inside the threshold stays a press.
		if absf(ev.Pos.X-t.state.OriginX) <= t.threshold {
			t.state.LastX = ev.Pos.X
			t.state.LastTime = ev.Time
			return GestureEvent{Kind: GestureHeld, From: from, To: from, Pos: ev.Pos, State: t.state}
		}
		t.state.Phase = PhaseDragging
		t.sample(ev)
		return GestureEvent{Kind: GestureDragStarted, From: from, To: PhaseDragging, Pos: ev.Pos, State: t.state}

	case PhaseDragging:
		t.sample(ev)
		return GestureEvent{Kind: GestureDragged, From: from, To: from, Pos: ev.Pos, State: t.state}
	}
	return t.ignored(ev)
}

// Up ends the gesture. A release before the threshold was crossed is a
// plain click.
func (t *Tracker) Up(ev PointerEvent) GestureEvent {
	if !t.owns(ev) {
		return t.ignored(ev)
	}

	from := t.state.Phase
	snapshot := t.state
	snapshot.LastX = ev.Pos.X
	snapshot.LastTime = ev.Time

	t.state = idleGesture()
	if from == PhaseDragging {
		snapshot.Phase = PhaseReleased
		return GestureEvent{Kind: GestureDragEnded, From: from, To: PhaseReleased, Pos: ev.Pos, State: snapshot}
	}
	snapshot.Phase = PhaseReleased
	return GestureEvent{Kind: GestureClicked, From: from, To: PhaseReleased, Pos: ev.Pos, State: snapshot}
}

// Cancel discards the gesture from any phase. Cancel while idle is ignored.
func (t *Tracker) Cancel(ev PointerEvent) GestureEvent {
	if t.state.Phase == PhaseIdle {
		return t.ignored(ev)
	}
	if ev.ID != t.state.Pointer {
		return t.ignored(ev)
	}

	from := t.state.Phase
	snapshot := t.state
	t.state = idleGesture()
	return GestureEvent{Kind: GestureCancelled, From: from, To: PhaseIdle, Pos: ev.Pos, State: snapshot}
}

// sample records a dragging move: velocity, peak, and the strict hit.
func (t *Tracker) sample(ev PointerEvent) {
	dt := millis(ev.Time - t.state.LastTime)
	if dt > 0 {
		t.state.InstantVelocity = (ev.Pos.X - t.state.LastX) / dt
		t.state.PeakVelocity = maxf(t.state.PeakVelocity, absf(t.state.InstantVelocity))
	}
	t.state.LastX = ev.Pos.X
	t.state.LastTime = ev.Time

	if idx := t.registry.IndexAt(ev.Pos.X); idx >= 0 {
		t.state.DragTargetIndex = idx
	}
}

func (t *Tracker) owns(ev PointerEvent) bool {
	if t.state.Phase != PhasePointerDown && t.state.Phase != PhaseDragging {
		return false
	}
	return ev.ID == t.state.Pointer
}

func (t *Tracker) ignored(ev PointerEvent) GestureEvent {
	p := t.state.Phase
	return GestureEvent{Kind: GestureIgnored, From: p, To: p, Pos: ev.Pos, State: t.state}
}
