package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kindsOf(events []PointerEvent) []PointerKind {
	out := make([]PointerKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestInputState_PointerEvents(t *testing.T) {
	in := NewInputState()

	// Frame 1: press.
	in.SetMousePos(10, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	evs := in.PointerEvents(0, nil)
	assert.Equal(t, []PointerKind{PointerDown}, kindsOf(evs))
	assert.Equal(t, Vec2{X: 10, Y: 20}, evs[0].Pos)

	// Frame 2: held without moving.
	in.Reset()
	assert.Empty(t, in.PointerEvents(16*ms, nil))

	// Frame 3: move.
	in.Reset()
	in.SetMousePos(30, 20)
	evs = in.PointerEvents(32*ms, nil)
	assert.Equal(t, []PointerKind{PointerMove}, kindsOf(evs))
	assert.Equal(t, 32*ms, evs[0].Time)

	// Frame 4: move and release.
	in.Reset()
	in.SetMousePos(40, 20)
	in.SetMouseButton(MouseButtonLeft, false)
	evs = in.PointerEvents(48*ms, nil)
	assert.Equal(t, []PointerKind{PointerMove, PointerUp}, kindsOf(evs))

	// Frame 5: moving with the button up produces nothing.
	in.Reset()
	in.SetMousePos(60, 20)
	assert.Empty(t, in.PointerEvents(64*ms, nil))
}

func TestInputState_ClickWithinOneFrame(t *testing.T) {
	in := NewInputState()
	in.SetMousePos(10, 20)
	in.SetMouseButton(MouseButtonLeft, true)
	in.SetMouseButton(MouseButtonLeft, false)

	evs := in.PointerEvents(0, nil)
	assert.Equal(t, []PointerKind{PointerDown, PointerUp}, kindsOf(evs))
}

func TestInputState_Interrupted(t *testing.T) {
	in := NewInputState()
	in.SetMouseButton(MouseButtonLeft, true)
	in.PointerEvents(0, nil)

	in.Reset()
	in.Interrupted = true
	evs := in.PointerEvents(16*ms, nil)
	assert.Equal(t, []PointerKind{PointerCancel}, kindsOf(evs))

	// The button is still physically down, but the stream is over.
	in.Reset()
	in.SetMousePos(50, 0)
	assert.Empty(t, in.PointerEvents(32*ms, nil))
}

func TestInputState_OtherButtonsIgnored(t *testing.T) {
	in := NewInputState()
	in.SetMouseButton(MouseButtonRight, true)
	assert.True(t, in.MouseClicked(MouseButtonRight))
	assert.Empty(t, in.PointerEvents(0, nil))

	in.SetMouseButton(MouseButtonCount, true)
	assert.False(t, in.MouseDown(MouseButtonCount))
}
