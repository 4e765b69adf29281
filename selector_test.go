package segment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestSelector(t *testing.T, rec *selectRecorder, opts ...SelectorOption) *Selector {
	t.Helper()
	base := []SelectorOption{WithLogger(zaptest.NewLogger(t)), WithName("test")}
	return New(threeOptions(), rec.onSelect, append(base, opts...)...)
}

// feed delivers events in order and returns the gesture kinds they produced.
func feed(s *Selector, events ...PointerEvent) []GestureKind {
	kinds := make([]GestureKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, s.HandlePointer(ev).Kind)
	}
	return kinds
}

// settle runs the animation until the indicator stops.
func settle(t *testing.T, s *Selector) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		s.Update(frame)
		if !s.Animating() {
			return
		}
	}
	t.Fatalf("indicator did not settle")
}

func assertIndicatorOn(t *testing.T, s *Selector, want Rect) {
	t.Helper()
	got, ok := s.IndicatorRect()
	require.True(t, ok, "indicator hidden")
	assert.InDelta(t, want.X, got.X, 0.01, "x")
	assert.InDelta(t, want.W, got.W, 0.01, "width")
}

var (
	option0 = Rect{X: 0, W: 40, H: 40}
	option1 = Rect{X: 40, W: 40, H: 40}
	option2 = Rect{X: 80, W: 40, H: 40}
)

func TestSelector_DragAcrossRow(t *testing.T) {
	rec := &selectRecorder{}
	s := newTestSelector(t, rec)

	kinds := feed(s,
		Down(10, 20, 0),
		Move(30, 20, 50*ms),
		Move(60, 20, 100*ms),
		Move(95, 20, 200*ms),
		Up(95, 20, 200*ms),
	)
	assert.Contains(t, kinds, GestureDragStarted)
	assert.Equal(t, GestureDragEnded, kinds[len(kinds)-1])
	assert.Equal(t, []int{2}, rec.calls)

	settle(t, s)
	assertIndicatorOn(t, s, option2)
	assert.Equal(t, MorphRest, s.Indicator().Morph)
	assert.Equal(t, 0, s.ActiveIndex(), "the host has not confirmed yet")
}

func TestSelector_WanderInsideThresholdIsClick(t *testing.T) {
	rec := &selectRecorder{}
	s := newTestSelector(t, rec, WithDragThreshold(40))

	kinds := feed(s,
		Down(10, 20, 0),
		Move(41, 20, 50*ms),
		Move(39, 20, 100*ms),
		Up(39, 20, 120*ms),
	)
	assert.Equal(t, []GestureKind{GesturePressed, GestureHeld, GestureHeld, GestureClicked}, kinds)
	assert.Equal(t, []int{0}, rec.calls)
}

func TestSelector_WanderPastThresholdResolvesToLastTarget(t *testing.T) {
	rec := &selectRecorder{}
	s := newTestSelector(t, rec)

	// With the default threshold, 41 starts a drag over option 1; coming
	// back to 39 retargets option 0.
	kinds := feed(s,
		Down(10, 20, 0),
		Move(41, 20, 50*ms),
		Move(39, 20, 100*ms),
		Up(39, 20, 120*ms),
	)
	assert.Equal(t, GestureDragEnded, kinds[len(kinds)-1])
	assert.Equal(t, []int{0}, rec.calls)
}

func TestSelector_FlickPastRowEnd(t *testing.T) {
	rec := &selectRecorder{}
	s := newTestSelector(t, rec)

	feed(s,
		Down(10, 20, 0),
		Move(200, 20, 16*ms),
		Up(200, 20, 16*ms),
	)
	assert.Equal(t, []int{2}, rec.calls)
}

func TestSelector_ClickFidelity(t *testing.T) {
	tests := []struct {
		down, up float32
		want     int
	}{
		{10, 12, 0},
		{45, 40, 1},
		{118, 122, 2},
		{-3, 1, 0},
		{200, 195, 2},
	}
	for _, tt := range tests {
		rec := &selectRecorder{}
		s := newTestSelector(t, rec)

		kinds := feed(s, Down(tt.down, 20, 0), Move(tt.up, 20, 20*ms), Up(tt.up, 20, 40*ms))
		assert.NotContains(t, kinds, GestureDragStarted)
		assert.Equal(t, []int{tt.want}, rec.calls, "press %v release %v", tt.down, tt.up)
	}
}

func TestSelector_OvershootKeepsTrackedTarget(t *testing.T) {
	rec := &selectRecorder{}
	s := newTestSelector(t, rec)

	// Passes over 0 and 1, overshoots past the row end, then releases
	// while nominally over 2. The last clear target was 1.
	feed(s,
		Down(10, 20, 0),
		Move(50, 20, 20*ms),
		Move(130, 20, 30*ms),
		Up(100, 20, 40*ms),
	)
	assert.Equal(t, []int{1}, rec.calls)
}

func TestSelector_RedundantEventsDispatchOnce(t *testing.T) {
	rec := &selectRecorder{}
	s := newTestSelector(t, rec)

	kinds := feed(s,
		Down(10, 20, 0),
		Move(90, 20, 10*ms),
		Up(90, 20, 20*ms),
		Up(90, 20, 20*ms),
		Move(91, 20, 21*ms),
		Up(91, 20, 22*ms),
	)
	assert.Equal(t, []int{2}, rec.calls)
	assert.Equal(t, []GestureKind{GestureIgnored, GestureIgnored, GestureIgnored}, kinds[3:])
}

func TestSelector_CancelIsNoOp(t *testing.T) {
	sequences := map[string][]PointerEvent{
		"pointer-down": {Down(95, 20, 0)},
		"dragging":     {Down(10, 20, 0), Move(60, 20, 10*ms), Move(100, 20, 20*ms)},
	}
	for name, seq := range sequences {
		t.Run(name, func(t *testing.T) {
			rec := &selectRecorder{}
			s := newTestSelector(t, rec)

			feed(s, seq...)
			kinds := feed(s, Cancel(30*ms), Up(100, 20, 40*ms))
			assert.Equal(t, []GestureKind{GestureCancelled, GestureIgnored}, kinds)
			assert.Empty(t, rec.calls)
			assert.Equal(t, PhaseIdle, s.Phase())

			settle(t, s)
			assertIndicatorOn(t, s, option0)
		})
	}
}

func TestSelector_EmptyRow(t *testing.T) {
	rec := &selectRecorder{}
	s := New(func() []Option { return nil }, rec.onSelect)

	feed(s,
		Down(10, 20, 0), Up(10, 20, 10*ms),
		Down(10, 20, 20*ms), Move(80, 20, 30*ms), Up(80, 20, 40*ms),
		Down(10, 20, 50*ms), Cancel(60*ms),
	)
	s.Update(frame)
	s.SetActiveIndex(2)

	assert.Empty(t, rec.calls)
	_, ok := s.IndicatorRect()
	assert.False(t, ok)
	assert.False(t, s.Contains(Vec2{X: 10, Y: 20}))
}

func TestSelector_HostRejection(t *testing.T) {
	rec := &selectRecorder{err: errors.New("not now")}
	s := newTestSelector(t, rec, WithActiveIndex(1))

	feed(s, Down(50, 20, 0), Move(100, 20, 10*ms), Up(100, 20, 20*ms))
	assert.Equal(t, []int{2}, rec.calls)

	settle(t, s)
	assertIndicatorOn(t, s, option1)
	assert.Equal(t, 1, s.ActiveIndex())
}

func TestSelector_ConfirmInsideCallback(t *testing.T) {
	var s *Selector
	calls := 0
	s = New(threeOptions(), func(index int) error {
		calls++
		// The host redirects: option 2 is not reachable, land on 1.
		s.SetActiveIndex(1)
		return nil
	})

	feed(s, Down(10, 20, 0), Move(100, 20, 10*ms), Up(100, 20, 20*ms))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.ActiveIndex())

	settle(t, s)
	assertIndicatorOn(t, s, option1)
}

func TestSelector_SetActiveIndexJumps(t *testing.T) {
	s := newTestSelector(t, &selectRecorder{})
	assertIndicatorOn(t, s, option0)

	s.SetActiveIndex(2)
	assert.Equal(t, 2, s.ActiveIndex())
	assert.Equal(t, MorphJump, s.Indicator().Morph)
	assert.True(t, s.Animating())

	settle(t, s)
	assert.Equal(t, MorphRest, s.Indicator().Morph)
	assertIndicatorOn(t, s, option2)

	// Re-confirming the same index does not jump.
	s.SetActiveIndex(2)
	assert.Equal(t, MorphSettle, s.Indicator().Morph)
	assert.False(t, s.Animating())
}

func TestSelector_SetActiveIndexDuringGesture(t *testing.T) {
	rec := &selectRecorder{}
	s := newTestSelector(t, rec)

	feed(s, Down(10, 20, 0), Move(60, 20, 10*ms))
	s.SetActiveIndex(2)
	assert.Equal(t, PhaseDragging, s.Phase(), "the gesture keeps running")
	assert.Equal(t, MorphDrag, s.Indicator().Morph)

	feed(s, Cancel(20*ms))
	settle(t, s)
	assertIndicatorOn(t, s, option2)
}

func TestSelector_IndicatorMorphs(t *testing.T) {
	s := newTestSelector(t, &selectRecorder{})

	s.HandlePointer(Down(50, 20, 0))
	assert.Equal(t, MorphPickUp, s.Indicator().Morph)

	s.HandlePointer(Move(70, 20, 10*ms))
	assert.Equal(t, MorphDrag, s.Indicator().Morph)
	assert.Equal(t, PhaseDragging, s.Gesture().Phase)

	s.HandlePointer(Up(70, 20, 20*ms))
	assert.Equal(t, MorphSettle, s.Indicator().Morph)
}

func TestSelector_HiddenUntilLayout(t *testing.T) {
	var bounds Rect
	values := []string{"a", "b", "c"}
	layout := RowLayout{Bounds: func() Rect { return bounds }}
	s := New(RowMeasure(layout, &values), nil, WithActiveIndex(1))

	assert.Zero(t, s.Indicator().Opacity)
	s.Update(frame)
	assert.Zero(t, s.Indicator().Opacity, "still no layout")
	_, ok := s.IndicatorRect()
	assert.False(t, ok)

	bounds = Rect{X: 0, Y: 0, W: 120, H: 40}
	s.Update(frame)
	assert.Equal(t, float32(1), s.Indicator().Opacity)
	assert.False(t, s.Animating(), "appears in place")
	assertIndicatorOn(t, s, option1)

	// Layout changes under an idle indicator are followed.
	bounds.W = 240
	s.Update(frame)
	assertIndicatorOn(t, s, Rect{X: 80, W: 80, H: 40})

	// Structural change removes the active option.
	values = values[:1]
	s.Update(frame)
	assert.Zero(t, s.Indicator().Opacity)
}

func TestSelector_SecondPointerIgnored(t *testing.T) {
	rec := &selectRecorder{}
	s := newTestSelector(t, rec)

	s.HandlePointer(Down(10, 20, 0))
	touch := PointerEvent{Kind: PointerDown, ID: 3, Pos: Vec2{X: 100, Y: 20}, Time: 5 * ms}
	assert.Equal(t, GestureIgnored, s.HandlePointer(touch).Kind)
	touch.Kind = PointerUp
	assert.Equal(t, GestureIgnored, s.HandlePointer(touch).Kind)

	s.HandlePointer(Up(10, 20, 10*ms))
	assert.Equal(t, []int{0}, rec.calls)
}

func TestSelector_PhaseSequence(t *testing.T) {
	s := newTestSelector(t, &selectRecorder{})

	var transitions [][2]Phase
	for _, ev := range []PointerEvent{
		Down(10, 20, 0), Move(12, 20, 5*ms), Move(60, 20, 10*ms), Up(60, 20, 20*ms),
		Down(60, 20, time.Second), Up(61, 20, time.Second+10*ms),
	} {
		ge := s.HandlePointer(ev)
		if ge.From != ge.To {
			transitions = append(transitions, [2]Phase{ge.From, ge.To})
		}
	}

	want := [][2]Phase{
		{PhaseIdle, PhasePointerDown},
		{PhasePointerDown, PhaseDragging},
		{PhaseDragging, PhaseReleased},
		{PhaseIdle, PhasePointerDown},
		{PhasePointerDown, PhaseReleased},
	}
	assert.Equal(t, want, transitions)
}

func TestSelector_SetConfig(t *testing.T) {
	s := newTestSelector(t, &selectRecorder{})

	cfg := BottomBarConfig()
	cfg.DragThreshold = 100
	s.SetConfig(cfg)
	assert.Equal(t, cfg, s.Config())

	kinds := feed(s, Down(10, 20, 0), Move(100, 20, 10*ms), Up(100, 20, 20*ms))
	assert.Equal(t, GestureClicked, kinds[2])
}

func TestPresets(t *testing.T) {
	values := []string{"home", "courses", "calendar", "inbox", "profile"}
	layout := RowLayout{Bounds: FixedBounds(Rect{W: 500, H: 60})}

	bar := NewBottomBar(layout, &values, nil)
	assert.Equal(t, "bottom-bar", bar.Name())
	assert.Equal(t, BottomBarConfig(), bar.Config())
	assert.Equal(t, "inbox", bar.Registry().ValueOf(3))

	tabs := NewTabGroup(layout, &values, nil, WithName("course-tabs"))
	assert.Equal(t, "course-tabs", tabs.Name())
	assert.Equal(t, TabGroupConfig(), tabs.Config())
}
