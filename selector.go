package segment

import (
	"time"

	"go.uber.org/zap"
)

// Selector is one segmented selector: registry, tracker, resolver and
// motion synthesizer wired together. It is not safe for concurrent use;
// drive it from the UI thread that owns the pointer stream.
type Selector struct {
	name   string
	cfg    Config
	logger *zap.Logger

	registry *Registry
	tracker  *Tracker
	resolver *Resolver
	motion   *Synthesizer

	// active is the last index the host confirmed through SetActiveIndex.
	active int
	// rest is where the idle indicator sits. It differs from active only
	// after the host accepted a selection it has not confirmed yet.
	rest int

	dispatching bool
	confirmed   bool
}

// New creates a selector over the options reported by measure. onSelect is
// called at most once per completed gesture.
func New(measure MeasureFunc, onSelect SelectFunc, opts ...SelectorOption) *Selector {
	s := &Selector{
		name:   "selector",
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.Named(s.name)
	s.rest = s.active
	s.registry = NewRegistry(measure)
	s.tracker = NewTracker(s.registry, s.cfg.DragThreshold)
	s.resolver = NewResolver(s.registry, onSelect, s.logger)
	s.motion = NewSynthesizer(s.cfg.Motion)

	if r, ok := s.registry.RectOf(s.rest); ok {
		s.motion.Rest(r)
	}
	return s
}

// Name returns the instance name.
func (s *Selector) Name() string {
	return s.name
}

// Config returns the current tuning.
func (s *Selector) Config() Config {
	return s.cfg
}

// SetConfig swaps tuning, e.g. after a config file reload. A gesture in
// progress keeps running with the new threshold.
func (s *Selector) SetConfig(cfg Config) {
	s.cfg = cfg
	s.tracker.SetThreshold(cfg.DragThreshold)
	s.motion.SetConfig(cfg.Motion)
	s.logger.Debug("config updated", zap.Float32("drag_threshold", cfg.DragThreshold))
}

// Registry exposes the option registry for host queries.
func (s *Selector) Registry() *Registry {
	return s.registry
}

// ActiveIndex returns the last index confirmed by the host.
func (s *Selector) ActiveIndex() int {
	return s.active
}

// Phase returns the gesture phase.
func (s *Selector) Phase() Phase {
	return s.tracker.Phase()
}

// Gesture returns a copy of the in-progress gesture state.
func (s *Selector) Gesture() GestureState {
	return s.tracker.State()
}

// Indicator returns the current indicator keyframe.
func (s *Selector) Indicator() IndicatorState {
	return s.motion.Indicator()
}

// IndicatorRect returns the deformed indicator rectangle, or false while
// the indicator is hidden.
func (s *Selector) IndicatorRect() (Rect, bool) {
	ind := s.motion.Indicator()
	row, ok := s.registry.Bounds()
	if !ok || ind.Opacity == 0 {
		return Rect{}, false
	}
	return ind.Rect(row), true
}

// Animating reports whether the indicator is still moving.
func (s *Selector) Animating() bool {
	return s.motion.Animating()
}

// Contains reports whether p lies on the row. Hosts that receive pointer
// events for a whole window use it to route presses.
func (s *Selector) Contains(p Vec2) bool {
	bounds, ok := s.registry.Bounds()
	return ok && bounds.Contains(p)
}

// HandlePointer feeds one pointer event through the gesture state machine
// and returns what it meant.
func (s *Selector) HandlePointer(ev PointerEvent) GestureEvent {
	ge := s.tracker.Handle(ev)
	if ge.Kind == GestureIgnored {
		return ge
	}
	if ge.From != ge.To {
		s.logger.Debug("gesture phase",
			zap.Stringer("from", ge.From),
			zap.Stringer("to", ge.To),
			zap.Stringer("event", ev))
	}

	st := ge.State
	switch ge.Kind {
	case GesturePressed:
		s.resolver.Begin()
		if r, ok := s.registry.RectOf(st.PressedIndex); ok {
			s.motion.PickUp(r)
		}

	case GestureDragStarted, GestureDragged:
		if row, ok := s.registry.Bounds(); ok {
			s.motion.Follow(ev.Pos.X, row, st.InstantVelocity, st.PeakVelocity, st.NetDisplacement())
		}

	case GestureClicked:
		s.finish(func() Resolution { return s.resolver.ResolveClick(ev.Pos.X) })

	case GestureDragEnded:
		s.logger.Debug("drag ended",
			zap.Int("drag_target", st.DragTargetIndex),
			zap.Float32("peak_velocity", st.PeakVelocity))
		s.finish(func() Resolution { return s.resolver.ResolveDrag(st.DragTargetIndex, ev.Pos.X, s.active) })

	case GestureCancelled:
		s.rest = s.active
		s.settleOn(s.active)
	}
	return ge
}

// finish resolves a completed gesture and settles the indicator. The
// settle starts right away; it never waits for the host.
func (s *Selector) finish(resolve func() Resolution) {
	s.dispatching, s.confirmed = true, false
	res := resolve()
	s.dispatching = false

	target := s.active
	switch {
	case res.Index < 0, res.Err != nil:
		// Nothing requested, or the host refused: stay on the confirmed index.
	case s.confirmed:
		// The host confirmed inside the callback, possibly redirecting.
	default:
		target = res.Index
	}
	s.rest = target
	s.settleOn(target)
}

// SetActiveIndex is the host's notification that the active option
// changed, whether through a gesture it accepted or programmatically
// (history navigation, keyboard). Programmatic changes animate with a
// jump whose character depends on how far the indicator travels.
func (s *Selector) SetActiveIndex(index int) {
	if s.dispatching {
		s.active = index
		s.confirmed = true
		return
	}
	if s.tracker.Phase() != PhaseIdle {
		// The gesture owns the indicator; a cancel will land here.
		s.active = index
		return
	}

	prev := s.rest
	s.active = index
	s.rest = index

	r, ok := s.registry.RectOf(index)
	if !ok {
		s.motion.Hide()
		return
	}
	if !s.motion.Visible() {
		s.motion.Rest(r)
		return
	}

	distance := index - prev
	if distance < 0 {
		distance = -distance
	}
	if distance == 0 {
		s.motion.Settle(r)
		return
	}
	s.logger.Debug("active index changed", zap.Int("from", prev), zap.Int("to", index))
	s.motion.JumpTo(r, distance)
}

// Update advances the indicator animation by dt and resynchronizes the
// idle indicator with live layout.
func (s *Selector) Update(dt time.Duration) {
	if s.tracker.Phase() == PhaseIdle {
		r, ok := s.registry.RectOf(s.rest)
		switch {
		case !ok:
			s.motion.Hide()
		case !s.motion.Visible():
			s.motion.Rest(r)
		default:
			s.motion.Retarget(r)
		}
	}
	s.motion.Step(dt)
}

func (s *Selector) settleOn(index int) {
	r, ok := s.registry.RectOf(index)
	if !ok {
		s.motion.Hide()
		return
	}
	s.motion.Settle(r)
}
