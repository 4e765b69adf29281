package segment

import "time"

// Renderer is the interface for rendering draw data.
type Renderer interface {
	Render(dl *DrawList) error
	Resize(width, height int)
}

// Surface owns the selectors of one window: it routes the window's
// pointer stream to the selector under the press, advances animation once
// per frame, and hands the frame's draw list to the renderer.
type Surface struct {
	renderer  Renderer
	style     Style
	selectors []*Selector

	// captured receives the rest of a gesture after its pointer-down.
	captured *Selector

	dl     *DrawList
	events []PointerEvent
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithStyle sets the surface style.
func WithStyle(style Style) SurfaceOption {
	return func(s *Surface) { s.style = style }
}

// NewSurface creates a surface drawing through renderer. A nil renderer
// makes the surface route and animate only, for hosts that paint
// selectors themselves.
func NewSurface(renderer Renderer, opts ...SurfaceOption) *Surface {
	s := &Surface{
		renderer: renderer,
		style:    DefaultStyle(),
		events:   make([]PointerEvent, 0, 4),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers a selector. Selectors are hit-tested in insertion order.
func (s *Surface) Add(sel *Selector) {
	s.selectors = append(s.selectors, sel)
}

// Selectors returns the registered selectors.
func (s *Surface) Selectors() []*Selector {
	return s.selectors
}

// Dispatch routes one pointer event. A press goes to the first selector
// whose row contains it and captures the stream until up or cancel.
func (s *Surface) Dispatch(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		if s.captured != nil {
			s.captured.HandlePointer(ev)
			return
		}
		for _, sel := range s.selectors {
			if sel.Contains(ev.Pos) {
				s.captured = sel
				sel.HandlePointer(ev)
				return
			}
		}
	case PointerMove:
		if s.captured != nil {
			s.captured.HandlePointer(ev)
		}
	case PointerUp, PointerCancel:
		if s.captured != nil {
			sel := s.captured
			if sel.HandlePointer(ev).Kind != GestureIgnored {
				s.captured = nil
			}
		}
	}
}

// Feed converts a frame-polled input snapshot into pointer events and
// dispatches them.
func (s *Surface) Feed(input *InputState, now time.Duration) {
	s.events = input.PointerEvents(now, s.events[:0])
	for _, ev := range s.events {
		s.Dispatch(ev)
	}
}

// Step advances every selector by dt and reports whether any indicator is
// still animating.
func (s *Surface) Step(dt time.Duration) bool {
	animating := false
	for _, sel := range s.selectors {
		sel.Update(dt)
		if sel.Animating() {
			animating = true
		}
	}
	return animating
}

// Begin starts a frame: advances every selector by dt and returns the
// frame's draw list with all selectors drawn.
func (s *Surface) Begin(dt time.Duration) *DrawList {
	s.Step(dt)
	s.dl = AcquireDrawList()
	for _, sel := range s.selectors {
		sel.Draw(s.dl, s.style)
	}
	return s.dl
}

// End renders and releases the frame's draw list.
func (s *Surface) End() error {
	if s.dl == nil {
		return nil
	}
	var err error
	if s.renderer != nil {
		err = s.renderer.Render(s.dl)
	}
	ReleaseDrawList(s.dl)
	s.dl = nil
	return err
}

// Style returns the current style.
func (s *Surface) Style() Style {
	return s.style
}

// SetStyle sets the style.
func (s *Surface) SetStyle(style Style) {
	s.style = style
}

// Resize notifies the surface of a display size change.
func (s *Surface) Resize(width, height int) {
	if s.renderer != nil {
		s.renderer.Resize(width, height)
	}
}
