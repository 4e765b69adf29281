package segment

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// MotionProfile is the qualitative deformation style while dragging.
type MotionProfile uint8

const (
	MotionSlowDeform MotionProfile = iota // Gentle velocity-proportional stretch
	MotionSnapRight                       // Fast rightward flick, leading edge leans right
	MotionSnapLeft                        // Fast leftward flick, leading edge leans left
)

func (p MotionProfile) String() string {
	switch p {
	case MotionSlowDeform:
		return "slow-deform"
	case MotionSnapRight:
		return "snap-right"
	case MotionSnapLeft:
		return "snap-left"
	default:
		return fmt.Sprintf("MotionProfile(%d)", uint8(p))
	}
}

// ClassifyMotion picks a profile from velocity. A snap profile is chosen
// when the instantaneous speed reaches snapVelocity, or when the gesture
// peaked above flickVelocity and is still travelling the same way as its
// net displacement (a flick that is decelerating towards release).
func ClassifyMotion(instant, peak, net, snapVelocity, flickVelocity float32) MotionProfile {
	dir := signf(instant)
	if dir == 0 {
		dir = signf(net)
	}
	if dir == 0 {
		return MotionSlowDeform
	}

	fast := absf(instant) >= snapVelocity
	if !fast && peak >= flickVelocity && instant != 0 && signf(instant) == signf(net) {
		fast = true
	}
	if !fast {
		return MotionSlowDeform
	}
	if dir > 0 {
		return MotionSnapRight
	}
	return MotionSnapLeft
}

// MorphIntent says which source the indicator is currently rendering.
type MorphIntent uint8

const (
	MorphRest   MorphIntent = iota // Sitting on the rest option
	MorphPickUp                    // Pressed, enlarged in place
	MorphDrag                      // Following the pointer
	MorphSettle                    // Returning to an option after a gesture
	MorphJump                      // Programmatic active-index change
)

func (m MorphIntent) String() string {
	switch m {
	case MorphRest:
		return "rest"
	case MorphPickUp:
		return "pick-up"
	case MorphDrag:
		return "drag"
	case MorphSettle:
		return "settle"
	case MorphJump:
		return "jump"
	default:
		return fmt.Sprintf("MorphIntent(%d)", uint8(m))
	}
}

// Shape is the indicator deformation keyframe. The zero-deformation shape
// has Stretch and Squash of 1 and Lean of 0.
type Shape struct {
	Stretch float32 // Horizontal scale around the indicator center
	Squash  float32 // Vertical scale around the indicator center
	Radius  float32 // Corner radius in pixels
	Lean    float32 // Center shift as a fraction of width, signed
}

// IndicatorState is what the rendering layer draws. It never carries
// business meaning.
type IndicatorState struct {
	X       float32 // Left edge before deformation
	Width   float32 // Width before deformation
	Opacity float32 // 0 until a rect for the rest option exists, then 1
	Morph   MorphIntent
	Profile MotionProfile
	Shape   Shape
}

// Rect returns the deformed indicator rectangle inside row, which
// supplies the vertical extent.
func (s IndicatorState) Rect(row Rect) Rect {
	w := s.Width * s.Shape.Stretch
	h := row.H * s.Shape.Squash
	cx := s.X + s.Width*0.5 + s.Shape.Lean*s.Width
	cy := row.Y + row.H*0.5
	return Rect{X: cx - w*0.5, Y: cy - h*0.5, W: w, H: h}
}

// MotionConfig tunes the synthesizer. Velocities are in px/ms, frequencies
// in radians per second as harmonica expects.
type MotionConfig struct {
	EdgeMargin         float32 `mapstructure:"edge_margin" yaml:"edge_margin"`
	SnapVelocity       float32 `mapstructure:"snap_velocity" yaml:"snap_velocity"`
	FlickVelocity      float32 `mapstructure:"flick_velocity" yaml:"flick_velocity"`
	PickUpScale        float32 `mapstructure:"pickup_scale" yaml:"pickup_scale"`
	StretchPerVelocity float32 `mapstructure:"stretch_per_velocity" yaml:"stretch_per_velocity"`
	MaxStretch         float32 `mapstructure:"max_stretch" yaml:"max_stretch"`
	SnapStretch        float32 `mapstructure:"snap_stretch" yaml:"snap_stretch"`
	SnapLean           float32 `mapstructure:"snap_lean" yaml:"snap_lean"`
	CornerRadius       float32 `mapstructure:"corner_radius" yaml:"corner_radius"`
	DragRadius         float32 `mapstructure:"drag_radius" yaml:"drag_radius"`

	FollowFrequency   float64 `mapstructure:"follow_frequency" yaml:"follow_frequency"`
	SettleFrequency   float64 `mapstructure:"settle_frequency" yaml:"settle_frequency"`
	JumpFrequency     float64 `mapstructure:"jump_frequency" yaml:"jump_frequency"`
	JumpFrequencyStep float64 `mapstructure:"jump_frequency_step" yaml:"jump_frequency_step"`
	MinJumpFrequency  float64 `mapstructure:"min_jump_frequency" yaml:"min_jump_frequency"`
	JumpDamping       float64 `mapstructure:"jump_damping" yaml:"jump_damping"`
	JumpDampingStep   float64 `mapstructure:"jump_damping_step" yaml:"jump_damping_step"`
	MinJumpDamping    float64 `mapstructure:"min_jump_damping" yaml:"min_jump_damping"`
}

// DefaultMotionConfig returns the tuning used by the tab group preset.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		EdgeMargin:         4,
		SnapVelocity:       1.2,
		FlickVelocity:      2.0,
		PickUpScale:        1.12,
		StretchPerVelocity: 0.18,
		MaxStretch:         1.5,
		SnapStretch:        1.3,
		SnapLean:           0.12,
		CornerRadius:       10,
		DragRadius:         18,

		FollowFrequency:   28,
		SettleFrequency:   14,
		JumpFrequency:     12,
		JumpFrequencyStep: 2,
		MinJumpFrequency:  5,
		JumpDamping:       0.8,
		JumpDampingStep:   0.12,
		MinJumpDamping:    0.35,
	}
}

// Settle tolerances: pixels for geometry, unitless for shape factors.
// Velocity must also be under ten times the tolerance per second.
const (
	settlePosEpsilon = 0.05
	shapeEpsilon     = 0.001
)

// axis is one spring-driven scalar.
type axis struct {
	pos, vel, target float64
}

func (a *axis) step(s harmonica.Spring) {
	a.pos, a.vel = s.Update(a.pos, a.vel, a.target)
}

func (a *axis) snap(v float64) {
	a.pos, a.vel, a.target = v, 0, v
}

func (a *axis) settled(eps float64) bool {
	return math.Abs(a.pos-a.target) < eps && math.Abs(a.vel) < eps*10
}

// Synthesizer turns gesture data into indicator keyframes. It is purely
// cosmetic: nothing in selection depends on its state.
type Synthesizer struct {
	cfg MotionConfig

	x, w                          axis
	stretch, squash, radius, lean axis

	opacity float32
	morph   MorphIntent
	profile MotionProfile

	// Spring parameters for the current transition.
	posFreq, posDamp     float64
	shapeFreq, shapeDamp float64
}

// NewSynthesizer creates a hidden indicator.
func NewSynthesizer(cfg MotionConfig) *Synthesizer {
	m := &Synthesizer{cfg: cfg}
	m.stretch.snap(1)
	m.squash.snap(1)
	m.radius.snap(float64(cfg.CornerRadius))
	m.setSprings(cfg.SettleFrequency, 1, cfg.SettleFrequency, 1)
	return m
}

// SetConfig swaps tuning. In-flight animations keep their targets.
func (m *Synthesizer) SetConfig(cfg MotionConfig) {
	m.cfg = cfg
}

// Indicator returns the current keyframe.
func (m *Synthesizer) Indicator() IndicatorState {
	return IndicatorState{
		X:       float32(m.x.pos),
		Width:   float32(m.w.pos),
		Opacity: m.opacity,
		Morph:   m.morph,
		Profile: m.profile,
		Shape: Shape{
			Stretch: float32(m.stretch.pos),
			Squash:  float32(m.squash.pos),
			Radius:  float32(m.radius.pos),
			Lean:    float32(m.lean.pos),
		},
	}
}

// Visible reports whether the indicator has been placed on a real rect.
func (m *Synthesizer) Visible() bool {
	return m.opacity > 0
}

// Hide makes the indicator invisible until the next Rest or gesture.
func (m *Synthesizer) Hide() {
	m.opacity = 0
}

// Rest places the indicator on r immediately with a neutral shape.
func (m *Synthesizer) Rest(r Rect) {
	m.x.snap(float64(r.X))
	m.w.snap(float64(r.W))
	m.neutralShape(true)
	m.opacity = 1
	m.morph = MorphRest
	m.profile = MotionSlowDeform
}

// PickUp enlarges the indicator in place at the pressed option.
func (m *Synthesizer) PickUp(r Rect) {
	if !m.Visible() {
		m.Rest(r)
	}
	m.morph = MorphPickUp
	m.profile = MotionSlowDeform
	m.setSprings(m.cfg.FollowFrequency, 1, m.cfg.FollowFrequency, 0.7)

	m.x.target = float64(r.X)
	m.w.target = float64(r.W)
	m.stretch.target = float64(m.cfg.PickUpScale)
	m.squash.target = float64(m.cfg.PickUpScale)
	m.radius.target = float64(m.cfg.DragRadius)
	m.lean.target = 0
}

// Follow tracks the pointer during a drag. The indicator is centered on
// pointerX and clamped inside row inset by EdgeMargin.
func (m *Synthesizer) Follow(pointerX float32, row Rect, instant, peak, net float32) MotionProfile {
	m.morph = MorphDrag
	m.opacity = 1
	m.setSprings(m.cfg.FollowFrequency, 1, m.cfg.FollowFrequency, 0.6)

	w := float32(m.w.target)
	lo := row.X + m.cfg.EdgeMargin
	hi := row.Right() - m.cfg.EdgeMargin - w
	left := pointerX - w*0.5
	if hi < lo {
		left = row.CenterX() - w*0.5
	} else {
		left = clampf(left, lo, hi)
	}
	m.x.snap(float64(left))

	profile := ClassifyMotion(instant, peak, net, m.cfg.SnapVelocity, m.cfg.FlickVelocity)
	m.profile = profile

	maxExtra := maxf(m.cfg.MaxStretch-1, 0)
	stretch := 1 + minf(absf(instant)*m.cfg.StretchPerVelocity, maxExtra)
	var lean float32
	switch profile {
	case MotionSnapRight, MotionSnapLeft:
		flick := 1 + minf(peak*m.cfg.StretchPerVelocity, maxExtra)
		stretch = maxf(maxf(stretch, flick), m.cfg.SnapStretch)
		lean = m.cfg.SnapLean
		if profile == MotionSnapLeft {
			lean = -lean
		}
	}
	// Keep the area roughly constant: a longer blob gets thinner.
	squash := 1 / sqrtf(stretch)

	m.stretch.target = float64(stretch)
	m.squash.target = float64(squash)
	m.radius.target = float64(m.cfg.DragRadius)
	m.lean.target = float64(lean)
	return profile
}

// Settle returns the indicator to r with one decelerating curve and a
// neutral shape. It does not wait on the host.
func (m *Synthesizer) Settle(r Rect) {
	if !m.Visible() {
		m.Rest(r)
		return
	}
	m.morph = MorphSettle
	m.setSprings(m.cfg.SettleFrequency, 1, m.cfg.SettleFrequency, 1)
	m.x.target = float64(r.X)
	m.w.target = float64(r.W)
	m.neutralShape(false)
}

// JumpTo animates a programmatic change to r. distance is the number of
// options between the old and new index; longer jumps get a slower,
// less damped spring so they read as bigger moves.
func (m *Synthesizer) JumpTo(r Rect, distance int) {
	if !m.Visible() {
		m.Rest(r)
		return
	}
	if distance < 1 {
		distance = 1
	}
	steps := float64(distance - 1)
	freq := math.Max(m.cfg.MinJumpFrequency, m.cfg.JumpFrequency-m.cfg.JumpFrequencyStep*steps)
	damp := math.Max(m.cfg.MinJumpDamping, m.cfg.JumpDamping-m.cfg.JumpDampingStep*steps)

	m.morph = MorphJump
	m.setSprings(freq, damp, freq, damp)
	m.x.target = float64(r.X)
	m.w.target = float64(r.W)
	m.neutralShape(false)
	// Kick the stretch so the blob elongates in flight and springs back.
	m.stretch.vel += 0.6 * float64(distance)
}

// Retarget moves the resting target to r without starting a new
// transition. Used when layout changes under an idle indicator.
func (m *Synthesizer) Retarget(r Rect) {
	switch m.morph {
	case MorphRest:
		m.x.snap(float64(r.X))
		m.w.snap(float64(r.W))
	case MorphSettle, MorphJump, MorphPickUp:
		m.x.target = float64(r.X)
		m.w.target = float64(r.W)
	}
}

// Step advances springs by dt and reports whether anything is still moving.
// Settle and jump transitions end in MorphRest once every axis converges.
func (m *Synthesizer) Step(dt time.Duration) bool {
	if dt <= 0 {
		return m.Animating()
	}
	secs := dt.Seconds()
	pos := harmonica.NewSpring(secs, m.posFreq, m.posDamp)
	shape := harmonica.NewSpring(secs, m.shapeFreq, m.shapeDamp)

	if m.morph != MorphDrag {
		m.x.step(pos)
	}
	m.w.step(pos)
	m.stretch.step(shape)
	m.squash.step(shape)
	m.radius.step(shape)
	m.lean.step(shape)

	if m.converged() {
		m.x.snap(m.x.target)
		m.w.snap(m.w.target)
		m.stretch.snap(m.stretch.target)
		m.squash.snap(m.squash.target)
		m.radius.snap(m.radius.target)
		m.lean.snap(m.lean.target)
		if m.morph == MorphSettle || m.morph == MorphJump {
			m.morph = MorphRest
			m.profile = MotionSlowDeform
		}
		return false
	}
	return true
}

// Animating reports whether any axis has not reached its target.
func (m *Synthesizer) Animating() bool {
	return !m.converged()
}

func (m *Synthesizer) converged() bool {
	return m.x.settled(settlePosEpsilon) &&
		m.w.settled(settlePosEpsilon) &&
		m.radius.settled(settlePosEpsilon) &&
		m.stretch.settled(shapeEpsilon) &&
		m.squash.settled(shapeEpsilon) &&
		m.lean.settled(shapeEpsilon)
}

func (m *Synthesizer) neutralShape(snap bool) {
	if snap {
		m.stretch.snap(1)
		m.squash.snap(1)
		m.radius.snap(float64(m.cfg.CornerRadius))
		m.lean.snap(0)
		return
	}
	m.stretch.target = 1
	m.squash.target = 1
	m.radius.target = float64(m.cfg.CornerRadius)
	m.lean.target = 0
}

func (m *Synthesizer) setSprings(posFreq, posDamp, shapeFreq, shapeDamp float64) {
	m.posFreq, m.posDamp = posFreq, posDamp
	m.shapeFreq, m.shapeDamp = shapeFreq, shapeDamp
}
