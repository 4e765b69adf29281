package segment

// Spacing constants for consistent layout (similar to Tailwind spacing scale).
const (
	SpaceNone float32 = 0
	SpaceXS   float32 = 2  // Extra small
	SpaceSM   float32 = 4  // Small
	SpaceMD   float32 = 8  // Medium (default padding)
	SpaceLG   float32 = 12 // Large
	SpaceXL   float32 = 16 // Extra large
)

// Style defines the visual appearance of a selector row.
type Style struct {
	// Track behind the options
	TrackColor    uint32
	TrackRounding float32

	// Per-option marker (a short bar under each option)
	MarkerColor       uint32
	MarkerActiveColor uint32
	MarkerHeight      float32

	// Indicator
	IndicatorColor     uint32 // At rest and settling
	IndicatorDragColor uint32 // While picked up or dragging (0 = use IndicatorColor)
}

// DefaultStyle returns the default style.
func DefaultStyle() Style {
	return Style{
		TrackColor:    RGBA(30, 30, 34, 235),
		TrackRounding: 14,

		MarkerColor:       RGBA(90, 90, 95, 255),
		MarkerActiveColor: ColorWhite,
		MarkerHeight:      SpaceXS,

		IndicatorColor:     RGBA(65, 105, 225, 255), // Royal blue
		IndicatorDragColor: RGBA(95, 135, 245, 255),
	}
}

// NightStyle returns a high-contrast dark theme with a cyan indicator.
func NightStyle() Style {
	s := DefaultStyle()
	s.TrackColor = RGBA(0, 0, 0, 220)
	s.MarkerColor = RGBA(0, 100, 150, 255)
	s.MarkerActiveColor = RGBA(255, 200, 0, 255)
	s.IndicatorColor = RGBA(0, 120, 180, 255)
	s.IndicatorDragColor = RGBA(0, 200, 255, 255)
	return s
}

// LightStyle returns a light theme.
func LightStyle() Style {
	return Style{
		TrackColor:    RGBA(235, 235, 238, 250),
		TrackRounding: 14,

		MarkerColor:       RGBA(190, 190, 195, 255),
		MarkerActiveColor: RGBA(20, 20, 20, 255),
		MarkerHeight:      SpaceXS,

		IndicatorColor:     ColorWhite,
		IndicatorDragColor: RGBA(250, 250, 255, 255),
	}
}
