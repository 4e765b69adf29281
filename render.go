package segment

// Draw renders the track, the option markers and the indicator into dl.
// Nothing is drawn before the first layout pass. The indicator is clipped
// to the track so a stretched blob never paints outside the row.
func (s *Selector) Draw(dl *DrawList, style Style) {
	opts := s.registry.Options()
	row, ok := s.registry.Bounds()
	if !ok {
		return
	}

	dl.AddRoundedRect(row, style.TrackRounding, style.TrackColor)

	ind := s.motion.Indicator()
	if ind.Opacity > 0 {
		color := style.IndicatorColor
		if (ind.Morph == MorphDrag || ind.Morph == MorphPickUp) && style.IndicatorDragColor != 0 {
			color = style.IndicatorDragColor
		}
		dl.PushClipRect(row)
		dl.AddRoundedRect(ind.Rect(row), ind.Shape.Radius, WithAlpha(color, ind.Opacity))
		dl.PopClipRect()
	}

	if style.MarkerHeight <= 0 {
		return
	}
	for _, opt := range opts {
		if !opt.Rect.Measured() {
			continue
		}
		color := style.MarkerColor
		if opt.Index == s.rest {
			color = style.MarkerActiveColor
		}
		w := opt.Rect.W * 0.25
		marker := Rect{
			X: opt.Rect.CenterX() - w*0.5,
			Y: opt.Rect.Y + opt.Rect.H - style.MarkerHeight*3,
			W: w,
			H: style.MarkerHeight,
		}
		dl.AddRect(marker, color)
	}
}
