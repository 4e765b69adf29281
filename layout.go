package segment

// RowLayout divides a horizontal strip into equally sized option cells.
// Bounds is read on every call so the row follows live window size.
type RowLayout struct {
	Bounds func() Rect

	// Spacing (Tailwind-style)
	Gap     float32 // Space between cells (gap-*)
	Padding float32 // Inner padding of the strip (p-*)
}

// Rects lays out n cells. Unsized bounds (before the first layout pass)
// produce zero-width cells, which the registry treats as unmeasured.
func (l RowLayout) Rects(n int) []Rect {
	if n <= 0 {
		return nil
	}
	var bounds Rect
	if l.Bounds != nil {
		bounds = l.Bounds()
	}

	inner := bounds.Inset(l.Padding, l.Padding)
	gaps := l.Gap * float32(n-1)
	cellW := (inner.W - gaps) / float32(n)
	if cellW < 0 || !bounds.Measured() {
		cellW = 0
	}

	rects := make([]Rect, n)
	x := inner.X
	for i := range rects {
		rects[i] = Rect{X: x, Y: inner.Y, W: cellW, H: inner.H}
		x += cellW + l.Gap
	}
	return rects
}

// RowMeasure returns a MeasureFunc that lays values out along the row.
// values is read on each call, so appending to or truncating the slice
// behind the pointer is a structural change the registry picks up.
func RowMeasure(layout RowLayout, values *[]string) MeasureFunc {
	return func() []Option {
		if values == nil {
			return nil
		}
		vals := *values
		rects := layout.Rects(len(vals))
		opts := make([]Option, len(vals))
		for i, v := range vals {
			opts[i] = Option{Index: i, Rect: rects[i], Value: v}
		}
		return opts
	}
}

// FixedBounds returns a bounds getter for a static rectangle.
func FixedBounds(r Rect) func() Rect {
	return func() Rect { return r }
}
