package segment

// Option is one selectable region of the row.
// Rect comes from live layout and is stale as soon as layout changes;
// never hold on to it across gestures.
type Option struct {
	Index int
	Rect  Rect
	Value string
}

// MeasureFunc reports the current options in display order.
// It is called on every registry query, so it must read live layout.
type MeasureFunc func() []Option

// Registry answers hit-test and geometry queries over the options.
// Every query re-measures; there is no cache to invalidate.
type Registry struct {
	measure MeasureFunc
}

// NewRegistry creates a registry reading from measure.
// A nil measure behaves as an empty row.
func NewRegistry(measure MeasureFunc) *Registry {
	return &Registry{measure: measure}
}

// Options returns a fresh measurement. Indices are rewritten to slice
// positions so callers always see 0..n-1.
func (r *Registry) Options() []Option {
	if r == nil || r.measure == nil {
		return nil
	}
	opts := r.measure()
	for i := range opts {
		opts[i].Index = i
	}
	return opts
}

// Len returns the number of options currently registered.
func (r *Registry) Len() int {
	return len(r.Options())
}

// HitTest returns the option containing x. On a miss it returns the option
// whose center is closest to x, so drags that overshoot the row edge still
// land somewhere. It returns -1 only when no option has been measured.
func (r *Registry) HitTest(x float32) int {
	opts := r.Options()

	best := -1
	var bestDist float32
	for _, opt := range opts {
		if !opt.Rect.Measured() {
			continue
		}
		if opt.Rect.ContainsX(x) {
			return opt.Index
		}
		d := absf(opt.Rect.CenterX() - x)
		if best < 0 || d < bestDist {
			best = opt.Index
			bestDist = d
		}
	}
	return best
}

// IndexAt returns the option whose rect strictly contains x, or -1.
func (r *Registry) IndexAt(x float32) int {
	for _, opt := range r.Options() {
		if opt.Rect.Measured() && opt.Rect.ContainsX(x) {
			return opt.Index
		}
	}
	return -1
}

// RectOf returns the rect of option index.
// ok is false when the index is out of range or layout has not run yet.
func (r *Registry) RectOf(index int) (Rect, bool) {
	opts := r.Options()
	if index < 0 || index >= len(opts) {
		return Rect{}, false
	}
	rect := opts[index].Rect
	if !rect.Measured() {
		return Rect{}, false
	}
	return rect, true
}

// ValueOf returns the identifier of option index, or "" if out of range.
func (r *Registry) ValueOf(index int) string {
	opts := r.Options()
	if index < 0 || index >= len(opts) {
		return ""
	}
	return opts[index].Value
}

// Bounds returns the union of all measured option rects.
func (r *Registry) Bounds() (Rect, bool) {
	var out Rect
	found := false
	for _, opt := range r.Options() {
		if !opt.Rect.Measured() {
			continue
		}
		if !found {
			out = opt.Rect
			found = true
			continue
		}
		out = out.Union(opt.Rect)
	}
	return out, found
}
