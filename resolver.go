package segment

import "go.uber.org/zap"

// SelectFunc is the host's selection contract. The engine calls it at most
// once per gesture with the resolved index. Returning an error tells the
// engine the host refused; the indicator then goes back to the last
// confirmed active index. Accepting does not change the engine's active
// index: the host confirms by calling SetActiveIndex.
type SelectFunc func(index int) error

// Resolution is the outcome of resolving one gesture.
type Resolution struct {
	Index      int   // Resolved target, -1 when nothing was requested
	Dispatched bool  // SelectFunc was called for this resolution
	Err        error // Host rejection, if any
}

// Resolver decides the single target of a finished gesture and requests
// it from the host.
type Resolver struct {
	registry *Registry
	onSelect SelectFunc
	logger   *zap.Logger

	// resolved guards against a second dispatch inside one gesture.
	resolved bool
}

// NewResolver creates a resolver. A nil onSelect makes every resolution a
// visual-only decision.
func NewResolver(registry *Registry, onSelect SelectFunc, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{registry: registry, onSelect: onSelect, logger: logger}
}

// Begin opens a new gesture and re-arms dispatch.
func (r *Resolver) Begin() {
	r.resolved = false
}

// Resolved reports whether the current gesture already dispatched.
func (r *Resolver) Resolved() bool {
	return r.resolved
}

// ResolveClick resolves a plain click at release x: the option under x,
// or the nearest one. An empty row requests nothing.
func (r *Resolver) ResolveClick(x float32) Resolution {
	if r.resolved {
		return Resolution{Index: -1}
	}
	return r.dispatch(r.registry.HitTest(x))
}

// ResolveDrag resolves a finished drag. The target tracked while moving
// wins over the release point; when no option was ever tracked it falls
// back to a hit-test at releaseX and then to active.
func (r *Resolver) ResolveDrag(dragTarget int, releaseX float32, active int) Resolution {
	if r.resolved {
		return Resolution{Index: -1}
	}

	n := r.registry.Len()
	target := -1
	switch {
	case dragTarget >= 0 && dragTarget < n:
		target = dragTarget
	default:
		target = r.registry.HitTest(releaseX)
		if target < 0 && active >= 0 && active < n {
			target = active
		}
	}
	return r.dispatch(target)
}

func (r *Resolver) dispatch(index int) Resolution {
	if index < 0 {
		return Resolution{Index: -1}
	}
	r.resolved = true

	if r.onSelect == nil {
		return Resolution{Index: index}
	}
	r.logger.Debug("select requested", zap.Int("index", index))
	if err := r.onSelect(index); err != nil {
		r.logger.Warn("host rejected selection", zap.Int("index", index), zap.Error(err))
		return Resolution{Index: index, Dispatched: true, Err: err}
	}
	return Resolution{Index: index, Dispatched: true}
}
