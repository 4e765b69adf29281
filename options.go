package segment

import "go.uber.org/zap"

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithConfig replaces the whole tuning.
func WithConfig(cfg Config) SelectorOption {
	return func(s *Selector) { s.cfg = cfg }
}

// WithDragThreshold overrides only the drag threshold, in pixels.
func WithDragThreshold(px float32) SelectorOption {
	return func(s *Selector) { s.cfg.DragThreshold = px }
}

// WithLogger sets the logger. The selector names a child logger after
// itself. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) SelectorOption {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithName names the instance in logs.
func WithName(name string) SelectorOption {
	return func(s *Selector) { s.name = name }
}

// WithActiveIndex sets the initial active index. -1 means none.
func WithActiveIndex(index int) SelectorOption {
	return func(s *Selector) { s.active = index }
}
