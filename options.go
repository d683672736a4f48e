package typewriterx

import "go.uber.org/zap"

// Option configures an Engine via the functional options pattern.
type Option func(*Engine)

// WithScheduler replaces the wall-clock scheduler, e.g. with a realtime.Clock.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithRenderer sets the frame sink.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithRenderFunc is WithRenderer for a plain function.
func WithRenderFunc(f func(Frame)) Option {
	return WithRenderer(RenderFunc(f))
}

// WithLogger configures the engine logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMetrics configures a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithID overrides the generated engine ID used in logs.
func WithID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.id = id
		}
	}
}
