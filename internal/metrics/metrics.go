// Package metrics exposes Prometheus collectors for typewriter engines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/typewriterx"
)

// Metrics implements typewriterx.Metrics with Prometheus collectors.
type Metrics struct {
	transitions   *prometheus.CounterVec
	frames        *prometheus.CounterVec
	enginesActive prometheus.Gauge
}

var _ typewriterx.Metrics = (*Metrics)(nil)

// MustNew constructs a Metrics instance registered with reg. Registration
// errors panic, mirroring promauto; pass a fresh registry in tests.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	transitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "typewriter",
			Name:      "transitions_total",
			Help:      "Mode transitions taken by typewriter engines.",
		},
		[]string{"from", "to"},
	)
	frames := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "typewriter",
			Name:      "frames_total",
			Help:      "Frames emitted to renderers, by cause.",
		},
		[]string{"cause"},
	)
	enginesActive := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "typewriter",
			Name:      "engines_active",
			Help:      "Engines started and not yet stopped.",
		},
	)

	reg.MustRegister(transitions, frames, enginesActive)

	return &Metrics{
		transitions:   transitions,
		frames:        frames,
		enginesActive: enginesActive,
	}
}

func (m *Metrics) EngineStarted() { m.enginesActive.Inc() }
func (m *Metrics) EngineStopped() { m.enginesActive.Dec() }

func (m *Metrics) Transition(from, to typewriterx.Mode) {
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

func (m *Metrics) Frame(cause typewriterx.Cause) {
	m.frames.WithLabelValues(cause.String()).Inc()
}
