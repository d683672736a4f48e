package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/typewriterx"
	"github.com/comalice/typewriterx/realtime"
)

func TestMetrics_EngineLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := MustNew(reg)

	cfg := typewriterx.DefaultConfig()
	cfg.Phrases = []string{"Hi"}
	cfg.Loop = false
	cfg.TypeSpeedMs = 10
	cfg.HoldMs = 100
	cfg.CursorBlinkOnMs = 50
	cfg.CursorBlinkOffMs = 50

	clock := realtime.NewClock()
	e, err := typewriterx.Start(cfg, typewriterx.WithScheduler(clock), typewriterx.WithMetrics(m))
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.enginesActive))

	clock.Advance(200 * time.Millisecond)
	e.Stop()

	assert.Equal(t, 0.0, testutil.ToFloat64(m.enginesActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("typing", "holding")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("holding", "stopped")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.transitions.WithLabelValues("holding", "deleting")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.frames.WithLabelValues("transition")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.frames.WithLabelValues("blink")))
}

func TestMustNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustNew(reg)
	assert.Panics(t, func() { MustNew(reg) })
}
