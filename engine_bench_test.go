package typewriterx_test

import (
	"context"
	"testing"
	"time"

	. "github.com/comalice/typewriterx"
	"github.com/comalice/typewriterx/realtime"
)

// BenchmarkModeTransition measures a single guarded transition on the chart.
func BenchmarkModeTransition(b *testing.B) {
	holding := &State{ID: Holding}
	deleting := &State{ID: Deleting}
	holding.On(EventHoldElapsed, deleting, nil, nil)
	deleting.On(EventSettle, holding, nil, nil)

	m, err := NewMachine(holding, deleting)
	if err != nil {
		b.Fatalf("Failed to create machine: %v", err)
	}
	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		b.Fatalf("Failed to start: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Send(ctx, Event{ID: EventHoldElapsed})
		_ = m.Send(ctx, Event{ID: EventSettle})
	}
}

// BenchmarkEngineCycle measures one full type/hold/delete cycle of a
// 20-character phrase on the virtual clock.
func BenchmarkEngineCycle(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Phrases = []string{"Schlüsselfertigbau 1"}
	cfg.ShowCursor = false

	clock := realtime.NewClock()
	e, err := Start(cfg, WithScheduler(clock))
	if err != nil {
		b.Fatalf("Failed to start: %v", err)
	}
	defer e.Stop()

	cycle := time.Duration(20*cfg.TypeSpeedMs+cfg.HoldMs+20*cfg.DeleteSpeedMs) * time.Millisecond

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		clock.Advance(cycle)
	}
}
