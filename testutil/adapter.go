package testutil

import (
	"time"

	"github.com/comalice/typewriterx"
	"github.com/comalice/typewriterx/realtime"
)

// SchedulerAdapter lets the same test run on the virtual clock and on the
// wall clock.
type SchedulerAdapter interface {
	Name() string
	Scheduler() typewriterx.Scheduler
	// Elapse lets d of scheduler time pass.
	Elapse(d time.Duration)
}

// VirtualAdapter drives a realtime.Clock.
type VirtualAdapter struct {
	Clock *realtime.Clock
}

// NewVirtualAdapter creates an adapter around a fresh clock.
func NewVirtualAdapter() *VirtualAdapter {
	return &VirtualAdapter{Clock: realtime.NewClock()}
}

func (a *VirtualAdapter) Name() string                     { return "virtual" }
func (a *VirtualAdapter) Scheduler() typewriterx.Scheduler { return a.Clock }
func (a *VirtualAdapter) Elapse(d time.Duration)           { a.Clock.Advance(d) }

// WallAdapter uses time.AfterFunc and real sleeps. Slack is added to every
// Elapse to absorb goroutine scheduling.
type WallAdapter struct {
	Slack time.Duration
}

// NewWallAdapter creates a wall-clock adapter with 5ms slack.
func NewWallAdapter() *WallAdapter {
	return &WallAdapter{Slack: 5 * time.Millisecond}
}

func (a *WallAdapter) Name() string                     { return "wall" }
func (a *WallAdapter) Scheduler() typewriterx.Scheduler { return typewriterx.SystemScheduler{} }
func (a *WallAdapter) Elapse(d time.Duration)           { time.Sleep(d + a.Slack) }

// Adapters returns one adapter of each kind.
func Adapters() []SchedulerAdapter {
	return []SchedulerAdapter{NewVirtualAdapter(), NewWallAdapter()}
}
