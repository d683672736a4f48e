package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runtime advances a Clock by a fixed step on every real tick.
type Runtime struct {
	clock *Clock

	// Tick-specific fields
	tickRate time.Duration // e.g., 16.67ms for 60 FPS
	step     time.Duration
	ticker   *time.Ticker
	tickNum  uint64
	log      *zap.Logger

	mu sync.Mutex

	// Control
	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
}

// Config configures the real-time runtime
type Config struct {
	TickRate time.Duration // Real interval between ticks (default: 60 FPS)
	Step     time.Duration // Virtual time added per tick (default: TickRate)
	Logger   *zap.Logger
}

// NewRuntime creates a tick-based runtime for clock.
func NewRuntime(clock *Clock, cfg Config) *Runtime {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 16667 * time.Microsecond // Default 60 FPS
	}
	if cfg.Step <= 0 {
		cfg.Step = cfg.TickRate
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Runtime{
		clock:    clock,
		tickRate: cfg.TickRate,
		step:     cfg.Step,
		log:      cfg.Logger,
	}
}

// Start begins tick-based execution. It returns an error if the runtime is
// already running.
func (rt *Runtime) Start(ctx context.Context) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.tickCancel != nil {
		return errors.New("runtime already started")
	}
	rt.tickCtx, rt.tickCancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.tickRate)
	rt.stopped = make(chan struct{})

	go rt.tickLoop(rt.tickCtx, rt.ticker, rt.stopped)

	return nil
}

// Stop halts the tick loop and waits for it to exit. Stopping a runtime
// that is not running is a no-op.
func (rt *Runtime) Stop() error {
	rt.mu.Lock()
	cancel, ticker, stopped := rt.tickCancel, rt.ticker, rt.stopped
	rt.tickCancel, rt.ticker, rt.stopped = nil, nil, nil
	rt.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	ticker.Stop()

	// Wait for tick loop to exit
	<-stopped
	return nil
}

// tickLoop is the main tick execution loop
func (rt *Runtime) tickLoop(ctx context.Context, ticker *time.Ticker, stopped chan struct{}) {
	defer close(stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rt.processTick()
		}
	}
}

// Ticks returns the number of completed ticks.
func (rt *Runtime) Ticks() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.tickNum
}

// Clock returns the driven clock.
func (rt *Runtime) Clock() *Clock {
	return rt.clock
}
