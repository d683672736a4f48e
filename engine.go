package typewriterx

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"go.uber.org/zap"
)

// ErrStopped is returned by Reconfigure once Stop has been called.
var ErrStopped = errors.New("typewriter engine stopped")

// Engine runs one typewriter animation. All methods are safe for concurrent
// use; scheduled callbacks and public methods serialise on one mutex.
type Engine struct {
	mu sync.Mutex

	id       string
	sched    Scheduler
	renderer Renderer
	log      *zap.Logger
	metrics  Metrics

	cfg     Config
	phrases []string
	// bounds[p][k] is the byte length of the first k characters of phrase p.
	bounds [][]int
	chart  *Machine

	index         int
	cursor        int
	cursorVisible bool

	// gen invalidates callbacks scheduled before the last Stop or Reconfigure.
	gen        uint64
	textTimer  Timer
	blinkTimer Timer
	stopped    bool
	done       chan struct{}
}

// Start validates cfg and begins the cycle. The first character is typed
// InitialDelayMs after Start returns. Nothing is emitted synchronously.
func Start(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		id:       uuid.NewString(),
		sched:    SystemScheduler{},
		renderer: RenderFunc(func(Frame) {}),
		log:      zap.NewNop(),
		metrics:  nopMetrics{},
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	chart, err := e.newChart()
	if err != nil {
		return nil, err
	}
	e.chart = chart

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.run(cfg); err != nil {
		return nil, err
	}
	e.metrics.EngineStarted()
	e.log.Info("typewriter started",
		zap.String("engine", e.id),
		zap.Int("phrases", len(cfg.Phrases)),
		zap.Bool("loop", cfg.Loop))
	return e, nil
}

// ID identifies the engine in logs.
func (e *Engine) ID() string {
	return e.id
}

// Stop cancels the text and caret timers. It is idempotent and safe on a
// nil Engine. No frame is emitted after Stop returns.
func (e *Engine) Stop() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}
	e.stopped = true
	e.cancelTimers()
	close(e.done)

	e.metrics.EngineStopped()
	e.log.Info("typewriter stopped",
		zap.String("engine", e.id),
		zap.Stringer("mode", e.chart.Current()),
		zap.Int("phrase", e.index))
}

// Done is closed when Stop is called.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Reconfigure replaces the config of a running engine. It is equivalent to
// Stop followed by Start on the same handle: state resets and timers from the
// previous run never fire. An invalid cfg is rejected and the engine keeps
// running with its current config.
func (e *Engine) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return ErrStopped
	}
	e.cancelTimers()
	if err := e.run(cfg); err != nil {
		return err
	}
	e.log.Info("typewriter reconfigured",
		zap.String("engine", e.id),
		zap.Int("phrases", len(cfg.Phrases)))
	return nil
}

// Snapshot returns the current text state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Config returns a copy of the active config.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.Clone()
}

//
// Internals; callers hold e.mu.
//

// run resets state for cfg and schedules the first callbacks.
func (e *Engine) run(cfg Config) error {
	e.gen++
	e.cfg = cfg.Clone()
	e.phrases = e.cfg.Phrases
	e.bounds = make([][]int, len(e.phrases))
	for i, p := range e.phrases {
		e.bounds[i] = graphemeBounds(p)
	}
	e.index = 0
	e.cursor = 0
	e.cursorVisible = e.cfg.ShowCursor

	if err := e.chart.Start(context.Background()); err != nil {
		return err
	}

	gen := e.gen
	e.textTimer = e.sched.AfterFunc(ms(e.cfg.InitialDelayMs), func() { e.fire(gen, EventStep) })
	e.scheduleBlink(gen)
	return nil
}

func (e *Engine) cancelTimers() {
	e.gen++
	if e.textTimer != nil {
		e.textTimer.Stop()
		e.textTimer = nil
	}
	if e.blinkTimer != nil {
		e.blinkTimer.Stop()
		e.blinkTimer = nil
	}
}

// fire applies one scheduled text event, settles immediate transitions,
// emits one frame and schedules the next event.
func (e *Engine) fire(gen uint64, ev EventID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped || gen != e.gen {
		return
	}
	e.textTimer = nil

	ctx := context.Background()
	if err := e.chart.Send(ctx, Event{ID: ev}); err != nil {
		e.log.Error("transition failed", zap.String("engine", e.id), zap.Stringer("event", ev), zap.Error(err))
	}
	if err := e.settle(ctx); err != nil {
		e.log.Error("settle failed", zap.String("engine", e.id), zap.Error(err))
	}

	e.emit(CauseTransition)
	e.scheduleText(gen)
}

func (e *Engine) scheduleText(gen uint64) {
	var (
		delay int
		ev    EventID
	)
	switch e.chart.Current() {
	case Typing:
		delay, ev = e.cfg.TypeSpeedMs, EventStep
	case Holding:
		delay, ev = e.cfg.HoldMs, EventHoldElapsed
	case Deleting:
		delay, ev = e.cfg.DeleteSpeedMs, EventStep
	default:
		return // Stopped: no more text events.
	}
	e.textTimer = e.sched.AfterFunc(ms(delay), func() { e.fire(gen, ev) })
}

// scheduleBlink arms the caret timer for the current phase. A caret whose
// on and off phases are both zero is shown steadily.
func (e *Engine) scheduleBlink(gen uint64) {
	if !e.cfg.ShowCursor || (e.cfg.CursorBlinkOnMs == 0 && e.cfg.CursorBlinkOffMs == 0) {
		return
	}
	d := e.cfg.CursorBlinkOffMs
	if e.cursorVisible {
		d = e.cfg.CursorBlinkOnMs
	}
	e.blinkTimer = e.sched.AfterFunc(ms(d), func() { e.blink(gen) })
}

func (e *Engine) blink(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped || gen != e.gen {
		return
	}
	e.blinkTimer = nil
	e.cursorVisible = !e.cursorVisible
	e.emit(CauseBlink)
	e.scheduleBlink(gen)
}

func (e *Engine) emit(cause Cause) {
	f := Frame{
		Text:          e.text(),
		Mode:          e.chart.Current(),
		PhraseIndex:   e.index,
		CursorVisible: e.cursorVisible,
		Cause:         cause,
	}
	if e.cfg.ShowCursor {
		f.Cursor = e.cfg.CursorChar
	}
	e.metrics.Frame(cause)

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("renderer panicked", zap.String("engine", e.id), zap.Any("panic", r))
		}
	}()
	e.renderer.Render(f)
}

func (e *Engine) snapshot() Snapshot {
	return Snapshot{
		Text:          e.text(),
		PhraseIndex:   e.index,
		CharCursor:    e.cursor,
		Mode:          e.chart.Current(),
		CursorVisible: e.cursorVisible,
	}
}

func (e *Engine) text() string {
	return e.phrases[e.index][:e.bounds[e.index][e.cursor]]
}

func (e *Engine) phraseLen() int {
	return len(e.bounds[e.index]) - 1
}

// graphemeBounds returns the byte offset after each user-perceived
// character of s, starting with 0.
func graphemeBounds(s string) []int {
	bounds := []int{0}
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		_, to := g.Positions()
		bounds = append(bounds, to)
	}
	return bounds
}
