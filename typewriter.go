// Package typewriterx drives typewriter-style text animations: a list of
// phrases is typed out character by character, held, deleted and replaced
// by the next phrase, while a caret blinks on its own timer.
//
// An Engine owns one animation. It never blocks the caller; every delay is a
// callback on a Scheduler, so the same engine runs against the wall clock
// (SystemScheduler) or a virtual clock (realtime.Clock) in tests and replays.
//
//	e, err := typewriterx.Start(cfg, typewriterx.WithRenderFunc(func(f typewriterx.Frame) {
//		fmt.Println(f)
//	}))
//	if err != nil {
//		return err
//	}
//	defer e.Stop()
package typewriterx

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Start and Reconfigure when a Config is
// rejected. The wrapped message names the offending field.
var ErrInvalidConfig = errors.New("invalid typewriter config")

// Mode is the phase of the text cycle.
type Mode int

const (
	Typing Mode = iota
	Holding
	Deleting
	Advancing
	Stopped
)

func (m Mode) String() string {
	switch m {
	case Typing:
		return "typing"
	case Holding:
		return "holding"
	case Deleting:
		return "deleting"
	case Advancing:
		return "advancing"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for m := Typing; m <= Stopped; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Config parameterises one engine run. Timings are in milliseconds.
type Config struct {
	Phrases          []string `json:"phrases" yaml:"phrases"`
	TypeSpeedMs      int      `json:"typeSpeedMs" yaml:"typeSpeedMs"`
	DeleteSpeedMs    int      `json:"deleteSpeedMs" yaml:"deleteSpeedMs"`
	InitialDelayMs   int      `json:"initialDelayMs" yaml:"initialDelayMs"`
	HoldMs           int      `json:"holdMs" yaml:"holdMs"`
	Loop             bool     `json:"loop" yaml:"loop"`
	ShowCursor       bool     `json:"showCursor" yaml:"showCursor"`
	CursorChar       string   `json:"cursorChar" yaml:"cursorChar"`
	CursorBlinkOnMs  int      `json:"cursorBlinkOnMs" yaml:"cursorBlinkOnMs"`
	CursorBlinkOffMs int      `json:"cursorBlinkOffMs" yaml:"cursorBlinkOffMs"`
}

// DefaultConfig returns the timings used across the site. Phrases are left
// empty; callers must supply them.
func DefaultConfig() Config {
	return Config{
		TypeSpeedMs:      100,
		DeleteSpeedMs:    50,
		InitialDelayMs:   0,
		HoldMs:           2000,
		Loop:             true,
		ShowCursor:       true,
		CursorChar:       "|",
		CursorBlinkOnMs:  400,
		CursorBlinkOffMs: 600,
	}
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if len(c.Phrases) == 0 {
		return fmt.Errorf("%w: phrases must contain at least one entry", ErrInvalidConfig)
	}
	timings := []struct {
		name string
		v    int
	}{
		{"typeSpeedMs", c.TypeSpeedMs},
		{"deleteSpeedMs", c.DeleteSpeedMs},
		{"initialDelayMs", c.InitialDelayMs},
		{"holdMs", c.HoldMs},
		{"cursorBlinkOnMs", c.CursorBlinkOnMs},
		{"cursorBlinkOffMs", c.CursorBlinkOffMs},
	}
	for _, t := range timings {
		if t.v < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %d)", ErrInvalidConfig, t.name, t.v)
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with c.
func (c Config) Clone() Config {
	c.Phrases = append([]string(nil), c.Phrases...)
	return c
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Snapshot is a point-in-time view of an engine's text state.
type Snapshot struct {
	Text          string
	PhraseIndex   int
	CharCursor    int
	Mode          Mode
	CursorVisible bool
}

// Cause tells a renderer why a frame was emitted.
type Cause int

const (
	CauseTransition Cause = iota
	CauseBlink
)

func (c Cause) String() string {
	if c == CauseBlink {
		return "blink"
	}
	return "transition"
}

// Frame is what the renderer receives after every transition and every
// caret toggle. Cursor is empty when the config hides the caret.
type Frame struct {
	Text          string
	Mode          Mode
	PhraseIndex   int
	Cursor        string
	CursorVisible bool
	Cause         Cause
}

// String renders the text followed by the caret when it is visible.
func (f Frame) String() string {
	if f.CursorVisible {
		return f.Text + f.Cursor
	}
	return f.Text
}

// Renderer receives frames. Render is called with the engine lock held and
// must not call back into the same engine.
type Renderer interface {
	Render(Frame)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(Frame)

func (f RenderFunc) Render(fr Frame) { f(fr) }

// Metrics receives engine activity. internal/metrics provides a Prometheus
// implementation.
type Metrics interface {
	EngineStarted()
	EngineStopped()
	Transition(from, to Mode)
	Frame(cause Cause)
}

type nopMetrics struct{}

func (nopMetrics) EngineStarted()       {}
func (nopMetrics) EngineStopped()       {}
func (nopMetrics) Transition(_, _ Mode) {}
func (nopMetrics) Frame(Cause)          {}
