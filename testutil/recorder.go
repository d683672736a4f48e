// Package testutil holds test helpers shared by typewriterx packages.
package testutil

import (
	"sync"
	"time"

	"github.com/comalice/typewriterx"
)

// Recorder is a Renderer that keeps every frame it receives.
type Recorder struct {
	mu     sync.Mutex
	frames []typewriterx.Frame
}

var _ typewriterx.Renderer = (*Recorder)(nil)

func (r *Recorder) Render(f typewriterx.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

// Frames returns a copy of all frames so far.
func (r *Recorder) Frames() []typewriterx.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]typewriterx.Frame(nil), r.frames...)
}

// Transitions returns the frames caused by text transitions, skipping caret
// blinks.
func (r *Recorder) Transitions() []typewriterx.Frame {
	var out []typewriterx.Frame
	for _, f := range r.Frames() {
		if f.Cause == typewriterx.CauseTransition {
			out = append(out, f)
		}
	}
	return out
}

// Texts returns the text of every transition frame.
func (r *Recorder) Texts() []string {
	var out []string
	for _, f := range r.Transitions() {
		out = append(out, f.Text)
	}
	return out
}

// Blinks returns the caret visibility of every blink frame.
func (r *Recorder) Blinks() []bool {
	var out []bool
	for _, f := range r.Frames() {
		if f.Cause == typewriterx.CauseBlink {
			out = append(out, f.CursorVisible)
		}
	}
	return out
}

// Len returns the number of frames so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Reset drops all recorded frames.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}

// WaitFor polls until pred holds for the recorded frames or timeout passes.
func (r *Recorder) WaitFor(timeout time.Duration, pred func([]typewriterx.Frame) bool) bool {
	deadline := time.Now().Add(timeout)
	for {
		if pred(r.Frames()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}
