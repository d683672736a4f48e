package render

import (
	"sync"

	"github.com/comalice/typewriterx"
)

// ChannelRenderer forwards frames to a Go channel.
// Non-blocking render with drop on backpressure; a renderer is called with
// the engine lock held, so it must never wait on a slow consumer.
type ChannelRenderer struct {
	mu      sync.Mutex
	ch      chan<- typewriterx.Frame
	closed  bool
	dropped int
}

var _ typewriterx.Renderer = (*ChannelRenderer)(nil)

// NewChannelRenderer creates a ChannelRenderer with the given output channel.
func NewChannelRenderer(ch chan<- typewriterx.Frame) *ChannelRenderer {
	return &ChannelRenderer{ch: ch}
}

func (r *ChannelRenderer) Render(f typewriterx.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	select {
	case r.ch <- f:
	default:
		r.dropped++ // Non-blocking drop
	}
}

// Dropped returns the number of frames dropped because the channel was full.
func (r *ChannelRenderer) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close closes the channel. Frames rendered afterwards are discarded.
func (r *ChannelRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.closed {
		r.closed = true
		close(r.ch)
	}
	return nil
}
