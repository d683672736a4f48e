package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/comalice/typewriterx"
)

// LineRenderer writes frames to w. By default every transition frame is
// one line and blink frames are skipped; with InPlace the current line is
// redrawn with a carriage return so the caret blinks in a terminal.
type LineRenderer struct {
	mu sync.Mutex
	w  io.Writer

	InPlace     bool
	TextStyle   lipgloss.Style
	CursorStyle lipgloss.Style

	err error
}

var _ typewriterx.Renderer = (*LineRenderer)(nil)

// NewLineRenderer creates a LineRenderer with unstyled output.
func NewLineRenderer(w io.Writer) *LineRenderer {
	return &LineRenderer{
		w:           w,
		TextStyle:   lipgloss.NewStyle(),
		CursorStyle: lipgloss.NewStyle(),
	}
}

func (r *LineRenderer) Render(f typewriterx.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return
	}
	if f.Cause == typewriterx.CauseBlink && !r.InPlace {
		return
	}

	line := Styled(f, r.TextStyle, r.CursorStyle)
	if r.InPlace {
		_, r.err = fmt.Fprintf(r.w, "\r\x1b[2K%s", line)
		return
	}
	_, r.err = fmt.Fprintln(r.w, line)
}

// Err returns the first write error. Rendering stops after an error.
func (r *LineRenderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Styled renders a frame's text and caret with the given styles. A hidden
// caret keeps its width so the text does not jump.
func Styled(f typewriterx.Frame, text, cursor lipgloss.Style) string {
	out := text.Render(f.Text)
	if f.Cursor == "" {
		return out
	}
	if f.CursorVisible {
		return out + cursor.Render(f.Cursor)
	}
	return out + cursor.Render(strings.Repeat(" ", lipgloss.Width(f.Cursor)))
}
