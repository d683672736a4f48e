package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comalice/typewriterx"
	"github.com/comalice/typewriterx/internal/config"
	"github.com/comalice/typewriterx/internal/metrics"
	"github.com/comalice/typewriterx/internal/render"
	"github.com/comalice/typewriterx/realtime"
)

var (
	playWatch       bool
	playFPS         int
	playMetricsAddr string
)

var playCmd = &cobra.Command{
	Use:   "play [preset]",
	Short: "Animate a preset in the terminal",
	Long: `Animate a preset in the terminal until q or ctrl+c is pressed.

With --watch the preset file is reloaded on save and the running engine is
reconfigured in place. With --fps the engine runs on a virtual clock that a
fixed-rate tick loop advances, which quantizes every delay to whole frames.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&playWatch, "watch", "w", false, "reload the preset file on change (needs --config)")
	playCmd.Flags().IntVar(&playFPS, "fps", 0, "drive the engine from a fixed-rate tick loop instead of wall-clock timers")
	playCmd.Flags().StringVar(&playMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// frameMsg carries an engine frame into the bubbletea loop.
type frameMsg typewriterx.Frame

// reloadMsg reports the outcome of a preset file reload.
type reloadMsg struct{ err error }

type playModel struct {
	preset  string
	frames  <-chan typewriterx.Frame
	frame   typewriterx.Frame
	reloads int
	err     error
}

func newPlayModel(preset string, frames <-chan typewriterx.Frame) playModel {
	return playModel{preset: preset, frames: frames}
}

// waitForFrame blocks until the engine renders the next frame.
func waitForFrame(frames <-chan typewriterx.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return nil
		}
		return frameMsg(f)
	}
}

func (m playModel) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case frameMsg:
		m.frame = typewriterx.Frame(msg)
		return m, waitForFrame(m.frames)
	case reloadMsg:
		m.err = msg.err
		if msg.err == nil {
			m.reloads++
		}
	}
	return m, nil
}

func (m playModel) View() string {
	s := titleStyle.Render("typewriter · "+m.preset) + "\n\n"
	s += "  " + render.Styled(m.frame, textStyle, cursorStyle) + "\n\n"

	status := fmt.Sprintf("%s · phrase %d", m.frame.Mode, m.frame.PhraseIndex)
	if m.reloads > 0 {
		status += fmt.Sprintf(" · reloaded %d×", m.reloads)
	}
	s += helpStyle.Render(status) + "\n"
	if m.err != nil {
		s += errStyle.Render(m.err.Error()) + "\n"
	}
	return s + helpStyle.Render("q: quit") + "\n"
}

func runPlay(cmd *cobra.Command, args []string) error {
	presets, err := loadPresets()
	if err != nil {
		return err
	}
	name := presetArg(presets, args)
	cfg, err := presets.Preset(name)
	if err != nil {
		return err
	}
	if playWatch && configPath == "" {
		return errors.New("--watch needs --config")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	frames := make(chan typewriterx.Frame, 64)
	sink := render.NewChannelRenderer(frames)
	defer func() { _ = sink.Close() }()

	opts := []typewriterx.Option{
		typewriterx.WithRenderer(sink),
		typewriterx.WithLogger(logger),
	}

	if playFPS > 0 {
		clock := realtime.NewClock()
		rt := realtime.NewRuntime(clock, realtime.Config{
			TickRate: time.Second / time.Duration(playFPS),
			Logger:   logger,
		})
		if err := rt.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = rt.Stop() }()
		opts = append(opts, typewriterx.WithScheduler(clock))
	}

	if playMetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, typewriterx.WithMetrics(metrics.MustNew(reg)))
		srv := &http.Server{
			Addr:    playMetricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	engine, err := typewriterx.Start(cfg, opts...)
	if err != nil {
		return err
	}
	defer engine.Stop()

	p := tea.NewProgram(newPlayModel(name, frames), tea.WithContext(ctx))

	if playWatch {
		w, err := config.NewWatcher(configPath, func(f *config.File) {
			next, err := f.Preset(name)
			if err == nil {
				err = engine.Reconfigure(next)
			}
			p.Send(reloadMsg{err: err})
		}, config.WithWatcherLogger(logger))
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// presetArg returns the preset named on the command line, or the first preset.
func presetArg(f *config.File, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if names := f.Names(); len(names) > 0 {
		return names[0]
	}
	return ""
}
