package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/comalice/typewriterx"
	"github.com/comalice/typewriterx/realtime"
)

var (
	traceFor    time.Duration
	traceBlinks bool
)

var traceCmd = &cobra.Command{
	Use:   "trace [preset]",
	Short: "Print a preset's frame timeline on a virtual clock",
	Long: `Run a preset on a virtual clock and print every frame with its offset
from start. The output is deterministic and returns immediately, whatever
the preset's delays are.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := loadPresets()
		if err != nil {
			return err
		}
		name := presetArg(presets, args)
		cfg, err := presets.Preset(name)
		if err != nil {
			return err
		}
		return trace(cmd.OutOrStdout(), cfg, traceFor, traceBlinks)
	},
}

func init() {
	traceCmd.Flags().DurationVar(&traceFor, "for", 10*time.Second, "virtual time to run")
	traceCmd.Flags().BoolVar(&traceBlinks, "blinks", false, "include caret blink frames")
}

// trace runs cfg on a virtual clock for d and writes one line per frame.
func trace(w io.Writer, cfg typewriterx.Config, d time.Duration, blinks bool) error {
	clock := realtime.NewClock()

	var werr error
	e, err := typewriterx.Start(cfg,
		typewriterx.WithScheduler(clock),
		typewriterx.WithLogger(logger),
		typewriterx.WithRenderFunc(func(f typewriterx.Frame) {
			if werr != nil || (f.Cause == typewriterx.CauseBlink && !blinks) {
				return
			}
			_, werr = fmt.Fprintf(w, "%8.3fs  %-9s %2d  %q\n",
				clock.Now().Seconds(), f.Mode, f.PhraseIndex, f.String())
		}),
	)
	if err != nil {
		return err
	}
	defer e.Stop()

	clock.Advance(d)
	return werr
}
