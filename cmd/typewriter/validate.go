package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate a preset file",
	Long: `Load the preset file named by --config (or the built-in presets) and
validate every preset. The command fails on the first invalid preset.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := loadPresets()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range presets.Names() {
			cfg, _ := presets.Preset(name)
			fmt.Fprintf(out, "%-12s %d phrases  type %dms  delete %dms  hold %dms  loop %v\n",
				name, len(cfg.Phrases), cfg.TypeSpeedMs, cfg.DeleteSpeedMs, cfg.HoldMs, cfg.Loop)
		}
		logger.Debug("presets valid", zap.Int("count", len(presets.Names())))
		return nil
	},
}
