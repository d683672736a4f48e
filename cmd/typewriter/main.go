// Command typewriter previews, traces and inspects typewriter presets.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/comalice/typewriterx/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	logFile    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "typewriter",
	Short: "Preview and inspect typewriter text animations",
	Long: `typewriter runs the typewriter engine used by the site's headlines.

Presets come from the built-in preset file unless --config names another
YAML file. Every preset is validated when the file is loaded.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(cmd)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newLogger builds a production zap logger. The interactive preview owns the
// terminal, so it only logs when --log-file is set.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if cmd.Name() == "play" && logFile == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	}
	return cfg.Build()
}

func loadPresets() (*config.File, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "preset YAML file (default: built-in presets)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(playCmd, traceCmd, dotCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
