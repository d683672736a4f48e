// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/typewriterx"
)

// GenConfig creates a looping config with n phrases of length runes each.
// The caret is hidden so only text frames are produced.
func GenConfig(n, length int) typewriterx.Config {
	if n < 1 {
		n = 1
	}
	cfg := typewriterx.DefaultConfig()
	cfg.ShowCursor = false
	cfg.Phrases = make([]string, n)
	for i := range cfg.Phrases {
		cfg.Phrases[i] = strings.Repeat(string(rune('a'+i%26)), length)
	}
	return cfg
}

// CycleFrames returns the number of text frames one full loop of cfg renders.
func CycleFrames(cfg typewriterx.Config) int {
	frames := 0
	for _, p := range cfg.Phrases {
		n := len([]rune(p))
		frames += 2 * n // one frame per typed and per deleted char
		frames++        // hold elapsed
	}
	return frames
}

// GenPresetYAML renders a preset file with n presets.
func GenPresetYAML(n int) ([]byte, error) {
	presets := make(map[string]typewriterx.Config, n)
	for i := 0; i < n; i++ {
		presets[fmt.Sprintf("preset_%d", i)] = GenConfig(3, 12)
	}
	return yaml.Marshal(map[string]any{
		"defaults": map[string]int{"typeSpeedMs": 80},
		"presets":  presets,
	})
}
