package mixer

import (
	"os"
	"strconv"

	"github.com/lixenwraith/positional-audio/constant"
)

// Config tunes the fader and the change scanner
type Config struct {
	// FadeStep is the per-tick volume delta, (0, 1]
	FadeStep float64
	// ScanInterval is the number of ticks between change scans, >= 1
	ScanInterval int
}

// DefaultConfig returns the stock tuning
func DefaultConfig() *Config {
	return &Config{
		FadeStep:     constant.FadeStep,
		ScanInterval: constant.ScanInterval,
	}
}

// LoadConfig loads mixer tuning from environment variables
// Invalid or out-of-range values keep the defaults
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if step := os.Getenv("POSAUDIO_FADE_STEP"); step != "" {
		if val, err := strconv.ParseFloat(step, 64); err == nil && val > 0 && val <= 1 {
			cfg.FadeStep = val
		}
	}

	if interval := os.Getenv("POSAUDIO_SCAN_INTERVAL"); interval != "" {
		if val, err := strconv.Atoi(interval); err == nil && val > 0 {
			cfg.ScanInterval = val
		}
	}

	return cfg
}
