package mixer

import (
	"os"
	"testing"
)

// TestLoadConfigFromEnv verifies environment overrides and range checks
func TestLoadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		step     string
		interval string
		wantStep float64
		wantScan int
	}{
		{"defaults", "", "", 0.015, 20},
		{"valid overrides", "0.05", "10", 0.05, 10},
		{"step out of range", "1.5", "0", 0.015, 20},
		{"garbage", "fast", "often", 0.015, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POSAUDIO_FADE_STEP", tt.step)
			t.Setenv("POSAUDIO_SCAN_INTERVAL", tt.interval)
			if tt.step == "" {
				os.Unsetenv("POSAUDIO_FADE_STEP")
			}
			if tt.interval == "" {
				os.Unsetenv("POSAUDIO_SCAN_INTERVAL")
			}

			cfg := LoadConfig()
			if cfg.FadeStep != tt.wantStep {
				t.Errorf("Expected fade step %v, got %v", tt.wantStep, cfg.FadeStep)
			}
			if cfg.ScanInterval != tt.wantScan {
				t.Errorf("Expected scan interval %d, got %d", tt.wantScan, cfg.ScanInterval)
			}
		})
	}
}
