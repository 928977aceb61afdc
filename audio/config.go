package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/positional-audio/constant"
)

// AudioConfig holds playback device settings
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // Applied to every handle, 0.0-1.0
	MusicVolume  float64 // Applied on top of the duck level for background music, 0.0-1.0
	SampleRate   int
}

// DefaultAudioConfig returns the stock device settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.8,
		MusicVolume:  0.6,
		SampleRate:   constant.AudioSampleRate,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("POSAUDIO_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volumes are given as 0-100
	if volume := os.Getenv("POSAUDIO_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = percent(val)
		}
	}
	if volume := os.Getenv("POSAUDIO_MUSIC_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MusicVolume = percent(val)
		}
	}

	if sampleRate := os.Getenv("POSAUDIO_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

// percent converts 0-100 to 0.0-1.0, clamped
func percent(val int) float64 {
	v := float64(val) / 100.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
