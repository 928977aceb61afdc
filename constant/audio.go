package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2

	// AudioBufferDuration is the speaker buffer length handed to beep
	AudioBufferDuration = 100 * time.Millisecond

	// AudioResampleQuality is the beep.Resample quality used when cue files differ from AudioSampleRate
	AudioResampleQuality = 4
)

// Mixer Timing
const (
	// TickInterval is the fixed simulation tick driving the mixer (~60 FPS)
	TickInterval = 16 * time.Millisecond

	// FadeStep is the maximum per-tick volume change applied by the fader
	// A full 0 -> 1 sweep takes ceil(1/FadeStep) = 67 ticks
	FadeStep = 0.015

	// ScanInterval is the number of ticks between dynamic-actor change scans
	ScanInterval = 20

	// InitialTimeOfDay matches the clock value a day starts on
	InitialTimeOfDay = 600
)

// Source Defaults
const (
	DefaultFloorRadius   = 2.0
	DefaultShelfRadius   = 4.0
	DefaultMaximumRadius = 8.0

	DefaultMaxIntensity  = 1.0
	DefaultMinDuckVolume = 0.0

	// Repeat delay bounds for discrete sources, milliseconds
	DefaultRepeatDelayMin = 800
	DefaultRepeatDelayMax = 1200

	// DefaultTileCoord marks an unset source position
	DefaultTileCoord = -1
)

// Monitor
const (
	// MonitorBroadcastInterval is how often status snapshots are pushed to websocket clients
	MonitorBroadcastInterval = 250 * time.Millisecond

	// MonitorWriteWait bounds a single websocket write
	MonitorWriteWait = 2 * time.Second
)
