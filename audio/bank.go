package audio

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/positional-audio/constant"
	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/mixer"
)

// Bank owns registered cues and the output mix every handle plays into
// Without an initialized speaker the bank runs headless and Render pulls the mix
type Bank struct {
	config *AudioConfig
	logger *log.Logger
	rate   beep.SampleRate
	master float64

	cues    map[string]*cue
	handles map[*Handle]struct{}

	mixer *beep.Mixer
	mu    sync.Mutex // Guards mixer while headless
	live  bool
}

// NewBank creates a headless bank with the built-in synth cues registered
func NewBank(cfg *AudioConfig, logger *log.Logger) *Bank {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = constant.AudioSampleRate
	}

	b := &Bank{
		config:  cfg,
		logger:  logger,
		rate:    beep.SampleRate(cfg.SampleRate),
		master:  cfg.MasterVolume,
		cues:    make(map[string]*cue),
		handles: make(map[*Handle]struct{}),
		mixer:   &beep.Mixer{},
	}

	for name := range synths {
		if err := b.RegisterSynth(name, name); err != nil {
			logger.Printf("Failed to register synth cue '%s': %v", name, err)
		}
	}
	return b
}

// Init opens the output device and starts playing the mix
// A disabled config or a device error leaves the bank headless
func (b *Bank) Init() error {
	if !b.config.Enabled {
		b.logger.Printf("Audio disabled, running headless")
		return nil
	}
	if b.live {
		return fmt.Errorf("audio bank already initialized")
	}

	if err := speaker.Init(b.rate, b.rate.N(constant.AudioBufferDuration)); err != nil {
		b.logger.Printf("Audio device unavailable, running headless: %v", err)
		return nil
	}

	// Hand the mixer to the speaker; from here the speaker lock guards it
	b.mu.Lock()
	b.live = true
	b.mu.Unlock()
	speaker.Play(b.mixer)
	return nil
}

// Name implements service.Service
func (b *Bank) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (b *Bank) Dependencies() []string {
	return nil
}

// Start implements service.Service by opening the device
func (b *Bank) Start() error {
	return b.Init()
}

// Stop implements service.Service
func (b *Bank) Stop() error {
	b.Close()
	return nil
}

// Close stops every stream and detaches the mix from the device
func (b *Bank) Close() {
	b.lock()
	b.mixer.Clear()
	b.unlock()
	if b.live {
		speaker.Close()
		b.live = false
	}
}

// Live reports whether the bank is playing to a device
func (b *Bank) Live() bool {
	return b.live
}

// SampleRate returns the mix rate every cue is resampled to
func (b *Bank) SampleRate() beep.SampleRate {
	return b.rate
}

// Register decodes a cue file and adds it under name, replacing any previous cue
func (b *Bank) Register(name string, category core.Category, path string) error {
	buf, err := decodeFile(path, b.rate)
	if err != nil {
		return err
	}
	b.cues[name] = &cue{name: name, category: category, source: &bufferSource{buf: buf}}
	return nil
}

// RegisterSynth adds a built-in generator under name
func (b *Bank) RegisterSynth(name, synth string) error {
	spec, ok := synths[synth]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSynth, synth)
	}
	b.cues[name] = &cue{name: name, category: spec.category, source: &synthSource{rate: b.rate, spec: spec}}
	return nil
}

// RegisterStream adds an already decoded stream under name
func (b *Bank) RegisterStream(name string, category core.Category, s beep.Streamer, format beep.Format) {
	b.cues[name] = &cue{name: name, category: category, source: &bufferSource{buf: bufferStream(s, format, b.rate)}}
}

// LoadManifest registers every cue of m
// Failing cues are skipped and reported together
func (b *Bank) LoadManifest(m *Manifest) error {
	var errs []error
	for _, name := range m.Names() {
		spec := m.Cues[name]
		var err error
		switch {
		case spec.Synth != "" && spec.File != "":
			err = fmt.Errorf("cue '%s' sets both file and synth", name)
		case spec.Synth != "":
			err = b.RegisterSynth(name, spec.Synth)
			if err == nil && spec.Category != "" {
				b.cues[name].category = core.ParseCategory(spec.Category)
			}
		case spec.File != "":
			err = b.Register(name, core.ParseCategory(spec.Category), spec.File)
		default:
			err = fmt.Errorf("cue '%s' has no file or synth", name)
		}
		if err != nil {
			b.logger.Printf("Failed to load cue '%s': %v", name, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Exists reports whether cue is registered
func (b *Bank) Exists(name string) bool {
	_, ok := b.cues[name]
	return ok
}

// Acquire creates a stopped handle for the cue, looping when the cue is continuous
func (b *Bank) Acquire(name string) (mixer.Handle, error) {
	h, err := b.acquire(name, false)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (b *Bank) acquire(name string, loop bool) (*Handle, error) {
	c, ok := b.cues[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCue, name)
	}
	h := &Handle{
		bank: b,
		cue:  c,
		loop: loop || c.category == core.CategoryContinuous,
	}
	b.handles[h] = struct{}{}
	return h, nil
}

// Category returns the playback category of a handle's cue
func (b *Bank) Category(h mixer.Handle) core.Category {
	ah, ok := h.(*Handle)
	if !ok {
		return core.CategoryOther
	}
	return ah.cue.category
}

// Names returns the registered cue names in sorted order
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.cues))
	for name := range b.cues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handles returns the number of acquired, undisposed handles
func (b *Bank) Handles() int {
	return len(b.handles)
}

// Streams returns the number of streams in the mix
func (b *Bank) Streams() int {
	b.lock()
	defer b.unlock()
	return b.mixer.Len()
}

// Render pulls the next len(samples) frames of the mix; headless banks only
func (b *Bank) Render(samples [][2]float64) int {
	if b.live {
		return 0
	}
	b.lock()
	defer b.unlock()
	n, _ := b.mixer.Stream(samples)
	return n
}

func (b *Bank) release(h *Handle) {
	delete(b.handles, h)
}

func (b *Bank) lock() {
	if b.live {
		speaker.Lock()
		return
	}
	b.mu.Lock()
}

func (b *Bank) unlock() {
	if b.live {
		speaker.Unlock()
		return
	}
	b.mu.Unlock()
}
