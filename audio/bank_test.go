package audio

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/mixer"
)

const testRate = 8000

// Bank satisfies the mixer's cue bank
var _ mixer.CueBank = (*Bank)(nil)
var _ mixer.MusicChannel = (*Music)(nil)

func newTestBank() (*Bank, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cfg := &AudioConfig{Enabled: false, MasterVolume: 1, MusicVolume: 0.5, SampleRate: testRate}
	return NewBank(cfg, log.New(buf, "", 0)), buf
}

// peak renders n frames and returns the largest absolute sample
func peak(b *Bank, n int) float64 {
	samples := make([][2]float64, n)
	b.Render(samples)
	p := 0.0
	for _, s := range samples {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

// TestBankBuiltins verifies the synth cues are registered with their categories
func TestBankBuiltins(t *testing.T) {
	b, _ := newTestBank()

	want := map[string]core.Category{
		"chime":   core.CategoryDiscrete,
		"crackle": core.CategoryContinuous,
		"drone":   core.CategoryContinuous,
		"hum":     core.CategoryContinuous,
		"knock":   core.CategoryDiscrete,
	}
	if got := strings.Join(b.Names(), ","); got != "chime,crackle,drone,hum,knock" {
		t.Errorf("Expected built-in names, got %s", got)
	}
	for name, category := range want {
		if !b.Exists(name) {
			t.Errorf("Expected %s registered", name)
			continue
		}
		h, err := b.Acquire(name)
		if err != nil {
			t.Fatalf("Acquire(%s): %v", name, err)
		}
		if got := b.Category(h); got != category {
			t.Errorf("%s: expected %s, got %s", name, category, got)
		}
	}
}

// TestAcquireUnknownCue verifies unknown names fail with ErrUnknownCue
func TestAcquireUnknownCue(t *testing.T) {
	b, _ := newTestBank()

	if b.Exists("ghost") {
		t.Error("Expected ghost to be unknown")
	}
	if _, err := b.Acquire("ghost"); !errors.Is(err, ErrUnknownCue) {
		t.Errorf("Expected ErrUnknownCue, got %v", err)
	}
	if err := b.RegisterSynth("ghost", "theremin"); !errors.Is(err, ErrUnknownSynth) {
		t.Errorf("Expected ErrUnknownSynth, got %v", err)
	}
}

// TestHandleStartsStopped verifies acquisition does not start playback
func TestHandleStartsStopped(t *testing.T) {
	b, _ := newTestBank()
	h, _ := b.Acquire("drone")

	if h.IsPlaying() {
		t.Error("Expected a fresh handle to be stopped")
	}
	if b.Streams() != 0 {
		t.Errorf("Expected empty mix, got %d streams", b.Streams())
	}
	if p := peak(b, 256); p != 0 {
		t.Errorf("Expected silence, got peak %f", p)
	}
}

// TestHandleVolume verifies volume reaches the mix and near-zero volume is silent
func TestHandleVolume(t *testing.T) {
	b, _ := newTestBank()
	h, _ := b.Acquire("drone")

	h.SetVolume(0)
	h.Play()
	if !h.IsPlaying() {
		t.Fatal("Expected handle playing")
	}
	if p := peak(b, 512); p != 0 {
		t.Errorf("Expected silence at volume 0, got peak %f", p)
	}

	h.SetVolume(1)
	if p := peak(b, 512); p == 0 {
		t.Error("Expected audible output at volume 1")
	}

	h.SetVolume(2)
	if h.Volume() != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", h.Volume())
	}
}

// TestContinuousLoops verifies looping cues keep playing
func TestContinuousLoops(t *testing.T) {
	b, _ := newTestBank()
	h, _ := b.Acquire("drone")
	h.SetVolume(1)
	h.Play()

	peak(b, testRate*2)
	if !h.IsPlaying() {
		t.Error("Expected continuous cue still playing")
	}
	if b.Streams() != 1 {
		t.Errorf("Expected 1 stream, got %d", b.Streams())
	}
}

// TestDiscreteEnds verifies a one-shot reports stopped once its stream drains
func TestDiscreteEnds(t *testing.T) {
	b, _ := newTestBank()
	h, _ := b.Acquire("knock")
	h.SetVolume(1)
	h.Play()

	if !h.IsPlaying() {
		t.Fatal("Expected knock playing")
	}
	// Knock lasts 300ms
	peak(b, testRate/2)

	if h.IsPlaying() {
		t.Error("Expected knock finished")
	}
	if b.Streams() != 0 {
		t.Errorf("Expected drained stream removed, got %d", b.Streams())
	}

	// Replays from the start
	h.Play()
	if !h.IsPlaying() {
		t.Error("Expected replay to start")
	}
}

// TestReplayReplacesStream verifies Play on a playing handle never doubles its stream
func TestReplayReplacesStream(t *testing.T) {
	b, _ := newTestBank()
	h, _ := b.Acquire("drone")
	h.Play()
	h.Play()
	peak(b, 64)

	if b.Streams() != 1 {
		t.Errorf("Expected 1 stream after replay, got %d", b.Streams())
	}
}

// TestStopAndDispose verifies stop silences and dispose releases once
func TestStopAndDispose(t *testing.T) {
	b, _ := newTestBank()
	h, _ := b.Acquire("drone")
	h.SetVolume(1)
	h.Play()
	peak(b, 64)

	h.Stop()
	if h.IsPlaying() {
		t.Error("Expected stopped handle")
	}
	if p := peak(b, 64); p != 0 {
		t.Errorf("Expected silence after stop, got peak %f", p)
	}
	if b.Handles() != 1 {
		t.Errorf("Expected stopped handle still held, got %d", b.Handles())
	}

	h.Dispose()
	h.Dispose()
	if b.Handles() != 0 {
		t.Errorf("Expected handle released, got %d", b.Handles())
	}

	h.Play()
	if h.IsPlaying() {
		t.Error("Expected disposed handle to ignore Play")
	}
}

// TestApplyVolume verifies the linear to base-2 mapping
func TestApplyVolume(t *testing.T) {
	tests := []struct {
		vol    float64
		silent bool
		exp    float64
	}{
		{0, true, 0},
		{0.01, true, 0},
		{0.25, false, -2},
		{0.5, false, -1},
		{1, false, 0},
	}
	for _, tt := range tests {
		fx := &effects.Volume{Base: 2}
		applyVolume(fx, tt.vol)
		if fx.Silent != tt.silent || math.Abs(fx.Volume-tt.exp) > 1e-9 {
			t.Errorf("applyVolume(%v): expected silent=%v exp=%v, got silent=%v exp=%v", tt.vol, tt.silent, tt.exp, fx.Silent, fx.Volume)
		}
	}
}

// TestRegisterStream verifies in-memory streams become one-shot cues at the bank rate
func TestRegisterStream(t *testing.T) {
	b, _ := newTestBank()
	format := beep.Format{SampleRate: 2 * testRate, NumChannels: 2, Precision: 2}
	b.RegisterStream("tone", core.CategoryDiscrete, beep.Take(format.SampleRate.N(500*time.Millisecond), NewKnockGenerator(format.SampleRate)), format)

	h, err := b.Acquire("tone")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	src := h.(*Handle).cue.source.(*bufferSource)
	if got, want := src.buf.Len(), testRate/2; math.Abs(float64(got-want)) > 64 {
		t.Errorf("Expected about %d resampled frames, got %d", want, got)
	}
}

// TestMusicDuckLevel verifies the duck level scales by the configured music volume
func TestMusicDuckLevel(t *testing.T) {
	b, _ := newTestBank()
	m := NewMusic(b)

	if m.Active() {
		t.Error("Expected silent channel inactive")
	}
	if err := m.Play("ghost"); !errors.Is(err, ErrUnknownCue) {
		t.Errorf("Expected ErrUnknownCue, got %v", err)
	}
	if err := m.Play("chime"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !m.Active() || m.Track() != "chime" {
		t.Errorf("Expected chime active, got track %q", m.Track())
	}

	m.SetVolume(0.4)
	if m.Volume() != 0.4 {
		t.Errorf("Expected duck level 0.4, got %f", m.Volume())
	}
	if got := m.handle.Volume(); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Expected handle volume 0.2, got %f", got)
	}

	// Music loops even for one-shot cues
	peak(b, testRate*2)
	if !m.Active() {
		t.Error("Expected music still looping")
	}

	m.Stop()
	if m.Active() || b.Handles() != 0 {
		t.Error("Expected music stopped and released")
	}
}
