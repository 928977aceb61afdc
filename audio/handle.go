package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Handle is one playback instance of a registered cue
// Methods are called from the tick goroutine; the end-of-stream callback runs on the audio thread
type Handle struct {
	bank *Bank
	cue  *cue
	loop bool

	volume float64
	gen    uint64

	// playing holds the generation of the current stream, 0 when stopped
	playing atomic.Uint64

	ctrl     *beep.Ctrl
	fx       *effects.Volume
	disposed bool
}

// Cue returns the cue name the handle plays
func (h *Handle) Cue() string {
	return h.cue.name
}

// Play starts the cue from the beginning, replacing any stream already running
func (h *Handle) Play() {
	if h.disposed {
		return
	}

	h.gen++
	gen := h.gen
	ended := beep.Callback(func() {
		h.playing.CompareAndSwap(gen, 0)
	})

	ctrl := &beep.Ctrl{Streamer: beep.Seq(h.cue.source.open(h.loop), ended)}
	fx := &effects.Volume{Streamer: ctrl, Base: 2}

	h.bank.lock()
	if h.ctrl != nil {
		h.ctrl.Streamer = nil
	}
	h.ctrl = ctrl
	h.fx = fx
	applyVolume(fx, h.volume*h.bank.master)
	h.playing.Store(gen)
	h.bank.mixer.Add(fx)
	h.bank.unlock()
}

// Stop halts playback; the mixer drops the drained stream
func (h *Handle) Stop() {
	h.bank.lock()
	if h.ctrl != nil {
		h.ctrl.Streamer = nil
		h.ctrl = nil
		h.fx = nil
	}
	h.playing.Store(0)
	h.bank.unlock()
}

// Dispose stops playback and releases the handle; later calls are no-ops
func (h *Handle) Dispose() {
	if h.disposed {
		return
	}
	h.Stop()
	h.disposed = true
	h.bank.release(h)
}

// Volume returns the last volume set, 0.0-1.0
func (h *Handle) Volume() float64 {
	return h.volume
}

// SetVolume sets the handle volume, clamped to 0.0-1.0
func (h *Handle) SetVolume(v float64) {
	h.volume = math.Max(0, math.Min(1, v))
	if h.fx == nil {
		return
	}
	h.bank.lock()
	if h.fx != nil {
		applyVolume(h.fx, h.volume*h.bank.master)
	}
	h.bank.unlock()
}

// IsPlaying reports whether a stream is running and has not reached its end
func (h *Handle) IsPlaying() bool {
	return h.playing.Load() != 0
}

// applyVolume maps linear volume to the base-2 exponent effects.Volume expects
func applyVolume(fx *effects.Volume, vol float64) {
	if vol <= 0.01 {
		fx.Volume = 0
		fx.Silent = true
		return
	}
	fx.Volume = math.Log2(vol)
	fx.Silent = false
}
