package audio

import (
	"errors"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/positional-audio/core"
)

// Sentinel errors
var (
	ErrUnknownCue        = errors.New("unknown cue")
	ErrUnknownSynth      = errors.New("unknown synth")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrDecode            = errors.New("failed to decode audio")
)

// cueSource produces fresh playback streams for one cue
type cueSource interface {
	// open returns a stream positioned at the start; loop repeats it forever
	open(loop bool) beep.Streamer
}

// cue is a registered cue with its playback category
type cue struct {
	name     string
	category core.Category
	source   cueSource
}

// bufferSource plays decoded samples held in memory
type bufferSource struct {
	buf *beep.Buffer
}

func (s *bufferSource) open(loop bool) beep.Streamer {
	stream := s.buf.Streamer(0, s.buf.Len())
	if loop {
		return beep.Loop(-1, stream)
	}
	return stream
}

// synthSource plays a generated waveform
// Generators are endless; one-shots are cut to length
type synthSource struct {
	rate beep.SampleRate
	spec synthSpec
}

func (s *synthSource) open(loop bool) beep.Streamer {
	gen := s.spec.make(s.rate)
	if loop {
		return gen
	}
	return beep.Take(s.rate.N(s.spec.length), gen)
}
