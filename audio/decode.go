package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/positional-audio/constant"
)

// decodeFile reads a cue file fully into memory at the bank sample rate
// Format is chosen by extension: .wav, .mp3, .ogg
func decodeFile(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	defer streamer.Close()

	return bufferStream(streamer, format, rate), nil
}

// bufferStream drains s into a buffer, resampling when its rate differs
func bufferStream(s beep.Streamer, format beep.Format, rate beep.SampleRate) *beep.Buffer {
	if format.SampleRate != rate {
		s = beep.Resample(constant.AudioResampleQuality, format.SampleRate, rate, s)
		format.SampleRate = rate
	}
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf
}
