package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/positional-audio/core"
)

// synthSpec describes a built-in generated cue
type synthSpec struct {
	category core.Category
	length   time.Duration // One-shot length; ignored when looping
	make     func(sr beep.SampleRate) beep.Streamer
}

// synths is the built-in generator table, registered as cues under the same names
var synths = map[string]synthSpec{
	"crackle": {category: core.CategoryContinuous, make: func(sr beep.SampleRate) beep.Streamer { return NewCrackleGenerator(sr) }},
	"drone":   {category: core.CategoryContinuous, make: func(sr beep.SampleRate) beep.Streamer { return NewDroneGenerator(sr) }},
	"hum":     {category: core.CategoryContinuous, make: newHum},
	"chime":   {category: core.CategoryDiscrete, length: 1200 * time.Millisecond, make: func(sr beep.SampleRate) beep.Streamer { return NewChimeGenerator(sr, 880) }},
	"knock":   {category: core.CategoryDiscrete, length: 300 * time.Millisecond, make: func(sr beep.SampleRate) beep.Streamer { return NewKnockGenerator(sr) }},
}

// newHum is a quiet mains hum; falls back to silence when the tone cannot be built
func newHum(sr beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(sr, 110)
	if err != nil {
		return beep.Silence(-1)
	}
	return &effects.Volume{Streamer: sine, Base: 2, Volume: -3}
}

// DroneGenerator generates a slowly sweeping low hum (wind, water, machinery)
type DroneGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// NewDroneGenerator creates a drone generator
func NewDroneGenerator(sr beep.SampleRate) *DroneGenerator {
	return &DroneGenerator{
		sr:      sr,
		samples: sr.N(time.Second * 4), // 4 second swell
	}
}

func (g *DroneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Frequency drifts between 70Hz and 110Hz
		cyclePos := float64(g.pos%g.samples) / float64(g.samples)
		freq := 70 + 40*math.Sin(cyclePos*math.Pi)

		amplitude := 0.2 * (0.6 + 0.4*math.Sin(cyclePos*math.Pi*2))
		sample := amplitude * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*1.5*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *DroneGenerator) Err() error {
	return nil
}

// ChimeGenerator generates a struck bell tone
type ChimeGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewChimeGenerator creates a chime generator at the fundamental freq
func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Inharmonic partials give the metallic color
		sample := 0.0
		sample += 0.4 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.2 * math.Sin(2*math.Pi*g.freq*2.76*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*5.4*t)

		// 5ms attack, exponential ring-out
		attack := math.Min(t/0.005, 1.0)
		sample *= attack * math.Exp(-t*3)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// KnockGenerator generates a short wooden thump
type KnockGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewKnockGenerator creates a knock generator
func NewKnockGenerator(sr beep.SampleRate) *KnockGenerator {
	return &KnockGenerator{sr: sr}
}

func (g *KnockGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	hit := g.sr.N(time.Millisecond * 80)
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.0
		if g.pos < hit {
			env := 1.0 - float64(g.pos)/float64(hit)
			freq := 90 * (1 + 2*env)
			sample = 0.5 * env * env * math.Sin(2*math.Pi*freq*t)
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *KnockGenerator) Err() error {
	return nil
}

// CrackleGenerator generates fire crackle: filtered noise pops over a low rumble
type CrackleGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
	pop  float64 // Current pop envelope
	lp   float64 // One-pole low-pass state
}

// NewCrackleGenerator creates a crackle generator
func NewCrackleGenerator(sr beep.SampleRate) *CrackleGenerator {
	return &CrackleGenerator{
		sr:   sr,
		seed: time.Now().UnixNano(),
	}
}

func (g *CrackleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	decay := math.Exp(-1 / (0.01 * float64(g.sr))) // ~10ms pops
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		// Roughly 12 pops per second
		if g.seed%int64(g.sr) < 12 {
			g.pop = 1
		}
		g.pop *= decay

		g.lp += 0.2 * (noise - g.lp)
		rumble := 0.08 * math.Sin(2*math.Pi*55*t)

		sample := 0.4*g.pop*noise + 0.15*g.lp + rumble

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrackleGenerator) Err() error {
	return nil
}
