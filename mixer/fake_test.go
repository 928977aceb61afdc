package mixer

import (
	"bytes"
	"errors"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/vmath"
)

// fakeHandle records playback calls
type fakeHandle struct {
	cue      string
	volume   float64
	playing  bool
	disposed bool
	plays    int
	stops    int
	log      *[]string
}

func (h *fakeHandle) Play() {
	h.plays++
	h.playing = true
	h.record("play " + h.cue)
}

func (h *fakeHandle) Stop() {
	h.stops++
	h.playing = false
	h.record("stop " + h.cue)
}

func (h *fakeHandle) Dispose() {
	h.disposed = true
	h.record("dispose " + h.cue)
}

func (h *fakeHandle) Volume() float64 { return h.volume }
func (h *fakeHandle) SetVolume(v float64) { h.volume = v }
func (h *fakeHandle) IsPlaying() bool { return h.playing }

func (h *fakeHandle) record(s string) {
	if h.log != nil {
		*h.log = append(*h.log, s)
	}
}

// fakeBank resolves cues from a fixed category table and counts lookups
type fakeBank struct {
	cues     map[string]core.Category
	exists   map[string]int
	acquired []*fakeHandle
	calls    []string
	failNext bool
}

func newFakeBank() *fakeBank {
	return &fakeBank{
		cues: map[string]core.Category{
			"fire":  core.CategoryContinuous,
			"river": core.CategoryContinuous,
			"bell":  core.CategoryDiscrete,
			"knock": core.CategoryDiscrete,
		},
		exists: make(map[string]int),
	}
}

func (b *fakeBank) Exists(cue string) bool {
	b.exists[cue]++
	_, ok := b.cues[cue]
	return ok
}

func (b *fakeBank) Acquire(cue string) (Handle, error) {
	b.calls = append(b.calls, "acquire "+cue)
	if b.failNext {
		b.failNext = false
		return nil, errors.New("device busy")
	}
	if _, ok := b.cues[cue]; !ok {
		return nil, errors.New("unknown cue")
	}
	h := &fakeHandle{cue: cue, log: &b.calls}
	b.acquired = append(b.acquired, h)
	return h, nil
}

func (b *fakeBank) Category(h Handle) core.Category {
	fh, ok := h.(*fakeHandle)
	if !ok {
		return core.CategoryOther
	}
	return b.cues[fh.cue]
}

// last returns the most recently acquired handle
func (b *fakeBank) last() *fakeHandle {
	if len(b.acquired) == 0 {
		return nil
	}
	return b.acquired[len(b.acquired)-1]
}

// fakeWorld implements PositionSource and LocationContext
type fakeWorld struct {
	location   string
	pos        vmath.Vec2
	timeOfDay  int
	actors     []ActorState
	timePasses bool
}

func newFakeWorld(location string) *fakeWorld {
	return &fakeWorld{location: location, timeOfDay: 600, timePasses: true}
}

func (w *fakeWorld) ListenerPosition() vmath.Vec2 { return w.pos }

func (w *fakeWorld) CurrentLocation() (string, bool) {
	return w.location, w.location != ""
}

func (w *fakeWorld) TimeOfDay() int { return w.timeOfDay }
func (w *fakeWorld) Actors() []ActorState { return w.actors }
func (w *fakeWorld) TimePasses() bool { return w.timePasses }

// fakeMusic is a background channel
type fakeMusic struct {
	active bool
	volume float64
}

func (m *fakeMusic) Active() bool { return m.active }
func (m *fakeMusic) Volume() float64 { return m.volume }
func (m *fakeMusic) SetVolume(v float64) { m.volume = v }

// testRig bundles a mixer with its fakes
type testRig struct {
	m       *Mixer
	bank    *fakeBank
	world   *fakeWorld
	music   *fakeMusic
	sources map[string]core.SourceDefinition
	loads   int
	logBuf  *bytes.Buffer
}

func newTestRig(location string, sources map[string]core.SourceDefinition) *testRig {
	r := &testRig{
		bank:    newFakeBank(),
		world:   newFakeWorld(location),
		music:   &fakeMusic{active: true, volume: 1},
		sources: sources,
		logBuf:  &bytes.Buffer{},
	}
	m, err := New(Options{
		Bank:     r.bank,
		Position: r.world,
		Location: r.world,
		Loader: LoaderFunc(func() (map[string]core.SourceDefinition, error) {
			r.loads++
			return r.sources, nil
		}),
		Condition: ConditionFunc(func(condition, _ string) bool {
			return condition == "" || condition == "TRUE"
		}),
		Music:  r.music,
		Logger: log.New(r.logBuf, "", 0),
		Rand:   rand.New(rand.NewPCG(1, 2)),
	})
	if err != nil {
		panic(err)
	}
	r.m = m
	return r
}

// logLines counts log lines containing substr
func (r *testRig) logLines(substr string) int {
	n := 0
	for _, line := range strings.Split(r.logBuf.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

// active returns the Active entry for id
func (r *testRig) active(id string) *entry {
	return r.m.entries[entryKey{id: id}]
}

// doomed returns every Doomed entry for id
func (r *testRig) doomed(id string) []*entry {
	var out []*entry
	for key, e := range r.m.entries {
		if key.doom != 0 && key.id == id {
			out = append(out, e)
		}
	}
	return out
}

// source builds a definition at tile (x, y) with the stock radii
func source(location, cue string, x, y int) core.SourceDefinition {
	return core.SourceDefinition{
		LocationName:  location,
		CueName:       cue,
		Radius:        core.Radii{Floor: 2, Shelf: 4, Maximum: 8},
		MaxIntensity:  1,
		MinDuckVolume: 0,
		Position:      core.Point{X: x, Y: y},
		RepeatDelay:   core.DelayRange{Min: 800, Max: 1200},
	}
}
