package mixer

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/positional-audio/constant"
	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/event"
	"github.com/lixenwraith/positional-audio/status"
	"github.com/lixenwraith/positional-audio/vmath"
)

// Options wires a Mixer to its collaborators
// Bank, Position, Location and Loader are required
type Options struct {
	Bank      CueBank
	Position  PositionSource
	Location  LocationContext
	Loader    SourceLoader
	Condition ConditionEvaluator // nil: only empty conditions pass
	Music     MusicChannel       // nil: no ducking
	Config    *Config            // nil: DefaultConfig
	Logger    *log.Logger        // nil: log.Default
	Status    *status.Registry   // nil: private registry
	Rand      *rand.Rand         // nil: time-seeded PCG
}

// Mixer is the positional audio context for one session
// All methods except Notify must be called from the tick goroutine
type Mixer struct {
	bank     CueBank
	position PositionSource
	location LocationContext
	loader   SourceLoader
	cond     ConditionEvaluator
	music    MusicChannel
	cfg      Config
	logger   *log.Logger
	rng      *rand.Rand

	registry   *Registry
	entries    map[entryKey]*entry
	doomSerial uint64
	missing    map[string]struct{}

	lastPos  vmath.Vec2
	posValid bool
	duckGoal float64

	detector  *changeDetector
	scanTimer int
	queue     *event.Queue

	// Cached metric pointers
	statusReg    *status.Registry
	statTicks    *atomic.Int64
	statFilters  *atomic.Int64
	statActive   *atomic.Int64
	statDoomed   *atomic.Int64
	statMissing  *atomic.Int64
	statLocated  *atomic.Bool
	statLocation *status.Text
	statDuckGoal *status.Float
	statMusicVol *status.Float
}

// New creates a Mixer; no source is activated until the first Filter or Tick-driven refresh
func New(opts Options) (*Mixer, error) {
	switch {
	case opts.Bank == nil:
		return nil, fmt.Errorf("%w: cue bank", ErrMissingCapability)
	case opts.Position == nil:
		return nil, fmt.Errorf("%w: position source", ErrMissingCapability)
	case opts.Location == nil:
		return nil, fmt.Errorf("%w: location context", ErrMissingCapability)
	case opts.Loader == nil:
		return nil, fmt.Errorf("%w: source loader", ErrMissingCapability)
	}

	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = opts.Config
	}
	if cfg.FadeStep <= 0 || cfg.FadeStep > 1 {
		cfg.FadeStep = constant.FadeStep
	}
	if cfg.ScanInterval < 1 {
		cfg.ScanInterval = constant.ScanInterval
	}

	cond := opts.Condition
	if cond == nil {
		cond = ConditionFunc(func(condition, _ string) bool { return condition == "" })
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	m := &Mixer{
		bank:      opts.Bank,
		position:  opts.Position,
		location:  opts.Location,
		loader:    opts.Loader,
		cond:      cond,
		music:     opts.Music,
		cfg:       *cfg,
		logger:    logger,
		rng:       rng,
		entries:   make(map[entryKey]*entry),
		missing:   make(map[string]struct{}),
		duckGoal:  1,
		detector:  newChangeDetector(),
		scanTimer: cfg.ScanInterval,
		queue:     event.NewQueue(),

		statusReg:    reg,
		statTicks:    reg.Int("mixer.ticks"),
		statFilters:  reg.Int("mixer.filters"),
		statActive:   reg.Int("mixer.active"),
		statDoomed:   reg.Int("mixer.doomed"),
		statMissing:  reg.Int("mixer.missing"),
		statLocated:  reg.Bool("mixer.located"),
		statLocation: reg.Text("mixer.location"),
		statDuckGoal: reg.Float("mixer.duck_goal"),
		statMusicVol: reg.Float("mixer.music_volume"),
	}
	m.statDuckGoal.Set(1)
	return m, nil
}

// Status returns the metrics registry the mixer writes to
func (m *Mixer) Status() *status.Registry {
	return m.statusReg
}

// Notify queues a notification for the next tick
// Safe to call from any goroutine
func (m *Mixer) Notify(ev event.Event) {
	m.queue.Push(ev)
}

// Tick advances the mixer by one fixed-rate step
// Order: notifications, change scan (may filter), volume recompute, fade
func (m *Mixer) Tick(elapsed time.Duration) {
	m.statTicks.Add(1)
	m.drain()

	loc, ok := m.location.CurrentLocation()
	m.statLocated.Store(ok)
	m.statLocation.Store(loc)
	if !ok {
		m.publish()
		return
	}

	m.scanTimer--
	if m.scanTimer <= 0 {
		if m.detector.changed(m.location) {
			m.Filter(loc)
		}
		m.scanTimer = m.cfg.ScanInterval
	}

	m.updateVolumes(false)
	m.stepVolumes(elapsed)
	m.publish()
}

// Refresh re-filters at the listener's current location
func (m *Mixer) Refresh() {
	loc, _ := m.location.CurrentLocation()
	m.Filter(loc)
}

// Invalidate replaces the registry and reconciles every Active entry against it
// Entries that are not playing are disposed, the rest are preserved or retired by the filter
func (m *Mixer) Invalidate() {
	m.invalidate()
	m.Refresh()
}

// ReplaceCues rebinds Active entries to freshly resolved cues without a fade cycle
func (m *Mixer) ReplaceCues() {
	m.replaceCues()
}

// Warp hard-resets playback and filters for the destination location
func (m *Mixer) Warp(location string) {
	m.disposeAll()
	m.detector.reset()
	m.Filter(location)
}

// DayStarted hard-resets playback and filters for the current location
func (m *Mixer) DayStarted() {
	m.disposeAll()
	m.Refresh()
}

// Stop disposes every handle immediately without fading
func (m *Mixer) Stop() {
	m.disposeAll()
	m.invalidatePosition()
}

// DuckGoal returns the background music volume goal from the latest recompute
func (m *Mixer) DuckGoal() float64 {
	return m.duckGoal
}

// Entries returns a sorted view of every Active and Doomed entry
func (m *Mixer) Entries() []EntryStatus {
	out := make([]EntryStatus, 0, len(m.entries))
	for _, e := range m.entries {
		s := EntryStatus{
			ID:       e.id,
			Cue:      e.def.CueName,
			State:    e.state.String(),
			Category: e.category.String(),
			Target:   e.target,
		}
		if e.handle != nil {
			s.Volume = e.handle.Volume()
			s.Playing = e.handle.IsPlaying()
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].State < out[j].State
	})
	return out
}

// drain applies queued notifications in FIFO order
func (m *Mixer) drain() {
	for _, ev := range m.queue.Consume() {
		switch ev.Type {
		case event.EventSourcesInvalidated:
			m.logger.Printf("Source table invalidated, reloading")
			m.Invalidate()
		case event.EventSourcesReady, event.EventRefresh:
			m.Refresh()
		case event.EventCuesReplaced:
			m.ReplaceCues()
		case event.EventWarp:
			m.Warp(ev.Location)
		case event.EventDayStarted:
			m.DayStarted()
		case event.EventStop:
			m.Stop()
		}
	}
}

// sources returns the registry, loading it on first use after an invalidation
// Load failures leave an empty registry until the next invalidation
func (m *Mixer) sources() *Registry {
	if m.registry != nil {
		return m.registry
	}
	defs, err := m.loader.LoadSources()
	if err != nil {
		m.logger.Printf("Failed to load audio sources: %v", err)
		defs = nil
	}
	m.registry = NewRegistry(defs)
	return m.registry
}

// invalidatePosition forces the next volume recompute
func (m *Mixer) invalidatePosition() {
	m.posValid = false
}

// updateVolumes recomputes targets and the duck goal when the listener moved or force is set
// The goal is tracked whether or not music plays, so a channel that starts later ducks at once
func (m *Mixer) updateVolumes(force bool) {
	pos := m.position.ListenerPosition()
	if !force && m.posValid && pos == m.lastPos {
		return
	}
	m.lastPos = pos
	m.posValid = true

	goal := 1.0
	for key, e := range m.entries {
		if key.doom != 0 || e.handle == nil {
			continue
		}
		// Continuous cues can stop behind our back (cue reload); restart silently
		if e.category == core.CategoryContinuous && !e.handle.IsPlaying() {
			e.handle.SetVolume(0)
			e.handle.Play()
		}
		d := vmath.Distance(pos, vmath.TileCenter(e.def.Position))
		e.target = TargetVolume(e.def, d)
		goal = min(goal, DuckCandidate(e.def, d))
	}
	m.duckGoal = goal
}

// stepVolumes fades every handle one step and runs discrete replay timers
// Doomed entries reaching silence are disposed in the same tick
func (m *Mixer) stepVolumes(elapsed time.Duration) {
	step := m.cfg.FadeStep
	timePasses := m.location.TimePasses()

	for key, e := range m.entries {
		if e.handle == nil {
			delete(m.entries, key)
			continue
		}
		if key.doom != 0 {
			v := Step(e.handle.Volume(), 0, step)
			e.handle.SetVolume(v)
			if v <= 0 {
				e.dispose()
				delete(m.entries, key)
			}
			continue
		}

		if cur := e.handle.Volume(); cur != e.target {
			e.handle.SetVolume(Step(cur, e.target, step))
		}
		if e.category == core.CategoryDiscrete && timePasses {
			m.tickDelay(e, elapsed)
		}
	}

	if m.music != nil && m.music.Active() {
		m.music.SetVolume(Step(m.music.Volume(), m.duckGoal, step))
	}
}

// tickDelay arms, counts down and fires the replay timer of a stopped discrete entry
// A fired cue starts straight at its target volume
func (m *Mixer) tickDelay(e *entry, elapsed time.Duration) {
	if e.handle.IsPlaying() {
		return
	}
	if e.delay == 0 {
		e.delay = m.chooseDelay(e.def.RepeatDelay)
		return
	}
	e.delay = max(0, e.delay-int(elapsed.Milliseconds()))
	if e.delay == 0 {
		e.handle.Play()
		e.handle.SetVolume(e.target)
	}
}

// chooseDelay picks a replay delay in r, at least 1ms
func (m *Mixer) chooseDelay(r core.DelayRange) int {
	if r.IsZero() {
		r = core.DelayRange{Min: constant.DefaultRepeatDelayMin, Max: constant.DefaultRepeatDelayMax}
	}
	lo := max(1, r.Min)
	hi := max(lo, r.Max)
	return lo + m.rng.IntN(hi-lo+1)
}

// publish writes tick metrics
func (m *Mixer) publish() {
	var active, doomed int64
	for key := range m.entries {
		if key.doom == 0 {
			active++
		} else {
			doomed++
		}
	}
	m.statActive.Store(active)
	m.statDoomed.Store(doomed)
	m.statMissing.Store(int64(len(m.missing)))
	m.statDuckGoal.Set(m.duckGoal)
	if m.music != nil {
		m.statMusicVol.Set(m.music.Volume())
	}
}
