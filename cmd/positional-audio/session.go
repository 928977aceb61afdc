package main

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/positional-audio/audio"
	"github.com/lixenwraith/positional-audio/constant"
	"github.com/lixenwraith/positional-audio/content"
	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/event"
	"github.com/lixenwraith/positional-audio/mixer"
	"github.com/lixenwraith/positional-audio/monitor"
	"github.com/lixenwraith/positional-audio/query"
	"github.com/lixenwraith/positional-audio/service"
	"github.com/lixenwraith/positional-audio/world"
)

// Ticks between monitor snapshots
const publishEvery = int64(constant.MonitorBroadcastInterval / constant.TickInterval)

// Demo locations and where a warp lands
var locations = []struct {
	name  string
	spawn core.Point
}{
	{"Farm", core.Point{X: 2, Y: 2}},
	{"Town", core.Point{X: 3, Y: 10}},
}

// relay forwards watcher notifications to the mixer and flags the drawn table stale
type relay struct {
	mixer *mixer.Mixer
	dirty atomic.Bool
}

func (r *relay) Notify(ev event.Event) {
	r.dirty.Store(true)
	r.mixer.Notify(ev)
}

// session wires the mixer to the demo world, cue bank, content watcher and monitor
// All methods run on the main goroutine
type session struct {
	logger   *log.Logger
	world    *world.World
	bank     *audio.Bank
	music    *audio.Music
	loader   *content.Loader
	mixer    *mixer.Mixer
	relay    *relay
	hub      *monitor.Hub
	services *service.Hub

	cuesPath string
	track    string
	defs     map[string]core.SourceDefinition
	locIdx   int
	ticks    int64
	clockMs  int64
}

type sessionConfig struct {
	sourcesPath string
	cuesPath    string
	track       string
	monitorAddr string
	live        bool
}

func newSession(cfg sessionConfig, logger *log.Logger) (*session, error) {
	s := &session{
		logger:   logger,
		world:    world.New(),
		loader:   content.NewLoader(cfg.sourcesPath, logger),
		cuesPath: cfg.cuesPath,
		track:    cfg.track,
	}

	s.bank = audio.NewBank(audio.LoadAudioConfig(), logger)
	if cfg.cuesPath != "" {
		s.loadCues()
	}
	s.music = audio.NewMusic(s.bank)

	m, err := mixer.New(mixer.Options{
		Bank:      s.bank,
		Position:  s.world,
		Location:  s.world,
		Loader:    s.loader,
		Condition: query.NewEvaluator(s.world, logger),
		Music:     s.music,
		Config:    mixer.LoadConfig(),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	s.mixer = m
	s.relay = &relay{mixer: m}

	s.world.PlaceActor("miller", "Farm", core.Point{X: 12, Y: 3})
	s.world.PlaceActor("lamplighter", "Town", core.Point{X: 13, Y: 5})
	s.world.SetMoving("lamplighter", true)

	// Headless sessions keep the bank off the device and never open it
	s.services = service.NewHub(logger)
	if cfg.live {
		s.services.Register(s.bank)
	}
	s.services.Register(content.NewWatcher(cfg.sourcesPath, time.Second, s.relay, logger))
	if cfg.monitorAddr != "" {
		s.hub = monitor.NewHub(monitor.Config{Logger: logger, Notifier: s.relay})
		s.services.Register(monitor.NewServer(cfg.monitorAddr, s.hub, logger))
	}
	if err := s.services.StartAll(); err != nil {
		return nil, err
	}

	s.warp(0)
	if s.track != "" {
		if err := s.music.Play(s.track); err != nil {
			logger.Printf("Music unavailable: %v", err)
		}
	}
	return s, nil
}

// loadCues registers the cue manifest; failing cues are logged by the bank
func (s *session) loadCues() {
	m, err := audio.ReadManifest(s.cuesPath)
	if err != nil {
		s.logger.Printf("Failed to read cue manifest: %v", err)
		return
	}
	s.bank.LoadManifest(m)
}

// reloadCues re-reads the manifest and swaps every playing cue in place
func (s *session) reloadCues() {
	s.loadCues()
	s.mixer.Notify(event.Event{Type: event.EventCuesReplaced})
	if s.track != "" && s.music.Track() != "" {
		s.music.Play(s.track)
	}
}

// tick advances the world clock and the mixer by one step
func (s *session) tick() {
	s.ticks++

	if s.world.TimePasses() {
		s.clockMs += constant.TickInterval.Milliseconds()
		for s.clockMs >= 1000 {
			s.clockMs -= 1000
			if s.world.AdvanceClock(1) {
				s.mixer.Notify(event.Event{Type: event.EventDayStarted})
			}
		}
	}

	s.mixer.Tick(constant.TickInterval)

	if s.hub != nil && s.ticks%publishEvery == 0 {
		loc, _ := s.world.CurrentLocation()
		s.hub.Publish(&monitor.Snapshot{
			Tick:     s.ticks,
			Location: loc,
			Metrics:  s.mixer.Status().Snapshot(),
			Entries:  s.mixer.Entries(),
		})
	}
}

// sources returns the table used for drawing, reloaded after the watcher fires
func (s *session) sources() map[string]core.SourceDefinition {
	if s.defs == nil || s.relay.dirty.Swap(false) {
		defs, err := s.loader.LoadSources()
		if err != nil {
			s.logger.Printf("Failed to load audio sources: %v", err)
		}
		s.defs = defs
	}
	return s.defs
}

// warp moves the listener to the spawn tile of location i
func (s *session) warp(i int) {
	s.locIdx = i % len(locations)
	loc := locations[s.locIdx]
	s.world.Warp(loc.name, loc.spawn)
	s.mixer.Notify(event.Event{Type: event.EventWarp, Location: loc.name})
}

func (s *session) toggleMusic() {
	if s.music.Track() != "" {
		s.music.Stop()
		return
	}
	if err := s.music.Play(s.track); err != nil {
		s.logger.Printf("Music unavailable: %v", err)
	}
}

func (s *session) toggleMiller() {
	a, _ := s.world.Actor("miller")
	if a.Animating {
		s.world.SetAnimation("miller", "")
	} else {
		s.world.SetAnimation("miller", "grind")
	}
}

// close stops playback immediately and releases every resource
func (s *session) close() {
	s.mixer.Stop()
	s.music.Stop()
	s.services.StopAll()
	s.bank.Close()
}
