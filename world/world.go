package world

import (
	"sort"
	"sync"

	"github.com/lixenwraith/positional-audio/constant"
	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/mixer"
	"github.com/lixenwraith/positional-audio/query"
	"github.com/lixenwraith/positional-audio/vmath"
)

// actorState is the mutable record of one actor
type actorState struct {
	location  string
	tile      core.Point
	moving    bool
	animating bool
	animation string
}

// World is an in-memory listener and actor context
// It satisfies mixer.PositionSource, mixer.LocationContext and query.World
// Safe for concurrent use; input handlers and the tick loop may run on different goroutines
type World struct {
	mu        sync.RWMutex
	location  string
	listener  vmath.Vec2
	timeOfDay int
	paused    bool
	actors    map[string]*actorState
}

// New creates a world with the listener nowhere and the clock at the start of day
func New() *World {
	return &World{
		timeOfDay: constant.InitialTimeOfDay,
		actors:    make(map[string]*actorState),
	}
}

// ListenerPosition implements mixer.PositionSource
func (w *World) ListenerPosition() vmath.Vec2 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.listener
}

// CurrentLocation implements mixer.LocationContext
func (w *World) CurrentLocation() (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.location, w.location != ""
}

// TimeOfDay implements mixer.LocationContext and query.World
func (w *World) TimeOfDay() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.timeOfDay
}

// TimePasses implements mixer.LocationContext
func (w *World) TimePasses() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return !w.paused
}

// Actors implements mixer.LocationContext
// Only actors sharing the listener's location are reported, sorted by name
func (w *World) Actors() []mixer.ActorState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]mixer.ActorState, 0, len(w.actors))
	for name, a := range w.actors {
		if a.location != w.location {
			continue
		}
		out = append(out, mixer.ActorState{ID: name, Moving: a.moving, Animation: a.currentAnimation()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Actor implements query.World
func (w *World) Actor(name string) (query.Actor, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	a, ok := w.actors[name]
	if !ok {
		return query.Actor{}, false
	}
	return query.Actor{
		Name:      name,
		Location:  a.location,
		Tile:      a.tile,
		Moving:    a.moving,
		Animating: a.animating,
		Animation: a.currentAnimation(),
	}, true
}

// currentAnimation returns the animation name while one is playing
func (a *actorState) currentAnimation() string {
	if !a.animating {
		return ""
	}
	return a.animation
}

// Warp places the listener at a tile in location
// The caller is responsible for notifying the mixer
func (w *World) Warp(location string, tile core.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.location = location
	w.listener = vmath.TileCenter(tile)
}

// Leave removes the listener from any location
func (w *World) Leave() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.location = ""
}

// MoveListener offsets the listener by (dx, dy) tiles
func (w *World) MoveListener(dx, dy float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listener.X += dx
	w.listener.Y += dy
}

// SetListener places the listener at an exact position
func (w *World) SetListener(pos vmath.Vec2) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listener = pos
}

// AdvanceClock moves the clock forward by minutes in 24h "HHMM" form
// Returns true when the day rolled over
func (w *World) AdvanceClock(minutes int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	total := (w.timeOfDay/100)*60 + w.timeOfDay%100 + minutes
	rolled := total >= 24*60
	total %= 24 * 60
	w.timeOfDay = (total/60)*100 + total%60
	return rolled
}

// SetTimeOfDay sets the clock directly
func (w *World) SetTimeOfDay(t int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timeOfDay = t
}

// SetPaused freezes discrete replay timers
func (w *World) SetPaused(paused bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paused = paused
}

// PlaceActor adds or moves an actor
func (w *World) PlaceActor(name, location string, tile core.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()

	a, ok := w.actors[name]
	if !ok {
		a = &actorState{}
		w.actors[name] = a
	}
	a.location = location
	a.tile = tile
}

// SetMoving marks whether an actor is walking
func (w *World) SetMoving(name string, moving bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if a, ok := w.actors[name]; ok {
		a.moving = moving
	}
}

// SetAnimation starts a scripted animation; an empty name stops it
func (w *World) SetAnimation(name, animation string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if a, ok := w.actors[name]; ok {
		a.animating = animation != ""
		a.animation = animation
	}
}

// RemoveActor deletes an actor
func (w *World) RemoveActor(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.actors, name)
}
