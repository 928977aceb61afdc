package mixer

import "github.com/lixenwraith/positional-audio/constant"

// actorSnapshot is the cached change signal of one actor
type actorSnapshot struct {
	moving    bool
	animation string
}

// changeDetector polls coarse world state for differences against its cache
// Actors expose no change notifications, so staleness is bounded by the poll interval
type changeDetector struct {
	timeOfDay int
	actors    map[string]actorSnapshot
}

func newChangeDetector() *changeDetector {
	return &changeDetector{
		timeOfDay: constant.InitialTimeOfDay,
		actors:    make(map[string]actorSnapshot),
	}
}

// changed samples ctx and reports whether anything differs from the cache
// The cache is refreshed for every actor regardless of which one triggered
// Actors seen for the first time never trigger; absent actors keep their last snapshot
func (d *changeDetector) changed(ctx LocationContext) bool {
	changed := false

	t := ctx.TimeOfDay()
	if t != d.timeOfDay {
		changed = true
	}
	d.timeOfDay = t

	for _, a := range ctx.Actors() {
		s := actorSnapshot{moving: a.Moving, animation: a.Animation}
		if prev, ok := d.actors[a.ID]; ok && prev != s {
			changed = true
		}
		d.actors[a.ID] = s
	}

	return changed
}

// reset forgets cached actors; the clock value is kept
func (d *changeDetector) reset() {
	clear(d.actors)
}
