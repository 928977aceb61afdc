package query

import "github.com/lixenwraith/positional-audio/core"

// Actor is the predicate-visible state of one dynamic actor
type Actor struct {
	Name      string
	Location  string
	Tile      core.Point
	Moving    bool
	Animating bool   // Playing a scripted end-of-route animation
	Animation string // Name of the scripted animation, valid while Animating
}

// World is the read-only world state predicates run against
type World interface {
	Actor(name string) (Actor, bool)
	TimeOfDay() int
}

// Context is passed to every predicate
type Context struct {
	Location string // Listener location the condition is evaluated for
	World    World
}

// Predicate evaluates one clause; args[0] is the predicate name
type Predicate func(args []string, ctx Context) (bool, error)
