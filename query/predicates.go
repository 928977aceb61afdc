package query

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/vmath"
)

// builtins is the default predicate table
func builtins() map[string]Predicate {
	return map[string]Predicate{
		"TRUE":                func([]string, Context) (bool, error) { return true, nil },
		"FALSE":               func([]string, Context) (bool, error) { return false, nil },
		"TIME":                timeBetween,
		"LOCATION_NAME":       locationName,
		"ACTOR_ANIMATING":     ActorAnimating,
		"ACTOR_POSITION":      ActorPosition,
		"ACTOR_POSITION_RECT": ActorPositionRect,
	}
}

// timeBetween: TIME <min> [max]
func timeBetween(args []string, ctx Context) (bool, error) {
	lo, err := argInt(args, 1, "min time")
	if err != nil {
		return false, err
	}
	hi := 2600
	if len(args) > 2 {
		if hi, err = argInt(args, 2, "max time"); err != nil {
			return false, err
		}
	}
	t := ctx.World.TimeOfDay()
	return t >= lo && t <= hi, nil
}

// locationName: LOCATION_NAME <location> [location...]
func locationName(args []string, ctx Context) (bool, error) {
	if len(args) < 2 {
		return false, fmt.Errorf("%w: at least one location name is required", ErrMalformedQuery)
	}
	for _, name := range args[1:] {
		if strings.EqualFold(name, ctx.Location) {
			return true, nil
		}
	}
	return false, nil
}

// actor looks up a named actor
func actor(ctx Context, name string) (Actor, error) {
	a, ok := ctx.World.Actor(name)
	if !ok {
		return Actor{}, fmt.Errorf("%w '%s'", ErrUnknownActor, name)
	}
	return a, nil
}

// ActorAnimating: ACTOR_ANIMATING <actor> <location> <animation>
// True when the actor is in location playing the named scripted animation
func ActorAnimating(args []string, ctx Context) (bool, error) {
	name, err := argString(args, 1, "actor")
	if err != nil {
		return false, err
	}
	location, err := argLocation(args, 2, ctx)
	if err != nil {
		return false, err
	}
	anim, err := argString(args, 3, "animation")
	if err != nil {
		return false, err
	}

	a, err := actor(ctx, name)
	if err != nil {
		return false, err
	}
	return a.Location == location && a.Animating && strings.EqualFold(a.Animation, anim), nil
}

// ActorPosition: ACTOR_POSITION <actor> <location> <x> <y> [<x> <y>...]
// True when the actor stands on any of the listed tiles in location
func ActorPosition(args []string, ctx Context) (bool, error) {
	name, err := argString(args, 1, "actor")
	if err != nil {
		return false, err
	}
	location, err := argLocation(args, 2, ctx)
	if err != nil {
		return false, err
	}
	if len(args) <= 3 {
		return false, fmt.Errorf("%w: at least one coordinate pair is required", ErrMalformedQuery)
	}

	candidates := make([]core.Point, 0, (len(args)-3)/2)
	for i := 3; i < len(args); i += 2 {
		p, err := argPoint(args, i, "position")
		if err != nil {
			return false, err
		}
		candidates = append(candidates, p)
	}

	a, err := actor(ctx, name)
	if err != nil {
		return false, err
	}
	if a.Location != location {
		return false, nil
	}
	for _, p := range candidates {
		if a.Tile == p {
			return true, nil
		}
	}
	return false, nil
}

// ActorPositionRect: ACTOR_POSITION_RECT <actor> <location> <x> <y> <width> <height>
// True when the actor stands inside the rectangle in location
func ActorPositionRect(args []string, ctx Context) (bool, error) {
	name, err := argString(args, 1, "actor")
	if err != nil {
		return false, err
	}
	location, err := argLocation(args, 2, ctx)
	if err != nil {
		return false, err
	}
	rect, err := argArea(args, 3, "rectangle")
	if err != nil {
		return false, err
	}

	a, err := actor(ctx, name)
	if err != nil {
		return false, err
	}
	return a.Location == location && vmath.AreaContains(rect, a.Tile), nil
}
