package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/positional-audio/core"
)

// hereAliases resolve a location argument to the evaluation context
var hereAliases = []string{"Here", "Target"}

func argString(args []string, i int, name string) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%w: required index %d (%s) not found", ErrMalformedQuery, i, name)
	}
	return args[i], nil
}

func argInt(args []string, i int, name string) (int, error) {
	s, err := argString(args, i, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %d (%s) has value '%s', which can't be parsed as an integer", ErrMalformedQuery, i, name, s)
	}
	return v, nil
}

func argPoint(args []string, i int, name string) (core.Point, error) {
	x, err := argInt(args, i, name+" x")
	if err != nil {
		return core.Point{}, err
	}
	y, err := argInt(args, i+1, name+" y")
	if err != nil {
		return core.Point{}, err
	}
	return core.Point{X: x, Y: y}, nil
}

func argArea(args []string, i int, name string) (core.Area, error) {
	p, err := argPoint(args, i, name)
	if err != nil {
		return core.Area{}, err
	}
	w, err := argInt(args, i+2, name+" width")
	if err != nil {
		return core.Area{}, err
	}
	h, err := argInt(args, i+3, name+" height")
	if err != nil {
		return core.Area{}, err
	}
	return core.Area{X: p.X, Y: p.Y, Width: w, Height: h}, nil
}

// argLocation reads a location argument, mapping Here/Target to the context location
func argLocation(args []string, i int, ctx Context) (string, error) {
	s, err := argString(args, i, "location")
	if err != nil {
		return "", err
	}
	for _, alias := range hereAliases {
		if strings.EqualFold(s, alias) {
			return ctx.Location, nil
		}
	}
	return s, nil
}
