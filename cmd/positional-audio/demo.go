package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/positional-audio/constant"
	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/vmath"
)

const (
	mapWidth  = 20
	mapHeight = 14
	panelX    = mapWidth + 4
	barWidth  = 20
)

var (
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor    = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleListener = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSource   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleActor    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleActive   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDoomed   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Demo draws the listener's location and the live mix
type Demo struct {
	screen tcell.Screen
	s      *session
}

func NewDemo(s *session) (*Demo, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return &Demo{screen: screen, s: s}, nil
}

func (d *Demo) run() {
	ticker := time.NewTicker(constant.TickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	goSafe(func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	for {
		select {
		case ev := <-eventChan:
			if !d.handleInput(ev) {
				return
			}

		case <-ticker.C:
			d.s.tick()
			d.draw()
		}
	}
}

func (d *Demo) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			d.move(0, -1)
		case tcell.KeyDown:
			d.move(0, 1)
		case tcell.KeyLeft:
			d.move(-1, 0)
		case tcell.KeyRight:
			d.move(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'k':
				d.move(0, -1)
			case 'j':
				d.move(0, 1)
			case 'h':
				d.move(-1, 0)
			case 'l':
				d.move(1, 0)
			case 't':
				d.s.warp(d.s.locIdx + 1)
			case 'p':
				d.s.world.SetPaused(d.s.world.TimePasses())
			case 'n':
				if d.s.world.AdvanceClock(60) {
					d.s.mixer.DayStarted()
				}
			case 'a':
				d.s.toggleMiller()
			case 'm':
				d.s.toggleMusic()
			case 'r':
				d.s.mixer.Refresh()
			case 'c':
				d.s.reloadCues()
			}
		}

	case *tcell.EventResize:
		d.screen.Sync()
	}

	return true
}

// move steps the listener half a tile, kept inside the map
func (d *Demo) move(dx, dy float64) {
	pos := d.s.world.ListenerPosition()
	next := vmath.Vec2{X: pos.X + dx*0.5, Y: pos.Y + dy*0.5}
	next.X = max(0.5, min(mapWidth-0.5, next.X))
	next.Y = max(0.5, min(mapHeight-0.5, next.Y))
	d.s.world.SetListener(next)
}

func (d *Demo) draw() {
	d.screen.Clear()

	loc, _ := d.s.world.CurrentLocation()

	// Map frame
	for x := 0; x < mapWidth+2; x++ {
		d.screen.SetContent(x, 0, '-', nil, styleWall)
		d.screen.SetContent(x, mapHeight+1, '-', nil, styleWall)
	}
	for y := 1; y <= mapHeight; y++ {
		d.screen.SetContent(0, y, '|', nil, styleWall)
		d.screen.SetContent(mapWidth+1, y, '|', nil, styleWall)
		for x := 0; x < mapWidth; x++ {
			d.screen.SetContent(x+1, y, '.', nil, styleFloor)
		}
	}

	// Sources of this location, first letter of the cue
	for _, def := range d.s.sources() {
		if def.LocationName != loc {
			continue
		}
		d.plot(def.Position, []rune(def.CueName)[0], styleSource)
	}

	// Actors
	for _, a := range d.s.world.Actors() {
		if actor, ok := d.s.world.Actor(a.ID); ok {
			d.plot(actor.Tile, []rune(strings.ToUpper(a.ID))[0], styleActor)
		}
	}

	// Listener
	tile := vmath.TileOf(d.s.world.ListenerPosition())
	d.plot(tile, '@', styleListener)

	d.drawPanel(loc)
	d.screen.Show()
}

func (d *Demo) plot(p core.Point, r rune, style tcell.Style) {
	if p.X < 0 || p.Y < 0 || p.X >= mapWidth || p.Y >= mapHeight {
		return
	}
	d.screen.SetContent(p.X+1, p.Y+1, r, nil, style)
}

func (d *Demo) drawPanel(loc string) {
	t := d.s.world.TimeOfDay()
	clock := fmt.Sprintf("%02d:%02d", t/100, t%100)
	if !d.s.world.TimePasses() {
		clock += " (paused)"
	}

	y := 0
	d.text(panelX, y, fmt.Sprintf("Location %-8s %s", loc, clock), styleText)
	y++
	pos := d.s.world.ListenerPosition()
	d.text(panelX, y, fmt.Sprintf("Listener %.1f,%.1f", pos.X, pos.Y), styleText)
	y++

	music := "off"
	if d.s.music.Active() {
		music = d.s.music.Track()
	}
	d.text(panelX, y, fmt.Sprintf("Music %-8s %s", music, bar(d.s.music.Volume())), styleText)
	y++
	d.text(panelX, y, fmt.Sprintf("Duck  goal     %s", bar(d.s.mixer.DuckGoal())), styleText)
	y += 2

	entries := d.s.mixer.Entries()
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].State < entries[j].State })
	for _, e := range entries {
		style := styleActive
		if e.State == "doomed" {
			style = styleDoomed
		}
		mark := ' '
		if e.Playing {
			mark = '>'
		}
		d.text(panelX, y, fmt.Sprintf("%c %-12s %s %.2f", mark, e.ID, bar(e.Volume), e.Target), style)
		y++
	}

	d.text(0, mapHeight+3, "arrows/hjkl move  t warp  n +1h  p pause  a miller  m music  r refresh  c reload cues  q quit", styleText)
}

func (d *Demo) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (d *Demo) close() {
	d.screen.Fini()
}

// bar renders a 0-1 level as a fixed-width meter
func bar(v float64) string {
	n := int(v*barWidth + 0.5)
	n = max(0, min(barWidth, n))
	return "[" + strings.Repeat("#", n) + strings.Repeat(" ", barWidth-n) + "]"
}
