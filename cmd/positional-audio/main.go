package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

var (
	sourcesFlag  = flag.String("sources", "cmd/positional-audio/sources.yaml", "Audio source table (YAML or JSON)")
	cuesFlag     = flag.String("cues", "cmd/positional-audio/cues.yaml", "Cue manifest")
	musicFlag    = flag.String("music", "theme", "Background music cue; empty disables music")
	monitorFlag  = flag.String("monitor", "", "Monitor websocket listen address, e.g. :8080")
	logFlag      = flag.String("log", "", "Log file; logs are discarded while the screen is up when empty")
	headlessFlag = flag.Int("headless", 0, "Run this many ticks without a screen or device and print the mix")
)

func main() {
	flag.Parse()

	cfg := sessionConfig{
		sourcesPath: *sourcesFlag,
		cuesPath:    *cuesFlag,
		track:       *musicFlag,
		monitorAddr: *monitorFlag,
		live:        *headlessFlag == 0,
	}

	if *headlessFlag > 0 {
		runHeadless(cfg, *headlessFlag)
		return
	}

	var out io.Writer = io.Discard
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, "", log.LstdFlags)

	s, err := newSession(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer s.close()

	demo, err := NewDemo(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	crashScreen = demo.screen
	defer func() {
		handleCrash(recover())
	}()

	demo.run()
	demo.close()
}

// runHeadless walks the listener across the first location and prints the resulting mix
func runHeadless(cfg sessionConfig, ticks int) {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	s, err := newSession(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to start: %v", err)
	}
	defer s.close()

	for i := 0; i < ticks; i++ {
		// One tile every half second, left to right
		if i%31 == 30 {
			pos := s.world.ListenerPosition()
			pos.X = min(mapWidth-0.5, pos.X+1)
			s.world.SetListener(pos)
		}
		s.tick()
	}

	loc, _ := s.world.CurrentLocation()
	pos := s.world.ListenerPosition()
	fmt.Printf("%s at %.1f,%.1f after %d ticks, duck goal %.2f\n", loc, pos.X, pos.Y, ticks, s.mixer.DuckGoal())
	for _, e := range s.mixer.Entries() {
		fmt.Printf("  %-12s %-6s %-10s %-7s volume %.3f target %.3f playing %v\n", e.ID, e.Cue, e.Category, e.State, e.Volume, e.Target, e.Playing)
	}
}
