package main

import (
	"io"
	"log"
	"math"
	"strings"
	"testing"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	s, err := newSession(sessionConfig{
		sourcesPath: "sources.yaml",
		cuesPath:    "cues.yaml",
		track:       "theme",
	}, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	t.Cleanup(s.close)
	return s
}

func (s *session) run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.tick()
	}
}

func ids(s *session) string {
	var out []string
	for _, e := range s.mixer.Entries() {
		out = append(out, e.ID+":"+e.State)
	}
	return strings.Join(out, ",")
}

// TestSessionFarm verifies the demo content activates and ducks music at the farm spawn
func TestSessionFarm(t *testing.T) {
	s := newTestSession(t)
	s.run(100)

	if got := ids(s); got != "farm_bell:active,farm_hearth:active,farm_stream:active" {
		t.Errorf("Unexpected entries: %s", got)
	}
	for _, e := range s.mixer.Entries() {
		if e.ID == "farm_hearth" && math.Abs(e.Volume-e.Target) > 1e-9 {
			t.Errorf("Expected hearth settled at %v, got %v", e.Target, e.Volume)
		}
	}
	if got := s.mixer.DuckGoal(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("Expected duck goal 0.3 near the hearth, got %v", got)
	}
	if got := s.music.Volume(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("Expected music faded to 0.3, got %v", got)
	}
}

// TestSessionActorCondition verifies an animating actor activates its source on the next scan
func TestSessionActorCondition(t *testing.T) {
	s := newTestSession(t)
	// First scan primes the actor cache
	s.run(25)

	s.toggleMiller()
	s.run(25)

	if got := ids(s); !strings.Contains(got, "farm_mill:active") {
		t.Errorf("Expected mill active while the miller works, got %s", got)
	}

	s.toggleMiller()
	s.run(25)

	if got := ids(s); strings.Contains(got, "farm_mill:active") {
		t.Errorf("Expected mill retired, got %s", got)
	}
}

// TestSessionWarp verifies a warp replaces the farm mix with the town mix
func TestSessionWarp(t *testing.T) {
	s := newTestSession(t)
	s.run(30)

	s.warp(s.locIdx + 1)
	s.run(1)

	if got := ids(s); got != "town_door:active,town_hum:active" {
		t.Errorf("Expected town sources only, got %s", got)
	}
	if s.bank.Handles() != 3 {
		t.Errorf("Expected two source handles plus music, got %d", s.bank.Handles())
	}
}
