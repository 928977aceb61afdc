package status

import (
	"strings"
	"sync"
	"testing"
)

// TestRegistrySnapshot verifies every metric kind lands in the snapshot
func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Int("mixer.active").Store(3)
	r.Bool("mixer.located").Store(true)
	r.Float("mixer.duck_goal").Set(0.25)
	r.Text("mixer.location").Store("Farm")

	if r.Len() != 4 {
		t.Errorf("Expected 4 metrics, got %d", r.Len())
	}
	if got := strings.Join(r.Names(), ","); got != "mixer.active,mixer.duck_goal,mixer.located,mixer.location" {
		t.Errorf("Unexpected names: %s", got)
	}

	snap := r.Snapshot()
	if snap["mixer.active"] != int64(3) {
		t.Errorf("Expected 3, got %v", snap["mixer.active"])
	}
	if snap["mixer.located"] != true {
		t.Errorf("Expected true, got %v", snap["mixer.located"])
	}
	if snap["mixer.duck_goal"] != 0.25 {
		t.Errorf("Expected 0.25, got %v", snap["mixer.duck_goal"])
	}
	if snap["mixer.location"] != "Farm" {
		t.Errorf("Expected Farm, got %v", snap["mixer.location"])
	}
}

// TestRegistrySamePointer verifies concurrent lookups share one atomic
func TestRegistrySamePointer(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Int("mixer.ticks").Add(1)
		}()
	}
	wg.Wait()

	if got := r.Int("mixer.ticks").Load(); got != 8 {
		t.Errorf("Expected 8, got %d", got)
	}
	if r.Len() != 1 {
		t.Errorf("Expected a single metric, got %d", r.Len())
	}
}

// TestRegistryKindMismatch verifies a name cannot change kind
func TestRegistryKindMismatch(t *testing.T) {
	r := NewRegistry()
	r.Int("mixer.active")

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on kind mismatch")
		}
	}()
	r.Float("mixer.active")
}

// TestTextTruncates verifies long values are bounded
func TestTextTruncates(t *testing.T) {
	var s Text
	if s.Load() != "" {
		t.Error("Expected zero value to load empty")
	}

	s.Store(strings.Repeat("x", MaxTextLen+10))
	if len(s.Load()) != MaxTextLen {
		t.Errorf("Expected length %d, got %d", MaxTextLen, len(s.Load()))
	}
}
