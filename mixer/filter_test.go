package mixer

import (
	"errors"
	"testing"

	"github.com/lixenwraith/positional-audio/core"
)

// TestFilterLocationAndCondition verifies only matching, passing sources activate
func TestFilterLocationAndCondition(t *testing.T) {
	gated := source("Farm", "bell", 1, 1)
	gated.Condition = "FALSE"

	r := newTestRig("Farm", map[string]core.SourceDefinition{
		"campfire": source("Farm", "fire", 0, 0),
		"gated":    gated,
		"market":   source("Town", "knock", 0, 0),
	})
	r.m.Filter("Farm")

	if r.active("campfire") == nil {
		t.Error("Expected campfire active")
	}
	if r.active("gated") != nil {
		t.Error("Expected gated source inactive while its condition fails")
	}
	if r.active("market") != nil {
		t.Error("Expected source of another location inactive")
	}

	gated.Condition = "TRUE"
	r.sources["gated"] = gated
	r.m.Invalidate()
	if r.active("gated") == nil {
		t.Error("Expected gated source active once its condition passes")
	}
}

// TestFilterConditionTurnsFalse verifies an Active source is retired when its condition fails
func TestFilterConditionTurnsFalse(t *testing.T) {
	r := newTestRig("Farm", map[string]core.SourceDefinition{
		"campfire": source("Farm", "fire", 0, 0),
	})
	r.m.Filter("Farm")

	def := r.sources["campfire"]
	def.Condition = "FALSE"
	r.sources = map[string]core.SourceDefinition{"campfire": def}
	r.m.Invalidate()

	if r.active("campfire") != nil {
		t.Error("Expected campfire retired")
	}
	if len(r.doomed("campfire")) != 1 {
		t.Error("Expected campfire fading out as doomed")
	}
}

// TestFilterEmptyLocationRetiresAll verifies a null location retires every Active entry
func TestFilterEmptyLocationRetiresAll(t *testing.T) {
	r := newTestRig("Farm", map[string]core.SourceDefinition{
		"campfire": source("Farm", "fire", 0, 0),
		"chime":    source("Farm", "bell", 2, 2),
	})
	r.m.Filter("Farm")
	r.m.Filter("")

	for _, s := range r.m.Entries() {
		if s.State != "doomed" {
			t.Errorf("Expected %s doomed, got %s", s.ID, s.State)
		}
	}
	if got := len(r.m.Entries()); got != 2 {
		t.Errorf("Expected 2 doomed entries, got %d", got)
	}
}

// TestMissingCueLoggedOnce verifies an unresolvable cue is looked up and logged once per invalidation
func TestMissingCueLoggedOnce(t *testing.T) {
	r := newTestRig("Farm", map[string]core.SourceDefinition{
		"haunt": source("Farm", "ghost", 0, 0),
	})

	for i := 0; i < 10; i++ {
		r.m.Filter("Farm")
	}

	if got := r.bank.exists["ghost"]; got != 1 {
		t.Errorf("Expected 1 bank lookup, got %d", got)
	}
	if got := r.logLines("Skipping audio source 'haunt'"); got != 1 {
		t.Errorf("Expected 1 log line, got %d:\n%s", got, r.logBuf.String())
	}
	if r.active("haunt") != nil {
		t.Error("Expected missing source to stay inactive")
	}

	r.m.Invalidate()
	r.m.Filter("Farm")

	if got := r.bank.exists["ghost"]; got != 2 {
		t.Errorf("Expected lookup retried after invalidation, got %d lookups", got)
	}
	if got := r.logLines("Skipping audio source 'haunt'"); got != 2 {
		t.Errorf("Expected second log line after invalidation, got %d", got)
	}
}

// TestAcquireFailureMarksMissing verifies a failed acquisition is treated as a missing cue
func TestAcquireFailureMarksMissing(t *testing.T) {
	r := newTestRig("Farm", map[string]core.SourceDefinition{
		"campfire": source("Farm", "fire", 0, 0),
	})
	r.bank.failNext = true

	r.m.Filter("Farm")
	r.m.Filter("Farm")

	if r.active("campfire") != nil {
		t.Error("Expected no entry after failed acquisition")
	}
	if got := len(r.bank.calls); got != 1 {
		t.Errorf("Expected a single acquisition attempt, got %v", r.bank.calls)
	}
	if got := r.logLines("cue not found"); got != 1 {
		t.Errorf("Expected one missing resource log line, got %d", got)
	}
}

// TestInvalidateReconcilesEntries verifies playing handles survive and removed IDs retire
func TestInvalidateReconcilesEntries(t *testing.T) {
	r := newTestRig("Farm", map[string]core.SourceDefinition{
		"campfire": source("Farm", "fire", 0, 0),
		"stream":   source("Farm", "river", 5, 5),
		"chime":    source("Farm", "bell", 2, 2),
	})
	r.m.Filter("Farm")
	campfire := r.active("campfire").handle.(*fakeHandle)
	stream := r.active("stream").handle.(*fakeHandle)
	chime := r.active("chime").handle.(*fakeHandle)

	r.sources = map[string]core.SourceDefinition{
		"campfire": source("Farm", "fire", 0, 0),
		"chime":    source("Farm", "bell", 2, 2),
	}
	r.m.Invalidate()

	if r.loads != 2 {
		t.Errorf("Expected registry reloaded, got %d loads", r.loads)
	}
	if r.active("campfire") == nil || r.active("campfire").handle != Handle(campfire) {
		t.Error("Expected playing campfire handle preserved")
	}
	if r.active("stream") != nil || len(r.doomed("stream")) != 1 {
		t.Error("Expected removed stream source retired")
	}
	if stream.disposed {
		t.Error("Expected retired stream to fade rather than dispose")
	}
	if !chime.disposed {
		t.Error("Expected stopped chime handle disposed on invalidation")
	}
	if e := r.active("chime"); e == nil || e.handle == Handle(chime) {
		t.Error("Expected chime reactivated with a fresh handle")
	}
}

// TestLoaderErrorLeavesEmptyRegistry verifies load failures are logged and never fatal
func TestLoaderErrorLeavesEmptyRegistry(t *testing.T) {
	r := newTestRig("Farm", nil)
	r.m.loader = LoaderFunc(func() (map[string]core.SourceDefinition, error) {
		return nil, errors.New("disk on fire")
	})

	r.m.Filter("Farm")
	r.m.Tick(tick)

	if len(r.m.entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(r.m.entries))
	}
	if got := r.logLines("disk on fire"); got != 1 {
		t.Errorf("Expected load error logged once, got %d", got)
	}
}

// countingCondition fails every condition and counts resets
type countingCondition struct {
	resets int
}

func (c *countingCondition) Evaluate(string, string) bool { return false }
func (c *countingCondition) Reset() { c.resets++ }

// TestInvalidateResetsCondition verifies invalidation clears the evaluator's failure memory
func TestInvalidateResetsCondition(t *testing.T) {
	r := newTestRig("Farm", map[string]core.SourceDefinition{
		"campfire": source("Farm", "fire", 0, 0),
	})
	cond := &countingCondition{}
	r.m.cond = cond

	r.m.Filter("Farm")
	if cond.resets != 0 {
		t.Errorf("Expected no reset before invalidation, got %d", cond.resets)
	}

	r.m.Invalidate()
	if cond.resets != 1 {
		t.Errorf("Expected 1 reset, got %d", cond.resets)
	}
}
