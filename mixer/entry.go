package mixer

import "github.com/lixenwraith/positional-audio/core"

// EntryState tags a playback entry
type EntryState uint8

const (
	StateActive EntryState = iota
	StateDoomed
)

// String implements fmt.Stringer
func (s EntryState) String() string {
	if s == StateDoomed {
		return "doomed"
	}
	return "active"
}

// entryKey addresses the single entry map
// Active entries use doom 0; retiring rekeys to a fresh serial, freeing the ID
type entryKey struct {
	id   string
	doom uint64
}

// entry is the runtime record bound to one definition snapshot
type entry struct {
	id       string
	def      core.SourceDefinition
	state    EntryState
	handle   Handle
	category core.Category
	target   float64
	delay    int // ms until a discrete replay, 0 = unarmed
}

// take transfers handle ownership out of the entry
func (e *entry) take() Handle {
	h := e.handle
	e.handle = nil
	return h
}

// dispose stops and releases the owned handle, if any
func (e *entry) dispose() {
	if h := e.take(); h != nil {
		h.Stop()
		h.Dispose()
	}
}

func (e *entry) playing() bool {
	return e.handle != nil && e.handle.IsPlaying()
}

// EntryStatus is a read-only view of one entry
type EntryStatus struct {
	ID       string  `json:"id"`
	Cue      string  `json:"cue"`
	State    string  `json:"state"`
	Category string  `json:"category"`
	Target   float64 `json:"target"`
	Volume   float64 `json:"volume"`
	Playing  bool    `json:"playing"`
}
