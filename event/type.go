package event

// EventType represents the type of mixer notification
type EventType int

const (
	// EventNone is the zero value and is ignored by consumers
	EventNone EventType = iota

	// EventSourcesInvalidated signals the source table changed on disk
	// Trigger: content.Watcher | Consumer: Mixer (invalidate + filter)
	EventSourcesInvalidated

	// EventSourcesReady signals a fresh source table can be loaded
	// Trigger: content.Watcher | Consumer: Mixer (filter)
	EventSourcesReady

	// EventCuesReplaced signals the cue bank was reloaded with logically unchanged sources
	// Trigger: audio bank reload | Consumer: Mixer (replace cues)
	EventCuesReplaced

	// EventRefresh forces a re-filter at the current location
	// Trigger: external trigger action | Consumer: Mixer
	EventRefresh

	// EventWarp reports the listener moved to another location
	// Trigger: world | Consumer: Mixer (hard reset + filter) | Location: destination
	EventWarp

	// EventDayStarted reports a new day
	// Trigger: world | Consumer: Mixer (hard reset + filter)
	EventDayStarted

	// EventStop disposes every playback handle immediately
	// Trigger: shutdown | Consumer: Mixer
	EventStop
)

// Event is a single queued notification
type Event struct {
	Type     EventType
	Location string // EventWarp only
}
