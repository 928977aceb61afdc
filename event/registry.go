package event

import "strings"

var (
	nameToType = map[string]EventType{
		"SourcesInvalidated": EventSourcesInvalidated,
		"SourcesReady":       EventSourcesReady,
		"CuesReplaced":       EventCuesReplaced,
		"Refresh":            EventRefresh,
		"Warp":               EventWarp,
		"DayStarted":         EventDayStarted,
		"Stop":               EventStop,
	}
	typeToName = func() map[EventType]string {
		m := make(map[EventType]string, len(nameToType))
		for name, et := range nameToType {
			m[et] = name
		}
		return m
	}()
)

// GetEventType returns the EventType for a trigger action name, case-insensitive
func GetEventType(name string) (EventType, bool) {
	for n, et := range nameToType {
		if strings.EqualFold(n, name) {
			return et, true
		}
	}
	return EventNone, false
}

// GetEventName returns the trigger action name for an EventType
func GetEventName(et EventType) string {
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "None"
}

// String implements fmt.Stringer
func (et EventType) String() string {
	return GetEventName(et)
}
