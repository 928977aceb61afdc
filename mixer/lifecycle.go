package mixer

import (
	"fmt"

	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/vmath"
)

// resolve reports whether cue can be played, recording it as missing otherwise
// Known-missing cues short-circuit without a bank lookup
func (m *Mixer) resolve(id, cue string) bool {
	if _, missing := m.missing[cue]; missing {
		return false
	}
	if !m.bank.Exists(cue) {
		m.markMissing(id, cue, fmt.Errorf("%w: %q", ErrMissingResource, cue))
		return false
	}
	return true
}

// markMissing suppresses further lookups of cue until the next invalidation
func (m *Mixer) markMissing(id, cue string, err error) {
	if _, missing := m.missing[cue]; missing {
		return
	}
	m.missing[cue] = struct{}{}
	m.logger.Printf("Skipping audio source '%s': %v", id, err)
}

// acquire obtains a fresh handle for cue
func (m *Mixer) acquire(cue string) (Handle, error) {
	h, err := m.bank.Acquire(cue)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMissingResource, cue, err)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingResource, cue)
	}
	return h, nil
}

// bind installs h into a new Active entry under id
// Continuous cues start playing silently so the fader ramps them in
// Discrete cues stay stopped at the entry's target until their delay timer fires
func (m *Mixer) bind(id string, def core.SourceDefinition, h Handle, target float64) *entry {
	e := &entry{
		id:       id,
		def:      def,
		state:    StateActive,
		handle:   h,
		category: m.bank.Category(h),
		target:   target,
	}
	switch e.category {
	case core.CategoryContinuous:
		h.SetVolume(0)
		h.Play()
	case core.CategoryDiscrete:
		h.SetVolume(target)
	}
	m.entries[entryKey{id: id}] = e
	return e
}

// activate acquires a handle for def and binds it to a new Active entry
func (m *Mixer) activate(id string, def core.SourceDefinition) (*entry, error) {
	h, err := m.acquire(def.CueName)
	if err != nil {
		return nil, err
	}
	return m.bind(id, def, h, 0), nil
}

// preserve carries the handle of old into a new entry for def
// Playback and volume continue untouched
func (m *Mixer) preserve(old *entry, def core.SourceDefinition) *entry {
	e := &entry{
		id:       old.id,
		def:      def,
		state:    StateActive,
		handle:   old.take(),
		category: old.category,
		target:   old.target,
		delay:    old.delay,
	}
	m.entries[entryKey{id: old.id}] = e
	return e
}

// rebind replaces the handle of old after its cue changed
// The old handle is disposed before the new one is acquired
func (m *Mixer) rebind(old *entry, def core.SourceDefinition) (*entry, error) {
	target := old.target
	old.dispose()
	delete(m.entries, entryKey{id: old.id})

	h, err := m.acquire(def.CueName)
	if err != nil {
		return nil, err
	}
	return m.bind(old.id, def, h, target), nil
}

// retire moves an Active entry out of the ID key space to fade out
func (m *Mixer) retire(e *entry) {
	if e.state != StateActive {
		return
	}
	delete(m.entries, entryKey{id: e.id})
	m.doomSerial++
	e.state = StateDoomed
	e.target = 0
	e.delay = 0
	m.entries[entryKey{id: e.id, doom: m.doomSerial}] = e
}

// disposeAll stops and disposes every Active and Doomed handle
func (m *Mixer) disposeAll() {
	for key, e := range m.entries {
		e.dispose()
		delete(m.entries, key)
	}
}

// replaceCues swaps every Active handle for a freshly acquired one of the same cue
// The new handle inherits the old volume and the target is recomputed at once
func (m *Mixer) replaceCues() {
	pos := m.position.ListenerPosition()
	for key, e := range m.entries {
		if key.doom != 0 || !m.bank.Exists(e.def.CueName) {
			continue
		}
		vol := 0.0
		if e.handle != nil {
			vol = e.handle.Volume()
		}
		e.dispose()

		h, err := m.acquire(e.def.CueName)
		if err != nil {
			m.markMissing(e.id, e.def.CueName, err)
			delete(m.entries, key)
			continue
		}
		e.handle = h
		e.category = m.bank.Category(h)
		e.target = TargetVolume(e.def, vmath.Distance(pos, vmath.TileCenter(e.def.Position)))
		h.SetVolume(vol)
		if e.category == core.CategoryContinuous {
			h.Play()
		}
	}
	m.posValid = false
}

// invalidate drops the registry, the missing-cue memory and logged condition failures
// Active entries that are not playing are disposed; playing ones wait for the next filter
func (m *Mixer) invalidate() {
	for key, e := range m.entries {
		if key.doom == 0 && !e.playing() {
			e.dispose()
			delete(m.entries, key)
		}
	}
	m.registry = nil
	clear(m.missing)
	if r, ok := m.cond.(conditionResetter); ok {
		r.Reset()
	}
}
