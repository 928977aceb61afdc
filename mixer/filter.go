package mixer

// Filter reconciles the Active set with the registry for location
// An empty location retires every Active entry
func (m *Mixer) Filter(location string) {
	m.statFilters.Add(1)
	defer m.invalidatePosition()

	if location == "" {
		for key, e := range m.entries {
			if key.doom == 0 {
				m.retire(e)
			}
		}
		return
	}

	reg := m.sources()
	for _, id := range reg.IDs() {
		def, _ := reg.Get(id)
		cur := m.entries[entryKey{id: id}]

		if def.LocationName != location || !m.cond.Evaluate(def.Condition, location) {
			if cur != nil {
				m.retire(cur)
			}
			continue
		}

		if !m.resolve(id, def.CueName) {
			continue
		}

		var err error
		switch {
		case cur != nil && cur.def.CueName == def.CueName && cur.handle != nil:
			m.preserve(cur, def)
		case cur != nil:
			_, err = m.rebind(cur, def)
		default:
			_, err = m.activate(id, def)
		}
		if err != nil {
			m.markMissing(id, def.CueName, err)
		}
	}

	// Sources dropped from the table since their entry was built
	for key, e := range m.entries {
		if key.doom != 0 {
			continue
		}
		if _, ok := reg.Get(e.id); !ok {
			m.retire(e)
		}
	}
}
