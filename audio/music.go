package audio

// Music is the background music channel the mixer ducks
// Volume is the duck level, 0.0-1.0; the handle plays at duck level times the configured music volume
type Music struct {
	bank   *Bank
	handle *Handle
	level  float64
}

// NewMusic creates a silent music channel on the bank
func NewMusic(b *Bank) *Music {
	return &Music{bank: b, level: 1}
}

// Play loops cue as background music, replacing the current track
func (m *Music) Play(name string) error {
	h, err := m.bank.acquire(name, true)
	if err != nil {
		return err
	}
	m.Stop()
	m.handle = h
	m.apply()
	h.Play()
	return nil
}

// Stop ends the current track; the duck level is kept
func (m *Music) Stop() {
	if m.handle == nil {
		return
	}
	m.handle.Dispose()
	m.handle = nil
}

// Track returns the playing cue name, empty when silent
func (m *Music) Track() string {
	if m.handle == nil {
		return ""
	}
	return m.handle.Cue()
}

// Active reports whether a track is playing
func (m *Music) Active() bool {
	return m.handle != nil && m.handle.IsPlaying()
}

// Volume returns the duck level
func (m *Music) Volume() float64 {
	return m.level
}

// SetVolume sets the duck level, clamped to 0.0-1.0
func (m *Music) SetVolume(v float64) {
	m.level = max(0, min(1, v))
	m.apply()
}

func (m *Music) apply() {
	if m.handle != nil {
		m.handle.SetVolume(m.level * m.bank.config.MusicVolume)
	}
}
