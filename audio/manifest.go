package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest maps cue names to their audio
type Manifest struct {
	Cues map[string]CueSpec `yaml:"cues"`
}

// CueSpec describes one cue: exactly one of File or Synth
type CueSpec struct {
	Category string `yaml:"category"`
	File     string `yaml:"file,omitempty"`  // Relative to the manifest directory
	Synth    string `yaml:"synth,omitempty"` // Built-in generator name
}

// ParseManifest decodes a cue manifest; an empty document is an empty manifest
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse cue manifest: %w", err)
	}
	if m.Cues == nil {
		m.Cues = make(map[string]CueSpec)
	}
	return m, nil
}

// ReadManifest loads a manifest file and resolves file paths against its directory
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cue manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for name, spec := range m.Cues {
		if spec.File != "" && !filepath.IsAbs(spec.File) {
			spec.File = filepath.Join(dir, spec.File)
			m.Cues[name] = spec
		}
	}
	return m, nil
}

// Names returns the cue names in sorted order
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Cues))
	for name := range m.Cues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
