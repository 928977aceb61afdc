package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/positional-audio/constant"
	"github.com/lixenwraith/positional-audio/core"
)

// Loader reads the source table from a file on every call
// It satisfies mixer.SourceLoader
type Loader struct {
	path   string
	logger *log.Logger
}

// NewLoader creates a loader for path; logger may be nil to use log.Default
func NewLoader(path string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{path: path, logger: logger}
}

// Path returns the watched file path
func (l *Loader) Path() string {
	return l.path
}

// LoadSources reads and decodes the table
// A missing file is an empty table, not an error
func (l *Loader) LoadSources() (map[string]core.SourceDefinition, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Printf("Source table '%s' does not exist, no sources loaded", l.path)
			return map[string]core.SourceDefinition{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceFile, err)
	}

	defs, err := Parse(data, l.logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	l.logger.Printf("Loaded %d audio source(s) from %s", len(defs), l.path)
	return defs, nil
}

// Parse decodes a YAML or JSON source table and applies defaults
// Entries missing a location or cue are logged and skipped
func Parse(data []byte, logger *log.Logger) (map[string]core.SourceDefinition, error) {
	if logger == nil {
		logger = log.Default()
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrSourceFormat, err)
	}

	ids := make([]string, 0, len(file.Sources))
	for id := range file.Sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	defs := make(map[string]core.SourceDefinition, len(ids))
	for _, id := range ids {
		def, err := file.Sources[id].definition()
		if err != nil {
			logger.Printf("Skipping audio source '%s': %v", id, err)
			continue
		}
		defs[id] = def
	}
	return defs, nil
}

// definition converts a decoded entry, filling omitted fields
func (s Source) definition() (core.SourceDefinition, error) {
	if s.Location == "" {
		return core.SourceDefinition{}, fmt.Errorf("%w: location is required", ErrInvalidSource)
	}
	if s.Cue == "" {
		return core.SourceDefinition{}, fmt.Errorf("%w: cue is required", ErrInvalidSource)
	}

	def := core.SourceDefinition{
		LocationName:  s.Location,
		Condition:     s.Condition,
		CueName:       s.Cue,
		Radius:        core.Radii{Floor: constant.DefaultFloorRadius, Shelf: constant.DefaultShelfRadius, Maximum: constant.DefaultMaximumRadius},
		MaxIntensity:  constant.DefaultMaxIntensity,
		MinDuckVolume: constant.DefaultMinDuckVolume,
		Position:      core.Point{X: constant.DefaultTileCoord, Y: constant.DefaultTileCoord},
		RepeatDelay:   core.DelayRange{Min: constant.DefaultRepeatDelayMin, Max: constant.DefaultRepeatDelayMax},
	}

	// Radii are never negative once loaded
	if r := s.Radius; r != nil {
		if r.Floor != nil {
			def.Radius.Floor = max(0, *r.Floor)
		}
		if r.Shelf != nil {
			def.Radius.Shelf = max(0, *r.Shelf)
		}
		if r.Maximum != nil {
			def.Radius.Maximum = max(0, *r.Maximum)
		}
	}
	if s.MaxIntensity != nil {
		def.MaxIntensity = *s.MaxIntensity
	}
	if s.MinDuckVolume != nil {
		def.MinDuckVolume = *s.MinDuckVolume
	}
	if s.Position != nil {
		def.Position = core.Point{X: s.Position.X, Y: s.Position.Y}
	}
	if d := s.RepeatDelay; d != nil && (d.Min > 0 || d.Max > 0) {
		def.RepeatDelay = core.DelayRange{Min: d.Min, Max: max(d.Min, d.Max)}
	}
	return def, nil
}
