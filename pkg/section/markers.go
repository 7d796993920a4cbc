package section

import (
	"fmt"
	"maps"
	"sync"
)

// Markers is the immutable set of markers derived from one Format.
type Markers struct {
	format  Format
	markers map[Name]Marker
	vars    map[string]any
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[Format]*Markers)
)

// For returns the markers for f, computing them on first use.
// Results are cached per distinct Format value for the life of the process.
func For(f Format) (*Markers, error) {
	cacheMu.RLock()
	if m, ok := cache[f]; ok {
		cacheMu.RUnlock()
		return m, nil
	}
	cacheMu.RUnlock()

	if err := f.Validate(); err != nil {
		return nil, err
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	// Double-check after acquiring write lock
	if m, ok := cache[f]; ok {
		return m, nil
	}

	m := &Markers{
		format:  f,
		markers: make(map[Name]Marker, len(All)),
		vars:    make(map[string]any, len(All)*2),
	}
	for _, name := range All {
		mk := Marker{
			Start:    f.token(Start, name),
			End:      f.token(End, name),
			StartVar: f.variable(Start, name),
			EndVar:   f.variable(End, name),
		}
		m.markers[name] = mk
		m.vars[mk.StartVar] = mk.Start
		m.vars[mk.EndVar] = mk.End
	}
	cache[f] = m
	return m, nil
}

// MustFor is like For but panics on an invalid format.
func MustFor(f Format) *Markers {
	m, err := For(f)
	if err != nil {
		panic(err)
	}
	return m
}

// Format returns the format the markers were derived from.
func (m *Markers) Format() Format {
	return m.format
}

// Marker returns the marker pair of a section.
func (m *Markers) Marker(name Name) (Marker, error) {
	mk, ok := m.markers[name]
	if !ok {
		return Marker{}, fmt.Errorf("%w: %s", ErrUnknownSection, name)
	}
	return mk, nil
}

// Vars returns a copy of the marker variables keyed by variable name.
func (m *Markers) Vars() map[string]any {
	return maps.Clone(m.vars)
}

// Augment returns a new map holding data plus every marker variable.
// Marker variables win over keys of the same name in data.
// data itself is never modified.
func (m *Markers) Augment(data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+len(m.vars))
	maps.Copy(out, data)
	maps.Copy(out, m.vars)
	return out
}

// Extract cuts one section out of rendered content.
func (m *Markers) Extract(content string, name Name) (string, bool) {
	mk, ok := m.markers[name]
	if !ok {
		return "", false
	}
	return Extract(content, mk)
}

// ExtractAll cuts every recognized section out of rendered content.
// Absent sections are left out of the result.
func (m *Markers) ExtractAll(content string) map[Name]string {
	out := make(map[Name]string, len(All))
	for _, name := range All {
		if v, ok := Extract(content, m.markers[name]); ok {
			out[name] = v
		}
	}
	return out
}
