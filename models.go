package modelsrepo

import (
	"bytes"
	"encoding/json"

	"github.com/birkland/modelsrepo/dtmi"
)

// Models is an ordered mapping of identifiers to raw model content.  Iteration
// order is insertion order, which for a resolution is discovery order.
type Models struct {
	order   []dtmi.Dtmi
	content map[dtmi.Dtmi]string
}

// NewModels creates an empty mapping
func NewModels() *Models {
	return &Models{content: make(map[dtmi.Dtmi]string)}
}

// Add inserts content for an identifier not yet present.  It reports
// whether the content was added; existing entries are never replaced.
func (m *Models) Add(id dtmi.Dtmi, content string) bool {
	if _, ok := m.content[id]; ok {
		return false
	}
	m.order = append(m.order, id)
	m.content[id] = content
	return true
}

// Get returns the content of the given identifier
func (m *Models) Get(id dtmi.Dtmi) (string, bool) {
	c, ok := m.content[id]
	return c, ok
}

// Has reports whether the mapping holds the given identifier
func (m *Models) Has(id dtmi.Dtmi) bool {
	_, ok := m.content[id]
	return ok
}

// Len is the number of identifiers in the mapping
func (m *Models) Len() int {
	return len(m.order)
}

// IDs returns the identifiers in insertion order
func (m *Models) IDs() []dtmi.Dtmi {
	return append([]dtmi.Dtmi(nil), m.order...)
}

// Each invokes f for every entry in insertion order, stopping at the first error
func (m *Models) Each(f func(id dtmi.Dtmi, content string) error) error {
	for _, id := range m.order {
		if err := f(id, m.content[id]); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the mapping as a JSON object whose members keep insertion order.
// Content that is itself valid JSON is embedded as is, anything else as a string.
func (m *Models) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id.String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		content := []byte(m.content[id])
		if json.Valid(content) {
			if err := json.Compact(&buf, content); err != nil {
				return nil, err
			}
			continue
		}

		value, err := json.Marshal(m.content[id])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
