package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// IDKey is the JSON-LD member holding a model's identifier
const IDKey = "@id"

// Document is a parsed model document
type Document struct {
	// Entries holds one entry per model in the document
	Entries []Entry

	// Array is true if the document root is an array of models
	Array bool
}

// Entry is an individual model within a document
type Entry struct {
	// ID is the declared identifier, or empty if there is none
	ID string

	// Raw is the JSON text of the model
	Raw json.RawMessage

	body map[string]interface{}
}

// Parse parses raw content into a model document
func Parse(content string) (*Document, error) {
	raw := bytes.TrimSpace([]byte(content))
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty model document")
	}

	if raw[0] != '[' {
		entry, err := parseEntry(raw)
		if err != nil {
			return nil, err
		}
		return &Document{Entries: []Entry{entry}}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrap(err, "could not decode json model array")
	}

	doc := &Document{Array: true}
	for i, item := range items {
		entry, err := parseEntry(item)
		if err != nil {
			return nil, errors.Wrapf(err, "bad model at index %d", i)
		}
		doc.Entries = append(doc.Entries, entry)
	}

	return doc, nil
}

func parseEntry(raw json.RawMessage) (Entry, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Entry{}, errors.Wrap(err, "could not decode json model")
	}
	if body == nil {
		return Entry{}, fmt.Errorf("model is not a json object")
	}

	id, _ := body[IDKey].(string)
	return Entry{ID: id, Raw: raw, body: body}, nil
}

// IDs returns the identifiers declared by the document's models, in document order
func (d *Document) IDs() []string {
	var ids []string
	for _, e := range d.Entries {
		if e.ID != "" {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Declares reports whether any model in the document declares the given identifier
func (d *Document) Declares(id string) bool {
	for _, e := range d.Entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// definitions collects every identifier defined anywhere within the document,
// including inline interfaces and schemas.
func (d *Document) definitions() map[string]bool {
	defs := make(map[string]bool)
	for _, e := range d.Entries {
		collectIDs(e.body, defs)
	}
	return defs
}

func collectIDs(v interface{}, into map[string]bool) {
	switch x := v.(type) {
	case map[string]interface{}:
		if id, ok := x[IDKey].(string); ok {
			into[id] = true
		}
		for _, member := range x {
			collectIDs(member, into)
		}
	case []interface{}:
		for _, member := range x {
			collectIDs(member, into)
		}
	}
}
