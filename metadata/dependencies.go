package metadata

import (
	"github.com/birkland/modelsrepo/dtmi"
)

// Dependencies harvests the identifiers of models the document depends on, in
// order of first appearance.  Identifiers defined within the document itself are
// not dependencies, and malformed identifiers are dropped.
func (d *Document) Dependencies() []string {
	h := harvester{
		seen:    make(map[string]bool),
		defined: d.definitions(),
	}

	for _, e := range d.Entries {
		h.model(e.body)
	}

	return h.found
}

type harvester struct {
	found   []string
	seen    map[string]bool
	defined map[string]bool
}

func (h *harvester) add(v interface{}) {
	id, ok := v.(string)
	if !ok || h.seen[id] || h.defined[id] || !dtmi.IsValid(id) {
		return
	}
	h.seen[id] = true
	h.found = append(h.found, id)
}

// Interfaces (top level or inline)
func (h *harvester) model(m map[string]interface{}) {
	h.extends(m["extends"])

	contents, _ := m["contents"].([]interface{})
	for _, c := range contents {
		content, ok := c.(map[string]interface{})
		if !ok {
			continue
		}
		h.schema(content["schema"])
		h.add(content["target"])
	}

	schemas, _ := m["schemas"].([]interface{})
	for _, s := range schemas {
		h.schema(s)
	}
}

func (h *harvester) extends(v interface{}) {
	switch x := v.(type) {
	case string:
		h.add(x)
	case map[string]interface{}:
		h.model(x)
	case []interface{}:
		for _, e := range x {
			h.extends(e)
		}
	}
}

// Schemas are either references, inline interfaces (components), or inline
// complex schemas which may reference other schemas.
func (h *harvester) schema(v interface{}) {
	switch x := v.(type) {
	case string:
		h.add(x)
	case map[string]interface{}:
		if isInterface(x) {
			h.model(x)
			return
		}

		h.schema(x["elementSchema"])

		fields, _ := x["fields"].([]interface{})
		for _, f := range fields {
			if field, ok := f.(map[string]interface{}); ok {
				h.schema(field["schema"])
			}
		}

		for _, member := range []string{"mapKey", "mapValue"} {
			if m, ok := x[member].(map[string]interface{}); ok {
				h.schema(m["schema"])
			}
		}
	}
}

func isInterface(m map[string]interface{}) bool {
	switch t := m["@type"].(type) {
	case string:
		return t == "Interface"
	case []interface{}:
		for _, e := range t {
			if e == "Interface" {
				return true
			}
		}
	}
	return false
}
