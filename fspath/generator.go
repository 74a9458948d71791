package fspath

import (
	"fmt"
	"strings"
)

// File extensions of model files within a repository
const (
	ModelExt    = ".json"
	ExpandedExt = ".expanded.json"
)

// Generator generates a relative, solidus delimited file path
// from a given model identifier.  The resulting paths are relative to
// the root of a models repository, be it a directory or a base URI.
type Generator interface {
	Generate(string) string
}

// GeneratorFunc is a function that can be used to satisfy the Generator interface
type GeneratorFunc func(string) string

// Generate a path from a given id string
func (g GeneratorFunc) Generate(id string) string {
	return g(id)
}

// Standard maps an identifier to the path of its model file, e.g.
// dtmi:com:example:Thermostat;1 to dtmi/com/example/thermostat-1.json
var Standard Generator = GeneratorFunc(func(id string) string {
	return base(id) + ModelExt
})

// Expanded maps an identifier to the path of its expanded model file, e.g.
// dtmi:com:example:Thermostat;1 to dtmi/com/example/thermostat-1.expanded.json
var Expanded Generator = GeneratorFunc(func(id string) string {
	return base(id) + ExpandedExt
})

// Generators do not validate; garbage in, garbage out.
func base(id string) string {
	return strings.NewReplacer(":", "/", ";", "-").Replace(strings.ToLower(id))
}

// Identifier is the inverse of the path generators.  Given a repository relative
// path of a model file (standard or expanded), it returns the lowercased identifier
// the path was generated from, and whether the path names an expanded file.
func Identifier(path string) (id string, expanded bool, err error) {
	p := strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "/")

	switch {
	case strings.HasSuffix(p, ExpandedExt):
		p, expanded = strings.TrimSuffix(p, ExpandedExt), true
	case strings.HasSuffix(p, ModelExt):
		p = strings.TrimSuffix(p, ModelExt)
	default:
		return "", false, fmt.Errorf("%s is not a model file", path)
	}

	dash := strings.LastIndexByte(p, '-')
	if dash < 0 || !strings.HasPrefix(p, "dtmi/") {
		return "", false, fmt.Errorf("%s does not follow the model path convention", path)
	}

	return strings.ReplaceAll(p[:dash], "/", ":") + ";" + p[dash+1:], expanded, nil
}
