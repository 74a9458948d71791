package modelsrepo

import (
	"context"
	"fmt"
	"strings"
)

// DependencyResolution names a strategy for discovering the models a requested
// model depends on.
type DependencyResolution int

// Dependency resolution modes.  The zero value, Enabled, is the default.
const (
	Enabled         DependencyResolution = iota // Resolve requested models and their transitive dependencies
	Disabled                                    // Resolve the requested models only
	TryFromExpanded                             // Prefer expanded bundles, fall back to Enabled per model
)

var resolutionNames = map[DependencyResolution]string{
	Enabled:         "enabled",
	Disabled:        "disabled",
	TryFromExpanded: "tryFromExpanded",
}

func (r DependencyResolution) String() string {
	if name, ok := resolutionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("DependencyResolution(%d)", int(r))
}

// ParseDependencyResolution parses the (case insensitive) name of a dependency
// resolution mode.
func ParseDependencyResolution(name string) (DependencyResolution, error) {
	for r, n := range resolutionNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return r, nil
		}
	}
	return Enabled, fmt.Errorf("unknown dependency resolution mode %q", name)
}

// Fetcher retrieves raw model content from a models repository, given a
// repository relative, solidus delimited path.
//
// Implementations report missing content with an error whose cause chain
// contains ErrNotFound, and any other failure as a *TransportError.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// FetcherFunc is a function that can be used to satisfy the Fetcher interface
type FetcherFunc func(ctx context.Context, path string) (string, error)

// Fetch content at the given path
func (f FetcherFunc) Fetch(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// ModelResolver resolves a single identifier to raw model content.  This is the
// shape of callback a DTDL model parser invokes whenever it encounters a reference
// it must resolve itself.
type ModelResolver func(ctx context.Context, id string) (string, error)
