package modelsrepo

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound signals that the repository holds no content at a given path
var ErrNotFound = errors.New("model content not found")

// ErrCancelled signals that a resolution was abandoned at the caller's request
var ErrCancelled = errors.New("resolution cancelled")

// IsNotFound reports whether err signals missing repository content
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ResolutionError reports an identifier that could not be resolved, either because
// the repository holds no model for it, or because the retrieved model declares a
// different identifier.
type ResolutionError struct {
	Dtmi  string
	Cause error
}

func (e *ResolutionError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("unable to resolve %q", e.Dtmi)
	}
	return fmt.Sprintf("unable to resolve %q: %s", e.Dtmi, e.Cause)
}

// Unwrap exposes the underlying failure to errors.Is and errors.As
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// IncorrectCasingError reports a retrieved model whose declared identifier differs
// from the requested one only in letter case.
type IncorrectCasingError struct {
	Expected string
	Actual   string
}

func (e *IncorrectCasingError) Error() string {
	return fmt.Sprintf("retrieved model has incorrect DTMI casing, expected %q, parsed %q", e.Expected, e.Actual)
}

// TransportError reports a failure of the repository backend, e.g. a permission
// problem on a local repository or an unexpected HTTP status.  StatusCode is zero
// when no HTTP response was received.
type TransportError struct {
	Path       string
	StatusCode int
	Cause      error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("could not retrieve %s: unexpected status %d", e.Path, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("could not retrieve %s: %s", e.Path, e.Cause)
	default:
		return fmt.Sprintf("could not retrieve %s", e.Path)
	}
}

// Unwrap exposes the underlying failure to errors.Is and errors.As
func (e *TransportError) Unwrap() error {
	return e.Cause
}
