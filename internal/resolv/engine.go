package resolv

import (
	"context"
	"fmt"

	"github.com/birkland/modelsrepo"
	"github.com/birkland/modelsrepo/dtmi"
	"github.com/birkland/modelsrepo/metadata"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Engine resolves identifiers against a single repository.  An Engine holds no
// per-resolution state, so one Engine may serve concurrent resolutions.
type Engine struct {
	fetcher modelsrepo.Fetcher
	log     logrus.FieldLogger
}

// NewEngine creates an engine fetching content from f.  A nil logger means
// the logrus standard logger.
func NewEngine(f modelsrepo.Fetcher, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{fetcher: f, log: log}
}

// Resolve fetches the given identifiers and, depending on mode, every model they
// transitively depend on.  Traversal is breadth first, and fetches are issued
// sequentially, so results are ordered: requested identifiers first, in order,
// followed by dependencies in discovery order.
//
// Resolution is all or nothing.  Any identifier that cannot be fetched or fails
// validation aborts the whole resolution, and no results are returned.
func (e *Engine) Resolve(ctx context.Context, ids []dtmi.Dtmi, mode modelsrepo.DependencyResolution) (*modelsrepo.Models, error) {
	state := NewState(ids)

	for {
		if err := ctx.Err(); err != nil {
			return nil, cancelled(err)
		}

		id, ok := state.Next()
		if !ok {
			break
		}

		log := e.log.WithField("dtmi", id.String())

		if !state.MarkProcessed(id) {
			log.Debugf("Already processed DTMI %q. Skipping.", id)
			continue
		}
		log.Debugf("Processing DTMI %q.", id)

		if content, ok := state.TakeDeferred(id); ok {
			log.Debugf("Using content of %q retrieved with an earlier model.", id)
			state.Results().Add(id, content)
			continue
		}

		if mode == modelsrepo.TryFromExpanded {
			done, err := e.resolveExpanded(ctx, state, id, log)
			if err != nil {
				return nil, err
			}
			if done {
				continue
			}
		}

		doc, content, err := e.fetch(ctx, id, false, log)
		if err != nil {
			return nil, err
		}

		state.Results().Add(id, content)

		if mode == modelsrepo.Disabled {
			continue
		}

		addSiblings(state, doc, id)

		deps := parseAll(doc.Dependencies())
		if added := state.Enqueue(deps...); len(added) > 0 {
			log.Debugf("Discovered dependencies %q.", added)
		}
	}

	return state.Results(), nil
}

// resolveExpanded attempts to resolve an identifier from its expanded bundle.
// It reports false, without error, if there is no such bundle.
func (e *Engine) resolveExpanded(ctx context.Context, state *State, id dtmi.Dtmi, log logrus.FieldLogger) (bool, error) {
	doc, _, err := e.fetch(ctx, id, true, log)
	if err != nil {
		if modelsrepo.IsNotFound(err) {
			log.Debugf("No expanded model for %q, falling back to %s", id, id.Path(false))
			return false, nil
		}
		return false, err
	}

	for _, entry := range doc.Entries {
		if entry.ID == id.String() {
			state.Results().Add(id, string(entry.Raw))
			break
		}
	}

	// The bundle is the complete closure, so nothing within it gets fetched on its own.
	addSiblings(state, doc, id)
	return true, nil
}

// addSiblings records the other models of a multi-model document under their own
// identifiers.  Entries with malformed or already processed identifiers are skipped.
// Siblings that were themselves requested keep their place in the input order: their
// content is deferred until they are dequeued.
func addSiblings(state *State, doc *metadata.Document, primary dtmi.Dtmi) {
	for _, entry := range doc.Entries {
		sibling, err := dtmi.Parse(entry.ID)
		if err != nil || sibling == primary || state.Processed(sibling) {
			continue
		}
		if state.Requested(sibling) {
			state.Defer(sibling, string(entry.Raw))
			continue
		}
		state.MarkProcessed(sibling)
		state.Results().Add(sibling, string(entry.Raw))
	}
}

// fetch retrieves and validates the standard or expanded model document of an identifier
func (e *Engine) fetch(ctx context.Context, id dtmi.Dtmi, expanded bool, log logrus.FieldLogger) (*metadata.Document, string, error) {
	path := id.Path(expanded)
	log.WithField("path", path).Debugf("Attempting to retrieve model content from %q.", path)

	content, err := e.fetcher.Fetch(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", cancelled(ctxErr)
		}
		if modelsrepo.IsNotFound(err) {
			log.WithField("path", path).Debugf("Model file %q not found or not accessible in target repository.", path)
			return nil, "", &modelsrepo.ResolutionError{Dtmi: id.String(), Cause: err}
		}
		return nil, "", errors.Wrapf(err, "error fetching %s", id)
	}

	doc, err := metadata.Parse(content)
	if err != nil {
		return nil, "", &modelsrepo.ResolutionError{
			Dtmi:  id.String(),
			Cause: errors.Wrapf(err, "could not parse %s", path),
		}
	}

	if err := verify(id, doc); err != nil {
		return nil, "", err
	}

	return doc, content, nil
}

// verify checks that a document declares the identifier it was fetched for.
// Identifiers must match exactly; a difference only in case is reported as such.
func verify(id dtmi.Dtmi, doc *metadata.Document) error {
	if doc.Declares(id.String()) {
		return nil
	}

	for _, declared := range doc.IDs() {
		if id.EqualFold(declared) {
			return &modelsrepo.IncorrectCasingError{Expected: id.String(), Actual: declared}
		}
	}

	return &modelsrepo.ResolutionError{
		Dtmi:  id.String(),
		Cause: fmt.Errorf("retrieved model declares %q", doc.IDs()),
	}
}

func parseAll(ids []string) []dtmi.Dtmi {
	var parsed []dtmi.Dtmi
	for _, s := range ids {
		if id, err := dtmi.Parse(s); err == nil {
			parsed = append(parsed, id)
		}
	}
	return parsed
}

func cancelled(cause error) error {
	return errors.Wrap(modelsrepo.ErrCancelled, cause.Error())
}
