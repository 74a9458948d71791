// Package resolv implements breadth-first resolution of model identifiers and their
// dependencies against a modelsrepo.Fetcher.
package resolv

import (
	"github.com/birkland/modelsrepo"
	"github.com/birkland/modelsrepo/dtmi"
)

// State tracks a single resolution: the frontier of identifiers awaiting a fetch,
// the identifiers already processed, and the results in discovery order.  A State
// is owned by exactly one resolution and is not safe for concurrent use.
type State struct {
	frontier  []dtmi.Dtmi
	processed map[dtmi.Dtmi]bool
	requested map[dtmi.Dtmi]bool
	deferred  map[dtmi.Dtmi]string
	results   *modelsrepo.Models
}

// NewState establishes a new resolution state, with the given identifiers
// enqueued in order
func NewState(ids []dtmi.Dtmi) *State {
	requested := make(map[dtmi.Dtmi]bool, len(ids))
	for _, id := range ids {
		requested[id] = true
	}

	return &State{
		frontier:  append([]dtmi.Dtmi(nil), ids...),
		processed: make(map[dtmi.Dtmi]bool),
		requested: requested,
		deferred:  make(map[dtmi.Dtmi]string),
		results:   modelsrepo.NewModels(),
	}
}

// Next dequeues the oldest identifier on the frontier
func (s *State) Next() (dtmi.Dtmi, bool) {
	if len(s.frontier) == 0 {
		return dtmi.Dtmi{}, false
	}
	id := s.frontier[0]
	s.frontier = s.frontier[1:]
	return id, true
}

// Enqueue appends the given identifiers to the frontier, skipping any that
// have already been processed.  It returns the identifiers actually enqueued.
func (s *State) Enqueue(ids ...dtmi.Dtmi) []dtmi.Dtmi {
	var added []dtmi.Dtmi
	for _, id := range ids {
		if s.processed[id] {
			continue
		}
		s.frontier = append(s.frontier, id)
		added = append(added, id)
	}
	return added
}

// MarkProcessed records an identifier as processed.  It reports false if
// the identifier had already been processed.
func (s *State) MarkProcessed(id dtmi.Dtmi) bool {
	if s.processed[id] {
		return false
	}
	s.processed[id] = true
	return true
}

// Processed reports whether the given identifier has been processed
func (s *State) Processed(id dtmi.Dtmi) bool {
	return s.processed[id]
}

// Pending is the number of identifiers on the frontier
func (s *State) Pending() int {
	return len(s.frontier)
}

// Results returns the results gathered so far
func (s *State) Results() *modelsrepo.Models {
	return s.results
}

// Requested reports whether an identifier was among those the state was created with
func (s *State) Requested(id dtmi.Dtmi) bool {
	return s.requested[id]
}

// Defer holds content retrieved ahead of time for an identifier still on the
// frontier, so it is recorded in order when dequeued rather than fetched again.
// Content deferred first wins.
func (s *State) Defer(id dtmi.Dtmi, content string) {
	if _, ok := s.deferred[id]; !ok {
		s.deferred[id] = content
	}
}

// TakeDeferred removes and returns content deferred for an identifier
func (s *State) TakeDeferred(id dtmi.Dtmi) (string, bool) {
	content, ok := s.deferred[id]
	if ok {
		delete(s.deferred, id)
	}
	return content, ok
}
