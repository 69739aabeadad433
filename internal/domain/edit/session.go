// Package edit tracks which single entity of a kind is in edit mode and
// holds its uncommitted draft.
package edit

import (
	"context"
	"log/slog"
	"sync"
)

// State is the lifecycle state of a session.
type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

// Binding adapts a session to one entity kind.
type Binding[E, D any] struct {
	// Kind names the entity kind in logs.
	Kind string
	// ID returns the entity identifier.
	ID func(E) string
	// Seed builds a draft from the entity's committed fields.
	Seed func(E) D
	// Commit persists draft for entity.
	Commit func(ctx context.Context, entity E, draft D) error
	// Accepted reports whether a Commit error still means the server took
	// the change. Nil treats every error as a rejection.
	Accepted func(err error) bool
}

// Session is an edit session for entities of type E with drafts of type D.
// At most one entity is being edited at a time; Begin on another entity
// discards the current draft without persisting it.
type Session[E, D any] struct {
	binding Binding[E, D]
	logger  *slog.Logger

	mu    sync.Mutex
	state State
	id    string
	draft D
	// gen counts Begin calls so a slow commit cannot close a newer session.
	gen uint64
}

// NewSession creates an idle session.
func NewSession[E, D any](binding Binding[E, D], logger *slog.Logger) *Session[E, D] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session[E, D]{binding: binding, logger: logger}
}

// State returns the current state.
func (s *Session[E, D]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the id and draft being edited.
func (s *Session[E, D]) Current() (string, D, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		var zero D
		return "", zero, false
	}
	return s.id, s.draft, true
}

// IsEditing reports whether the entity with id is in edit mode.
func (s *Session[E, D]) IsEditing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Editing && s.id == id
}

// Begin opens a session for entity, seeding the draft from its committed
// fields. Any other open draft is dropped.
func (s *Session[E, D]) Begin(entity E) {
	id := s.binding.ID(entity)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Editing && s.id != id {
		s.logger.Debug("discarding draft", "kind", s.binding.Kind, "id", s.id)
	}
	s.gen++
	s.state = Editing
	s.id = id
	s.draft = s.binding.Seed(entity)
}

// UpdateDraft applies fn to the draft. It does nothing while idle.
func (s *Session[E, D]) UpdateDraft(fn func(draft *D)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		return
	}
	fn(&s.draft)
}

// Cancel closes the session and discards the draft.
func (s *Session[E, D]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// CancelIf closes the session only if it is editing id.
func (s *Session[E, D]) CancelIf(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing || s.id != id {
		return false
	}
	s.reset()
	return true
}

func (s *Session[E, D]) reset() {
	var zero D
	s.state = Idle
	s.id = ""
	s.draft = zero
}

// Commit sends the draft for entity. The session goes idle only when the
// server accepted the change; on failure it stays open for a retry or a
// cancel.
func (s *Session[E, D]) Commit(ctx context.Context, entity E) error {
	id := s.binding.ID(entity)

	s.mu.Lock()
	if s.state != Editing || s.id != id {
		s.mu.Unlock()
		return ErrNotEditing
	}
	draft := s.draft
	gen := s.gen
	s.mu.Unlock()

	err := s.binding.Commit(ctx, entity, draft)
	if err != nil && (s.binding.Accepted == nil || !s.binding.Accepted(err)) {
		s.logger.Warn("commit failed", "kind", s.binding.Kind, "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	if s.gen == gen && s.state == Editing && s.id == id {
		s.reset()
	}
	s.mu.Unlock()
	return err
}
