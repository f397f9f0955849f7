// Package store holds the canonical, server-sourced entity lists. One Store
// exists per entity type, constructed at startup and passed to the screens
// that need it; nothing here is a package-level singleton, so tests build
// isolated instances.
package store

import (
	"context"
	"log/slog"
	"sync"
)

// Loader fetches the canonical list from the backend.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Store owns the canonical list for one entity type plus the screen-local
// search term and the entity currently being edited. The list is only ever
// replaced wholesale by a server fetch; nothing splices it locally, so
// server-computed fields (timestamps, joined names) stay authoritative.
type Store[T any] struct {
	name string
	load Loader[T]
	log  *slog.Logger

	mu      sync.RWMutex
	items   []T
	loaded  bool
	editing *T
	search  string
	subs    map[int]func()
	nextSub int
}

// New creates a store for the entity type named name (used in logs). log may
// be nil.
func New[T any](name string, load Loader[T], log *slog.Logger) *Store[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Store[T]{
		name: name,
		load: load,
		log:  log,
		subs: map[int]func(){},
	}
}

// Load fetches the canonical list and replaces the in-memory copy. On
// failure the previous list is left untouched and the error is logged; the
// error is returned for callers that want it but list screens ignore it
// (silent degrade).
func (s *Store[T]) Load(ctx context.Context) error {
	items, err := s.load(ctx)
	if err != nil {
		s.log.Warn("list load failed", "entity", s.name, "error", err)
		return err
	}
	s.replace(items)
	return nil
}

// Mutate runs a write operation (create, update, delete). On success the
// canonical list is reloaded from the server; the mutation response itself is
// never folded into the list. A failed post-mutation reload keeps the stale
// list and logs, since the write itself succeeded.
func (s *Store[T]) Mutate(ctx context.Context, op func(ctx context.Context) error) error {
	if err := op(ctx); err != nil {
		return err
	}
	if err := s.Load(ctx); err != nil {
		s.log.Warn("reload after mutation failed", "entity", s.name, "error", err)
	}
	return nil
}

func (s *Store[T]) replace(items []T) {
	s.mu.Lock()
	s.items = items
	s.loaded = true
	listeners := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Items returns the canonical list. The slice must be treated as read-only.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Loaded reports whether at least one fetch has succeeded.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// SetSearch sets the screen's free-text search term.
func (s *Store[T]) SetSearch(term string) {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()
}

// Search returns the current search term.
func (s *Store[T]) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// SetEditing records the entity currently open in an edit form, or nil.
func (s *Store[T]) SetEditing(e *T) {
	s.mu.Lock()
	s.editing = e
	s.mu.Unlock()
}

// Editing returns the entity currently being edited, or nil.
func (s *Store[T]) Editing() *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editing
}

// Reset clears the search term and editing reference, as a screen does on
// mount. The canonical list is kept.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	s.search = ""
	s.editing = nil
	s.mu.Unlock()
}

// Subscribe registers a change listener called after every list replacement.
// The returned function removes the listener.
func (s *Store[T]) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
