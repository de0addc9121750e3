// Package session keeps the in-memory chat session collection for the
// lifetime of the process. Sessions are deliberately not persisted; a
// restart starts from an empty store.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tutorchat/internal/domain"
)

// ErrNotFound is returned when a session id does not resolve.
var ErrNotFound = errors.New("session: not found")

// Store owns every chat session plus the current-session pointer. Sessions
// are stored once, keyed by id, and "current" is a key into that map, so the
// current-session view and the collection cannot diverge.
type Store struct {
	mu        sync.RWMutex
	order     []string // session ids, newest first
	sessions  map[string]domain.ChatSession
	currentID string
}

// NewStore creates an empty Store with no current session.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]domain.ChatSession),
	}
}

// Create allocates a new empty session for the subject, prepends it to the
// session list and makes it current.
func (s *Store) Create(subject domain.Subject) domain.ChatSession {
	sess := domain.ChatSession{
		ID:        uuid.NewString(),
		Title:     subject.Name + " Chat",
		Subject:   subject.ID,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	s.order = append([]string{sess.ID}, s.order...)
	s.currentID = sess.ID
	return sess
}

// Select makes the session with the given id current.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session: select %q: %w", id, ErrNotFound)
	}
	s.currentID = id
	return nil
}

// Current returns the current session, or false when none is selected.
func (s *Store) Current() (domain.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentID == "" {
		return domain.ChatSession{}, false
	}
	sess, ok := s.sessions[s.currentID]
	return sess, ok
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (domain.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// List returns all sessions, newest first.
func (s *Store) List() []domain.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChatSession, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id])
	}
	return out
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Delete removes the session with the given id. Deleting the current
// session leaves no current session; callers re-select explicitly. Deleting
// an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return
	}
	delete(s.sessions, id)
	for i, sid := range s.order {
		if sid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.currentID == id {
		s.currentID = ""
	}
}

// Append replaces the stored session with a copy holding msg appended and
// returns the new value. The stored session is never mutated in place.
func (s *Store) Append(sessionID string, msg domain.Message) (domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ChatSession{}, fmt.Errorf("session: append to %q: %w", sessionID, ErrNotFound)
	}
	updated := sess.WithMessage(msg)
	s.sessions[sessionID] = updated
	return updated, nil
}
