package session

import (
	"errors"
	"sync"
	"time"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

var ErrNotFound = errors.New("session not found")

// Store keeps sessions in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	newID    func() string
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		newID:    utils.GenerateID,
		now:      time.Now,
	}
}

// Create registers an empty session with its own copy of codes.
func (s *Store) Create(codes models.SupplierCodes, categoryEnforcement bool) *Session {
	now := s.now().UTC()
	sess := &Session{
		ID:                  s.newID(),
		SupplierCodes:       codes.Clone(),
		CategoryEnforcement: categoryEnforcement,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.clone()
}

// Get returns a copy of the session.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.clone(), nil
}

// Update applies fn to a copy of the session and stores the copy when fn succeeds.
// The session is replaced as a whole; readers never see a partial change.
func (s *Store) Update(id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	next := current.clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.UpdatedAt = s.now().UTC()
	s.sessions[id] = next

	return next.clone(), nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Sweep removes sessions not updated within ttl and returns them.
func (s *Store) Sweep(ttl time.Duration) []*Session {
	cutoff := s.now().UTC().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []*Session
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed = append(removed, sess)
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
