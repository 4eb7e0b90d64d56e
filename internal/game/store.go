// internal/game/store.go
package game

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore is the explicit owner of all live sessions. It maps session
// ids to sessions and user ids to the session they are attached to, so a
// user can hold at most one attachment at a time.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	byUser   map[uuid.UUID]uuid.UUID
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		byUser:   make(map[uuid.UUID]uuid.UUID),
	}
}

func (s *SessionStore) Add(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Game.ID] = sess
}

func (s *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// GetByUser returns the session the user is currently attached to.
func (s *SessionStore) GetByUser(userID uuid.UUID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byUser[userID]
	if !ok {
		return nil, false
	}
	sess, ok := s.sessions[id]
	return sess, ok
}

// Bind records the user's attachment. It fails when the user is already
// attached to a different session.
func (s *SessionStore) Bind(userID, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.byUser[userID]; ok && cur != sessionID {
		return invalidActionf("user %s already attached to session %s", userID, cur)
	}
	s.byUser[userID] = sessionID
	return nil
}

// Unbind drops the user's attachment, if any.
func (s *SessionStore) Unbind(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}

// Delete removes and closes a session and clears every attachment to it.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	delete(s.sessions, id)
	for userID, sid := range s.byUser {
		if sid == id {
			delete(s.byUser, userID)
		}
	}
	sess.Close()
}

// Len returns the live session count.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
