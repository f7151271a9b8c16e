package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"messenger-dialogue-gateway/internal/conversation/repository"
	"messenger-dialogue-gateway/internal/model"
)

// Store is a volatile session store keeping sessions in a process-local map.
// Sessions live for the life of the process; a secondary index keeps
// resolve-by-user constant time. Returned sessions are snapshots so only the
// committing turn mutates stored state.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	byUser   map[string]string
}

var _ repository.SessionStore = (*Store)(nil)

// New constructs an empty in-memory session store.
func New() *Store {
	return &Store{
		sessions: make(map[string]*model.Session),
		byUser:   make(map[string]string),
	}
}

// ResolveOrCreate returns the existing session id for the user, or creates a
// new session with empty context.
func (s *Store) ResolveOrCreate(externalUserID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byUser[externalUserID]; ok {
		return id
	}

	sess := &model.Session{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Context:        model.Context{},
		CreatedAt:      time.Now(),
	}
	s.sessions[sess.ID] = sess
	s.byUser[externalUserID] = sess.ID
	return sess.ID
}

// Get returns a snapshot of the session, if it exists.
func (s *Store) Get(sessionID string) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.Session{}, false
	}

	snapshot := *sess
	snapshot.Context = sess.Context.Clone()
	return snapshot, true
}

// SetContext replaces the session's context wholesale. A vanished session is
// a silent no-op so a completing turn never crashes the router.
func (s *Store) SetContext(sessionID string, newContext model.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	sess.Context = newContext.Clone()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
