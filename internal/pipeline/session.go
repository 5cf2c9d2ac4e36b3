package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/charitytools/bidcraft/internal/model"
)

// SessionStore keeps working sessions in memory. Nothing survives process
// exit; cross-session persistence is deliberately unsupported.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*model.Session)}
}

// Create registers a new session with a fresh id and timestamps set.
func (s *SessionStore) Create(sess *model.Session) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	sess.ID = uuid.NewString()
	sess.CreatedAt = now
	sess.UpdatedAt = now
	if sess.Answers == nil {
		sess.Answers = model.Answers{}
	}
	if sess.NotSure == nil {
		sess.NotSure = model.NotSure{}
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns a snapshot of the session with the given id.
func (s *SessionStore) Get(id string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, eris.Errorf("session %s not found", id)
	}
	return snapshot(sess), nil
}

// Update applies fn to the session under the store lock and bumps the
// updated timestamp. fn returning an error leaves the session unchanged.
func (s *SessionStore) Update(id string, fn func(*model.Session) error) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, eris.Errorf("session %s not found", id)
	}

	work := snapshot(sess)
	if err := fn(&work); err != nil {
		return model.Session{}, err
	}
	work.UpdatedAt = time.Now().UTC()
	*sess = work
	return snapshot(sess), nil
}

// snapshot deep-copies the mutable maps so callers cannot race the store.
func snapshot(sess *model.Session) model.Session {
	out := *sess
	out.Answers = sess.Answers.Clone()
	out.NotSure = sess.NotSure.Clone()
	return out
}
