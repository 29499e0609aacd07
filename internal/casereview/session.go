package casereview

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ReviewSession is the per-user working state: the clinical-history text
// under pre-analysis, the AI output it produced, and the case the user is
// currently editing. It replaces what the original UI kept as global
// session state; sessions live in a SessionStore passed down from main, so
// there is no process-wide singleton.
type ReviewSession struct {
	ID               uuid.UUID `json:"id"`
	ClinicalHistory  string    `json:"clinical_history"`
	PreAnalysis      string    `json:"pre_analysis"`
	SuggestedDilemma string    `json:"suggested_dilemma"`
	ActiveCaseID     string    `json:"active_case_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// SessionStore holds active review sessions. Safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*ReviewSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*ReviewSession)}
}

// Create registers a new session and returns a copy of it.
func (s *SessionStore) Create() ReviewSession {
	sess := &ReviewSession{ID: uuid.New(), CreatedAt: time.Now()}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return *sess
}

// Get returns a copy of the session, if it exists.
func (s *SessionStore) Get(id uuid.UUID) (ReviewSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ReviewSession{}, false
	}
	return *sess, true
}

// Update applies fn to the session under the store lock. It reports whether
// the session existed.
func (s *SessionStore) Update(id uuid.UUID, fn func(*ReviewSession)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	fn(sess)
	return true
}

// Delete tears the session down. Deleting an unknown ID is a no-op.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of active sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
