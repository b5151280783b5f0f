package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shelfarr/shelfarr/internal/catalog"
)

// Store is the owned registry of live sessions. Sessions exist until
// explicitly cancelled or the process exits.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session registry.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session in the scanning state.
func (st *Store) Create(kind catalog.MediaType, roots []string) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		MediaType: kind,
		Roots:     roots,
		CreatedAt: time.Now(),
		status:    StatusScanning,
		message:   "Starting scan...",
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get looks up a session by id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session; its id becomes invalid.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// List returns snapshots of all live sessions.
func (st *Store) List() []Snapshot {
	st.mu.Lock()
	sessions := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		sessions = append(sessions, s)
	}
	st.mu.Unlock()

	snapshots := make([]Snapshot, 0, len(sessions))
	for _, s := range sessions {
		snapshots = append(snapshots, s.Snapshot())
	}
	return snapshots
}
