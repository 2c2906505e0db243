package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no frontend session matches the given ID.
var ErrNotFound = errors.New("session not found")

// Frontend is one browser's authenticated session with roomdesk. It owns a
// per-user session Context so concurrent users never share credential state.
type Frontend struct {
	ID        string
	Ctx       *Context
	Email     string
	Username  string
	Role      string
	Device    string
	CreatedAt time.Time
}

// InMemoryStore keeps frontend sessions in memory. It intentionally favors
// clarity over performance; sessions do not survive a restart, which is
// acceptable because the backend token is the only durable credential and
// users simply log in again.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Frontend
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*Frontend)}
}

// Create registers a fully populated frontend session, assigning it a fresh
// ID and creation time. The caller must not mutate fs after registration;
// other goroutines can see it as soon as Create returns.
func (s *InMemoryStore) Create(_ context.Context, fs *Frontend) error {
	fs.ID = uuid.New().String()
	fs.CreatedAt = time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[fs.ID] = fs
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Frontend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if fs, ok := s.sessions[id]; ok {
		return fs, nil
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Count returns the number of live frontend sessions, for the active
// sessions gauge.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
