package tokenstore

import "sync"

// InMemoryStore is an in-memory implementation of Store. Credentials do not
// survive a process restart; use FileStore for that.
type InMemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Read returns the stored pair and whether a usable pair is present.
func (s *InMemoryStore) Read() (Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, s.creds.Present()
}

// Write replaces the stored pair.
func (s *InMemoryStore) Write(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

// Clear removes the stored pair.
func (s *InMemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}
