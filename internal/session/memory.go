package session

import "sync"

// MemoryStore is the volatile, single-process default backend.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Get(userID string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}
	return New(), nil
}

func (s *MemoryStore) Put(userID string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
	return nil
}

func (s *MemoryStore) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
