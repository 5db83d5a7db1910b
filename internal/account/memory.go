package account

import (
	"context"
	"sync"
)

// MemoryStore is the volatile Store variant: a process-lifetime username →
// password-hash mapping with no id or email, cleared on restart. Intended
// for local runs and tests. Guarded by a mutex since the underlying map
// gives no concurrency guarantee of its own.
type MemoryStore struct {
	mu     sync.RWMutex
	hashes map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hashes: make(map[string]string)}
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hash, ok := s.hashes[username]
	if !ok {
		return Account{}, ErrNotFound
	}

	return Account{Username: username, PasswordHash: hash}, nil
}

func (s *MemoryStore) Insert(_ context.Context, acc Account) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hashes[acc.Username]; ok {
		return Account{}, ErrDuplicateUsername
	}
	s.hashes[acc.Username] = acc.PasswordHash

	return Account{Username: acc.Username, PasswordHash: acc.PasswordHash}, nil
}
