package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-runner/internal/account"
)

// MemoryStore keeps accounts in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]account.Account
}

var _ account.Store = (*MemoryStore)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]account.Account)}
}

// Load returns a deep copy of the stored set.
func (s *MemoryStore) Load(_ context.Context) (map[string]account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAccounts(s.accounts), nil
}

// Put stores a copy of acct.
func (s *MemoryStore) Put(_ context.Context, acct account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct.OwnedSkins = slices.Clone(acct.OwnedSkins)
	s.accounts[acct.Username] = acct
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

func cloneAccounts(in map[string]account.Account) map[string]account.Account {
	out := make(map[string]account.Account, len(in))
	for k, v := range in {
		v.OwnedSkins = slices.Clone(v.OwnedSkins)
		out[k] = v
	}
	return out
}
