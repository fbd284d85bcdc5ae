package storage

import (
	"sync"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// MemStore keeps the wallet state in process memory. It is used by tests and
// by hosts that do not need durability. The zero value is not usable, call
// NewMemStore.
type MemStore struct {
	mu    sync.RWMutex
	state *Snapshot
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{state: NewSnapshot()}
}

// Load returns a deep copy of the current state.
func (s *MemStore) Load() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := &Snapshot{
		Balances:    make(map[util.Uint160]*uint256.Int, len(s.state.Balances)),
		TaxRate:     s.state.TaxRate,
		Outstanding: s.state.Outstanding.Clone(),
		TotalProfit: s.state.TotalProfit.Clone(),
		Owner:       s.state.Owner,
		HasOwner:    s.state.HasOwner,
	}
	for acc, bal := range s.state.Balances {
		cp.Balances[acc] = bal.Clone()
	}
	return cp, nil
}

// Commit applies the update under a single write lock, cloning every value
// so the caller keeps ownership of the passed structures.
func (s *MemStore) Commit(u *Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for acc, bal := range u.Balances {
		s.state.Balances[acc] = bal.Clone()
	}
	if u.TaxRate != nil {
		s.state.TaxRate = *u.TaxRate
	}
	if u.Outstanding != nil {
		s.state.Outstanding = u.Outstanding.Clone()
	}
	if u.TotalProfit != nil {
		s.state.TotalProfit = u.TotalProfit.Clone()
	}
	if u.Owner != nil {
		s.state.Owner = *u.Owner
		s.state.HasOwner = true
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }
