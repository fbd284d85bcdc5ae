// Package storage provides persistent state backends for the tax wallet.
//
// The wallet state consists of five logical tables: per-account balances,
// the tax rate, the outstanding profit, the lifetime profit and the owner
// identity. A Store loads the whole state once and then applies updates,
// each update being committed atomically: either every field of the update
// becomes visible or none does.
package storage

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Snapshot is a complete copy of the persisted wallet state.
type Snapshot struct {
	Balances    map[util.Uint160]*uint256.Int
	TaxRate     uint64
	Outstanding *uint256.Int
	TotalProfit *uint256.Int
	Owner       util.Uint160
	HasOwner    bool
}

// Update lists the fields touched by a single wallet operation. Nil fields
// are left untouched by Commit. A balance set to zero is kept as an explicit
// zero entry, accounts are never deleted.
type Update struct {
	Balances    map[util.Uint160]*uint256.Int
	TaxRate     *uint64
	Outstanding *uint256.Int
	TotalProfit *uint256.Int
	Owner       *util.Uint160
}

// Store is the persistence contract of the wallet. Commit must be atomic
// with respect to both concurrent readers and process crashes.
type Store interface {
	Load() (*Snapshot, error)
	Commit(*Update) error
	Close() error
}

// NewSnapshot returns an empty state with zero-valued scalars.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Balances:    make(map[util.Uint160]*uint256.Int),
		Outstanding: new(uint256.Int),
		TotalProfit: new(uint256.Int),
	}
}

// Scalar keys within the state table.
var (
	keyTaxRate     = []byte("taxrate")
	keyOutstanding = []byte("profit.outstanding")
	keyTotalProfit = []byte("profit.total")
	keyOwner       = []byte("owner")
)

func encodeAmount(v *uint256.Int) []byte {
	b := v.Bytes32()
	return b[:]
}

func decodeAmount(b []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(b)
}

func encodeRate(r uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, r)
	return b
}

func decodeRate(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
