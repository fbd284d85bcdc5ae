package storage

import (
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/util"
	bolt "go.etcd.io/bbolt"
)

// Bucket layout:
//
//	balances/ -> [account BE bytes] => 32-byte BE amount
//	state/    -> taxrate            => 8-byte BE rate
//	             profit.outstanding => 32-byte BE amount
//	             profit.total       => 32-byte BE amount
//	             owner              => 20-byte BE account
var (
	balancesBucket = []byte("balances")
	stateBucket    = []byte("state")
)

// BoltStore persists the wallet state in a single bbolt file. Every Commit
// runs inside one read-write transaction, which gives the atomic multi-field
// commit the wallet requires.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (creating if needed) the state database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(balancesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			err = fmt.Errorf("%w (also failed to close: %w)", err, closeErr)
		}
		return nil, fmt.Errorf("init state buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Load reads the whole state in one read transaction.
func (s *BoltStore) Load() (*Snapshot, error) {
	state := NewSnapshot()

	err := s.db.View(func(tx *bolt.Tx) error {
		err := tx.Bucket(balancesBucket).ForEach(func(k, v []byte) error {
			acc, err := util.Uint160DecodeBytesBE(k)
			if err != nil {
				return fmt.Errorf("malformed account key %x: %w", k, err)
			}
			state.Balances[acc] = decodeAmount(v)
			return nil
		})
		if err != nil {
			return err
		}

		st := tx.Bucket(stateBucket)
		if v := st.Get(keyTaxRate); v != nil {
			state.TaxRate = decodeRate(v)
		}
		if v := st.Get(keyOutstanding); v != nil {
			state.Outstanding = decodeAmount(v)
		}
		if v := st.Get(keyTotalProfit); v != nil {
			state.TotalProfit = decodeAmount(v)
		}
		if v := st.Get(keyOwner); v != nil {
			owner, err := util.Uint160DecodeBytesBE(v)
			if err != nil {
				return fmt.Errorf("malformed owner record: %w", err)
			}
			state.Owner = owner
			state.HasOwner = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load wallet state: %w", err)
	}
	return state, nil
}

// Commit applies the update in a single read-write transaction.
func (s *BoltStore) Commit(u *Update) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bb := tx.Bucket(balancesBucket)
		for acc, bal := range u.Balances {
			if err := bb.Put(acc.BytesBE(), encodeAmount(bal)); err != nil {
				return err
			}
		}

		st := tx.Bucket(stateBucket)
		if u.TaxRate != nil {
			if err := st.Put(keyTaxRate, encodeRate(*u.TaxRate)); err != nil {
				return err
			}
		}
		if u.Outstanding != nil {
			if err := st.Put(keyOutstanding, encodeAmount(u.Outstanding)); err != nil {
				return err
			}
		}
		if u.TotalProfit != nil {
			if err := st.Put(keyTotalProfit, encodeAmount(u.TotalProfit)); err != nil {
				return err
			}
		}
		if u.Owner != nil {
			if err := st.Put(keyOwner, u.Owner.BytesBE()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit wallet state: %w", err)
	}
	return nil
}

// Close closes the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
