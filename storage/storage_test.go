package storage

import (
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, open func(t *testing.T) Store) {
	acc1 := util.Uint160{1}
	acc2 := util.Uint160{2}
	owner := util.Uint160{0xff}

	s := open(t)

	state, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, state.Balances)
	require.EqualValues(t, 0, state.TaxRate)
	require.True(t, state.Outstanding.IsZero())
	require.True(t, state.TotalProfit.IsZero())
	require.False(t, state.HasOwner)

	rate := uint64(15)
	err = s.Commit(&Update{
		Balances: map[util.Uint160]*uint256.Int{
			acc1: uint256.NewInt(100),
			acc2: uint256.NewInt(200),
		},
		TaxRate:     &rate,
		Outstanding: uint256.NewInt(30),
		TotalProfit: uint256.NewInt(70),
		Owner:       &owner,
	})
	require.NoError(t, err)

	// Partial update: untouched fields must keep their values.
	err = s.Commit(&Update{
		Balances: map[util.Uint160]*uint256.Int{acc1: new(uint256.Int)},
	})
	require.NoError(t, err)

	state, err = s.Load()
	require.NoError(t, err)
	require.Len(t, state.Balances, 2)
	require.True(t, state.Balances[acc1].IsZero(), "zero balance must stay as an explicit entry")
	require.Equal(t, uint256.NewInt(200), state.Balances[acc2])
	require.EqualValues(t, 15, state.TaxRate)
	require.Equal(t, uint256.NewInt(30), state.Outstanding)
	require.Equal(t, uint256.NewInt(70), state.TotalProfit)
	require.True(t, state.HasOwner)
	require.Equal(t, owner, state.Owner)
}

func TestMemStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store {
		return NewMemStore()
	})
}

func TestBoltStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store {
		s, err := OpenBoltStore(filepath.Join(t.TempDir(), "state.db"))
		require.NoError(t, err)
		t.Cleanup(func() { require.NoError(t, s.Close()) })
		return s
	})
}

func TestBoltStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	acc := util.Uint160{7}

	s, err := OpenBoltStore(path)
	require.NoError(t, err)

	big := new(uint256.Int).SetAllOne()
	require.NoError(t, s.Commit(&Update{
		Balances: map[util.Uint160]*uint256.Int{acc: big},
	}))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	state, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, big, state.Balances[acc], "full 256-bit width must round-trip")
}

func TestMemStoreIsolation(t *testing.T) {
	s := NewMemStore()
	acc := util.Uint160{1}

	bal := uint256.NewInt(10)
	require.NoError(t, s.Commit(&Update{Balances: map[util.Uint160]*uint256.Int{acc: bal}}))
	bal.SetUint64(99) // caller keeps ownership of the passed value

	state, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(10), state.Balances[acc])

	state.Balances[acc].SetUint64(77) // loaded state is a private copy
	state, err = s.Load()
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(10), state.Balances[acc])
}
