package wallet

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestProfitPoolAccrueAndSweep(t *testing.T) {
	p := NewProfitPool()

	_, err := p.Sweep()
	require.ErrorIs(t, err, ErrNothingToSweep)

	require.NoError(t, p.Accrue(uint256.NewInt(100)))
	require.NoError(t, p.Accrue(uint256.NewInt(50)))
	require.Equal(t, uint256.NewInt(150), p.Outstanding())
	require.Equal(t, uint256.NewInt(150), p.Lifetime())

	swept, err := p.Sweep()
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(150), swept)
	require.True(t, p.Outstanding().IsZero())
	require.Equal(t, uint256.NewInt(150), p.Lifetime(), "lifetime counter must survive sweeps")

	_, err = p.Sweep()
	require.ErrorIs(t, err, ErrNothingToSweep)

	require.NoError(t, p.Accrue(uint256.NewInt(7)))
	require.Equal(t, uint256.NewInt(7), p.Outstanding())
	require.Equal(t, uint256.NewInt(157), p.Lifetime())
}

func TestProfitPoolAccrueZero(t *testing.T) {
	p := NewProfitPool()

	require.NoError(t, p.Accrue(new(uint256.Int)))
	require.True(t, p.Outstanding().IsZero())
	require.True(t, p.Lifetime().IsZero())
}

func TestProfitPoolAccrueOverflow(t *testing.T) {
	p := NewProfitPool()
	max := new(uint256.Int).SetAllOne()

	require.NoError(t, p.Accrue(max))

	// Lifetime would overflow even after a sweep resets outstanding: the
	// failure must leave both counters untouched.
	_, err := p.Sweep()
	require.NoError(t, err)

	err = p.Accrue(uint256.NewInt(1))
	require.ErrorIs(t, err, ErrOverflow)
	require.True(t, p.Outstanding().IsZero())
	require.Equal(t, max, p.Lifetime())
}

func TestAccessControl(t *testing.T) {
	_, err := NewAccessControl(Account{})
	require.ErrorIs(t, err, ErrInvalidOwner)

	owner := Account{0xaa}
	ac, err := NewAccessControl(owner)
	require.NoError(t, err)
	require.Equal(t, owner, ac.Owner())

	require.NoError(t, ac.RequireOwner(owner))
	require.ErrorIs(t, ac.RequireOwner(Account{0xbb}), ErrUnauthorized)
	require.ErrorIs(t, ac.RequireOwner(Account{}), ErrUnauthorized)
}
