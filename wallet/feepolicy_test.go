package wallet

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestFeePolicyRate(t *testing.T) {
	_, err := NewFeePolicy(101)
	require.ErrorIs(t, err, ErrInvalidRate)

	p, err := NewFeePolicy(10)
	require.NoError(t, err)
	require.EqualValues(t, 10, p.Rate())

	require.ErrorIs(t, p.SetRate(MaxTaxRate+1), ErrInvalidRate)
	require.EqualValues(t, 10, p.Rate(), "rate must be unchanged after failed update")

	require.NoError(t, p.SetRate(0))
	require.EqualValues(t, 0, p.Rate())
	require.NoError(t, p.SetRate(MaxTaxRate))
	require.EqualValues(t, MaxTaxRate, p.Rate())
}

func TestComputeFee(t *testing.T) {
	for _, tc := range []struct {
		amount uint64
		rate   uint64
		fee    uint64
	}{
		{amount: 0, rate: 50, fee: 0},
		{amount: 1000, rate: 0, fee: 0},
		{amount: 1000, rate: 10, fee: 100},
		{amount: 1000, rate: 100, fee: 1000},
		{amount: 99, rate: 1, fee: 0},    // floor(99/100)
		{amount: 199, rate: 50, fee: 99}, // floor(9950/100)
		{amount: 1, rate: 99, fee: 0},
		{amount: 3, rate: 33, fee: 0},
	} {
		fee, err := ComputeFee(uint256.NewInt(tc.amount), tc.rate)
		require.NoError(t, err, tc)
		require.Equal(t, uint256.NewInt(tc.fee), fee, tc)
	}
}

func TestComputeFeeBounds(t *testing.T) {
	// fee <= amount for every rate in [0, 100].
	amount := uint256.NewInt(123456789)
	for rate := uint64(0); rate <= MaxTaxRate; rate++ {
		fee, err := ComputeFee(amount, rate)
		require.NoError(t, err)
		require.False(t, amount.Lt(fee), "fee %s exceeds amount at rate %d", fee.Dec(), rate)
	}
}

func TestComputeFeeOverflow(t *testing.T) {
	max := new(uint256.Int).SetAllOne()

	_, err := ComputeFee(max, 2)
	require.ErrorIs(t, err, ErrOverflow)

	// Rate 0 and 1x-safe amounts never overflow.
	fee, err := ComputeFee(max, 0)
	require.NoError(t, err)
	require.True(t, fee.IsZero())
}
