package wallet

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func TestIsNullAccount(t *testing.T) {
	require.True(t, IsNullAccount(Account{}))
	require.False(t, IsNullAccount(Account{1}))
}

func TestParseAccount(t *testing.T) {
	acc := Account{0xde, 0xad, 0xbe, 0xef}

	t.Run("address form", func(t *testing.T) {
		got, err := ParseAccount(AccountString(acc))
		require.NoError(t, err)
		require.Equal(t, acc, got)
	})

	t.Run("raw base58 form", func(t *testing.T) {
		got, err := ParseAccount(base58.Encode(acc.BytesBE()))
		require.NoError(t, err)
		require.Equal(t, acc, got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseAccount("not an account")
		require.Error(t, err)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := ParseAccount(base58.Encode([]byte{1, 2, 3}))
		require.Error(t, err)
	})
}
