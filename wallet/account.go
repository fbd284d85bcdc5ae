package wallet

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Account identifies a principal holding a balance. The zero value is the
// null identity and never holds a balance.
type Account = util.Uint160

// IsNullAccount reports whether acc is the null identity.
func IsNullAccount(acc Account) bool {
	return acc.Equals(util.Uint160{})
}

// ParseAccount decodes an account from its Neo address form, falling back to
// raw base58 of the 20 identity bytes.
func ParseAccount(s string) (Account, error) {
	if acc, err := address.StringToUint160(s); err == nil {
		return acc, nil
	}

	raw, err := base58.Decode(s)
	if err != nil {
		return Account{}, fmt.Errorf("parse account %q: %w", s, err)
	}
	acc, err := util.Uint160DecodeBytesBE(raw)
	if err != nil {
		return Account{}, fmt.Errorf("parse account %q: %w", s, err)
	}
	return acc, nil
}

// AccountString renders acc as a Neo address.
func AccountString(acc Account) string {
	return address.Uint160ToString(acc)
}
