package wallet

import "errors"

// Operation failures. Every failure aborts the whole operation with no
// observable state change; callers match with errors.Is.
var (
	// ErrUnauthorized means the caller is not the owner of the wallet.
	ErrUnauthorized = errors.New("caller is not the wallet owner")

	// ErrZeroAmount means the operation would move zero value.
	ErrZeroAmount = errors.New("amount must be positive")

	// ErrZeroBalance means the caller's balance is zero.
	ErrZeroBalance = errors.New("account balance is zero")

	// ErrInsufficientFunds means the requested amount exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidRecipient means the recipient is the null identity.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrInvalidRate means the tax rate is outside [0, 100].
	ErrInvalidRate = errors.New("tax rate out of range")

	// ErrOverflow means an arithmetic operation would exceed 256 bits.
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrNothingToSweep means the profit pool is empty.
	ErrNothingToSweep = errors.New("nothing to sweep")

	// ErrInvalidOwner means the wallet was constructed with a null owner.
	ErrInvalidOwner = errors.New("invalid owner")
)
