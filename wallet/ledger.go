package wallet

import "github.com/holiman/uint256"

// Ledger maps accounts to unsigned 256-bit balances. An absent entry reads
// as zero; entries are never deleted, a balance may decay to zero. Ledger is
// not safe for concurrent use on its own, the Wallet serializes access.
type Ledger struct {
	balances map[Account]*uint256.Int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[Account]*uint256.Int)}
}

// BalanceOf returns the balance of acc, zero for unknown accounts. The
// returned value is the caller's to keep.
func (l *Ledger) BalanceOf(acc Account) *uint256.Int {
	if bal, ok := l.balances[acc]; ok {
		return bal.Clone()
	}
	return new(uint256.Int)
}

// Credit increases the balance of acc by amount. It fails with ErrOverflow
// if the balance would exceed 256 bits; the balance is unchanged on failure.
func (l *Ledger) Credit(acc Account, amount *uint256.Int) error {
	bal := l.BalanceOf(acc)
	if _, carry := bal.AddOverflow(bal, amount); carry {
		return ErrOverflow
	}
	l.balances[acc] = bal
	return nil
}

// Debit decreases the balance of acc by amount. It fails with ErrZeroAmount
// if amount is zero and with ErrInsufficientFunds if the balance is smaller
// than amount; the balance is unchanged on failure.
func (l *Ledger) Debit(acc Account, amount *uint256.Int) error {
	if amount.IsZero() {
		return ErrZeroAmount
	}
	bal := l.BalanceOf(acc)
	if bal.Lt(amount) {
		return ErrInsufficientFunds
	}
	l.balances[acc] = bal.Sub(bal, amount)
	return nil
}

// Move atomically debits from and credits to. It fails with
// ErrInvalidRecipient if to is the null identity and with Debit's errors
// otherwise. No balance changes on failure.
func (l *Ledger) Move(from, to Account, amount *uint256.Int) error {
	if IsNullAccount(to) {
		return ErrInvalidRecipient
	}
	if err := l.Debit(from, amount); err != nil {
		return err
	}
	// The credit cannot overflow: the debited amount was already part of
	// the ledger total, which Wallet keeps below 2^256.
	if err := l.Credit(to, amount); err != nil {
		l.balances[from].Add(l.balances[from], amount)
		return err
	}
	return nil
}

// Total returns the sum of all balances. The second result reports whether
// the sum fits 256 bits.
func (l *Ledger) Total() (*uint256.Int, bool) {
	sum := new(uint256.Int)
	for _, bal := range l.balances {
		if _, carry := sum.AddOverflow(sum, bal); carry {
			return nil, false
		}
	}
	return sum, true
}

// restore replaces the balance set. Used when loading persisted state.
func (l *Ledger) restore(balances map[Account]*uint256.Int) {
	l.balances = make(map[Account]*uint256.Int, len(balances))
	for acc, bal := range balances {
		l.balances[acc] = bal.Clone()
	}
}

// set overwrites the balance of acc. Used for rollback after a failed
// store commit.
func (l *Ledger) set(acc Account, bal *uint256.Int) {
	l.balances[acc] = bal.Clone()
}
