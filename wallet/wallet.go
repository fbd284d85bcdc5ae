package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/nspcc-dev/taxwallet/storage"
	"go.uber.org/zap"
)

// Transferor performs the external value transfer that ends withdrawals and
// profit sweeps. The wallet invokes it only after every internal mutation is
// committed, so a Transfer implementation may run arbitrary code, including
// calling back into the wallet.
type Transferor interface {
	Transfer(ctx context.Context, to Account, amount *uint256.Int) error
}

// NopTransferor accepts every transfer. It is the default Transferor and
// suits hosts where the payout leg is settled elsewhere.
type NopTransferor struct{}

// Transfer implements Transferor.
func (NopTransferor) Transfer(context.Context, Account, *uint256.Int) error { return nil }

// Wallet is a custodial single-asset ledger with a withdrawal tax. All state
// (ledger, fee policy, profit pool) lives in one mutual-exclusion domain;
// every public operation runs as a single indivisible step. See the package
// documentation for the event model.
type Wallet struct {
	mu     sync.Mutex
	auth   Authorizer
	ledger *Ledger
	fees   *FeePolicy
	profit *ProfitPool
	store  storage.Store
	sink   Sink
	out    Transferor
	log    *zap.Logger

	// held is sum(balances) + outstanding profit. Keeping it below 2^256
	// is what lets TotalHeld and Ledger.Move never fail.
	held *uint256.Int
}

// Option configures a Wallet.
type Option func(*Wallet)

// WithTransferor sets the external transfer implementation.
func WithTransferor(t Transferor) Option {
	return func(w *Wallet) { w.out = t }
}

// WithSink sets the event sink. By default events are written to the wallet
// logger.
func WithSink(s Sink) Option {
	return func(w *Wallet) { w.sink = s }
}

// WithLogger sets the wallet logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Wallet) { w.log = l }
}

// New constructs a Wallet owned by owner on top of the given store,
// restoring any persisted state. It fails with ErrInvalidOwner if owner is
// the null identity and refuses a store that records a different owner.
func New(owner Account, store storage.Store, opts ...Option) (*Wallet, error) {
	auth, err := NewAccessControl(owner)
	if err != nil {
		return nil, err
	}

	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	if state.HasOwner && !state.Owner.Equals(owner) {
		return nil, fmt.Errorf("store is owned by %s, not %s", AccountString(state.Owner), AccountString(owner))
	}

	fees, err := NewFeePolicy(state.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("persisted tax rate %d: %w", state.TaxRate, err)
	}

	w := &Wallet{
		auth:   auth,
		ledger: NewLedger(),
		fees:   fees,
		profit: NewProfitPool(),
		store:  store,
		out:    NopTransferor{},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.sink == nil {
		w.sink = LogSink{Log: w.log}
	}

	w.ledger.restore(state.Balances)
	w.profit.restore(state.Outstanding, state.TotalProfit)

	sum, ok := w.ledger.Total()
	if !ok {
		return nil, fmt.Errorf("persisted balances: %w", ErrOverflow)
	}
	held, carry := new(uint256.Int).AddOverflow(sum, state.Outstanding)
	if carry {
		return nil, fmt.Errorf("persisted state total: %w", ErrOverflow)
	}
	w.held = held

	if !state.HasOwner {
		if err := w.commit(&storage.Update{Owner: &owner}); err != nil {
			return nil, err
		}
	}

	w.log.Info("wallet state loaded",
		zap.String("owner", AccountString(owner)),
		zap.Int("accounts", len(state.Balances)),
		zap.Uint64("taxRate", state.TaxRate),
		zap.String("outstandingProfit", state.Outstanding.Dec()))
	return w, nil
}

// Owner returns the wallet owner.
func (w *Wallet) Owner() Account {
	return w.auth.Owner()
}

// Deposit credits amount to caller. It fails with ErrOverflow if the
// balance or the total held value would exceed 256 bits.
func (w *Wallet) Deposit(caller Account, amount *uint256.Int) error {
	amount = amount.Clone()

	w.mu.Lock()
	defer w.mu.Unlock()

	newHeld, carry := new(uint256.Int).AddOverflow(w.held, amount)
	if carry {
		return ErrOverflow
	}

	prevBal := w.ledger.BalanceOf(caller)
	if err := w.ledger.Credit(caller, amount); err != nil {
		return err
	}
	if err := w.commit(&storage.Update{
		Balances: map[Account]*uint256.Int{caller: w.ledger.BalanceOf(caller)},
	}); err != nil {
		w.ledger.set(caller, prevBal)
		return err
	}
	w.held = newHeld

	w.sink.Notify(Deposited{ID: uuid.New(), Account: caller, Amount: amount.Clone()})
	return nil
}

// Receive handles unconditional value receipt (value attached to a call with
// no recognized operation). It behaves exactly as Deposit: the sender is
// always credited, value is never stranded.
func (w *Wallet) Receive(caller Account, amount *uint256.Int) error {
	return w.Deposit(caller, amount)
}

// Withdraw debits amount from caller, redirects the fee part to the profit
// pool and pays out the net remainder externally. The external payout is the
// last step, after all internal state is committed.
func (w *Wallet) Withdraw(ctx context.Context, caller Account, amount *uint256.Int) error {
	return w.withdraw(ctx, caller, amount.Clone())
}

// WithdrawAll withdraws the caller's whole balance. It fails with
// ErrZeroAmount if the balance is zero. The balance is read inside the same
// critical section that withdraws it.
func (w *Wallet) WithdrawAll(ctx context.Context, caller Account) error {
	return w.withdraw(ctx, caller, nil)
}

// withdraw runs the withdrawal transaction. amount == nil means the whole
// current balance.
func (w *Wallet) withdraw(ctx context.Context, caller Account, amount *uint256.Int) error {
	net, err := func() (*uint256.Int, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		if amount == nil {
			amount = w.ledger.BalanceOf(caller)
		}
		if amount.IsZero() {
			return nil, ErrZeroAmount
		}
		bal := w.ledger.BalanceOf(caller)
		if bal.Lt(amount) {
			return nil, ErrInsufficientFunds
		}

		fee, err := ComputeFee(amount, w.fees.Rate())
		if err != nil {
			return nil, err
		}
		net := new(uint256.Int).Sub(amount, fee)

		// The whole requested amount leaves the ledger; the fee part is
		// redirected to the profit pool, not burned.
		prevOut, prevLife := w.profit.Outstanding(), w.profit.Lifetime()
		if err := w.ledger.Debit(caller, amount); err != nil {
			return nil, err
		}
		if err := w.profit.Accrue(fee); err != nil {
			w.ledger.set(caller, bal)
			return nil, err
		}
		if err := w.commit(&storage.Update{
			Balances:    map[Account]*uint256.Int{caller: w.ledger.BalanceOf(caller)},
			Outstanding: w.profit.Outstanding(),
			TotalProfit: w.profit.Lifetime(),
		}); err != nil {
			w.ledger.set(caller, bal)
			w.profit.restore(prevOut, prevLife)
			return nil, err
		}
		w.held.Sub(w.held, net)

		w.sink.Notify(Withdrew{ID: uuid.New(), Account: caller, Amount: net.Clone()})
		return net, nil
	}()
	if err != nil {
		return err
	}

	if err := w.out.Transfer(ctx, caller, net); err != nil {
		return fmt.Errorf("external transfer: %w", err)
	}
	return nil
}

// Transfer moves amount from caller to recipient inside the ledger. No fee
// is charged and no external transfer occurs.
func (w *Wallet) Transfer(caller, recipient Account, amount *uint256.Int) error {
	amount = amount.Clone()

	w.mu.Lock()
	defer w.mu.Unlock()

	bal := w.ledger.BalanceOf(caller)
	if bal.IsZero() {
		return ErrZeroBalance
	}
	if bal.Lt(amount) {
		return ErrInsufficientFunds
	}

	prevTo := w.ledger.BalanceOf(recipient)
	if err := w.ledger.Move(caller, recipient, amount); err != nil {
		return err
	}
	if err := w.commit(&storage.Update{
		Balances: map[Account]*uint256.Int{
			caller:    w.ledger.BalanceOf(caller),
			recipient: w.ledger.BalanceOf(recipient),
		},
	}); err != nil {
		w.ledger.set(recipient, prevTo)
		w.ledger.set(caller, bal)
		return err
	}

	w.sink.Notify(Transferred{ID: uuid.New(), From: caller, To: recipient, Amount: amount.Clone()})
	return nil
}

// SweepProfit drains the profit pool to the owner. Owner only. The swept
// amount is paid out externally after the pool reset is committed; the
// lifetime profit counter is unaffected.
func (w *Wallet) SweepProfit(ctx context.Context, caller Account) (*uint256.Int, error) {
	swept, err := func() (*uint256.Int, error) {
		w.mu.Lock()
		defer w.mu.Unlock()

		if err := w.auth.RequireOwner(caller); err != nil {
			return nil, err
		}

		prevOut, prevLife := w.profit.Outstanding(), w.profit.Lifetime()
		swept, err := w.profit.Sweep()
		if err != nil {
			return nil, err
		}
		if err := w.commit(&storage.Update{Outstanding: w.profit.Outstanding()}); err != nil {
			w.profit.restore(prevOut, prevLife)
			return nil, err
		}
		w.held.Sub(w.held, swept)

		w.sink.Notify(ProfitSwept{ID: uuid.New(), Owner: caller, Amount: swept.Clone()})
		return swept, nil
	}()
	if err != nil {
		return nil, err
	}

	if err := w.out.Transfer(ctx, caller, swept); err != nil {
		return nil, fmt.Errorf("external transfer: %w", err)
	}
	return swept, nil
}

// SetTaxRate replaces the withdrawal tax rate. Owner only; the rate must be
// within [0, MaxTaxRate].
func (w *Wallet) SetTaxRate(caller Account, newRate uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.auth.RequireOwner(caller); err != nil {
		return err
	}

	prev := w.fees.Rate()
	if err := w.fees.SetRate(newRate); err != nil {
		return err
	}
	if err := w.commit(&storage.Update{TaxRate: &newRate}); err != nil {
		w.fees.rate = prev
		return err
	}

	w.sink.Notify(TaxRateChanged{ID: uuid.New(), Rate: newRate})
	return nil
}

// BalanceOf returns the balance of account, zero for unknown accounts.
func (w *Wallet) BalanceOf(account Account) *uint256.Int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ledger.BalanceOf(account)
}

// TaxRate returns the current withdrawal tax percentage.
func (w *Wallet) TaxRate() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fees.Rate()
}

// OutstandingProfit returns the fees collected but not yet swept.
func (w *Wallet) OutstandingProfit() *uint256.Int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profit.Outstanding()
}

// TotalProfit returns the lifetime sum of all fees ever collected.
func (w *Wallet) TotalProfit() *uint256.Int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profit.Lifetime()
}

// TotalHeld returns the total value held by the wallet: the sum of all
// balances plus the outstanding profit.
func (w *Wallet) TotalHeld() *uint256.Int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.held.Clone()
}

func (w *Wallet) commit(u *storage.Update) error {
	if err := w.store.Commit(u); err != nil {
		return fmt.Errorf("persist operation: %w", err)
	}
	return nil
}
