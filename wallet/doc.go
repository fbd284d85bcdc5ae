/*
Package wallet implements a custodial single-asset ledger with a withdrawal
tax. Principals deposit, withdraw and transfer a fungible balance, while the
owner levies a configurable percentage fee on withdrawals and periodically
sweeps the accumulated fees.

Every public operation is a single indivisible step: preconditions are
checked, state is mutated and committed to the backing store, an event is
emitted, and only then is any external value transfer performed. The external
transfer is always last, so a re-entrant call from the transfer target
observes already-updated state and fails its own precondition instead of
double-spending.

Wallet events

Deposited event. Produced when a principal deposits value, including
unconditional value receipt.

	Deposited:
	  - name: account
	    type: Hash160
	  - name: amount
	    type: Integer

Withdrew event. Produced on withdrawal, amount is the net paid out after the
fee was redirected to the profit pool.

	Withdrew:
	  - name: account
	    type: Hash160
	  - name: amount
	    type: Integer

Transferred event. Produced on internal transfer, no fee is charged.

	Transferred:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

ProfitSwept event. Produced when the owner drains the profit pool.

	ProfitSwept:
	  - name: owner
	    type: Hash160
	  - name: amount
	    type: Integer

TaxRateChanged event. Produced when the owner replaces the tax rate.

	TaxRateChanged:
	  - name: rate
	    type: Integer
*/
package wallet
