package wallet

import "github.com/holiman/uint256"

// ProfitPool accumulates withdrawal fees pending owner sweep and keeps a
// lifetime counter of every fee ever collected. The lifetime counter is
// monotonically non-decreasing and survives sweeps.
type ProfitPool struct {
	outstanding *uint256.Int
	lifetime    *uint256.Int
}

// NewProfitPool returns an empty pool.
func NewProfitPool() *ProfitPool {
	return &ProfitPool{
		outstanding: new(uint256.Int),
		lifetime:    new(uint256.Int),
	}
}

// Accrue adds fee to both the outstanding pool and the lifetime counter.
// It fails with ErrOverflow if either addition overflows, in which case
// neither counter changes.
func (p *ProfitPool) Accrue(fee *uint256.Int) error {
	newOutstanding := new(uint256.Int)
	if _, carry := newOutstanding.AddOverflow(p.outstanding, fee); carry {
		return ErrOverflow
	}
	newLifetime := new(uint256.Int)
	if _, carry := newLifetime.AddOverflow(p.lifetime, fee); carry {
		return ErrOverflow
	}
	p.outstanding = newOutstanding
	p.lifetime = newLifetime
	return nil
}

// Sweep drains the outstanding pool and returns the drained amount. It
// fails with ErrNothingToSweep if the pool is empty. The lifetime counter
// is unaffected.
func (p *ProfitPool) Sweep() (*uint256.Int, error) {
	if p.outstanding.IsZero() {
		return nil, ErrNothingToSweep
	}
	swept := p.outstanding
	p.outstanding = new(uint256.Int)
	return swept, nil
}

// Outstanding returns the fees collected but not yet swept.
func (p *ProfitPool) Outstanding() *uint256.Int {
	return p.outstanding.Clone()
}

// Lifetime returns the sum of all fees ever collected.
func (p *ProfitPool) Lifetime() *uint256.Int {
	return p.lifetime.Clone()
}

// restore replaces both counters. Used when loading persisted state.
func (p *ProfitPool) restore(outstanding, lifetime *uint256.Int) {
	p.outstanding = outstanding.Clone()
	p.lifetime = lifetime.Clone()
}
