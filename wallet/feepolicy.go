package wallet

import "github.com/holiman/uint256"

// MaxTaxRate is the upper bound of the withdrawal tax percentage.
const MaxTaxRate = 100

var hundred = uint256.NewInt(100)

// FeePolicy holds the current withdrawal tax rate as a percentage in
// [0, MaxTaxRate].
type FeePolicy struct {
	rate uint64
}

// NewFeePolicy returns a policy with the given initial rate. It fails with
// ErrInvalidRate if rate exceeds MaxTaxRate.
func NewFeePolicy(rate uint64) (*FeePolicy, error) {
	p := new(FeePolicy)
	if err := p.SetRate(rate); err != nil {
		return nil, err
	}
	return p, nil
}

// Rate returns the current tax rate.
func (p *FeePolicy) Rate() uint64 {
	return p.rate
}

// SetRate replaces the tax rate. It fails with ErrInvalidRate if newRate
// exceeds MaxTaxRate; the unsigned type already enforces the lower bound.
func (p *FeePolicy) SetRate(newRate uint64) error {
	if newRate > MaxTaxRate {
		return ErrInvalidRate
	}
	p.rate = newRate
	return nil
}

// ComputeFee returns floor(amount * rate / 100). It fails with ErrOverflow
// if the amount*rate product exceeds 256 bits. The result never exceeds
// amount for rates within [0, MaxTaxRate].
func ComputeFee(amount *uint256.Int, rate uint64) (*uint256.Int, error) {
	product := new(uint256.Int)
	if _, overflow := product.MulOverflow(amount, uint256.NewInt(rate)); overflow {
		return nil, ErrOverflow
	}
	return product.Div(product, hundred), nil
}
