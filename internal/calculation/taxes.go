package calculation

import "github.com/shopspring/decimal"

// taxAccrual tracks one year's deferred tax liability. Taxes are computed on
// the current year's investment gains and paid out of the following year's
// balance.
type taxAccrual struct {
	pending decimal.Decimal
}

// Settle returns the liability carried from the prior year and clears it.
func (t *taxAccrual) Settle() decimal.Decimal {
	due := t.pending
	t.pending = decimal.Zero
	return due
}

// Reset discards any carried liability. Used at retirement start so the
// first displayed year shows zero taxes.
func (t *taxAccrual) Reset() {
	t.pending = decimal.Zero
}

// Accrue records next year's liability from this year's return gains. The
// gain excludes net contributions; losses accrue nothing, so the liability
// is never negative.
func (t *taxAccrual) Accrue(gain, taxRate, taxablePercentage decimal.Decimal) {
	if gain.IsNegative() {
		gain = decimal.Zero
	}
	t.pending = gain.Mul(taxRate).Mul(taxablePercentage)
}
