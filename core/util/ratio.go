package util

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// RatioDenominator is the fixed-point scale for extraction ratios.
// A numerator equal to the denominator represents 100%.
const RatioDenominator uint64 = 1e18

// DefaultRatio is the extraction ratio applied until the operator
// overrides it: 50%.
const DefaultRatio Ratio = Ratio(RatioDenominator / 2)

// Ratio is an unsigned fixed-point fraction: numerator over
// RatioDenominator. Ratios are kept as integers so extraction-amount
// arithmetic stays exact.
type Ratio uint64

// NewRatio builds a Ratio from a raw numerator, rejecting values above
// the denominator.
func NewRatio(numerator uint64) (Ratio, error) {
	if numerator > RatioDenominator {
		return 0, errors.Errorf("ratio numerator %d exceeds denominator %d", numerator, RatioDenominator)
	}
	return Ratio(numerator), nil
}

// Valid reports whether the ratio is within [0, RatioDenominator].
func (r Ratio) Valid() bool {
	return uint64(r) <= RatioDenominator
}

// Numerator returns the raw fixed-point numerator.
func (r Ratio) Numerator() uint64 {
	return uint64(r)
}

// ParseRatio parses a decimal string such as "0.5" into a Ratio.
// The value must be in [0, 1] and exactly representable at the
// denominator's scale.
func ParseRatio(s string) (Ratio, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid ratio %q", s)
	}
	if d.Negative {
		return 0, errors.Errorf("ratio %q is negative", s)
	}

	ctx := apd.BaseContext.WithPrecision(40)
	scaled := new(apd.Decimal)
	if _, err := ctx.Mul(scaled, d, apd.New(1, 18)); err != nil {
		return 0, errors.Wrapf(err, "scaling ratio %q", s)
	}

	cond, err := ctx.Quantize(scaled, scaled, 0)
	if err != nil {
		return 0, errors.Wrapf(err, "quantizing ratio %q", s)
	}
	if cond.Inexact() {
		return 0, errors.Errorf("ratio %q is not representable at 1e-18 precision", s)
	}

	n, err := scaled.Int64()
	if err != nil {
		return 0, errors.Wrapf(err, "ratio %q out of range", s)
	}
	return NewRatio(uint64(n))
}

// String renders the ratio back as a decimal fraction, e.g. "0.5".
func (r Ratio) String() string {
	d := apd.New(int64(r), -18)
	d.Reduce(d)
	return d.Text('f')
}
