package coin

import (
	"math/big"
	"strings"

	"github.com/remitchain/remit/errors"
)

// RateDecimals is the fixed number of decimal places of an exchange rate.
// A rate of 1.25 is stored as the integer 125.
const RateDecimals = 2

var rateUnit = big.NewInt(100)

// ParseRate reads a human exchange rate like "1.25" into its fixed point
// integer form. Digits beyond the second decimal place are truncated.
func ParseRate(s string) (Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(errors.ErrInput, "empty rate")
	}
	parts := strings.SplitN(s, ".", 2)
	whole, ok := new(big.Int).SetString(parts[0], 10)
	if !ok || whole.Sign() < 0 {
		return nil, errors.Wrapf(errors.ErrInput, "invalid rate %q", s)
	}
	v := new(big.Int).Mul(whole, rateUnit)
	if len(parts) == 2 {
		frac := parts[1]
		if frac == "" {
			return nil, errors.Wrapf(errors.ErrInput, "invalid rate %q", s)
		}
		if len(frac) > RateDecimals {
			frac = frac[:RateDecimals]
		}
		for len(frac) < RateDecimals {
			frac += "0"
		}
		f, ok := new(big.Int).SetString(frac, 10)
		if !ok || f.Sign() < 0 {
			return nil, errors.Wrapf(errors.ErrInput, "invalid rate %q", s)
		}
		v.Add(v, f)
	}
	return NewIntFromBig(v)
}

// FormatRate returns the human form of a fixed point exchange rate.
func FormatRate(rate Int) string {
	q, r := new(big.Int).QuoRem(rate.Big(), rateUnit, new(big.Int))
	frac := r.String()
	if len(frac) < RateDecimals {
		frac = strings.Repeat("0", RateDecimals-len(frac)) + frac
	}
	return q.String() + "." + frac
}
