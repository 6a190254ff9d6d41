package coin

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/remitchain/remit/errors"
)

// IntSize is the maximum number of bytes an Int may use.
const IntSize = 32

var (
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	// MaxInt is the largest representable value, 2^256-1.
	MaxInt = NewIntFromBigUnsafe(maxUint256)
)

// Int is an unsigned 256 bit integer stored as big-endian bytes without
// leading zeros. A nil or empty Int is zero.
type Int []byte

// NewInt returns the Int representation of given value.
func NewInt(v uint64) Int {
	return NewIntFromBigUnsafe(new(big.Int).SetUint64(v))
}

// NewIntFromBig converts a big integer. It fails when the value is negative
// or does not fit in 256 bits.
func NewIntFromBig(v *big.Int) (Int, error) {
	if v == nil {
		return nil, nil
	}
	if v.Sign() < 0 {
		return nil, errors.Wrap(errors.ErrAmount, "negative value")
	}
	if v.Cmp(maxUint256) > 0 {
		return nil, errors.Wrap(errors.ErrOverflow, "value exceeds 256 bits")
	}
	return NewIntFromBigUnsafe(v), nil
}

// NewIntFromBigUnsafe converts a big integer without checking its range.
// Use only with values known to fit.
func NewIntFromBigUnsafe(v *big.Int) Int {
	b := v.Bytes()
	if len(b) == 0 {
		return nil
	}
	return Int(b)
}

// ParseInt reads a decimal (or 0x prefixed hexadecimal) representation.
func ParseInt(s string) (Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(errors.ErrInput, "empty number")
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "invalid number %q", s)
	}
	return NewIntFromBig(v)
}

// Big returns the value as a newly allocated big integer.
func (i Int) Big() *big.Int {
	return new(big.Int).SetBytes(i)
}

// Uint64 returns the value when it fits into 64 bits.
func (i Int) Uint64() (uint64, error) {
	b := i.Big()
	if !b.IsUint64() {
		return 0, errors.Wrap(errors.ErrOverflow, "value exceeds 64 bits")
	}
	return b.Uint64(), nil
}

// IsZero returns true for the zero value.
func (i Int) IsZero() bool {
	for _, b := range i {
		if b != 0 {
			return false
		}
	}
	return true
}

// IsPositive returns true if the value is greater than zero.
func (i Int) IsPositive() bool {
	return !i.IsZero()
}

// Add returns the sum of both values. It fails if the result does not fit in
// 256 bits instead of wrapping around.
func (i Int) Add(o Int) (Int, error) {
	sum := new(big.Int).Add(i.Big(), o.Big())
	if sum.Cmp(maxUint256) > 0 {
		return nil, errors.Wrap(errors.ErrOverflow, "addition")
	}
	return NewIntFromBigUnsafe(sum), nil
}

// Sub returns i - o. It fails with an insufficient amount error if o is
// greater than i.
func (i Int) Sub(o Int) (Int, error) {
	if i.Cmp(o) < 0 {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "%s is less than %s", i, o)
	}
	return NewIntFromBigUnsafe(new(big.Int).Sub(i.Big(), o.Big())), nil
}

// Cmp compares two values and returns -1, 0 or 1.
func (i Int) Cmp(o Int) int {
	return i.Big().Cmp(o.Big())
}

// Equals returns true if both values are the same number.
func (i Int) Equals(o Int) bool {
	return bytes.Equal(trim(i), trim(o))
}

// IsGTE returns true if i is greater than or equal to o.
func (i Int) IsGTE(o Int) bool {
	return i.Cmp(o) >= 0
}

// Clone returns an independent copy.
func (i Int) Clone() Int {
	if len(i) == 0 {
		return nil
	}
	cpy := make(Int, len(i))
	copy(cpy, i)
	return cpy
}

// Validate ensures the value fits in 256 bits.
func (i Int) Validate() error {
	if len(trim(i)) > IntSize {
		return errors.Wrap(errors.ErrOverflow, "value exceeds 256 bits")
	}
	return nil
}

// Bytes32 returns the value left padded to 32 bytes, the ABI word layout.
func (i Int) Bytes32() [32]byte {
	var w [32]byte
	t := trim(i)
	copy(w[32-len(t):], t)
	return w
}

// String returns the decimal representation.
func (i Int) String() string {
	return i.Big().String()
}

// MarshalJSON encodes the value as a decimal string. Numbers larger than 2^53
// cannot be safely represented by a JSON number.
func (i Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON accepts a decimal string or a JSON number.
func (i *Int) UnmarshalJSON(raw []byte) error {
	if string(raw) == "null" {
		*i = nil
		return nil
	}
	var s string
	if len(raw) > 0 && raw[0] != '"' {
		s = string(raw)
	} else if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode amount")
	}
	v, err := ParseInt(s)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// Sum adds all values together.
func Sum(values ...Int) (Int, error) {
	var total Int
	for _, v := range values {
		var err error
		if total, err = total.Add(v); err != nil {
			return nil, err
		}
	}
	return total, nil
}

func trim(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
