package coin

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest/assert"
)

func TestIntArithmetic(t *testing.T) {
	a := NewInt(1000)
	b := NewInt(250)

	sum, err := a.Add(b)
	assert.Nil(t, err)
	assert.Equal(t, "1250", sum.String())

	diff, err := a.Sub(b)
	assert.Nil(t, err)
	assert.Equal(t, "750", diff.String())

	_, err = b.Sub(a)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	zero, err := a.Sub(a)
	assert.Nil(t, err)
	if !zero.IsZero() || zero.IsPositive() {
		t.Fatalf("want zero, got %s", zero)
	}
}

func TestIntOverflow(t *testing.T) {
	_, err := MaxInt.Add(NewInt(1))
	assert.IsErr(t, errors.ErrOverflow, err)

	sum, err := MaxInt.Add(nil)
	assert.Nil(t, err)
	if !sum.Equals(MaxInt) {
		t.Fatal("adding zero must not change the value")
	}

	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = NewIntFromBig(tooBig)
	assert.IsErr(t, errors.ErrOverflow, err)

	_, err = NewIntFromBig(big.NewInt(-1))
	assert.IsErr(t, errors.ErrAmount, err)

	if err := Int(make([]byte, 33)).Validate(); err != nil {
		t.Fatalf("leading zeros must be accepted: %s", err)
	}
	long := make(Int, 33)
	long[0] = 1
	assert.IsErr(t, errors.ErrOverflow, long.Validate())
}

func TestIntCompare(t *testing.T) {
	cases := map[string]struct {
		a, b Int
		want int
	}{
		"both zero":         {a: nil, b: Int{0, 0}, want: 0},
		"greater":           {a: NewInt(2), b: NewInt(1), want: 1},
		"smaller":           {a: NewInt(1), b: NewInt(1 << 40), want: -1},
		"leading zero same": {a: Int{0, 7}, b: NewInt(7), want: 0},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Cmp(tc.b))
			assert.Equal(t, tc.want == 0, tc.a.Equals(tc.b))
			assert.Equal(t, tc.want >= 0, tc.a.IsGTE(tc.b))
		})
	}
}

func TestParseInt(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    string
		wantErr *errors.Error
	}{
		"decimal":    {in: "12345", want: "12345"},
		"hex":        {in: "0xff", want: "255"},
		"max":        {in: MaxInt.String(), want: MaxInt.String()},
		"empty":      {in: "", wantErr: errors.ErrInput},
		"garbage":    {in: "12a", wantErr: errors.ErrInput},
		"negative":   {in: "-1", wantErr: errors.ErrAmount},
		"beyond max": {in: "0x1" + "0000000000000000000000000000000000000000000000000000000000000000", wantErr: errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseInt(tc.in)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestIntJSON(t *testing.T) {
	var v struct {
		Amount Int `json:"amount"`
	}
	assert.Nil(t, json.Unmarshal([]byte(`{"amount":"1000000000000000000000"}`), &v))
	assert.Equal(t, "1000000000000000000000", v.Amount.String())

	assert.Nil(t, json.Unmarshal([]byte(`{"amount":42}`), &v))
	assert.Equal(t, "42", v.Amount.String())

	raw, err := json.Marshal(v)
	assert.Nil(t, err)
	assert.Equal(t, `{"amount":"42"}`, string(raw))
}

func TestBytes32(t *testing.T) {
	w := NewInt(0x0102).Bytes32()
	assert.Equal(t, byte(0x01), w[30])
	assert.Equal(t, byte(0x02), w[31])
	for i := 0; i < 30; i++ {
		if w[i] != 0 {
			t.Fatalf("byte %d not zero", i)
		}
	}
}

func TestSum(t *testing.T) {
	total, err := Sum(NewInt(1), NewInt(2), nil, NewInt(3))
	assert.Nil(t, err)
	assert.Equal(t, "6", total.String())

	_, err = Sum(MaxInt, NewInt(1))
	assert.IsErr(t, errors.ErrOverflow, err)
}
