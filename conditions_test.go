package remit_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParse(t *testing.T) {
	cond := remit.NewCondition("sigs", "ed25519", []byte{0xCA, 0xFE})
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte{0xCA, 0xFE}, data)
	assert.Equal(t, "sigs/ed25519/CAFE", cond.String())
	assert.NoError(t, cond.Validate())

	// data may contain any byte, including new lines and slashes
	cond = remit.NewCondition("remittance", "custody", []byte("a/\nb"))
	assert.NoError(t, cond.Validate())

	bad := remit.Condition("no-sections")
	_, _, _, err = bad.Parse()
	assert.True(t, errors.ErrInput.Is(err))
	assert.True(t, errors.ErrInput.Is(bad.Validate()))
	assert.True(t, strings.HasPrefix(bad.String(), "Invalid Condition"))
}

func TestConditionAddress(t *testing.T) {
	a := remit.NewCondition("sigs", "ed25519", []byte{1}).Address()
	b := remit.NewCondition("sigs", "ed25519", []byte{2}).Address()
	assert.Len(t, a, remit.AddressLength)
	assert.NoError(t, a.Validate())
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(a.Clone()))
	assert.Nil(t, remit.NewAddress(nil))
}

func TestParseAddress(t *testing.T) {
	hexAddr := strings.Repeat("0a", remit.AddressLength)
	want := remit.Address(make([]byte, remit.AddressLength))
	for i := range want {
		want[i] = 0x0a
	}

	cases := map[string]struct {
		input   string
		want    remit.Address
		wantErr *errors.Error
	}{
		"lower case":   {input: hexAddr, want: want},
		"upper case":   {input: strings.ToUpper(hexAddr), want: want},
		"0x prefix":    {input: "0x" + hexAddr, want: want},
		"too short":    {input: "0a0b", wantErr: errors.ErrInput},
		"too long":     {input: hexAddr + "00", wantErr: errors.ErrInput},
		"not hex":      {input: strings.Repeat("zz", remit.AddressLength), wantErr: errors.ErrInput},
		"empty string": {input: "", wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := remit.ParseAddress(tc.input)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
				assert.Equal(t, strings.ToUpper(hexAddr), got.String())
			}
		})
	}
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, remit.Address(nil).IsZero())
	assert.True(t, remit.Address(make([]byte, remit.AddressLength)).IsZero())
	assert.False(t, remit.NewAddress([]byte("x")).IsZero())
	assert.Equal(t, "(nil)", remit.Address(nil).String())
}

func TestAddressUnmarshalJSON(t *testing.T) {
	hexAddr := strings.Repeat("6A", remit.AddressLength)
	plain, err := remit.ParseAddress(hexAddr)
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr remit.Address
	}{
		"default decoding": {
			json:     `"` + hexAddr + `"`,
			wantAddr: plain,
		},
		"0x decoding": {
			json:     `"0x` + hexAddr + `"`,
			wantAddr: plain,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: remit.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"wrong length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a remit.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := remit.NewAddress([]byte("someone"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var back remit.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, addr, back)
}
