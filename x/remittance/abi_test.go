package remittance

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leftWord and rightWord pad hex encoded values to a 32 byte word.
func leftWord(s string) string {
	return strings.Repeat("0", 64-len(s)) + s
}

func rightWord(s string) string {
	return s + strings.Repeat("0", 64-len(s))
}

func fromHex(t testing.TB, parts ...string) []byte {
	t.Helper()
	raw, err := hex.DecodeString(strings.Join(parts, ""))
	require.NoError(t, err)
	return raw
}

func TestKeccak256(t *testing.T) {
	assert.Equal(t,
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		hex.EncodeToString(Keccak256()))
	assert.Equal(t,
		"ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		hex.EncodeToString(Keccak256([]byte("Transfer(address,address,uint256)"))))
}

func TestMethodSelectors(t *testing.T) {
	cases := map[string]struct {
		method Method
		want   string
	}{
		"deposit":       {MethodDeposit, "19e5c034"},
		"withdraw":      {MethodWithdraw, "2e1a7d4d"},
		"setKycStatus":  {MethodSetKycStatus, "e37a35c7"},
		"kycVerified":   {MethodKycVerified, "a5410a66"},
		"transferCount": {MethodTransferCount, "e3d33fc9"},
		"getTransfer":   {MethodGetTransfer, "c16fe907"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, tc.method.Name)
			assert.Equal(t, tc.want, hex.EncodeToString(tc.method.Selector[:]))
		})
	}
}

func TestEventTopics(t *testing.T) {
	assert.Equal(t,
		"ce52e6c8ab1884f31e269eb72532a31d761d2b5d3ef37f10a3421bf26864b759",
		hex.EncodeToString(TopicTransferCreated))
	assert.Equal(t,
		"bbc99c3e8674c1bbad5313fe0e7b5ee7bdfe63eb2018505aaeeae8f290a985ce",
		hex.EncodeToString(TopicTransferSettled))
	assert.Equal(t,
		"68f988a99a662709db2880bcf3565145de442766ee59e35b587df59dd619bd3d",
		hex.EncodeToString(TopicKycStatusUpdated))
}

func TestDepositCalldata(t *testing.T) {
	recipient := remit.Address(fromHex(t, strings.Repeat("11", 20)))
	want := fromHex(t,
		"19e5c034",
		leftWord(strings.Repeat("11", 20)),
		leftWord("209e"),
		leftWord("80"),
		leftWord("c0"),
		leftWord("3"),
		rightWord("555344"),
		leftWord("3"),
		rightWord("494e52"),
	)

	msg := &DepositMsg{
		Recipient:      recipient,
		FxRate:         coin.NewInt(8350),
		SourceCurrency: "USD",
		TargetCurrency: "INR",
	}
	got, err := msg.Marshal()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	decoded, err := DecodeCall(want)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestWithdrawAndKycCalldata(t *testing.T) {
	withdraw := &WithdrawMsg{TransferID: coin.NewInt(7)}
	raw, err := withdraw.Marshal()
	require.NoError(t, err)
	assert.Equal(t, fromHex(t, "2e1a7d4d", leftWord("7")), raw)

	decoded, err := DecodeCall(raw)
	require.NoError(t, err)
	assert.Equal(t, withdraw, decoded)

	account := remit.Address(fromHex(t, strings.Repeat("ab", 20)))
	kyc := &SetKycStatusMsg{Account: account, Verified: true}
	raw, err = kyc.Marshal()
	require.NoError(t, err)
	assert.Equal(t, fromHex(t, "e37a35c7", leftWord(strings.Repeat("ab", 20)), leftWord("1")), raw)

	decoded, err = DecodeCall(raw)
	require.NoError(t, err)
	assert.Equal(t, kyc, decoded)
}

func TestDecodeCallErrors(t *testing.T) {
	addr := strings.Repeat("22", 20)
	cases := map[string][]byte{
		"empty":             nil,
		"short selector":    fromHex(t, "19e5c0"),
		"unknown selector":  fromHex(t, "deadbeef"),
		"view method":       EncodeTransferCountCall(),
		"missing argument":  fromHex(t, "2e1a7d4d", "00"),
		"dirty address":     fromHex(t, "e37a35c7", leftWord("01"+addr), leftWord("1")),
		"bool out of range": fromHex(t, "e37a35c7", leftWord(addr), leftWord("2")),
		"string past end": fromHex(t, "19e5c034",
			leftWord(addr), leftWord("1"), leftWord("80"), leftWord("c0"),
			leftWord("40"), rightWord("55")),
		"unaligned offset": fromHex(t, "19e5c034",
			leftWord(addr), leftWord("1"), leftWord("81"), leftWord("c0")),
	}
	for name, calldata := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCall(calldata)
			if !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
		})
	}
}

func TestUnmarshalWrongSelector(t *testing.T) {
	raw, err := (&WithdrawMsg{TransferID: coin.NewInt(1)}).Marshal()
	require.NoError(t, err)
	var msg DepositMsg
	err = msg.Unmarshal(raw)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestTransferResult(t *testing.T) {
	tr := &Transfer{
		Sender:         remit.Address(fromHex(t, strings.Repeat("01", 20))),
		Recipient:      remit.Address(fromHex(t, strings.Repeat("02", 20))),
		Amount:         coin.NewInt(500),
		FxRate:         coin.NewInt(8350),
		SourceCurrency: "USD",
		TargetCurrency: "PHP",
		Withdrawn:      true,
	}
	raw := EncodeTransferResult(tr)
	want := fromHex(t,
		leftWord(strings.Repeat("01", 20)),
		leftWord(strings.Repeat("02", 20)),
		leftWord("1f4"),
		leftWord("209e"),
		leftWord("e0"),
		leftWord("120"),
		leftWord("1"),
		leftWord("3"),
		rightWord("555344"),
		leftWord("3"),
		rightWord("504850"),
	)
	assert.Equal(t, want, raw)

	got, err := DecodeTransferResult(raw)
	require.NoError(t, err)
	assert.Equal(t, tr, got)
}

func TestDecodeViewCall(t *testing.T) {
	account := remit.Address(fromHex(t, strings.Repeat("33", 20)))

	c, err := DecodeViewCall(EncodeKycVerifiedCall(account))
	require.NoError(t, err)
	assert.Equal(t, KycVerifiedCall{Account: account}, c)
	assert.Equal(t, MethodKycVerified, c.Method())

	c, err = DecodeViewCall(EncodeTransferCountCall())
	require.NoError(t, err)
	assert.Equal(t, TransferCountCall{}, c)

	c, err = DecodeViewCall(EncodeGetTransferCall(12))
	require.NoError(t, err)
	assert.Equal(t, GetTransferCall{ID: coin.NewInt(12)}, c)

	raw, err := (&WithdrawMsg{TransferID: coin.NewInt(1)}).Marshal()
	require.NoError(t, err)
	_, err = DecodeViewCall(raw)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestTransferIDRange(t *testing.T) {
	id, err := transferID(coin.NewInt(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	_, err = transferID(coin.MaxInt)
	assert.True(t, ErrInvalidTransferID.Is(err))
}
