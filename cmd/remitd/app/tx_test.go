package remitd

import (
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest"
	"github.com/remitchain/remit/x/cash"
	"github.com/remitchain/remit/x/remittance"
	"github.com/remitchain/remit/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxGetMsg(t *testing.T) {
	key := sigs.GenPrivateKey()
	signer, err := sigs.SignerAddress(key)
	require.NoError(t, err)
	dest := remittest.RandomAddr(t)

	withdraw := &remittance.WithdrawMsg{TransferID: coin.NewInt(3)}
	calldata, err := withdraw.Marshal()
	require.NoError(t, err)

	signed := func(tx *Tx) *Tx {
		sig, err := sigs.SignTx(key, tx, "remit-test-chain", 0)
		require.NoError(t, err)
		tx.Signatures = []*sigs.StdSignature{sig}
		return tx
	}

	cases := map[string]struct {
		tx      *Tx
		wantMsg remit.Msg
		wantErr *errors.Error
	}{
		"call": {
			tx:      &Tx{Data: calldata},
			wantMsg: withdraw,
		},
		"call to ledger address": {
			tx:      &Tx{Data: calldata, To: remittance.CustodyAddress},
			wantMsg: withdraw,
		},
		"call to other account": {
			tx:      &Tx{Data: calldata, To: dest},
			wantErr: errors.ErrInput,
		},
		"bad calldata": {
			tx:      &Tx{Data: []byte{1, 2, 3, 4}},
			wantErr: errors.ErrInput,
		},
		"send": {
			tx:      signed(&Tx{To: dest, Value: coin.NewInt(10)}),
			wantMsg: &cash.SendMsg{Source: signer, Destination: dest, Amount: coin.NewInt(10)},
		},
		"unsigned send": {
			tx:      &Tx{To: dest, Value: coin.NewInt(10)},
			wantErr: errors.ErrUnauthorized,
		},
		"empty": {
			tx:      &Tx{},
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := tc.tx.Marshal()
			require.NoError(t, err)
			decoded, err := TxDecoder(raw)
			require.NoError(t, err)

			msg, err := decoded.GetMsg()
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantMsg, msg)
			}
		})
	}
}

func TestTxSignBytes(t *testing.T) {
	tx := NewSendTx(remittest.RandomAddr(t), coin.NewInt(5))
	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(sigs.GenPrivateKey(), tx, "remit-test-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	signedBytes, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signedBytes)
	assert.Len(t, tx.Signatures, 1)
	assert.Equal(t, coin.NewInt(5), tx.GetValue())
}
