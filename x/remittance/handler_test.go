package remittance

import (
	"context"
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest"
	"github.com/remitchain/remit/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	r := &recordingRegistry{}
	RegisterRoutes(r, &remittest.Auth{}, NewLedger(cash.NewController()))
	assert.Equal(t, []string{"remittance/deposit", "remittance/withdraw", "remittance/set_kyc"}, r.paths)
}

type recordingRegistry struct {
	paths []string
}

func (r *recordingRegistry) Handle(path string, h remit.Handler) {
	r.paths = append(r.paths, path)
}

func TestDepositHandler(t *testing.T) {
	alice := remittest.NewCondition()
	bob := remittest.RandomAddr(t)

	cases := map[string]struct {
		signers     []remit.Condition
		msg         remit.Msg
		value       uint64
		wantCheck   *errors.Error
		wantDeliver *errors.Error
	}{
		"not a deposit": {
			signers:     []remit.Condition{alice},
			msg:         &WithdrawMsg{TransferID: coin.NewInt(0)},
			value:       100,
			wantCheck:   errors.ErrType,
			wantDeliver: errors.ErrType,
		},
		"zero recipient": {
			signers:     []remit.Condition{alice},
			msg:         &DepositMsg{Recipient: make(remit.Address, 20)},
			value:       100,
			wantCheck:   ErrInvalidRecipient,
			wantDeliver: ErrInvalidRecipient,
		},
		"no value attached": {
			signers:     []remit.Condition{alice},
			msg:         &DepositMsg{Recipient: bob},
			wantCheck:   ErrZeroAmount,
			wantDeliver: ErrZeroAmount,
		},
		"not signed": {
			msg:         &DepositMsg{Recipient: bob},
			value:       100,
			wantCheck:   errors.ErrUnauthorized,
			wantDeliver: errors.ErrUnauthorized,
		},
		"sender cannot pay": {
			signers:     []remit.Condition{alice},
			msg:         &DepositMsg{Recipient: bob},
			value:       1001,
			wantDeliver: errors.ErrInsufficientAmount,
		},
		"deposit": {
			signers: []remit.Condition{alice},
			msg:     &DepositMsg{Recipient: bob, FxRate: coin.NewInt(5612), SourceCurrency: "EUR", TargetCurrency: "PHP"},
			value:   1000,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newLedgerFixture(t, false)
			f.fund(t, alice.Address(), 1000)
			h := DepositHandler{auth: &remittest.Auth{Signers: tc.signers}, ledger: f.ledger}
			tx := &remittest.Tx{Msg: tc.msg, Value: coin.NewInt(tc.value)}

			cache := f.db.CacheWrap()
			res, err := h.Check(context.Background(), cache, tx)
			if !tc.wantCheck.Is(err) {
				t.Fatalf("check: want %v, got %+v", tc.wantCheck, err)
			}
			cache.Discard()
			if tc.wantCheck == nil {
				assert.Equal(t, depositCost, res.GasAllocated)
			}

			dres, err := h.Deliver(context.Background(), f.db, tx)
			if !tc.wantDeliver.Is(err) {
				t.Fatalf("deliver: want %v, got %+v", tc.wantDeliver, err)
			}
			if tc.wantDeliver != nil {
				assert.Equal(t, uint64(0), f.count(t))
				return
			}
			assert.Equal(t, uintWord(0), dres.Data)
			require.Len(t, dres.Events, 1)
			assert.Equal(t, "TransferCreated", dres.Events[0].Type)
			assert.Equal(t, uint64(1000), f.balance(t, CustodyAddress))
			assert.Equal(t, uint64(0), f.balance(t, alice.Address()))
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	f := newLedgerFixture(t, false)
	alice := remittest.RandomAddr(t)
	bob := remittest.RandomAddr(t)
	f.fund(t, alice, 500)
	_, err := f.deposit(t, alice, bob, 500)
	require.NoError(t, err)

	h := WithdrawHandler{ledger: f.ledger}
	ctx := context.Background()

	_, err = h.Check(ctx, f.db, &remittest.Tx{Msg: &WithdrawMsg{TransferID: coin.NewInt(0)}, Value: coin.NewInt(1)})
	assert.True(t, ErrNotPayable.Is(err))

	_, err = h.Check(ctx, f.db, &remittest.Tx{Msg: &WithdrawMsg{TransferID: coin.MaxInt}})
	assert.True(t, ErrInvalidTransferID.Is(err))

	_, err = h.Deliver(ctx, f.db, &remittest.Tx{Msg: &WithdrawMsg{TransferID: coin.NewInt(1)}})
	assert.True(t, ErrInvalidTransferID.Is(err))

	// no signature needed, the payout goes to the recorded recipient
	tx := &remittest.Tx{Msg: &WithdrawMsg{TransferID: coin.NewInt(0)}}
	res, err := h.Check(ctx, f.db, tx)
	require.NoError(t, err)
	assert.Equal(t, withdrawCost, res.GasAllocated)

	dres, err := h.Deliver(ctx, f.db, tx)
	require.NoError(t, err)
	require.Len(t, dres.Events, 1)
	assert.Equal(t, "TransferSettled", dres.Events[0].Type)
	assert.Equal(t, uint64(500), f.balance(t, bob))

	_, err = h.Deliver(ctx, f.db, tx)
	assert.True(t, ErrAlreadyWithdrawn.Is(err))
}

func TestSetKycStatusHandler(t *testing.T) {
	admin := remittest.NewCondition()
	other := remittest.NewCondition()
	account := remittest.RandomAddr(t)
	msg := &SetKycStatusMsg{Account: account, Verified: true}
	ctx := context.Background()

	cases := map[string]struct {
		signers []remit.Condition
		value   uint64
		wantErr *errors.Error
	}{
		"not signed":      {wantErr: ErrNotAdmin},
		"signed by other": {signers: []remit.Condition{other}, wantErr: ErrNotAdmin},
		"value attached":  {signers: []remit.Condition{admin}, value: 3, wantErr: ErrNotPayable},
		"admin":           {signers: []remit.Condition{admin}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newLedgerFixture(t, false)
			require.NoError(t, f.ledger.setConfig(f.db, &Config{Admin: admin.Address()}))
			h := SetKycStatusHandler{auth: &remittest.Auth{Signers: tc.signers}, ledger: f.ledger}
			tx := &remittest.Tx{Msg: msg, Value: coin.NewInt(tc.value)}
			if _, err := h.Check(ctx, f.db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("check: want %v, got %+v", tc.wantErr, err)
			}
			res, err := h.Deliver(ctx, f.db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("deliver: want %v, got %+v", tc.wantErr, err)
			}
			ok, qerr := f.ledger.KycVerified(f.db, account)
			require.NoError(t, qerr)
			assert.Equal(t, tc.wantErr == nil, ok)
			if tc.wantErr == nil {
				require.Len(t, res.Events, 1)
				assert.Equal(t, "KycStatusUpdated", res.Events[0].Type)
			}
		})
	}
}
