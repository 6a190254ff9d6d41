package remittance

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/x"
	"github.com/remitchain/remit/x/cash"
)

const (
	depositCost      int64 = 300
	withdrawCost     int64 = 100
	setKycStatusCost int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r remit.Registry, auth x.Authenticator, ledger *Ledger) {
	r.Handle(DepositMsg{}.Path(), DepositHandler{auth: auth, ledger: ledger})
	r.Handle(WithdrawMsg{}.Path(), WithdrawHandler{ledger: ledger})
	r.Handle(SetKycStatusMsg{}.Path(), SetKycStatusHandler{auth: auth, ledger: ledger})
}

// DepositHandler locks the value attached to the transaction in custody
// and records a new transfer.
type DepositHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ remit.Handler = DepositHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DepositHandler) Check(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &remit.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver creates the transfer and returns its ABI encoded id.
func (h DepositHandler) Deliver(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.DeliverResult, error) {
	msg, sender, value, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ev, err := h.ledger.Deposit(ctx, db, sender, msg.Recipient, value, msg.FxRate, msg.SourceCurrency, msg.TargetCurrency)
	if err != nil {
		return nil, err
	}
	return &remit.DeliverResult{
		Data:   uintWord(ev.ID),
		Events: []remit.Event{ev.Event()},
	}, nil
}

func (h DepositHandler) validate(ctx remit.Context, tx remit.Tx) (*DepositMsg, remit.Address, coin.Int, error) {
	var msg DepositMsg
	if err := remit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "deposit requires a signer")
	}
	value := cash.AttachedValue(tx)
	if !value.IsPositive() {
		return nil, nil, nil, errors.Wrap(ErrZeroAmount, "no value attached")
	}
	return &msg, signer.Address(), value, nil
}

// WithdrawHandler pays an open transfer to its recipient. Anyone may
// send it, the payout address is taken from the transfer.
type WithdrawHandler struct {
	ledger *Ledger
}

var _ remit.Handler = WithdrawHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h WithdrawHandler) Check(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.CheckResult, error) {
	if _, err := h.validate(tx); err != nil {
		return nil, err
	}
	return &remit.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver settles the transfer.
func (h WithdrawHandler) Deliver(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.DeliverResult, error) {
	id, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	ev, err := h.ledger.Withdraw(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return &remit.DeliverResult{Events: []remit.Event{ev.Event()}}, nil
}

func (h WithdrawHandler) validate(tx remit.Tx) (uint64, error) {
	var msg WithdrawMsg
	if err := remit.LoadMsg(tx, &msg); err != nil {
		return 0, errors.Wrap(err, "load msg")
	}
	if cash.AttachedValue(tx).IsPositive() {
		return 0, errors.Wrap(ErrNotPayable, "withdraw")
	}
	return transferID(msg.TransferID)
}

// SetKycStatusHandler lets the admin change the verification flag of an
// account.
type SetKycStatusHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ remit.Handler = SetKycStatusHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SetKycStatusHandler) Check(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remit.CheckResult{GasAllocated: setKycStatusCost}, nil
}

// Deliver updates the flag.
func (h SetKycStatusHandler) Deliver(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	caller := x.MainSigner(ctx, h.auth).Address()
	ev, err := h.ledger.SetKycStatus(ctx, db, caller, msg.Account, msg.Verified)
	if err != nil {
		return nil, err
	}
	return &remit.DeliverResult{Events: []remit.Event{ev.Event()}}, nil
}

// validate rejects the call in check already when the admin did not sign.
func (h SetKycStatusHandler) validate(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*SetKycStatusMsg, error) {
	var msg SetKycStatusMsg
	if err := remit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if cash.AttachedValue(tx).IsPositive() {
		return nil, errors.Wrap(ErrNotPayable, "setKycStatus")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(ErrNotAdmin, "no signer")
	}
	admin, err := h.ledger.Admin(db)
	if err != nil {
		return nil, err
	}
	if !admin.Equals(signer.Address()) {
		return nil, errors.Wrapf(ErrNotAdmin, "%s", signer.Address())
	}
	return &msg, nil
}
