package remittance

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
)

// Messages are serialized as contract calldata, so a transaction built by
// any Ethereum tool for the same call is understood as is.

// DepositMsg is the deposit(address,uint256,string,string) call. The amount
// is the value attached to the transaction.
type DepositMsg struct {
	Recipient      remit.Address
	FxRate         coin.Int
	SourceCurrency string
	TargetCurrency string
}

var _ remit.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string {
	return "remittance/deposit"
}

func (m *DepositMsg) Validate() error {
	var errs error
	switch {
	case m.Recipient.Validate() != nil:
		errs = errors.Append(errs, errors.Field("Recipient", ErrInvalidRecipient, "invalid length"))
	case m.Recipient.IsZero():
		errs = errors.Append(errs, errors.Field("Recipient", ErrInvalidRecipient, "zero address"))
	}
	errs = errors.AppendField(errs, "FxRate", m.FxRate.Validate())
	return errs
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return withSelector(MethodDeposit, packArgs(m.Recipient, m.FxRate, m.SourceCurrency, m.TargetCurrency)), nil
}

func (m *DepositMsg) Unmarshal(calldata []byte) error {
	r, err := argsOf(MethodDeposit, calldata)
	if err != nil {
		return err
	}
	var msg DepositMsg
	if msg.Recipient, err = r.address(0); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if msg.FxRate, err = r.uint256(1); err != nil {
		return errors.Wrap(err, "fx rate")
	}
	if msg.SourceCurrency, err = r.str(2); err != nil {
		return errors.Wrap(err, "source currency")
	}
	if msg.TargetCurrency, err = r.str(3); err != nil {
		return errors.Wrap(err, "target currency")
	}
	*m = msg
	return nil
}

// WithdrawMsg is the withdraw(uint256) call.
type WithdrawMsg struct {
	TransferID coin.Int
}

var _ remit.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return "remittance/withdraw"
}

func (m *WithdrawMsg) Validate() error {
	return errors.AppendField(nil, "TransferID", m.TransferID.Validate())
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return withSelector(MethodWithdraw, packArgs(m.TransferID)), nil
}

func (m *WithdrawMsg) Unmarshal(calldata []byte) error {
	r, err := argsOf(MethodWithdraw, calldata)
	if err != nil {
		return err
	}
	id, err := r.uint256(0)
	if err != nil {
		return errors.Wrap(err, "transfer id")
	}
	m.TransferID = id
	return nil
}

// SetKycStatusMsg is the setKycStatus(address,bool) call.
type SetKycStatusMsg struct {
	Account  remit.Address
	Verified bool
}

var _ remit.Msg = (*SetKycStatusMsg)(nil)

func (SetKycStatusMsg) Path() string {
	return "remittance/set_kyc"
}

func (m *SetKycStatusMsg) Validate() error {
	return errors.AppendField(nil, "Account", m.Account.Validate())
}

func (m *SetKycStatusMsg) Marshal() ([]byte, error) {
	return withSelector(MethodSetKycStatus, packArgs(m.Account, m.Verified)), nil
}

func (m *SetKycStatusMsg) Unmarshal(calldata []byte) error {
	r, err := argsOf(MethodSetKycStatus, calldata)
	if err != nil {
		return err
	}
	var msg SetKycStatusMsg
	if msg.Account, err = r.address(0); err != nil {
		return errors.Wrap(err, "account")
	}
	if msg.Verified, err = r.boolean(1); err != nil {
		return errors.Wrap(err, "verified")
	}
	*m = msg
	return nil
}

func argsOf(m Method, calldata []byte) (abiReader, error) {
	sel, args, err := selector(calldata)
	if err != nil {
		return abiReader{}, err
	}
	if sel != m.Selector {
		return abiReader{}, errors.Wrapf(errors.ErrInput, "selector %x is not %s", sel, m.Signature)
	}
	return abiReader{data: args}, nil
}
