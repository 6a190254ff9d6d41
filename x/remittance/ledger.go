package remittance

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/orm"
	"github.com/remitchain/remit/x/cash"
)

// CustodyAddress is the account holding the value of all transfers that
// were not withdrawn yet. No key controls it, only the ledger moves value
// out of it.
var CustodyAddress = remit.NewCondition("remittance", "custody", nil).Address()

// Ledger keeps the transfer records and the KYC allow-list. Every state
// changing method either applies all of its writes or none of them.
type Ledger struct {
	bank      cash.Controller
	transfers TransferBucket
	kyc       orm.Bucket
	config    orm.Bucket
}

// NewLedger returns a ledger that moves value using the given bank. A
// ledger used only for reads may be given a nil bank.
func NewLedger(bank cash.Controller) *Ledger {
	return &Ledger{
		bank:      bank,
		transfers: NewTransferBucket(),
		kyc:       NewKycBucket(),
		config:    NewConfigBucket(),
	}
}

// Deposit locks amount in custody and records a new transfer from sender
// to recipient. The id of the transfer is the transfer count before the
// call.
func (l *Ledger) Deposit(
	ctx remit.Context,
	db remit.KVStore,
	sender, recipient remit.Address,
	amount, fxRate coin.Int,
	sourceCurrency, targetCurrency string,
) (*TransferCreated, error) {
	if err := recipient.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidRecipient, err.Error())
	}
	if recipient.IsZero() {
		return nil, errors.Wrap(ErrInvalidRecipient, "zero address")
	}
	if !amount.IsPositive() {
		return nil, ErrZeroAmount
	}

	conf, err := l.Config(db)
	if err != nil {
		return nil, err
	}
	if conf.EnforceKyc {
		ok, err := l.KycVerified(db, sender)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Wrapf(ErrNotVerified, "%s", sender)
		}
	}

	t := &Transfer{
		Sender:         sender.Clone(),
		Recipient:      recipient.Clone(),
		Amount:         amount.Clone(),
		FxRate:         fxRate.Clone(),
		SourceCurrency: sourceCurrency,
		TargetCurrency: targetCurrency,
	}
	var id uint64
	err = remit.InSavepoint(db, func(db remit.KVStore) error {
		if err := l.bank.MoveValue(ctx, db, sender, CustodyAddress, amount); err != nil {
			return errors.Wrap(err, "cannot lock value")
		}
		var err error
		id, err = l.transfers.Append(db, t)
		return err
	})
	if err != nil {
		return nil, err
	}

	remit.GetLogger(ctx).Debug("transfer created", "id", id, "amount", amount.String())
	return &TransferCreated{
		ID:        id,
		Sender:    t.Sender,
		Recipient: t.Recipient,
		Amount:    t.Amount,
	}, nil
}

// Withdraw pays the value of an open transfer to its recipient. The
// transfer is marked as withdrawn before the value moves, so a withdraw
// issued by the recipient while receiving the payout fails. If the
// payout fails the transfer stays open.
func (l *Ledger) Withdraw(ctx remit.Context, db remit.KVStore, id uint64) (*TransferSettled, error) {
	var t *Transfer
	err := remit.InSavepoint(db, func(db remit.KVStore) error {
		var err error
		t, err = l.GetTransfer(db, id)
		if err != nil {
			return err
		}
		if t.Withdrawn {
			return errors.Wrapf(ErrAlreadyWithdrawn, "transfer %d", id)
		}

		t.Withdrawn = true
		if err := l.transfers.Save(db, orm.NewSimpleObj(TransferKey(id), t)); err != nil {
			return errors.Wrap(err, "cannot store transfer")
		}

		if err := l.bank.MoveValue(ctx, db, CustodyAddress, t.Recipient, t.Amount); err != nil {
			return errors.Wrap(err, "payout")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	remit.GetLogger(ctx).Debug("transfer settled", "id", id, "amount", t.Amount.String())
	return &TransferSettled{
		ID:        id,
		Recipient: t.Recipient,
		Amount:    t.Amount,
	}, nil
}

// SetKycStatus sets the verification flag of an account. Only the admin
// may call it. Setting the current value again is allowed.
func (l *Ledger) SetKycStatus(ctx remit.Context, db remit.KVStore, caller, account remit.Address, verified bool) (*KycStatusUpdated, error) {
	if err := account.Validate(); err != nil {
		return nil, errors.Wrap(err, "account")
	}
	admin, err := l.Admin(db)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.Equals(caller) {
		return nil, errors.Wrapf(ErrNotAdmin, "%s", caller)
	}

	if verified {
		obj := orm.NewSimpleObj(account, &KycStatus{Verified: true})
		if err := l.kyc.Save(db, obj); err != nil {
			return nil, errors.Wrap(err, "cannot store kyc status")
		}
	} else if err := l.kyc.Delete(db, account); err != nil {
		return nil, errors.Wrap(err, "cannot clear kyc status")
	}

	remit.GetLogger(ctx).Debug("kyc status updated", "account", account.String(), "verified", verified)
	return &KycStatusUpdated{Account: account.Clone(), Verified: verified}, nil
}

// KycVerified returns the verification flag of an account, false for
// accounts the admin never verified.
func (l *Ledger) KycVerified(db remit.ReadOnlyKVStore, account remit.Address) (bool, error) {
	if len(account) == 0 {
		return false, nil
	}
	obj, err := l.kyc.Get(db, account)
	if err != nil {
		return false, err
	}
	return obj != nil, nil
}

// TransferCount returns the number of transfers ever created.
func (l *Ledger) TransferCount(db remit.ReadOnlyKVStore) (uint64, error) {
	return l.transfers.Count(db)
}

// GetTransfer returns the transfer with given id.
func (l *Ledger) GetTransfer(db remit.ReadOnlyKVStore, id uint64) (*Transfer, error) {
	n, err := l.transfers.Count(db)
	if err != nil {
		return nil, err
	}
	if id >= n {
		return nil, errors.Wrapf(ErrInvalidTransferID, "%d out of range, count %d", id, n)
	}
	return l.transfers.Load(db, id)
}

// PendingTransfer is an open transfer together with its id.
type PendingTransfer struct {
	ID uint64
	*Transfer
}

// PendingFor returns the transfers addressed to recipient that can still
// be withdrawn, ordered by id.
func (l *Ledger) PendingFor(db remit.ReadOnlyKVStore, recipient remit.Address) ([]PendingTransfer, error) {
	objs, err := l.transfers.GetIndexed(db, "recipient", recipient)
	if err != nil {
		return nil, err
	}
	var res []PendingTransfer
	for _, obj := range objs {
		t := AsTransfer(obj)
		if t == nil || t.Withdrawn {
			continue
		}
		res = append(res, PendingTransfer{
			ID:       uint64(orm.DecodeSequence(obj.Key())),
			Transfer: t,
		})
	}
	return res, nil
}

// Reconcile compares the custody balance with the value of all open
// transfers. It fails with ErrState if custody holds less than what is
// owed. Custody may hold more when value was sent to it directly.
func (l *Ledger) Reconcile(db remit.ReadOnlyKVStore) (custody, open coin.Int, err error) {
	custody, err = l.bank.Balance(db, CustodyAddress)
	if err != nil {
		return nil, nil, errors.Wrap(err, "custody balance")
	}
	open = coin.NewInt(0)
	err = l.transfers.Iterate(db, func(obj orm.Object) error {
		t := AsTransfer(obj)
		if t.Withdrawn {
			return nil
		}
		var err error
		open, err = open.Add(t.Amount)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	if !custody.IsGTE(open) {
		return custody, open, errors.Wrapf(errors.ErrState, "custody %s below open transfers %s", custody, open)
	}
	return custody, open, nil
}

// Config returns the ledger configuration. A chain started without one
// has no admin and does not enforce KYC.
func (l *Ledger) Config(db remit.ReadOnlyKVStore) (*Config, error) {
	obj, err := l.config.Get(db, configKey)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load config")
	}
	if obj == nil {
		return &Config{}, nil
	}
	return obj.Value().(*Config), nil
}

// Admin returns the address allowed to change KYC flags.
func (l *Ledger) Admin(db remit.ReadOnlyKVStore) (remit.Address, error) {
	conf, err := l.Config(db)
	if err != nil {
		return nil, err
	}
	return conf.Admin, nil
}

// Call runs a view call against the ledger and returns its ABI encoded
// result.
func (l *Ledger) Call(db remit.ReadOnlyKVStore, c ViewCall) ([]byte, error) {
	return c.call(db, l)
}

func (l *Ledger) setConfig(db remit.KVStore, conf *Config) error {
	return l.config.Save(db, orm.NewSimpleObj(configKey, conf))
}
