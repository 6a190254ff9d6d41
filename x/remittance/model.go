package remittance

import (
	"github.com/gogo/protobuf/proto"
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/orm"
)

const (
	transferBucketName = "transfers"
	kycBucketName      = "kyc"
	configBucketName   = "remitconf"
)

// Transfer is a single escrowed remittance. Only Withdrawn ever changes
// after the record is created.
type Transfer struct {
	Sender         remit.Address `protobuf:"bytes,1,opt,name=sender,proto3,casttype=github.com/remitchain/remit.Address" json:"sender,omitempty"`
	Recipient      remit.Address `protobuf:"bytes,2,opt,name=recipient,proto3,casttype=github.com/remitchain/remit.Address" json:"recipient,omitempty"`
	Amount         coin.Int      `protobuf:"bytes,3,opt,name=amount,proto3,casttype=github.com/remitchain/remit/coin.Int" json:"amount,omitempty"`
	FxRate         coin.Int      `protobuf:"bytes,4,opt,name=fx_rate,json=fxRate,proto3,casttype=github.com/remitchain/remit/coin.Int" json:"fx_rate,omitempty"`
	SourceCurrency string        `protobuf:"bytes,5,opt,name=source_currency,json=sourceCurrency,proto3" json:"source_currency,omitempty"`
	TargetCurrency string        `protobuf:"bytes,6,opt,name=target_currency,json=targetCurrency,proto3" json:"target_currency,omitempty"`
	Withdrawn      bool          `protobuf:"varint,7,opt,name=withdrawn,proto3" json:"withdrawn,omitempty"`
}

var _ orm.CloneableData = (*Transfer)(nil)

func (t *Transfer) Marshal() ([]byte, error) {
	return proto.Marshal((*transferMsg)(t))
}

func (t *Transfer) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*transferMsg)(t))
}

type transferMsg Transfer

func (m *transferMsg) Reset()         { *m = transferMsg{} }
func (m *transferMsg) String() string { return proto.CompactTextString(m) }
func (*transferMsg) ProtoMessage()    {}

func (t *Transfer) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", t.Sender.Validate())
	switch {
	case t.Recipient.Validate() != nil:
		errs = errors.Append(errs, errors.Field("Recipient", ErrInvalidRecipient, "invalid length"))
	case t.Recipient.IsZero():
		errs = errors.Append(errs, errors.Field("Recipient", ErrInvalidRecipient, "zero address"))
	}
	if !t.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", ErrZeroAmount)
	} else {
		errs = errors.AppendField(errs, "Amount", t.Amount.Validate())
	}
	errs = errors.AppendField(errs, "FxRate", t.FxRate.Validate())
	return errs
}

func (t *Transfer) Copy() orm.CloneableData {
	return &Transfer{
		Sender:         t.Sender.Clone(),
		Recipient:      t.Recipient.Clone(),
		Amount:         t.Amount.Clone(),
		FxRate:         t.FxRate.Clone(),
		SourceCurrency: t.SourceCurrency,
		TargetCurrency: t.TargetCurrency,
		Withdrawn:      t.Withdrawn,
	}
}

// AsTransfer will safely type-cast any value from TransferBucket
func AsTransfer(obj orm.Object) *Transfer {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Transfer)
}

// TransferKey returns the store key of the transfer with given index.
func TransferKey(id uint64) []byte {
	return orm.EncodeSequence(int64(id))
}

// TransferBucket stores transfers under their 8 byte big endian index,
// so iteration follows creation order.
type TransferBucket struct {
	orm.Bucket
	count orm.Sequence
}

// NewTransferBucket returns a bucket indexed by sender and recipient.
func NewTransferBucket() TransferBucket {
	b := orm.NewBucket(transferBucketName, orm.NewSimpleObj(nil, new(Transfer))).
		WithIndex("sender", senderIndex).
		WithIndex("recipient", recipientIndex)
	return TransferBucket{
		Bucket: b,
		count:  b.Sequence(orm.SeqID),
	}
}

// Count returns the number of transfers ever created.
func (b TransferBucket) Count(db remit.ReadOnlyKVStore) (uint64, error) {
	n, err := b.count.Latest(db)
	return uint64(n), err
}

// Append stores the transfer under the next free index.
func (b TransferBucket) Append(db remit.KVStore, t *Transfer) (uint64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	n, err := b.count.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire index")
	}
	id := uint64(n - 1)
	if err := b.Save(db, orm.NewSimpleObj(TransferKey(id), t)); err != nil {
		return 0, errors.Wrap(err, "cannot store transfer")
	}
	return id, nil
}

// Load returns the transfer stored under given index.
func (b TransferBucket) Load(db remit.ReadOnlyKVStore, id uint64) (*Transfer, error) {
	obj, err := b.Get(db, TransferKey(id))
	if err != nil {
		return nil, err
	}
	t := AsTransfer(obj)
	if t == nil {
		return nil, errors.Wrapf(ErrInvalidTransferID, "%d", id)
	}
	return t, nil
}

func senderIndex(obj orm.Object) ([]byte, error) {
	t, ok := obj.Value().(*Transfer)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return t.Sender, nil
}

func recipientIndex(obj orm.Object) ([]byte, error) {
	t, ok := obj.Value().(*Transfer)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return t.Recipient, nil
}

// KycStatus is stored for verified accounts only. An account without an
// entry is not verified.
type KycStatus struct {
	Verified bool `protobuf:"varint,1,opt,name=verified,proto3" json:"verified,omitempty"`
}

var _ orm.CloneableData = (*KycStatus)(nil)

func (k *KycStatus) Marshal() ([]byte, error) {
	return proto.Marshal((*kycStatusMsg)(k))
}

func (k *KycStatus) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*kycStatusMsg)(k))
}

type kycStatusMsg KycStatus

func (m *kycStatusMsg) Reset()         { *m = kycStatusMsg{} }
func (m *kycStatusMsg) String() string { return proto.CompactTextString(m) }
func (*kycStatusMsg) ProtoMessage()    {}

func (k *KycStatus) Validate() error {
	if !k.Verified {
		return errors.Wrap(errors.ErrState, "only verified accounts are stored")
	}
	return nil
}

func (k *KycStatus) Copy() orm.CloneableData {
	return &KycStatus{Verified: k.Verified}
}

// NewKycBucket returns the bucket of verified accounts, keyed by address.
func NewKycBucket() orm.Bucket {
	return orm.NewBucket(kycBucketName, orm.NewSimpleObj(nil, new(KycStatus)))
}

var configKey = []byte("config")

// Config is set once at genesis.
type Config struct {
	// Admin is the only account allowed to change KYC flags.
	Admin remit.Address `protobuf:"bytes,1,opt,name=admin,proto3,casttype=github.com/remitchain/remit.Address" json:"admin"`
	// EnforceKyc rejects deposits of senders that are not verified.
	EnforceKyc bool `protobuf:"varint,2,opt,name=enforce_kyc,json=enforceKyc,proto3" json:"enforce_kyc"`
}

var _ orm.CloneableData = (*Config)(nil)

func (c *Config) Marshal() ([]byte, error) {
	return proto.Marshal((*configMsg)(c))
}

func (c *Config) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*configMsg)(c))
}

type configMsg Config

func (m *configMsg) Reset()         { *m = configMsg{} }
func (m *configMsg) String() string { return proto.CompactTextString(m) }
func (*configMsg) ProtoMessage()    {}

func (c *Config) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Field("Admin", err, "")
	}
	if c.Admin.IsZero() {
		return errors.Field("Admin", errors.ErrInput, "zero address")
	}
	return nil
}

func (c *Config) Copy() orm.CloneableData {
	return &Config{Admin: c.Admin.Clone(), EnforceKyc: c.EnforceKyc}
}

// NewConfigBucket returns the bucket holding the single Config entry.
func NewConfigBucket() orm.Bucket {
	return orm.NewBucket(configBucketName, orm.NewSimpleObj(nil, new(Config)))
}
