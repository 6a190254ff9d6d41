package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the balance of a single account.
type Wallet struct {
	Balance coin.Int `protobuf:"bytes,1,opt,name=balance,proto3,casttype=github.com/remitchain/remit/coin.Int" json:"balance,omitempty"`
}

var _ orm.CloneableData = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletMsg)(w))
}

func (w *Wallet) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*walletMsg)(w))
}

type walletMsg Wallet

func (m *walletMsg) Reset()         { *m = walletMsg{} }
func (m *walletMsg) String() string { return proto.CompactTextString(m) }
func (*walletMsg) ProtoMessage()    {}

// Validate makes sure the balance fits in 256 bits.
func (w *Wallet) Validate() error {
	return errors.Wrap(w.Balance.Validate(), "balance")
}

// Copy makes a new wallet with the same balance
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{Balance: w.Balance.Clone()}
}

// Add increases the balance, failing on overflow.
func (w *Wallet) Add(amount coin.Int) error {
	sum, err := w.Balance.Add(amount)
	if err != nil {
		return err
	}
	w.Balance = sum
	return nil
}

// Subtract decreases the balance, failing if there is not enough.
func (w *Wallet) Subtract(amount coin.Int) error {
	rest, err := w.Balance.Sub(amount)
	if err != nil {
		return err
	}
	w.Balance = rest
	return nil
}

// NewWallet creates an empty wallet with this address
func NewWallet(key remit.Address) orm.Object {
	return orm.NewSimpleObj(key, new(Wallet))
}

// AsWallet will safely type-cast any value from Bucket
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Wallet)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// GetOrCreate loads the wallet stored under the address or returns a new,
// empty one.
func (b Bucket) GetOrCreate(db remit.ReadOnlyKVStore, key remit.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err == nil && obj == nil {
		obj = NewWallet(key)
	}
	return obj, err
}
