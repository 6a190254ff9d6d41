package orm

import (
	"github.com/remitchain/remit"
)

// Object is a value stored in a bucket under its key. The key is relative
// to the bucket prefix.
type Object interface {
	Key() []byte
	SetKey([]byte)
	// Clone returns an empty object of the same type, ready to be loaded.
	Clone() Object
	// Validate is called before the object is saved.
	Validate() error
	Value() remit.Persistent
}

// Reader loads objects by key.
type Reader interface {
	Get(db remit.ReadOnlyKVStore, key []byte) (Object, error)
}

// CloneableData is a value SimpleObj can store: a transfer, a wallet, a
// kyc flag.
type CloneableData interface {
	remit.Persistent
	Validate() error
	Copy() CloneableData
}
