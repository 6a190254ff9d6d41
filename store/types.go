package store

import "github.com/remitchain/remit"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = remit.ReadOnlyKVStore
	SetDeleter       = remit.SetDeleter
	KVStore          = remit.KVStore
	Batch            = remit.Batch
	Iterator         = remit.Iterator
	CacheableKVStore = remit.CacheableKVStore
	KVCacheWrap      = remit.KVCacheWrap
	CommitKVStore    = remit.CommitKVStore
	CommitID         = remit.CommitID
	Model            = remit.Model
)

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return remit.Pair(key, value)
}
