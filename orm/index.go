package orm

import (
	"bytes"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
)

// Index is a secondary index over the objects of a bucket. Many objects may
// share one index value, for example all transfers of a recipient.
type Index interface {
	Name() string

	// Update moves the references of an object after it changed in the
	// bucket. prev is nil on insert and save is nil on delete. The primary
	// key of an object never changes.
	Update(db remit.KVStore, prev, save Object) error

	// Keys returns the primary keys indexed under value, sorted.
	Keys(db remit.ReadOnlyKVStore, value []byte) ([][]byte, error)

	Query(db remit.ReadOnlyKVStore, mod string, data []byte) ([]remit.Model, error)
}

// Indexer returns the index value of an object. A nil value leaves the
// object out of the index.
type Indexer func(Object) ([]byte, error)

const refIndexPrefix = "_i."

// refIndex stores, under every index value, the MultiRef set of primary
// keys holding that value.
type refIndex struct {
	name    string
	prefix  []byte
	indexer Indexer
	refKey  func([]byte) []byte
}

var _ Index = refIndex{}

// NewIndex returns an index named name. refKey turns a primary key into the
// store key of the object, it is used to answer queries. A nil refKey
// queries by primary key.
func NewIndex(name string, indexer Indexer, refKey func([]byte) []byte) Index {
	if refKey == nil {
		refKey = func(k []byte) []byte { return k }
	}
	return refIndex{
		name:    name,
		prefix:  []byte(refIndexPrefix + name + ":"),
		indexer: indexer,
		refKey:  refKey,
	}
}

func (i refIndex) Name() string {
	return i.name
}

func (i refIndex) dbKey(value []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+len(value))
	return append(append(out, i.prefix...), value...)
}

func (i refIndex) Update(db remit.KVStore, prev, save Object) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "nothing to index")
	}
	if prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "primary key changed")
	}

	var before, after []byte
	var err error
	if prev != nil {
		if before, err = i.indexer(prev); err != nil {
			return err
		}
	}
	if save != nil {
		if after, err = i.indexer(save); err != nil {
			return err
		}
	}
	if prev != nil && save != nil && bytes.Equal(before, after) {
		return nil
	}
	if before != nil {
		if err := i.edit(db, before, prev.Key(), (*MultiRef).Remove); err != nil {
			return err
		}
	}
	if after != nil {
		if err := i.edit(db, after, save.Key(), (*MultiRef).Add); err != nil {
			return err
		}
	}
	return nil
}

// edit applies op to the reference set stored under value. An emptied set
// is deleted.
func (i refIndex) edit(db remit.KVStore, value, pk []byte, op func(*MultiRef, []byte) error) error {
	key := i.dbKey(value)
	refs, err := loadRefs(db, key)
	if err != nil {
		return err
	}
	if err := op(refs, pk); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	if len(refs.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

func loadRefs(db remit.ReadOnlyKVStore, key []byte) (*MultiRef, error) {
	var refs MultiRef
	raw, err := db.Get(key)
	if err != nil || raw == nil {
		return &refs, err
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "index refs")
	}
	return &refs, nil
}

func (i refIndex) Keys(db remit.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := loadRefs(db, i.dbKey(value))
	if err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query answers a key query with the objects indexed under data and a
// prefix query with the objects of every index value starting with data.
func (i refIndex) Query(db remit.ReadOnlyKVStore, mod string, data []byte) ([]remit.Model, error) {
	var keys [][]byte
	switch mod {
	case remit.KeyQueryMod:
		refs, err := i.Keys(db, data)
		if err != nil {
			return nil, err
		}
		keys = refs
	case remit.PrefixQueryMod:
		sets, err := queryPrefix(db, i.dbKey(data))
		if err != nil {
			return nil, err
		}
		for _, m := range sets {
			var refs MultiRef
			if err := refs.Unmarshal(m.Value); err != nil {
				return nil, errors.Wrap(err, "index refs")
			}
			keys = append(keys, refs.Refs...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}

	if len(keys) == 0 {
		return nil, nil
	}
	res := make([]remit.Model, len(keys))
	for j, pk := range keys {
		key := i.refKey(pk)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = remit.Pair(key, value)
	}
	return res, nil
}
