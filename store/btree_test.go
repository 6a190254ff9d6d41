package store

import (
	"testing"

	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest/assert"
)

func memStoreConstructor() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

var btreeSuite = NewTestSuite(memStoreConstructor)

func TestBTreeCacheGetSet(t *testing.T) {
	btreeSuite.GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	btreeSuite.CacheConflicts(t)
}

func TestBTreeFuzzIterator(t *testing.T) {
	btreeSuite.FuzzIterator(t)
}

func TestBTreeIteratorWithConflicts(t *testing.T) {
	btreeSuite.IteratorWithConflicts(t)
}

func TestSliceIterator(t *testing.T) {
	models := []Model{
		Pair([]byte("a"), []byte("1")),
		Pair([]byte("b"), []byte("2")),
	}
	iter := NewSliceIterator(models)
	defer iter.Release()

	for _, m := range models {
		k, v, err := iter.Next()
		assert.Nil(t, err)
		assert.Equal(t, m.Key, k)
		assert.Equal(t, m.Value, v)
	}
	_, _, err := iter.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
}

func TestDiscardDropsPendingWrites(t *testing.T) {
	base, ops := LogableStore()
	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("key"), []byte("value")))
	cache.Discard()
	assert.Nil(t, cache.Write())

	got, err := base.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, len(ops.ShowOps()))
}

func TestLogableStoreRecordsOps(t *testing.T) {
	base, ops := LogableStore()
	assert.Nil(t, base.Set([]byte("a"), []byte("1")))
	assert.Nil(t, base.Delete([]byte("b")))

	got := ops.ShowOps()
	assert.Equal(t, 2, len(got))
	assert.Equal(t, true, got[0].IsSetOp())
	assert.Equal(t, []byte("a"), got[0].Key())
	assert.Equal(t, false, got[1].IsSetOp())
}

func TestIteratorSurvivesWrites(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "b", "c"} {
		assert.Nil(t, db.Set([]byte(k), []byte(k)))
	}
	iter, err := db.Iterator(nil, nil)
	assert.Nil(t, err)
	defer iter.Release()

	k, _, err := iter.Next()
	assert.Nil(t, err)
	assert.Equal(t, []byte("a"), k)

	// modify while iterating, the snapshot must not change
	assert.Nil(t, db.Delete([]byte("b")))

	k, _, err = iter.Next()
	assert.Nil(t, err)
	assert.Equal(t, []byte("b"), k)
}
