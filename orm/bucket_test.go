package orm

import (
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest/assert"
	"github.com/remitchain/remit/store"
)

func TestBucketName(t *testing.T) {
	obj := NewSimpleObj(nil, &Counter{})

	assert.Panics(t, func() {
		// An invalid bucket name must crash.
		NewBucket("l33t", obj)
	})
}

func TestBucketCorruptedData(t *testing.T) {
	b := NewBucket("mybucket", NewSimpleObj(nil, new(Counter)))
	key := []byte("broken")

	db := store.MemStore()
	// a truncated varint tag cannot be decoded
	assert.Nil(t, db.Set(b.DBKey(key), []byte{0xff}))

	_, err := b.Get(db, key)
	assert.IsErr(t, errors.ErrState, err)
}

func TestBucketCannotSaveInvalid(t *testing.T) {
	o := NewSimpleObj([]byte("mykey"), NewCounter(-999))
	b := NewBucket("mybucket", o)

	db := store.MemStore()
	assert.IsErr(t, errors.ErrState, b.Save(db, o))

	missingKey := NewSimpleObj(nil, NewCounter(1))
	assert.IsErr(t, errors.ErrEmpty, b.Save(db, missingKey))
}

func TestBucketGetSaveDelete(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, new(Counter)))
	db := store.MemStore()

	key := []byte("french")
	obj, err := b.Get(db, key)
	assert.Nil(t, err)
	assert.Nil(t, obj)

	assert.Nil(t, b.Save(db, NewSimpleObj(key, NewCounter(848))))

	obj, err = b.Get(db, key)
	assert.Nil(t, err)
	assert.Equal(t, key, obj.Key())
	assert.Equal(t, int64(848), obj.Value().(*Counter).Count)

	assert.Nil(t, b.Delete(db, key))
	obj, err = b.Get(db, key)
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketIterate(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, new(Counter)))
	other := NewBucket("cnts_x", NewSimpleObj(nil, new(Counter)))
	db := store.MemStore()

	for i, k := range []string{"c", "a", "b"} {
		assert.Nil(t, b.Save(db, NewSimpleObj([]byte(k), NewCounter(int64(i)))))
	}
	assert.Nil(t, other.Save(db, NewSimpleObj([]byte("z"), NewCounter(99))))

	var keys []string
	err := b.Iterate(db, func(obj Object) error {
		keys = append(keys, string(obj.Key()))
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	stop := errors.Wrap(errors.ErrHuman, "stop")
	err = b.Iterate(db, func(Object) error { return stop })
	assert.IsErr(t, errors.ErrHuman, err)
}

func TestBucketQuery(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, new(Counter)))
	db := store.MemStore()
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("ab"), NewCounter(1))))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("ac"), NewCounter(2))))
	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("bc"), NewCounter(3))))

	res, err := b.Query(db, remit.KeyQueryMod, []byte("ac"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, b.DBKey([]byte("ac")), res[0].Key)

	res, err = b.Query(db, remit.KeyQueryMod, []byte("zz"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = b.Query(db, remit.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	_, err = b.Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestBucketRegister(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, new(Counter))).
		WithIndex("value", counterIndex)
	qr := remit.NewQueryRouter()
	b.Register("counters", qr)

	if qr.Handler("/counters") == nil {
		t.Fatal("bucket not registered")
	}
	if qr.Handler("/counters/value") == nil {
		t.Fatal("index not registered")
	}
}

func TestBucketSequence(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, new(Counter)))
	db := store.MemStore()
	seq := b.Sequence(SeqID)

	first, err := seq.NextVal(db)
	assert.Nil(t, err)
	assert.Nil(t, ValidateSequence(first))
	n, err := seq.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), n)
}
