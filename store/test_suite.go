package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"testing"

	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest/assert"
)

// TestSuite checks the KVStore and CacheWrap contract of a store
// implementation. The btree and iavl tests share it by passing their own
// constructor.
type TestSuite struct {
	makeBase TestStoreConstructor
}

type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that cached writes stay invisible to the parent until
// Write, and are lost on Discard.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	alice, bob, carol := []byte("wallet:alice"), []byte("wallet:bob"), []byte("wallet:carol")
	s.AssertGetHas(t, base, alice, nil, false)
	assert.Nil(t, base.Set(alice, []byte("5000")))
	s.AssertGetHas(t, base, alice, []byte("5000"), true)

	deposit := base.CacheWrap()
	assert.Nil(t, deposit.Set(alice, []byte("4500")))
	assert.Nil(t, deposit.Set(bob, []byte("500")))
	s.AssertGetHas(t, deposit, alice, []byte("4500"), true)
	s.AssertGetHas(t, deposit, bob, []byte("500"), true)
	s.AssertGetHas(t, base, alice, []byte("5000"), true)
	s.AssertGetHas(t, base, bob, nil, false)
	assert.Nil(t, deposit.Write())
	s.AssertGetHas(t, base, alice, []byte("4500"), true)
	s.AssertGetHas(t, base, bob, []byte("500"), true)

	failed := base.CacheWrap()
	assert.Nil(t, failed.Delete(alice))
	assert.Nil(t, failed.Set(carol, []byte("1")))
	s.AssertGetHas(t, failed, alice, nil, false)
	failed.Discard()
	s.AssertGetHas(t, base, alice, []byte("4500"), true)
	s.AssertGetHas(t, base, carol, nil, false)

	// a savepoint inside a transaction lands in the transaction only
	tx := base.CacheWrap()
	savepoint := tx.CacheWrap()
	assert.Nil(t, savepoint.Delete(bob))
	assert.Nil(t, savepoint.Write())
	s.AssertGetHas(t, tx, bob, nil, false)
	s.AssertGetHas(t, base, bob, []byte("500"), true)
	assert.Nil(t, tx.Write())
	s.AssertGetHas(t, base, bob, nil, false)
}

// CacheConflicts checks that a cache overwriting or deleting parent keys
// shows its own view, leaves the parent untouched until written, and
// writes exactly its view.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	cases := map[string]struct {
		parent []Op
		child  []Op
	}{
		"overwrite, delete and add": {
			parent: []Op{SetOp(transferKey(1), []byte("a")), SetOp(transferKey(2), []byte("b"))},
			child:  []Op{SetOp(transferKey(1), []byte("c")), DelOp(transferKey(2)), SetOp(transferKey(3), []byte("d"))},
		},
		"delete then set again": {
			parent: []Op{SetOp(transferKey(1), []byte("a"))},
			child:  []Op{DelOp(transferKey(1)), SetOp(transferKey(1), []byte("b"))},
		},
		"delete a missing key": {
			child: []Op{DelOp(transferKey(9))},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			before := applyOps(t, parent, nil, tc.parent)
			child := parent.CacheWrap()
			after := applyOps(t, child, before, tc.child)

			s.assertState(t, parent, before, after)
			s.assertState(t, child, after, before)
			assert.Nil(t, child.Write())
			s.assertState(t, parent, after, before)
		})
	}
}

// FuzzIterator checks forward and reverse range iteration over a cache
// holding many keys on top of a parent holding many others.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	var parentOps, childOps []Op
	for i := uint64(0); i < 60; i++ {
		switch i % 3 {
		case 0:
			parentOps = append(parentOps, SetOp(transferKey(i), []byte(fmt.Sprintf("parent %d", i))))
		case 1:
			childOps = append(childOps, SetOp(transferKey(i), []byte(fmt.Sprintf("child %d", i))))
		}
	}
	for i := uint64(0); i < 60; i += 9 {
		childOps = append(childOps, DelOp(transferKey(i)))
	}
	for i := uint64(3); i < 60; i += 12 {
		childOps = append(childOps, SetOp(transferKey(i), []byte("overwritten")))
	}

	cases := map[string]iterCase{
		"child only":        {child: append(parentOps, childOps...)},
		"parent only":       {pre: parentOps},
		"child over parent": {pre: parentOps, child: childOps},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// IteratorWithConflicts covers iteration where the cache shadows or hides
// the parent entries at the range bounds.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	a, b, c, d := transferKey(1), transferKey(2), transferKey(3), transferKey(4)

	cases := map[string]iterCase{
		"cache overwrites every parent key": {
			pre:   []Op{SetOp(a, []byte("1")), SetOp(b, []byte("2"))},
			child: []Op{SetOp(a, []byte("3")), SetOp(b, []byte("4"))},
		},
		"cache deletes the first and last key": {
			pre:   []Op{SetOp(a, []byte("1")), SetOp(b, []byte("2")), SetOp(c, []byte("3")), SetOp(d, []byte("4"))},
			child: []Op{DelOp(a), DelOp(d)},
		},
		"cache deletes everything": {
			pre:   []Op{SetOp(a, []byte("1")), SetOp(c, []byte("3"))},
			child: []Op{DelOp(a), DelOp(b), DelOp(c)},
		},
		"cache fills the gaps": {
			pre:   []Op{SetOp(a, []byte("1")), SetOp(c, []byte("3"))},
			child: []Op{SetOp(b, []byte("2")), SetOp(d, []byte("4"))},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// assertState checks that kv holds exactly want, including that keys only
// present in other are missing.
func (s *TestSuite) assertState(t testing.TB, kv ReadOnlyKVStore, want, other map[string][]byte) {
	t.Helper()
	for k, v := range want {
		s.AssertGetHas(t, kv, []byte(k), v, true)
	}
	for k := range other {
		if _, ok := want[k]; !ok {
			s.AssertGetHas(t, kv, []byte(k), nil, false)
		}
	}
}

// transferKey mimics the big-endian keys of sequence numbered objects.
func transferKey(id uint64) []byte {
	key := make([]byte, 9+8)
	copy(key, "transfer:")
	binary.BigEndian.PutUint64(key[9:], id)
	return key
}

// applyOps applies ops to kv and to a copy of the state, which is
// returned.
func applyOps(t testing.TB, kv SetDeleter, state map[string][]byte, ops []Op) map[string][]byte {
	t.Helper()
	out := make(map[string][]byte, len(state))
	for k, v := range state {
		out[k] = v
	}
	for _, op := range ops {
		assert.Nil(t, op.Apply(kv))
		if op.IsSetOp() {
			out[string(op.Key())] = op.Value()
		} else {
			delete(out, string(op.Key()))
		}
	}
	return out
}

// iterCase writes pre to the base store and child to a cache on top of it,
// then iterates the cache over a set of ranges.
type iterCase struct {
	pre   []Op
	child []Op
}

func (c iterCase) verify(t *testing.T, base CacheableKVStore) {
	state := applyOps(t, base, nil, c.pre)
	cache := base.CacheWrap()
	state = applyOps(t, cache, state, c.child)

	want := make([]Model, 0, len(state))
	for k, v := range state {
		want = append(want, Pair([]byte(k), v))
	}
	sort.Slice(want, func(i, j int) bool { return bytes.Compare(want[i].Key, want[j].Key) < 0 })

	n := len(want)
	bounds := [][2]int{{0, n}, {n / 3, n}, {0, n / 2}, {n / 4, 3 * n / 4}, {n / 2, n / 2}}
	for _, bd := range bounds {
		lo, hi := bd[0], bd[1]
		var start, end []byte
		if lo > 0 {
			start = want[lo].Key
		}
		if hi < n {
			end = want[hi].Key
		}

		it, err := cache.Iterator(start, end)
		assert.Nil(t, err)
		assertIterates(t, it, want[lo:hi])

		it, err = cache.ReverseIterator(start, end)
		assert.Nil(t, err)
		assertIterates(t, it, reverse(want[lo:hi]))
	}
}

func assertIterates(t testing.TB, it Iterator, want []Model) {
	t.Helper()
	defer it.Release()
	for i, m := range want {
		key, value, err := it.Next()
		assert.Nil(t, err)
		if !bytes.Equal(m.Key, key) {
			t.Fatalf("entry %d: want key %X, got %X", i, m.Key, key)
		}
		assert.Equal(t, m.Value, value)
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want ErrIteratorDone, got %+v", err)
	}
}

// reverse returns a reversed copy of models.
func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}
