package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/remitchain/remit/errors"
)

// ascendBtree returns a snapshot of all cached items within the range, in
// ascending key order. Taking a snapshot keeps the iterator valid even if the
// cache is written to while it is still open.
func ascendBtree(bt *btree.BTree, start, end []byte) []cacheEntry {
	var items []cacheEntry
	collect := func(item btree.Item) bool {
		items = append(items, item.(cacheEntry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(cacheEntry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(cacheEntry{key: start}, collect)
	default:
		bt.AscendRange(cacheEntry{key: start}, cacheEntry{key: end}, collect)
	}
	return items
}

// descendBtree is like ascendBtree but returns items in descending order.
// The start is inclusive, the end exclusive, same as when ascending.
func descendBtree(bt *btree.BTree, start, end []byte) []cacheEntry {
	items := ascendBtree(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// itemIter merges the cached items with the iterator of the parent store.
// Cached values shadow parent values of the same key, cached deletes hide
// them.
type itemIter struct {
	cached []cacheEntry
	parent Iterator
	asc    bool

	// the parent entry read ahead, if any
	pKey, pValue []byte
	pLoaded      bool
	pDone        bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(cached []cacheEntry, parent Iterator, ascending bool) *itemIter {
	return &itemIter{
		cached: cached,
		parent: parent,
		asc:    ascending,
	}
}

// Next returns the next key value pair, or ErrIteratorDone.
func (i *itemIter) Next() ([]byte, []byte, error) {
	for {
		if err := i.peekParent(); err != nil {
			return nil, nil, err
		}

		if len(i.cached) == 0 {
			if i.pDone {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
			}
			i.pLoaded = false
			return i.pKey, i.pValue, nil
		}

		item := i.cached[0]
		if !i.pDone {
			cmp := bytes.Compare(i.pKey, item.key)
			if !i.asc {
				cmp = -cmp
			}
			if cmp < 0 {
				i.pLoaded = false
				return i.pKey, i.pValue, nil
			}
			if cmp == 0 {
				// shadowed by the cache
				i.pLoaded = false
			}
		}

		i.cached = i.cached[1:]
		if !item.deleted {
			return item.key, item.value, nil
		}
	}
}

// peekParent loads the next parent entry unless one is already loaded.
func (i *itemIter) peekParent() error {
	if i.pDone || i.pLoaded {
		return nil
	}
	k, v, err := i.parent.Next()
	switch {
	case err == nil:
		i.pKey, i.pValue, i.pLoaded = k, v, true
		return nil
	case errors.ErrIteratorDone.Is(err):
		i.pDone = true
		return nil
	default:
		return err
	}
}

// Release releases the Iterator.
func (i *itemIter) Release() {
	i.parent.Release()
	i.cached = nil
}
