package orm

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
)

// queryPrefix returns all models stored under keys starting with prefix.
func queryPrefix(db remit.ReadOnlyKVStore, prefix []byte) ([]remit.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(itr)
}

// consumeIterator will read all remaining data into an
// array and release the iterator
func consumeIterator(itr remit.Iterator) ([]remit.Model, error) {
	defer itr.Release()

	var res []remit.Model
	for {
		key, value, err := itr.Next()
		switch {
		case err == nil:
			res = append(res, remit.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// RegisterQuery exposes the raw key value store under "/". It serves
// both exact key and prefix lookups.
func RegisterQuery(qr remit.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db remit.ReadOnlyKVStore, mod string, data []byte) ([]remit.Model, error) {
	switch mod {
	case remit.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []remit.Model{remit.Pair(data, value)}, nil
	case remit.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
