package orm

import (
	"encoding/binary"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
)

// Sequence is a persistent counter handing out ids. Its values are encoded
// big endian, so byte order of the keys is numeric order.
type Sequence struct {
	id []byte
}

// NewSequence returns the sequence name of bucket, stored under
// "_s.<bucket>:<name>".
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the sequence and returns the new value encoded.
func (s *Sequence) NextVal(db remit.KVStore) ([]byte, error) {
	val, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// NextInt increments the sequence and returns the new value. The first
// value is 1.
func (s *Sequence) NextInt(db remit.KVStore) (int64, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	if val++; val < 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	if err := db.Set(s.id, EncodeSequence(val)); err != nil {
		return 0, errors.Wrap(err, "cannot save sequence")
	}
	return val, nil
}

// Latest returns the last value handed out, zero for a new sequence.
func (s *Sequence) Latest(db remit.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load sequence")
	}
	return DecodeSequence(raw), nil
}

// EncodeSequence returns the 8 byte big endian form of val.
func EncodeSequence(val int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(val))
	return raw
}

// DecodeSequence reads an encoded value. Anything but 8 bytes reads as
// zero, use ValidateSequence first on untrusted input.
func DecodeSequence(raw []byte) int64 {
	if len(raw) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

// ValidateSequence checks that id is an encoded sequence value.
func ValidateSequence(id []byte) error {
	switch len(id) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	case 8:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "sequence must be 8 bytes, got %d", len(id))
	}
}
