package remittest

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/remitchain/remit"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. The test fails if the address cannot be parsed.
func ParseAddress(t testing.TB, encodedAddress string) remit.Address {
	t.Helper()

	addr, err := remit.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) remit.Address {
	raw := make([]byte, remit.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := remit.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not valid: %s", err)
	}
	return a
}

var condSeq uint64

// NewCondition returns a unique condition on every call. Conditions are
// made of a global sequence so they never collide within one test binary.
func NewCondition() remit.Condition {
	n := atomic.AddUint64(&condSeq, 1)
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return remit.NewCondition("remittest", "seq", raw)
}

// SequenceID returns an 8 byte big endian encoded value, the format used
// by orm sequences.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
