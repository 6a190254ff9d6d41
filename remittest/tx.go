package remittest

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
)

// Tx represents a single message transaction with an optional value
// attached to it.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg remit.Msg
	// Value is returned by GetValue. Nil means no value attached.
	Value coin.Int
	// Err if set is returned by any method call.
	Err error
}

var _ remit.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (remit.Msg, error) {
	return tx.Msg, tx.Err
}

// GetValue returns the value transferred together with this transaction.
func (tx *Tx) GetValue() coin.Int {
	return tx.Value
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg represents a message with a configurable path.
type Msg struct {
	// RoutePath returned by the path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ remit.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
