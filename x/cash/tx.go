package cash

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
)

// PayableTx is implemented by transactions that can carry native value
// to the called extension.
type PayableTx interface {
	GetValue() coin.Int
}

// AttachedValue returns the value carried by the transaction, or zero if
// the transaction cannot carry any.
func AttachedValue(tx remit.Tx) coin.Int {
	if ptx, ok := tx.(PayableTx); ok {
		return ptx.GetValue()
	}
	return nil
}
