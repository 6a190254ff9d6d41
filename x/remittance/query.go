package remittance

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
)

// RegisterQuery registers the buckets as "/transfers" (with the
// "/transfers/sender" and "/transfers/recipient" indexes) and "/kyc",
// together with the contract view calls under "/remittance/call" and the
// open transfers of a recipient under "/remittance/pending".
func RegisterQuery(qr remit.QueryRouter) {
	ledger := NewLedger(nil)
	ledger.transfers.Register("transfers", qr)
	ledger.kyc.Register("kyc", qr)
	qr.Register("/remittance/call", CallQuery{ledger: ledger})
	qr.Register("/remittance/pending", PendingQuery{ledger: ledger})
}

// CallQuery runs a view method. The query data is the calldata, the
// result is a single model keyed by the selector holding the ABI encoded
// return value.
type CallQuery struct {
	ledger *Ledger
}

var _ remit.QueryHandler = CallQuery{}

func (q CallQuery) Query(db remit.ReadOnlyKVStore, mod string, data []byte) ([]remit.Model, error) {
	if mod != remit.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	call, err := DecodeViewCall(data)
	if err != nil {
		return nil, err
	}
	res, err := q.ledger.Call(db, call)
	if err != nil {
		return nil, err
	}
	sel := call.Method().Selector
	return []remit.Model{remit.Pair(sel[:], res)}, nil
}

// PendingQuery returns the open transfers of the recipient given as query
// data, keyed by transfer id and ordered by it.
type PendingQuery struct {
	ledger *Ledger
}

var _ remit.QueryHandler = PendingQuery{}

func (q PendingQuery) Query(db remit.ReadOnlyKVStore, mod string, data []byte) ([]remit.Model, error) {
	if mod != remit.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod %q", mod)
	}
	recipient := remit.Address(data)
	if err := recipient.Validate(); err != nil {
		return nil, err
	}
	pending, err := q.ledger.PendingFor(db, recipient)
	if err != nil {
		return nil, err
	}
	res := make([]remit.Model, 0, len(pending))
	for _, p := range pending {
		raw, err := p.Transfer.Marshal()
		if err != nil {
			return nil, err
		}
		res = append(res, remit.Pair(TransferKey(p.ID), raw))
	}
	return res, nil
}
