package sigs

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest"
)

// StdTx is a signed transaction carrying a mock message.
type StdTx struct {
	remit.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ remit.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &remittest.Msg{RoutePath: "test/sigs", Serialized: payload}
	return &StdTx{Tx: &remittest.Tx{Msg: msg}}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	m, ok := msg.(remit.Marshaller)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T cannot be marshalled", msg)
	}
	return m.Marshal()
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []remit.Condition
}

var _ remit.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx remit.Context, store remit.KVStore, tx remit.Tx) (*remit.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &remit.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx remit.Context, store remit.KVStore, tx remit.Tx) (*remit.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &remit.DeliverResult{}, nil
}
