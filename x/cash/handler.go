package cash

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r remit.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/wallets"
func RegisterQuery(qr remit.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending value
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ remit.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx remit.Context, store remit.KVStore, tx remit.Tx) (*remit.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &remit.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the value from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx remit.Context, store remit.KVStore, tx remit.Tx) (*remit.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveValue(ctx, store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &remit.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx remit.Context, tx remit.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := remit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
