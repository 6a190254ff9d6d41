package app

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs CheckTx and DeliverTx on top of StoreApp: each transaction
// is decoded and passed through the handler stack, and the result or error
// is turned into the ABCI response.
type BaseApp struct {
	*StoreApp
	decoder remit.TxDecoder
	handler remit.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application serving transactions with handler.
// In debug mode internal error messages and stack traces are not redacted
// from the responses.
func NewBaseApp(store *StoreApp, decoder remit.TxDecoder, handler remit.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, ctx, err := b.prepare(txBytes, "deliver_tx")
	if err != nil {
		return remit.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return remit.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, ctx, err := b.prepare(txBytes, "check_tx")
	if err != nil {
		return remit.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return remit.CheckOrError(res, err, b.debug)
}

// prepare decodes txBytes and returns the block context tagged for
// logging. A panicking decoder is reported as an error.
func (b BaseApp) prepare(txBytes []byte, call string) (tx remit.Tx, ctx remit.Context, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(txBytes); err != nil {
		return nil, nil, err
	}
	ctx = remit.WithLogInfo(b.BlockContext(), "call", call, "path", remit.GetPath(tx))
	return tx, ctx, nil
}
