package remit

import (
	"github.com/remitchain/remit/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverOrError is the DeliverTx response for the outcome of a handler.
// With debug set, error logs carry the stack trace.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	switch {
	case err != nil:
		return DeliverTxError(err, debug)
	case result == nil:
		return abci.ResponseDeliverTx{}
	default:
		return result.ToABCI()
	}
}

// CheckOrError is the CheckTx response for the outcome of a handler.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	switch {
	case err != nil:
		return CheckTxError(err, debug)
	case result == nil:
		return abci.ResponseCheckTx{}
	default:
		return result.ToABCI()
	}
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    EventsToTags(d.Events),
		GasUsed: d.GasUsed,
	}
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// ParseDeliverOrError reads a DeliverTx response back. A failed
// transaction returns its error, which matches the registered root error
// of the response code.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Events:  TagsToEvents(res.Tags),
		GasUsed: res.GasUsed,
	}, nil
}

func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := txErrorInfo("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := txErrorInfo("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func txErrorInfo(stage string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, stage + ": " + log
}

// EventsToTags flattens events into tendermint tags so they can be indexed
// and searched. Every attribute becomes a "<type>.<key>" tag.
func EventsToTags(events []Event) []common.KVPair {
	var tags []common.KVPair
	for _, e := range events {
		for _, a := range e.Attributes {
			tags = append(tags, common.KVPair{
				Key:   []byte(e.Type + "." + a.Key),
				Value: []byte(a.Value),
			})
		}
	}
	return tags
}
