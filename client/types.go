package client

import (
	"fmt"

	"github.com/remitchain/remit"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	tmtypes "github.com/tendermint/tendermint/types"
)

type (
	TransactionID = cmn.HexBytes
	RequestQuery  = abci.RequestQuery
	ResponseQuery = abci.ResponseQuery
	Header        = tmtypes.Header

	// TxQuery is a tendermint event query selecting transactions.
	TxQuery = string
)

// CommitResult is the outcome of a transaction included in a block. Result
// is set when it was delivered, Err when it was rejected.
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *remit.DeliverResult
	Err    error
}

type Status struct {
	ChainID    string
	Height     int64
	CatchingUp bool
}

// Option configures a subscription.
type Option interface {
	isOption()
}

// OptionCapacity sets the buffer size of the subscription channel.
type OptionCapacity struct {
	Capacity int
}

func (OptionCapacity) isOption() {}

// QueryTxByEvent selects transactions that emitted an event of eventType
// with attr set to value, e.g. every TransferCreated for one recipient.
func QueryTxByEvent(eventType, attr, value string) TxQuery {
	return fmt.Sprintf("%s.%s='%s'", eventType, attr, value)
}
