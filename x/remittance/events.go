package remittance

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
)

// Event signatures, as declared by the contract interface.
var (
	TopicTransferCreated  = Keccak256([]byte("TransferCreated(uint256,address,address,uint256)"))
	TopicTransferSettled  = Keccak256([]byte("TransferSettled(uint256,address,uint256)"))
	TopicKycStatusUpdated = Keccak256([]byte("KycStatusUpdated(address,bool)"))
)

// Log is an event in the Ethereum log layout: the first topic is the
// event signature, the others the indexed arguments. Data holds the
// remaining arguments ABI encoded.
type Log struct {
	Topics [][]byte
	Data   []byte
}

// event converts the log into a remit.Event carrying the human readable
// attributes followed by the raw topics and data.
func (l Log) event(typ string, keyvals ...string) remit.Event {
	topics := make([]string, len(l.Topics))
	for i, t := range l.Topics {
		topics[i] = hex.EncodeToString(t)
	}
	keyvals = append(keyvals,
		"topics", strings.Join(topics, ","),
		"data", hex.EncodeToString(l.Data),
	)
	return remit.NewEvent(typ, keyvals...)
}

// ParseLog reads the topics and data attributes of an event emitted by
// this extension.
func ParseLog(e remit.Event) (Log, bool) {
	rawTopics, ok := e.Attr("topics")
	if !ok {
		return Log{}, false
	}
	rawData, ok := e.Attr("data")
	if !ok {
		return Log{}, false
	}
	var l Log
	for _, t := range strings.Split(rawTopics, ",") {
		bz, err := hex.DecodeString(t)
		if err != nil {
			return Log{}, false
		}
		l.Topics = append(l.Topics, bz)
	}
	data, err := hex.DecodeString(rawData)
	if err != nil {
		return Log{}, false
	}
	l.Data = data
	return l, true
}

// TransferCreated is emitted by deposit.
type TransferCreated struct {
	ID        uint64
	Sender    remit.Address
	Recipient remit.Address
	Amount    coin.Int
}

func (e TransferCreated) Log() Log {
	return Log{
		Topics: [][]byte{
			TopicTransferCreated,
			uintWord(e.ID),
			addressWord(e.Sender),
			addressWord(e.Recipient),
		},
		Data: packArgs(e.Amount),
	}
}

func (e TransferCreated) Event() remit.Event {
	return e.Log().event("TransferCreated",
		"id", strconv.FormatUint(e.ID, 10),
		"sender", e.Sender.String(),
		"recipient", e.Recipient.String(),
		"amount", e.Amount.String(),
	)
}

// TransferSettled is emitted by withdraw.
type TransferSettled struct {
	ID        uint64
	Recipient remit.Address
	Amount    coin.Int
}

func (e TransferSettled) Log() Log {
	return Log{
		Topics: [][]byte{
			TopicTransferSettled,
			uintWord(e.ID),
			addressWord(e.Recipient),
		},
		Data: packArgs(e.Amount),
	}
}

func (e TransferSettled) Event() remit.Event {
	return e.Log().event("TransferSettled",
		"id", strconv.FormatUint(e.ID, 10),
		"recipient", e.Recipient.String(),
		"amount", e.Amount.String(),
	)
}

// KycStatusUpdated is emitted by setKycStatus, also when the flag does
// not change.
type KycStatusUpdated struct {
	Account  remit.Address
	Verified bool
}

func (e KycStatusUpdated) Log() Log {
	return Log{
		Topics: [][]byte{
			TopicKycStatusUpdated,
			addressWord(e.Account),
		},
		Data: packArgs(e.Verified),
	}
}

func (e KycStatusUpdated) Event() remit.Event {
	return e.Log().event("KycStatusUpdated",
		"account", e.Account.String(),
		"verified", strconv.FormatBool(e.Verified),
	)
}
