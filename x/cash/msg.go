package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves value from the source account to the destination.
type SendMsg struct {
	Source      remit.Address `protobuf:"bytes,1,opt,name=source,proto3,casttype=github.com/remitchain/remit.Address" json:"source,omitempty"`
	Destination remit.Address `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/remitchain/remit.Address" json:"destination,omitempty"`
	Amount      coin.Int      `protobuf:"bytes,3,opt,name=amount,proto3,casttype=github.com/remitchain/remit/coin.Int" json:"amount,omitempty"`
	Memo        string        `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

// Ensure we implement the Msg interface
var _ remit.Msg = (*SendMsg)(nil)

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsg)(m))
}

func (m *SendMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*sendMsg)(m))
}

type sendMsg SendMsg

func (m *sendMsg) Reset()         { *m = sendMsg{} }
func (m *sendMsg) String() string { return proto.CompactTextString(m) }
func (*sendMsg) ProtoMessage()    {}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	if !m.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "non-positive"))
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "too long"))
	}
	return errs
}
