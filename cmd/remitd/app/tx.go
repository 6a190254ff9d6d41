package remitd

import (
	"github.com/gogo/protobuf/proto"
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/x/cash"
	"github.com/remitchain/remit/x/remittance"
	"github.com/remitchain/remit/x/sigs"
)

// Tx is the transaction format of the chain. A transaction either calls
// the remittance ledger, when Data holds the calldata, or moves Value to
// the To account.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	// Value is the amount paid with the call.
	Value coin.Int `protobuf:"bytes,2,opt,name=value,proto3,casttype=github.com/remitchain/remit/coin.Int" json:"value,omitempty"`
	// Data is the ABI encoded call of a ledger method.
	Data []byte `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
	// To is the receiver of a plain value transfer. Calls may leave it
	// empty or set it to the ledger address.
	To remit.Address `protobuf:"bytes,4,opt,name=to,proto3,casttype=github.com/remitchain/remit.Address" json:"to,omitempty"`
}

// make sure tx fulfills all interfaces
var _ remit.Tx = (*Tx)(nil)
var _ cash.PayableTx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txMsg)(tx))
}

func (tx *Tx) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*txMsg)(tx))
}

type txMsg Tx

func (m *txMsg) Reset()         { *m = txMsg{} }
func (m *txMsg) String() string { return proto.CompactTextString(m) }
func (*txMsg) ProtoMessage()    {}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (remit.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// GetMsg decodes the ledger call carried by Data. A transaction without
// data is a value transfer from the first signer to To.
func (tx *Tx) GetMsg() (remit.Msg, error) {
	if len(tx.Data) > 0 {
		if len(tx.To) != 0 && !tx.To.Equals(remittance.CustodyAddress) {
			return nil, errors.Wrapf(errors.ErrInput, "call sent to %s", tx.To)
		}
		return remittance.DecodeCall(tx.Data)
	}
	if len(tx.To) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "neither data nor receiver")
	}
	if len(tx.Signatures) == 0 || tx.Signatures[0] == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "value transfer must be signed")
	}
	return &cash.SendMsg{
		Source:      sigs.KeyCondition(tx.Signatures[0].Pubkey).Address(),
		Destination: tx.To,
		Amount:      tx.Value,
	}, nil
}

// GetValue returns the value paid with the transaction.
func (tx *Tx) GetValue() coin.Int {
	return tx.Value
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

// NewCallTx returns an unsigned transaction calling the ledger with msg.
func NewCallTx(msg remit.Marshaller, value coin.Int) (*Tx, error) {
	data, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "calldata")
	}
	return &Tx{Value: value, Data: data}, nil
}

// NewSendTx returns an unsigned value transfer to dest.
func NewSendTx(dest remit.Address, amount coin.Int) *Tx {
	return &Tx{Value: amount, To: dest}
}
