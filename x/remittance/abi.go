package remittance

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"golang.org/x/crypto/sha3"
)

const wordSize = 32

// Method describes a contract function by its canonical signature.
type Method struct {
	Name      string
	Signature string
	Selector  [4]byte
}

func newMethod(name, signature string) Method {
	m := Method{Name: name, Signature: signature}
	copy(m.Selector[:], Keccak256([]byte(signature)))
	return m
}

var (
	MethodDeposit       = newMethod("deposit", "deposit(address,uint256,string,string)")
	MethodWithdraw      = newMethod("withdraw", "withdraw(uint256)")
	MethodSetKycStatus  = newMethod("setKycStatus", "setKycStatus(address,bool)")
	MethodKycVerified   = newMethod("kycVerified", "kycVerified(address)")
	MethodTransferCount = newMethod("transferCount", "transferCount()")
	MethodGetTransfer   = newMethod("getTransfer", "getTransfer(uint256)")
)

// Keccak256 returns the legacy Keccak-256 hash (not the NIST SHA3-256) of data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// selector returns the method selector of given calldata.
func selector(calldata []byte) ([4]byte, []byte, error) {
	var sel [4]byte
	if len(calldata) < len(sel) {
		return sel, nil, errors.Wrap(errors.ErrInput, "calldata shorter than a selector")
	}
	copy(sel[:], calldata)
	return sel, calldata[len(sel):], nil
}

// DecodeCall parses calldata of a state changing method into its message.
// Calldata of a view method is rejected, views are served by queries.
func DecodeCall(calldata []byte) (remit.Msg, error) {
	sel, _, err := selector(calldata)
	if err != nil {
		return nil, err
	}
	var msg interface {
		remit.Msg
		remit.Persistent
	}
	switch sel {
	case MethodDeposit.Selector:
		msg = new(DepositMsg)
	case MethodWithdraw.Selector:
		msg = new(WithdrawMsg)
	case MethodSetKycStatus.Selector:
		msg = new(SetKycStatusMsg)
	case MethodKycVerified.Selector, MethodTransferCount.Selector, MethodGetTransfer.Selector:
		return nil, errors.Wrapf(errors.ErrInput, "view method %x cannot be sent as a transaction", sel)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown method selector %x", sel)
	}
	if err := msg.Unmarshal(calldata); err != nil {
		return nil, err
	}
	return msg, nil
}

// ViewCall is a decoded call of a read only method.
type ViewCall interface {
	Method() Method
	call(db remit.ReadOnlyKVStore, l *Ledger) ([]byte, error)
}

// KycVerifiedCall is the kycVerified(address) view.
type KycVerifiedCall struct {
	Account remit.Address
}

func (KycVerifiedCall) Method() Method { return MethodKycVerified }

func (c KycVerifiedCall) call(db remit.ReadOnlyKVStore, l *Ledger) ([]byte, error) {
	ok, err := l.KycVerified(db, c.Account)
	if err != nil {
		return nil, err
	}
	return packArgs(ok), nil
}

// TransferCountCall is the transferCount() view.
type TransferCountCall struct{}

func (TransferCountCall) Method() Method { return MethodTransferCount }

func (TransferCountCall) call(db remit.ReadOnlyKVStore, l *Ledger) ([]byte, error) {
	n, err := l.TransferCount(db)
	if err != nil {
		return nil, err
	}
	return packArgs(coin.NewInt(n)), nil
}

// GetTransferCall is the getTransfer(uint256) view.
type GetTransferCall struct {
	ID coin.Int
}

func (GetTransferCall) Method() Method { return MethodGetTransfer }

func (c GetTransferCall) call(db remit.ReadOnlyKVStore, l *Ledger) ([]byte, error) {
	id, err := transferID(c.ID)
	if err != nil {
		return nil, err
	}
	t, err := l.GetTransfer(db, id)
	if err != nil {
		return nil, err
	}
	return EncodeTransferResult(t), nil
}

// DecodeViewCall parses calldata of a read only method.
func DecodeViewCall(calldata []byte) (ViewCall, error) {
	sel, args, err := selector(calldata)
	if err != nil {
		return nil, err
	}
	r := abiReader{data: args}
	switch sel {
	case MethodKycVerified.Selector:
		addr, err := r.address(0)
		if err != nil {
			return nil, errors.Wrap(err, "account")
		}
		return KycVerifiedCall{Account: addr}, nil
	case MethodTransferCount.Selector:
		return TransferCountCall{}, nil
	case MethodGetTransfer.Selector:
		id, err := r.uint256(0)
		if err != nil {
			return nil, errors.Wrap(err, "id")
		}
		return GetTransferCall{ID: id}, nil
	}
	return nil, errors.Wrapf(errors.ErrInput, "%x is not a view method", sel)
}

// EncodeKycVerifiedCall returns the calldata of kycVerified(account).
func EncodeKycVerifiedCall(account remit.Address) []byte {
	return withSelector(MethodKycVerified, packArgs(account))
}

// EncodeTransferCountCall returns the calldata of transferCount().
func EncodeTransferCountCall() []byte {
	return withSelector(MethodTransferCount, nil)
}

// EncodeGetTransferCall returns the calldata of getTransfer(id).
func EncodeGetTransferCall(id uint64) []byte {
	return withSelector(MethodGetTransfer, packArgs(coin.NewInt(id)))
}

// EncodeTransferResult returns the ABI encoding of the getTransfer tuple
// (address, address, uint256, uint256, string, string, bool).
func EncodeTransferResult(t *Transfer) []byte {
	return packArgs(t.Sender, t.Recipient, t.Amount, t.FxRate, t.SourceCurrency, t.TargetCurrency, t.Withdrawn)
}

// DecodeTransferResult reverses EncodeTransferResult.
func DecodeTransferResult(raw []byte) (*Transfer, error) {
	r := abiReader{data: raw}
	var (
		t   Transfer
		err error
	)
	if t.Sender, err = r.address(0); err != nil {
		return nil, errors.Wrap(err, "sender")
	}
	if t.Recipient, err = r.address(1); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	if t.Amount, err = r.uint256(2); err != nil {
		return nil, errors.Wrap(err, "amount")
	}
	if t.FxRate, err = r.uint256(3); err != nil {
		return nil, errors.Wrap(err, "fx rate")
	}
	if t.SourceCurrency, err = r.str(4); err != nil {
		return nil, errors.Wrap(err, "source currency")
	}
	if t.TargetCurrency, err = r.str(5); err != nil {
		return nil, errors.Wrap(err, "target currency")
	}
	if t.Withdrawn, err = r.boolean(6); err != nil {
		return nil, errors.Wrap(err, "withdrawn")
	}
	return &t, nil
}

// DecodeUintResult reads a single uint256 return value.
func DecodeUintResult(raw []byte) (coin.Int, error) {
	return abiReader{data: raw}.uint256(0)
}

// DecodeBoolResult reads a single bool return value.
func DecodeBoolResult(raw []byte) (bool, error) {
	return abiReader{data: raw}.boolean(0)
}

func withSelector(m Method, args []byte) []byte {
	out := make([]byte, 0, len(m.Selector)+len(args))
	out = append(out, m.Selector[:]...)
	return append(out, args...)
}

// packArgs applies the head/tail encoding to the arguments. Supported
// types are remit.Address, coin.Int, uint64, bool and string.
func packArgs(args ...interface{}) []byte {
	headSize := wordSize * len(args)
	head := make([]byte, 0, headSize)
	var tail []byte
	for _, a := range args {
		switch v := a.(type) {
		case remit.Address:
			head = append(head, addressWord(v)...)
		case coin.Int:
			w := v.Bytes32()
			head = append(head, w[:]...)
		case uint64:
			head = append(head, uintWord(v)...)
		case bool:
			var w uint64
			if v {
				w = 1
			}
			head = append(head, uintWord(w)...)
		case string:
			head = append(head, uintWord(uint64(headSize+len(tail)))...)
			tail = append(tail, uintWord(uint64(len(v)))...)
			tail = append(tail, padRight([]byte(v))...)
		default:
			panic(fmt.Sprintf("unsupported abi type %T", a))
		}
	}
	return append(head, tail...)
}

func uintWord(v uint64) []byte {
	w := make([]byte, wordSize)
	binary.BigEndian.PutUint64(w[wordSize-8:], v)
	return w
}

func addressWord(a remit.Address) []byte {
	w := make([]byte, wordSize)
	copy(w[wordSize-len(a):], a)
	return w
}

func padRight(b []byte) []byte {
	n := (len(b) + wordSize - 1) / wordSize * wordSize
	out := make([]byte, n)
	copy(out, b)
	return out
}

// abiReader decodes head/tail encoded arguments. Trailing data is ignored.
type abiReader struct {
	data []byte
}

func (r abiReader) word(i int) ([]byte, error) {
	start := i * wordSize
	if start+wordSize > len(r.data) {
		return nil, errors.Wrapf(errors.ErrInput, "missing argument %d", i)
	}
	return r.data[start : start+wordSize], nil
}

func (r abiReader) uint256(i int) (coin.Int, error) {
	w, err := r.word(i)
	if err != nil {
		return nil, err
	}
	return coin.NewIntFromBigUnsafe(coin.Int(w).Big()), nil
}

func (r abiReader) address(i int) (remit.Address, error) {
	w, err := r.word(i)
	if err != nil {
		return nil, err
	}
	pad := wordSize - remit.AddressLength
	if !bytes.Equal(w[:pad], make([]byte, pad)) {
		return nil, errors.Wrap(errors.ErrInput, "dirty address padding")
	}
	return remit.Address(w[pad:]).Clone(), nil
}

func (r abiReader) boolean(i int) (bool, error) {
	v, err := r.smallUint(i)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.Wrap(errors.ErrInput, "invalid bool")
}

// smallUint reads a word that must fit an int, as offsets and lengths do.
func (r abiReader) smallUint(i int) (int, error) {
	w, err := r.word(i)
	if err != nil {
		return 0, err
	}
	if !bytes.Equal(w[:wordSize-8], make([]byte, wordSize-8)) {
		return 0, errors.Wrap(errors.ErrInput, "value out of range")
	}
	v := binary.BigEndian.Uint64(w[wordSize-8:])
	if v > math.MaxInt32 {
		return 0, errors.Wrap(errors.ErrInput, "value out of range")
	}
	return int(v), nil
}

func (r abiReader) str(i int) (string, error) {
	off, err := r.smallUint(i)
	if err != nil {
		return "", errors.Wrap(err, "offset")
	}
	if off%wordSize != 0 {
		return "", errors.Wrap(errors.ErrInput, "unaligned offset")
	}
	n, err := r.smallUint(off / wordSize)
	if err != nil {
		return "", errors.Wrap(err, "length")
	}
	start := off + wordSize
	if start+n > len(r.data) {
		return "", errors.Wrap(errors.ErrInput, "string exceeds calldata")
	}
	return string(r.data[start : start+n]), nil
}

// transferID converts an ABI id into a ledger index. Values that do not
// fit are out of range by definition.
func transferID(id coin.Int) (uint64, error) {
	v, err := id.Uint64()
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidTransferID, "%s", id)
	}
	return v, nil
}
