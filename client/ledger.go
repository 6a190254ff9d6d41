package client

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/orm"
	"github.com/remitchain/remit/x/cash"
	"github.com/remitchain/remit/x/remittance"
	"github.com/remitchain/remit/x/sigs"
	"github.com/tendermint/tendermint/crypto"
)

// Call runs a view method of the ledger and returns its ABI encoded result.
func (c *Client) Call(calldata []byte) ([]byte, error) {
	resp, err := c.AbciQuery("/remittance/call", calldata)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) != 1 {
		return nil, errors.Wrapf(errors.ErrState, "expected one result, got %d", len(resp.Models))
	}
	return resp.Models[0].Value, nil
}

// TransferCount returns the number of transfers ever created.
func (c *Client) TransferCount() (uint64, error) {
	raw, err := c.Call(remittance.EncodeTransferCountCall())
	if err != nil {
		return 0, err
	}
	n, err := remittance.DecodeUintResult(raw)
	if err != nil {
		return 0, err
	}
	return n.Uint64()
}

// GetTransfer returns the transfer with given id.
func (c *Client) GetTransfer(id uint64) (*remittance.Transfer, error) {
	raw, err := c.Call(remittance.EncodeGetTransferCall(id))
	if err != nil {
		return nil, err
	}
	return remittance.DecodeTransferResult(raw)
}

// KycVerified returns the verification flag of an account.
func (c *Client) KycVerified(account remit.Address) (bool, error) {
	if err := account.Validate(); err != nil {
		return false, errors.Wrap(err, "account")
	}
	raw, err := c.Call(remittance.EncodeKycVerifiedCall(account))
	if err != nil {
		return false, err
	}
	return remittance.DecodeBoolResult(raw)
}

// Pending returns the transfers that recipient can still withdraw.
func (c *Client) Pending(recipient remit.Address) ([]remittance.PendingTransfer, error) {
	if err := recipient.Validate(); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	resp, err := c.AbciQuery("/remittance/pending", recipient)
	if err != nil {
		return nil, err
	}
	out := make([]remittance.PendingTransfer, 0, len(resp.Models))
	for _, m := range resp.Models {
		if err := orm.ValidateSequence(m.Key); err != nil {
			return nil, errors.Wrap(err, "transfer id")
		}
		var t remittance.Transfer
		if err := t.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrap(errors.ErrState, err.Error())
		}
		out = append(out, remittance.PendingTransfer{
			ID:       uint64(orm.DecodeSequence(m.Key)),
			Transfer: &t,
		})
	}
	return out, nil
}

// Balance returns the native balance of an account, zero for accounts
// that never received value.
func (c *Client) Balance(addr remit.Address) (coin.Int, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	resp, err := c.AbciQuery("/wallets", addr)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) == 0 {
		return coin.NewInt(0), nil
	}
	var w cash.Wallet
	if err := w.Unmarshal(resp.Models[0].Value); err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	return w.Balance, nil
}

// Nonce returns the sequence the next signature of addr must use. An
// account that never signed starts with zero.
func (c *Client) Nonce(addr remit.Address) (int64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	resp, err := c.AbciQuery("/auth", addr)
	if err != nil {
		return 0, err
	}
	if len(resp.Models) == 0 {
		return 0, nil
	}
	var user sigs.UserData
	if err := user.Unmarshal(resp.Models[0].Value); err != nil {
		return 0, errors.Wrap(errors.ErrState, err.Error())
	}
	return user.Sequence, nil
}

// SignTx signs tx with key using the next nonce of the key holder on the
// chain the node runs. It returns the signature to attach.
func (c *Client) SignTx(tx sigs.SignedTx, key crypto.PrivKey, chainID string) (*sigs.StdSignature, error) {
	addr, err := sigs.SignerAddress(key)
	if err != nil {
		return nil, err
	}
	nonce, err := c.Nonce(addr)
	if err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	return sigs.SignTx(key, tx, chainID, nonce)
}
