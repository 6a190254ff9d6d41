package remitd

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/commands"
	"github.com/remitchain/remit/x/cash"
	"github.com/remitchain/remit/x/remittance"
	"github.com/remitchain/remit/x/sigs"
	"github.com/tendermint/tendermint/crypto/ed25519"
)

// we fix the private keys here for deterministic output with the same encoding
// these are not secure at all, but the only point is to check the format,
// which is easier when everything is reproduceable.
var (
	source    = ed25519.GenPrivKeyFromSecret([]byte("remit example source"))
	recipient = mustAddress(ed25519.GenPrivKeyFromSecret([]byte("remit example recipient")))
)

const exampleChainID = "testgen-chain"

func mustAddress(key ed25519.PrivKeyEd25519) remit.Address {
	addr, err := sigs.SignerAddress(key)
	if err != nil {
		panic(err)
	}
	return addr
}

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	deposit := &remittance.DepositMsg{
		Recipient:      recipient,
		FxRate:         coin.NewInt(8350),
		SourceCurrency: "USD",
		TargetCurrency: "INR",
	}
	withdraw := &remittance.WithdrawMsg{TransferID: coin.NewInt(0)}
	kyc := &remittance.SetKycStatusMsg{Account: recipient, Verified: true}

	transfer := &remittance.Transfer{
		Sender:         mustAddress(source),
		Recipient:      recipient,
		Amount:         coin.NewInt(1000),
		FxRate:         coin.NewInt(8350),
		SourceCurrency: "USD",
		TargetCurrency: "INR",
	}

	depositTx, err := NewCallTx(deposit, coin.NewInt(1000))
	if err != nil {
		panic(err)
	}
	sig, err := sigs.SignTx(source, depositTx, exampleChainID, 0)
	if err != nil {
		panic(err)
	}
	depositTx.Signatures = []*sigs.StdSignature{sig}

	withdrawTx, err := NewCallTx(withdraw, nil)
	if err != nil {
		panic(err)
	}

	sendTx := NewSendTx(recipient, coin.NewInt(250))
	sig, err = sigs.SignTx(source, sendTx, exampleChainID, 1)
	if err != nil {
		panic(err)
	}
	sendTx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "deposit_msg", Obj: deposit},
		{Filename: "withdraw_msg", Obj: withdraw},
		{Filename: "set_kyc_msg", Obj: kyc},
		{Filename: "transfer", Obj: transfer},
		{Filename: "wallet", Obj: &cash.Wallet{Balance: coin.NewInt(123456789)}},
		{Filename: "deposit_tx", Obj: depositTx},
		{Filename: "withdraw_tx", Obj: withdrawTx},
		{Filename: "send_tx", Obj: sendTx},
	}
}
