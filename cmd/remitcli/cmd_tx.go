package main

import (
	"strconv"

	remitd "github.com/remitchain/remit/cmd/remitd/app"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/x/remittance"
	"github.com/urfave/cli/v2"
)

func depositCommand() *cli.Command {
	return &cli.Command{
		Name:      "deposit",
		Usage:     "Lock value in escrow for a recipient",
		ArgsUsage: "<recipient> <amount>",
		Description: `The signer of the transaction becomes the sender of the transfer.
The new transfer id is printed as data.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "fx-rate", Usage: "exchange rate recorded with the transfer", Value: "0"},
			&cli.StringFlag{Name: "from", Usage: "source currency code"},
			&cli.StringFlag{Name: "to", Usage: "target currency code"},
		},
		Action: func(c *cli.Context) error {
			a, err := args(c, 2)
			if err != nil {
				return err
			}
			recipient, err := parseAddress("recipient", a[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", a[1])
			if err != nil {
				return err
			}
			rate, err := parseAmount("fx-rate", c.String("fx-rate"))
			if err != nil {
				return err
			}
			tx, err := remitd.NewCallTx(&remittance.DepositMsg{
				Recipient:      recipient,
				FxRate:         rate,
				SourceCurrency: c.String("from"),
				TargetCurrency: c.String("to"),
			}, amount)
			if err != nil {
				return err
			}
			res, err := commit(c.Context, c, tx, true)
			if err != nil {
				return err
			}
			out := newTxResult(res)
			if id, err := remittance.DecodeUintResult(res.Result.Data); err == nil {
				out.Data = id.String()
			}
			return printJSON(c.App.Writer, out)
		},
	}
}

func withdrawCommand() *cli.Command {
	return &cli.Command{
		Name:      "withdraw",
		Usage:     "Release an escrowed transfer to its recipient",
		ArgsUsage: "<transfer id>",
		Description: `Anyone may trigger a withdraw, the value always goes to the recorded
recipient. The transaction is sent unsigned unless -sign is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "sign", Usage: "sign with the configured key"},
		},
		Action: func(c *cli.Context) error {
			a, err := args(c, 1)
			if err != nil {
				return err
			}
			id, err := parseID(a[0])
			if err != nil {
				return err
			}
			tx, err := remitd.NewCallTx(&remittance.WithdrawMsg{TransferID: coin.NewInt(id)}, nil)
			if err != nil {
				return err
			}
			res, err := commit(c.Context, c, tx, c.Bool("sign"))
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, newTxResult(res))
		},
	}
}

func setKycCommand() *cli.Command {
	return &cli.Command{
		Name:      "set-kyc",
		Usage:     "Set the verification flag of an account, admin only",
		ArgsUsage: "<account> <true|false>",
		Action: func(c *cli.Context) error {
			a, err := args(c, 2)
			if err != nil {
				return err
			}
			account, err := parseAddress("account", a[0])
			if err != nil {
				return err
			}
			verified, err := strconv.ParseBool(a[1])
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "verified %q", a[1])
			}
			tx, err := remitd.NewCallTx(&remittance.SetKycStatusMsg{Account: account, Verified: verified}, nil)
			if err != nil {
				return err
			}
			res, err := commit(c.Context, c, tx, true)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, newTxResult(res))
		},
	}
}

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Transfer value between accounts",
		ArgsUsage: "<destination> <amount>",
		Action: func(c *cli.Context) error {
			a, err := args(c, 2)
			if err != nil {
				return err
			}
			dest, err := parseAddress("destination", a[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount("amount", a[1])
			if err != nil {
				return err
			}
			res, err := commit(c.Context, c, remitd.NewSendTx(dest, amount), true)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, newTxResult(res))
		},
	}
}
