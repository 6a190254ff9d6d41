package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/remitchain/remit/client"
	"github.com/urfave/cli/v2"
)

func transferCommand() *cli.Command {
	return &cli.Command{
		Name:      "transfer",
		Usage:     "Print a transfer",
		ArgsUsage: "<transfer id>",
		Action: func(c *cli.Context) error {
			a, err := args(c, 1)
			if err != nil {
				return err
			}
			id, err := parseID(a[0])
			if err != nil {
				return err
			}
			t, err := newClient(c).GetTransfer(id)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, t)
		},
	}
}

func countCommand() *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "Print the number of transfers ever created",
		Action: func(c *cli.Context) error {
			n, err := newClient(c).TransferCount()
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, n)
		},
	}
}

func kycCommand() *cli.Command {
	return &cli.Command{
		Name:      "kyc",
		Usage:     "Print the verification flag of an account",
		ArgsUsage: "<account>",
		Action: func(c *cli.Context) error {
			a, err := args(c, 1)
			if err != nil {
				return err
			}
			account, err := parseAddress("account", a[0])
			if err != nil {
				return err
			}
			ok, err := newClient(c).KycVerified(account)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, ok)
		},
	}
}

func pendingCommand() *cli.Command {
	return &cli.Command{
		Name:      "pending",
		Usage:     "List the transfers a recipient can still withdraw",
		ArgsUsage: "<recipient>",
		Action: func(c *cli.Context) error {
			a, err := args(c, 1)
			if err != nil {
				return err
			}
			recipient, err := parseAddress("recipient", a[0])
			if err != nil {
				return err
			}
			pending, err := newClient(c).Pending(recipient)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, pending)
		},
	}
}

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "balance",
		Usage:     "Print the balance of an account",
		ArgsUsage: "<address>",
		Action: func(c *cli.Context) error {
			a, err := args(c, 1)
			if err != nil {
				return err
			}
			addr, err := parseAddress("address", a[0])
			if err != nil {
				return err
			}
			balance, err := newClient(c).Balance(addr)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, balance)
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Print transfers created for a recipient as they are committed",
		ArgsUsage: "<recipient>",
		Description: `Subscribes to the node websocket and prints every transaction that
emits a TransferCreated event for the recipient, until interrupted.`,
		Action: func(c *cli.Context) error {
			a, err := args(c, 1)
			if err != nil {
				return err
			}
			recipient, err := parseAddress("recipient", a[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			defer signal.Stop(sig)
			go func() {
				select {
				case <-sig:
					cancel()
				case <-ctx.Done():
				}
			}()

			conn := client.NewHTTPConnection(c.String("node"))
			if err := conn.Start(); err != nil {
				return err
			}
			defer conn.Stop()

			results := make(chan client.CommitResult, 16)
			query := client.QueryTxByEvent("TransferCreated", "recipient", recipient.String())
			if err := client.NewClient(conn).SubscribeTx(ctx, query, results); err != nil {
				return err
			}
			for res := range results {
				res := res
				if err := printJSON(c.App.Writer, newTxResult(&res)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
