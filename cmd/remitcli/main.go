package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/client"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "remitcli",
		Usage:   "Command line client for the remittance escrow ledger",
		Version: remit.Version(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "node",
				Usage:   "tendermint rpc address of the node",
				EnvVars: []string{"REMITCLI_NODE"},
				Value:   "http://localhost:26657",
			},
			&cli.StringFlag{
				Name:    "key",
				Usage:   "path to the hex encoded private key file",
				EnvVars: []string{"REMITCLI_PRIV_KEY"},
				Value:   filepath.Join(os.ExpandEnv("$HOME"), ".remit.priv.key"),
			},
			&cli.StringFlag{
				Name:    "chain-id",
				Usage:   "chain signatures are bound to, read from the node when empty",
				EnvVars: []string{"REMITCLI_CHAIN_ID"},
			},
		},
		Commands: []*cli.Command{
			keygenCommand(),
			addressCommand(),
			depositCommand(),
			withdrawCommand(),
			setKycCommand(),
			sendCommand(),
			transferCommand(),
			countCommand(),
			kycCommand(),
			pendingCommand(),
			balanceCommand(),
			watchCommand(),
		},
	}
}

func newClient(c *cli.Context) *client.Client {
	return client.NewClient(client.NewHTTPConnection(c.String("node")))
}

// printJSON writes v indented to the output of the application.
func printJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}
