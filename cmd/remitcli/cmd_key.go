package main

import (
	"fmt"

	"github.com/remitchain/remit/x/sigs"
	"github.com/urfave/cli/v2"
)

func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a new private key and print its address",
		Description: `When successful a new file with the hex encoded private key is
created. This command fails if the private key file already exists,
unless -force is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "overwrite an existing key file"},
		},
		Action: func(c *cli.Context) error {
			key := sigs.GenPrivateKey()
			if err := sigs.SavePrivateKey(key, c.String("key"), c.Bool("force")); err != nil {
				return err
			}
			addr, err := sigs.SignerAddress(key)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, addr)
			return err
		},
	}
}

func addressCommand() *cli.Command {
	return &cli.Command{
		Name:  "address",
		Usage: "Print the address controlled by the private key",
		Action: func(c *cli.Context) error {
			key, err := sigs.LoadPrivateKey(c.String("key"))
			if err != nil {
				return err
			}
			addr, err := sigs.SignerAddress(key)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, addr)
			return err
		},
	}
}
