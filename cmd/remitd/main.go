package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/remitchain/remit"
	remitd "github.com/remitchain/remit/cmd/remitd/app"
	"github.com/remitchain/remit/commands"
	"github.com/remitchain/remit/commands/server"
	"github.com/remitchain/remit/x/cash"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "remitd",
		Usage:   "Remittance escrow ledger node",
		Version: remit.Version(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "home",
				Usage:   "directory to store files under",
				EnvVars: []string{"REMITD_HOME"},
				Value:   filepath.Join(os.ExpandEnv("$HOME"), ".remit"),
			},
			&cli.StringFlag{
				Name:    "log_level",
				Usage:   "minimum level logged: debug, info, error or none",
				EnvVars: []string{"REMITD_LOG_LEVEL"},
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Initialize app options in genesis file",
				ArgsUsage: "[admin[=balance]] [address[=balance]...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"i"},
						Usage:   "overwrite an existing app_state",
					},
				},
				Action: func(c *cli.Context) error {
					logger, err := newLogger(c)
					if err != nil {
						return err
					}
					return server.InitCmd(remitd.GenInitOptions, logger, c.String("home"), c.Bool("force"), c.Args().Slice())
				},
			},
			{
				Name:  "start",
				Usage: "Run the abci server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "bind",
						Usage:   "address server listens on",
						EnvVars: []string{"REMITD_BIND"},
						Value:   "tcp://localhost:26658",
					},
					&cli.BoolFlag{
						Name:    "debug",
						Usage:   "call stack returned on error",
						EnvVars: []string{"REMITD_DEBUG"},
					},
					&cli.StringFlag{
						Name:    "metrics",
						Usage:   "address of the prometheus endpoint, disabled when empty",
						EnvVars: []string{"REMITD_METRICS"},
					},
				},
				Action: func(c *cli.Context) error {
					logger, err := newLogger(c)
					if err != nil {
						return err
					}
					return server.StartCmd(remitd.GenerateApp, logger, c.String("home"), server.StartOptions{
						Bind:        c.String("bind"),
						Debug:       c.Bool("debug"),
						MetricsAddr: c.String("metrics"),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Load the app_state of genesis files into a scratch store",
				ArgsUsage: "[genesis.json...]",
				Action: func(c *cli.Context) error {
					paths := c.Args().Slice()
					if len(paths) == 0 {
						paths = []string{server.GenesisPath(c.String("home"))}
					}
					return server.ValidateGenesis(remitd.Initializers(cash.NewController()), paths)
				},
			},
			{
				Name:      "testgen",
				Usage:     "Write example encodings for client tests",
				ArgsUsage: "[outdir]",
				Action: func(c *cli.Context) error {
					return commands.TestGenCmd(remitd.Examples(), c.Args().Slice())
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "remit")
	opt, err := log.AllowLevel(c.String("log_level"))
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}
