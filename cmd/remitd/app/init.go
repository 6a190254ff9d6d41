package remitd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/app"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/x/cash"
	"github.com/remitchain/remit/x/remittance"
	"github.com/remitchain/remit/x/sigs"
	"github.com/remitchain/remit/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultBalance is minted for every account listed in GenInitOptions
// without an explicit balance.
const DefaultBalance = 123456789

type genesisState struct {
	Cash       []cash.GenesisAccount `json:"cash"`
	Remittance remittance.Genesis    `json:"remittance"`
}

// GenInitOptions will produce the options for a dev chain. The first
// argument is the admin address, the rest are accounts to fund, each
// optionally followed by "=balance". The admin is funded as well.
//
// Without arguments a new admin key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var state genesisState

	if len(args) == 0 {
		key := sigs.GenPrivateKey()
		addr, err := sigs.SignerAddress(key)
		if err != nil {
			return nil, err
		}
		fmt.Printf("admin address: %s\nadmin secret: %s\n", addr, sigs.EncodePrivateKey(key))
		args = []string{addr.String()}
	}

	for i, arg := range args {
		acct, err := parseGenesisAccount(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		if i == 0 {
			state.Remittance.Admin = acct.Address
		}
		state.Cash = append(state.Cash, acct)
	}
	return json.MarshalIndent(state, "", "  ")
}

func parseGenesisAccount(arg string) (cash.GenesisAccount, error) {
	addr, amount, ok := strings.Cut(arg, "=")
	balance := coin.NewInt(DefaultBalance)
	if ok {
		v, err := coin.ParseInt(amount)
		if err != nil {
			return cash.GenesisAccount{}, err
		}
		balance = v
	}
	a, err := remit.ParseAddress(addr)
	if err != nil {
		return cash.GenesisAccount{}, err
	}
	return cash.GenesisAccount{Address: a, Balance: balance}, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "remit.db")
	}

	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	application, err := InlineApp(dbPath, logger, debug, metrics)
	if err != nil {
		return nil, err
	}
	return application, nil
}

// InlineApp builds the application on the database at dbPath, in memory
// when dbPath is empty.
func InlineApp(dbPath string, logger log.Logger, debug bool, metrics *utils.Metrics) (app.BaseApp, error) {
	bank := cash.NewController()
	stack := Stack(bank, metrics)
	application, err := Application("remitd", stack, TxDecoder, dbPath, debug)
	if err != nil {
		return app.BaseApp{}, err
	}
	application.WithInit(Initializers(bank))

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

// Initializers loads the genesis sections of all extensions.
func Initializers(bank *cash.BaseController) remit.Initializer {
	return app.ChainInitializers(
		cash.NewInitializer(bank),
		&remittance.Initializer{},
	)
}
