package cash

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use remit.Address, so address in hex, not base64
type GenesisAccount struct {
	Address remit.Address `json:"address"`
	Balance coin.Int      `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct {
	control *BaseController
}

var _ remit.Initializer = (*Initializer)(nil)

// NewInitializer returns an initializer minting through given controller.
func NewInitializer(control *BaseController) *Initializer {
	return &Initializer{control: control}
}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (i *Initializer) FromGenesis(opts remit.Options, kv remit.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	for n, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
		if err := i.control.Mint(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
	}
	return nil
}
