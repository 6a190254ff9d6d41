package remittance

import (
	"context"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
)

const optKey = "remittance"

// Genesis is the "remittance" section of the genesis file.
type Genesis struct {
	Admin      remit.Address   `json:"admin"`
	EnforceKyc bool            `json:"enforce_kyc"`
	Verified   []remit.Address `json:"verified"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ remit.Initializer = (*Initializer)(nil)

// FromGenesis stores the admin and the accounts verified from the start.
// The admin cannot be changed afterwards.
func (*Initializer) FromGenesis(opts remit.Options, db remit.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if gen.Admin == nil {
		if gen.EnforceKyc || len(gen.Verified) > 0 {
			return errors.Wrap(errors.ErrInput, "admin required")
		}
		return nil
	}

	ledger := NewLedger(nil)
	conf := &Config{Admin: gen.Admin, EnforceKyc: gen.EnforceKyc}
	if err := ledger.setConfig(db, conf); err != nil {
		return errors.Wrap(err, "config")
	}
	ctx := context.Background()
	for n, acct := range gen.Verified {
		if _, err := ledger.SetKycStatus(ctx, db, gen.Admin, acct, true); err != nil {
			return errors.Wrapf(err, "verified account %d", n)
		}
	}
	return nil
}
