/*
Package remitd links together all the various components
to construct the remitd app.
*/
package remitd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/app"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/orm"
	"github.com/remitchain/remit/store/iavl"
	"github.com/remitchain/remit/x"
	"github.com/remitchain/remit/x/cash"
	"github.com/remitchain/remit/x/remittance"
	"github.com/remitchain/remit/x/sigs"
	"github.com/remitchain/remit/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. Metrics may be nil.
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		// withdraw can be sent by anyone, so unsigned tx are let through
		// and the handlers decide whether they need a signer
		sigs.NewDecorator().AllowMissingSigs(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a default router, dispatching to the cash.SendMsg and
// the remittance ledger calls.
func Router(authFn x.Authenticator, bank cash.Controller) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, bank)
	remittance.RegisterRoutes(r, authFn, remittance.NewLedger(bank))
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth", "/transfers", "/kyc",
// "/remittance/call", "/remittance/pending" and the raw store under "/"
func QueryRouter() remit.QueryRouter {
	r := remit.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		remittance.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(bank cash.Controller, metrics *utils.Metrics) remit.Handler {
	authFn := Authenticator()
	return Chain(metrics).
		WithHandler(Router(authFn, bank))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h remit.Handler,
	tx remit.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (remit.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}

// NewMetrics registers the transaction collectors with reg. It returns
// nil when reg is nil.
func NewMetrics(reg prometheus.Registerer) (*utils.Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	return utils.NewMetrics(reg)
}
