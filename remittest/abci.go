package remittest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/app"
	"github.com/remitchain/remit/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is implemented by both *testing.T and *testing.B. Use it instead of
// the pointer type to allow notation to accept both objects.
type Tester interface {
	Helper()
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// Runner provides a translation layer between an ABCI interface and a
// remit application. It takes care of serializing transactions and creating
// blocks.
type Runner struct {
	chainID string
	height  int64
	t       Tester
	app     abci.Application
	store   *app.ABCIStore
}

// NewRunner creates a Runner instance that can be used to process deliver
// and check transaction requests. Block creation failures end the test.
func NewRunner(t Tester, abciApp abci.Application, chainID string) *Runner {
	return &Runner{
		chainID: chainID,
		height:  0,
		t:       t,
		app:     abciApp,
		store:   app.NewABCIStore(abciApp),
	}
}

// App is the minimal interface required to send transactions into a block
// and read the committed state.
type App interface {
	DeliverTx(remit.Tx) (*remit.DeliverResult, error)
	CheckTx(remit.Tx) error
	remit.ReadOnlyKVStore
}

var _ App = (*Runner)(nil)

// InitChain serialize to JSON given genesis and loads it. Loading a genesis is
// causing a block creation.
func (r *Runner) InitChain(genesis interface{}) {
	r.t.Helper()

	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		r.t.Fatalf("cannot JSON serialize genesis: %s", err)
	}

	// Load the genesis in a separate block.
	changed := r.InBlock(func(App) error {
		r.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       r.chainID,
			AppStateBytes: raw,
		})
		return nil
	})

	if !changed {
		r.t.Fatalf("genesis did not change the state")
	}
}

// Height returns the height of the last created block.
func (r *Runner) Height() int64 {
	return r.height
}

// CheckTx translates given transaction into ABCI interface and executes.
func (r *Runner) CheckTx(tx remit.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	if resp := r.app.CheckTx(raw); resp.Code != errors.SuccessABCICode {
		return errors.ABCIError(resp.Code, resp.Log)
	}
	return nil
}

// DeliverTx translates given transaction into ABCI interface and executes.
// The returned error carries the ABCI code so it can be compared with the
// registered errors.
func (r *Runner) DeliverTx(tx remit.Tx) (*remit.DeliverResult, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal transaction")
	}
	return remit.ParseDeliverOrError(r.app.DeliverTx(raw))
}

// InBlock begins a block and runs given function. All transactions executed
// withing given function are part of newly created block. Upon success the
// block is finished and changes committed.
// InBlock returns true if the application state was modified.
//
// Any failure is ending the test instantly.
func (r *Runner) InBlock(executeTx func(App) error) bool {
	r.t.Helper()

	r.height++

	initialHash := r.app.Info(abci.RequestInfo{}).LastBlockAppHash

	// BeginBlock will panic on error.
	r.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: r.chainID,
			Height:  r.height,
			Time:    time.Now(),
		},
	})

	if err := executeTx(r); err != nil {
		r.t.Fatalf("operation failed with %+v", err)
	}

	r.app.EndBlock(abci.RequestEndBlock{
		Height: r.height,
	})

	// Commit data contains the new app hash. It differs from the initial
	// hash only if the state was modified.
	finalHash := r.app.Commit().Data
	return !bytes.Equal(initialHash, finalHash)
}

func (r *Runner) Get(key []byte) ([]byte, error) {
	return r.store.Get(key)
}

func (r *Runner) Has(key []byte) (bool, error) {
	return r.store.Has(key)
}

func (r *Runner) Iterator(start, end []byte) (remit.Iterator, error) {
	return r.store.Iterator(start, end)
}

func (r *Runner) ReverseIterator(start, end []byte) (remit.Iterator, error) {
	return r.store.ReverseIterator(start, end)
}
