package app

import (
	"encoding/json"
	"fmt"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state side of the ABCI application: the
// handshake, genesis, block boundaries, commits and queries. BaseApp embeds
// it and adds the transaction handling.
//
// Info, InitChain, BeginBlock, EndBlock and Commit do not process user
// input. A failure there means the node state is broken, and they panic.
type StoreApp struct {
	name        string
	logger      log.Logger
	store       *CommitStore
	initializer remit.Initializer
	queryRouter remit.QueryRouter

	// chainID is empty until genesis, and stored in the state after.
	chainID string

	// baseContext carries what holds for the life of the process: the
	// logger and the chain id. blockContext adds the height and time of the
	// current block and is rebuilt on every BeginBlock.
	baseContext  remit.Context
	blockContext remit.Context
}

// NewStoreApp opens the application state. name is reported in Info.
// It panics if the stored state cannot be read.
func NewStoreApp(name string, store remit.CommitKVStore, queryRouter remit.QueryRouter, baseContext remit.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	if s.chainID = mustLoadChainID(s.DeliverStore()); s.chainID != "" {
		s.baseContext = remit.WithChainID(s.baseContext, s.chainID)
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = remit.WithHeight(s.baseContext, info.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer InitChain feeds the genesis app state to.
func (s *StoreApp) WithInit(init remit.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the application and of the contexts its
// handlers receive.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = remit.WithLogger(s.baseContext, logger)
	if s.blockContext != nil {
		s.blockContext = remit.WithLogger(s.blockContext, logger)
	}
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext is the context transactions of the current block run with.
func (s *StoreApp) BlockContext() remit.Context {
	return s.blockContext
}

// DeliverStore is where DeliverTx writes, committed with the block.
func (s *StoreApp) DeliverStore() remit.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore is the mempool view, reset on every commit.
func (s *StoreApp) CheckStore() remit.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis stores the chain id and passes the app state to the
// initializer. It runs once in the life of a chain.
func (s *StoreApp) loadGenesis(appState []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %s", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrState, "app_state not set in genesis.json, run remitd init before starting the chain")
	}
	var opts remit.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = remit.WithChainID(s.baseContext, chainID)
	// CheckTx may run before the first BeginBlock
	s.blockContext = remit.WithChainID(s.blockContext, chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// Info reports the last committed height and app hash so tendermint can
// replay the missing blocks.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          remit.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported. All configuration comes from the genesis
// file and the process flags.
func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query reads the committed state. The path selects a registered handler:
// "/" for raw keys, "/transfers", "/transfers/recipient", "/kyc",
// "/remittance/call" and so on, optionally followed by "?prefix". Only the
// latest height is served.
//
// Key and Value of the response are ResultSets of equal length holding the
// keys and values of all matches.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	qh, mod, err := s.queryRouter.Route(req.Path)
	if err != nil {
		return queryError(err)
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	if req.Height != 0 && req.Height != info.Version {
		return queryError(errors.Wrapf(errors.ErrInput, "only the latest height %d can be queried", info.Version))
	}

	models, err := qh.Query(s.store.CommittedStore(), mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// InitChain loads the genesis app state. Tendermint only sends it when the
// chain starts from height zero.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	s.logger.Info("Genesis loaded", "chain_id", req.ChainId)
	return abci.ResponseInitChain{}
}

// BeginBlock sets the height and time of the new block on the context.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := remit.WithHeight(s.baseContext, req.Header.GetHeight())
	s.blockContext = remit.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
