package remit

import (
	"fmt"
	"strings"

	"github.com/remitchain/remit/errors"
)

// Query modifiers, given after a '?' in the query path.
const (
	// KeyQueryMod selects the entry stored under the exact key.
	KeyQueryMod = ""
	// PrefixQueryMod selects every entry whose key starts with the data.
	PrefixQueryMod = "prefix"
)

// Model is a key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the queries sent to one path, such as "/transfers"
// or "/kyc". A miss returns no models and no error.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of an extension to a router.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths to their handlers.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with this router.
func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register routes path to h. It panics if path is taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("Re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// Route resolves a full query path like "/transfers?prefix" into its
// handler and modifier. An unknown path fails with ErrNotFound.
func (r QueryRouter) Route(fullPath string) (QueryHandler, string, error) {
	path, mod := fullPath, KeyQueryMod
	if i := strings.IndexByte(fullPath, '?'); i >= 0 {
		path, mod = fullPath[:i], fullPath[i+1:]
	}
	h := r.routes[path]
	if h == nil {
		return nil, "", errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", fullPath)
	}
	return h, mod, nil
}
