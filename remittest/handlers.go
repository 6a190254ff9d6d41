package remittest

import "github.com/remitchain/remit"

// calls counts the Check and Deliver calls of a mock.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a mock remit.Handler returning the configured results.
//
// Set CheckErr or DeliverErr to force an error response. Each call is
// counted regardless of the result.
type Handler struct {
	calls
	CheckResult remit.CheckResult
	CheckErr    error

	DeliverResult remit.DeliverResult
	DeliverErr    error
}

var _ remit.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler writes the configured key and value into the store on every
// call and then returns Err.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ remit.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &remit.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &remit.DeliverResult{}, nil
}

// PanicHandler panics with the given value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ remit.Handler = PanicHandler{}

func (h PanicHandler) Check(remit.Context, remit.KVStore, remit.Tx) (*remit.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(remit.Context, remit.KVStore, remit.Tx) (*remit.DeliverResult, error) {
	panic(h.Value)
}
