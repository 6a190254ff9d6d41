package remittest

import "github.com/remitchain/remit"

// Decorator is a mock remit.Decorator. It passes every call to the next
// handler unless CheckErr or DeliverErr is set, in which case it fails
// without calling it. Calls are counted either way.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ remit.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx remit.Context, db remit.KVStore, tx remit.Tx, next remit.Checker) (*remit.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx remit.Context, db remit.KVStore, tx remit.Tx, next remit.Deliverer) (*remit.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate stacks d on top of h, like app.ChainDecorators does for a
// single decorator.
func Decorate(h remit.Handler, d remit.Decorator) remit.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   remit.Handler
	decorator remit.Decorator
}

func (d decorated) Check(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx remit.Context, db remit.KVStore, tx remit.Tx) (*remit.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
