package app_test

import (
	"context"
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/app"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest"
	"github.com/remitchain/remit/remittest/assert"
)

func TestChain(t *testing.T) {
	var (
		c1, c2, c3 remittest.Decorator
		h          remittest.Handler
		nilDec     *remittest.Decorator
	)

	stack := app.ChainDecorators(
		&c1,
		nil,
		&c2,
		nilDec,
	).Chain(&c3).WithHandler(&h)

	ctx := context.Background()

	_, err := stack.Check(ctx, nil, nil)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, nil, nil)
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// a failing decorator stops the call going down the stack
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, nil)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 3, c1.CallCount())
	assert.Equal(t, 3, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

// orderDecorator appends its name to a shared list when called
type orderDecorator struct {
	name string
	log  *[]string
}

func (d orderDecorator) Check(ctx remit.Context, db remit.KVStore, tx remit.Tx, next remit.Checker) (*remit.CheckResult, error) {
	*d.log = append(*d.log, d.name)
	return next.Check(ctx, db, tx)
}

func (d orderDecorator) Deliver(ctx remit.Context, db remit.KVStore, tx remit.Tx, next remit.Deliverer) (*remit.DeliverResult, error) {
	*d.log = append(*d.log, d.name)
	return next.Deliver(ctx, db, tx)
}

func TestChainOrder(t *testing.T) {
	var log []string
	stack := app.ChainDecorators(
		orderDecorator{"first", &log},
		orderDecorator{"second", &log},
	).Chain(
		orderDecorator{"third", &log},
	).WithHandler(&remittest.Handler{})

	_, err := stack.Deliver(context.Background(), nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, log)
}
