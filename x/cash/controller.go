package cash

import (
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
)

// Receiver is implemented by programmable accounts. It is called each time
// value is credited to the account it was registered for, after the
// balances are updated. Returning an error rejects the value and aborts
// the move.
type Receiver interface {
	Receive(ctx remit.Context, db remit.KVStore, from remit.Address, amount coin.Int) error
}

// ReceiverFunc allows a function to be used as a Receiver.
type ReceiverFunc func(ctx remit.Context, db remit.KVStore, from remit.Address, amount coin.Int) error

func (fn ReceiverFunc) Receive(ctx remit.Context, db remit.KVStore, from remit.Address, amount coin.Int) error {
	return fn(ctx, db, from, amount)
}

// Controller is the functionality needed by other extensions to hold and
// move value.
type Controller interface {
	Balance(db remit.ReadOnlyKVStore, addr remit.Address) (coin.Int, error)
	MoveValue(ctx remit.Context, db remit.KVStore, src, dest remit.Address, amount coin.Int) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket    Bucket
	receivers map[string]Receiver
}

var _ Controller = (*BaseController)(nil)

// NewController returns a controller without any receiver registered.
func NewController() *BaseController {
	return &BaseController{
		bucket:    NewBucket(),
		receivers: make(map[string]Receiver),
	}
}

// RegisterReceiver sets the receiver called for every credit to addr.
// It panics if one was already registered for that address. Register
// receivers while building the application, before the first block.
func (c *BaseController) RegisterReceiver(addr remit.Address, r Receiver) {
	if _, ok := c.receivers[string(addr)]; ok {
		panic("receiver already registered for " + addr.String())
	}
	c.receivers[string(addr)] = r
}

// Balance returns the value held by the account, zero for unknown accounts.
func (c *BaseController) Balance(db remit.ReadOnlyKVStore, addr remit.Address) (coin.Int, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if w := AsWallet(obj); w != nil {
		return w.Balance, nil
	}
	return nil, nil
}

// MoveValue moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// value, it fails. A receiver registered for dest is called once both
// balances are stored; its error undoes the whole move.
func (c *BaseController) MoveValue(ctx remit.Context, db remit.KVStore, src, dest remit.Address, amount coin.Int) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}

	return remit.InSavepoint(db, func(db remit.KVStore) error {
		sender, err := c.bucket.Get(db, src)
		if err != nil {
			return err
		}
		if sender == nil {
			return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
		}
		if err := AsWallet(sender).Subtract(amount); err != nil {
			return err
		}
		if err := c.bucket.Save(db, sender); err != nil {
			return err
		}

		recipient, err := c.bucket.GetOrCreate(db, dest)
		if err != nil {
			return err
		}
		if err := AsWallet(recipient).Add(amount); err != nil {
			return err
		}
		if err := c.bucket.Save(db, recipient); err != nil {
			return err
		}

		if r, ok := c.receivers[string(dest)]; ok {
			if err := r.Receive(ctx, db, src, amount); err != nil {
				return errors.Wrap(err, "value rejected by receiver")
			}
		}
		return nil
	})
}

// Mint adds the amount to the destination account without taking it from
// anywhere. It fails if the balance would overflow. Only genesis mints.
func (c *BaseController) Mint(db remit.KVStore, dest remit.Address, amount coin.Int) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	obj, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := AsWallet(obj).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, obj)
}
