package utils

import (
	"github.com/remitchain/remit"
)

// ActionTagger will inspect the message being executed and
// add an event `action` with the `path` of the message. This should be
// applied as a decorator so clients have a standard way to search or
// subscribe to eg. every deposit.
type ActionTagger struct{}

var _ remit.Decorator = ActionTagger{}

const (
	// ActionEvent is the type of the event appended by ActionTagger
	ActionEvent = "action"
	// ActionPathKey is the attribute holding the message path
	ActionPathKey = "path"
)

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx remit.Context, db remit.KVStore, tx remit.Tx, next remit.Checker) (*remit.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends an event on the result if there is a success.
func (ActionTagger) Deliver(ctx remit.Context, db remit.KVStore, tx remit.Tx, next remit.Deliverer) (*remit.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Events = append(res.Events, remit.NewEvent(ActionEvent, ActionPathKey, msg.Path()))
	return res, nil
}
