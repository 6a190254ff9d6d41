package main

import (
	"context"
	"strconv"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/client"
	remitd "github.com/remitchain/remit/cmd/remitd/app"
	"github.com/remitchain/remit/coin"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/x/sigs"
	"github.com/urfave/cli/v2"
)

// args returns the positional arguments, failing unless exactly want
// were given.
func args(c *cli.Context, want int) ([]string, error) {
	got := c.Args().Slice()
	if len(got) != want {
		return nil, errors.Wrapf(errors.ErrInput, "%s expects %d arguments, got %d", c.Command.Name, want, len(got))
	}
	return got, nil
}

func parseAddress(name, s string) (remit.Address, error) {
	addr, err := remit.ParseAddress(s)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return addr, nil
}

func parseAmount(name, s string) (coin.Int, error) {
	v, err := coin.ParseInt(s)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return v, nil
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "transfer id %q", s)
	}
	return id, nil
}

// commit optionally signs tx with the configured key and waits until it
// is included in a block. A transaction failing in the block returns its
// error.
func commit(ctx context.Context, c *cli.Context, tx *remitd.Tx, sign bool) (*client.CommitResult, error) {
	cl := newClient(c)
	if sign {
		key, err := sigs.LoadPrivateKey(c.String("key"))
		if err != nil {
			return nil, err
		}
		chainID := c.String("chain-id")
		if chainID == "" {
			status, err := cl.Status(ctx)
			if err != nil {
				return nil, err
			}
			chainID = status.ChainID
		}
		sig, err := cl.SignTx(tx, key, chainID)
		if err != nil {
			return nil, errors.Wrap(err, "sign")
		}
		tx.Signatures = append(tx.Signatures, sig)
	}

	res, err := cl.CommitTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, errors.Wrapf(res.Err, "transaction %X at height %d", res.ID, res.Height)
	}
	return res, nil
}

// txResult is the printed form of a committed transaction.
type txResult struct {
	ID     string       `json:"id"`
	Height int64        `json:"height"`
	Events []eventPrint `json:"events,omitempty"`
	Data   interface{}  `json:"data,omitempty"`
}

type eventPrint struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

func newTxResult(res *client.CommitResult) txResult {
	out := txResult{
		ID:     res.ID.String(),
		Height: res.Height,
	}
	if res.Result == nil {
		return out
	}
	for _, e := range res.Result.Events {
		attrs := make(map[string]string, len(e.Attributes))
		for _, a := range e.Attributes {
			attrs[a.Key] = a.Value
		}
		out.Events = append(out.Events, eventPrint{Type: e.Type, Attributes: attrs})
	}
	return out
}
