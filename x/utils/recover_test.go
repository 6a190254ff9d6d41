package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest"
	"github.com/remitchain/remit/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecovery(t *testing.T) {
	h := remittest.PanicHandler{Value: "boom"}
	r := NewRecovery()

	var buf bytes.Buffer
	ctx := remit.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { _, _ = h.Check(ctx, s, nil) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "boom")

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 2, strings.Count(buf.String(), "recovered from panic"))
}

func TestRecoveryPassesResults(t *testing.T) {
	h := &remittest.Handler{DeliverResult: remit.DeliverResult{Data: []byte("ok")}}
	res, err := NewRecovery().Deliver(context.Background(), store.MemStore(), nil, h)
	assert.NoError(t, err)
	assert.Equal(t, []byte("ok"), res.Data)
}
