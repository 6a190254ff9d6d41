package utils

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest"
	"github.com/remitchain/remit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	db := store.MemStore()
	tx := &remittest.Tx{Msg: &remittest.Msg{RoutePath: "remittance/deposit"}}

	ok := &remittest.Handler{}
	failing := &remittest.Handler{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrUnauthorized}

	_, _ = m.Check(ctx, db, tx, ok)
	_, _ = m.Deliver(ctx, db, tx, ok)
	_, _ = m.Deliver(ctx, db, tx, ok)
	_, _ = m.Deliver(ctx, db, tx, failing)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("remittance/deposit", "check", "0")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.txs.WithLabelValues("remittance/deposit", "deliver", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("remittance/deposit", "deliver", "2")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "remit_transactions_total")
	assert.Contains(t, names, "remit_handler_duration_seconds")

	// collectors cannot be registered twice
	_, err = NewMetrics(reg)
	assert.True(t, errors.ErrHuman.Is(err))
}
