package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/remittest"
	"github.com/remitchain/remit/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	tx := &remittest.Tx{Msg: &remittest.Msg{RoutePath: "remittance/withdraw"}}

	cases := map[string]struct {
		handler remit.Handler
		check   bool
		wantLog []string
		wantNot []string
	}{
		"check success logs on debug": {
			handler: &remittest.Handler{CheckResult: remit.CheckResult{Log: "checked"}},
			check:   true,
			wantLog: []string{"D[", "checked", "path=remittance/withdraw", "duration="},
			wantNot: []string{"err="},
		},
		"deliver success logs on info": {
			handler: &remittest.Handler{DeliverResult: remit.DeliverResult{Log: "delivered"}},
			wantLog: []string{"I[", "delivered", "path=remittance/withdraw"},
			wantNot: []string{"err="},
		},
		"failure logs on error": {
			handler: &remittest.Handler{DeliverErr: errors.ErrUnauthorized},
			wantLog: []string{"E[", "err=unauthorized", "path=remittance/withdraw"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := remit.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
			db := store.MemStore()

			if tc.check {
				_, _ = NewLogging().Check(ctx, db, tx, tc.handler)
			} else {
				_, _ = NewLogging().Deliver(ctx, db, tx, tc.handler)
			}
			for _, s := range tc.wantLog {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tc.wantNot {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}
