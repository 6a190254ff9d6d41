package remit_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestCreateErrorResult(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantLog  string
		wantCode uint32
	}{
		"registered error": {
			err:      errors.Wrap(errors.ErrUnauthorized, "nonce"),
			wantLog:  "nonce: unauthorized",
			wantCode: errors.ErrUnauthorized.ABCICode(),
		},
		"internal error is redacted": {
			err:      fmt.Errorf("database password leaked"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"internal error in debug mode": {
			err:      fmt.Errorf("stack"),
			debug:    true,
			wantLog:  "stack",
			wantCode: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := remit.DeliverTxError(tc.err, tc.debug)
			assert.True(t, dres.IsErr())
			assert.True(t, strings.HasPrefix(dres.Log, "cannot deliver tx: "), dres.Log)
			assert.Contains(t, dres.Log, tc.wantLog)
			assert.Equal(t, tc.wantCode, dres.Code)

			cres := remit.CheckTxError(tc.err, tc.debug)
			assert.True(t, cres.IsErr())
			assert.True(t, strings.HasPrefix(cres.Log, "cannot check tx: "), cres.Log)
			assert.Contains(t, cres.Log, tc.wantLog)
			assert.Equal(t, tc.wantCode, cres.Code)
		})
	}
}

func TestCreateResults(t *testing.T) {
	d, msg := []byte{1, 3, 4}, "got it"
	dres := remit.DeliverResult{Data: d, Log: msg}
	ad := dres.ToABCI()
	assert.EqualValues(t, d, ad.Data)
	assert.Equal(t, msg, ad.Log)
	assert.Empty(t, ad.Tags)

	c, gas := "aok", int64(12345)
	cres := &remit.CheckResult{GasAllocated: gas, Log: c}
	ac := cres.ToABCI()
	assert.Equal(t, c, ac.Log)
	assert.Equal(t, gas, ac.GasWanted)
	assert.Empty(t, ac.Data)

	assert.Equal(t, ad, remit.DeliverOrError(&dres, nil, false))
	assert.Equal(t, ac, remit.CheckOrError(cres, nil, false))
	assert.False(t, remit.DeliverOrError(nil, nil, false).IsErr())
	assert.True(t, remit.CheckOrError(cres, errors.ErrInput, false).IsErr())
}

func TestDeliverResultRoundTrip(t *testing.T) {
	res := &remit.DeliverResult{
		Data: []byte{0, 1},
		Events: []remit.Event{
			remit.NewEvent("TransferCreated", "id", "0", "amount", "7"),
			remit.NewEvent("TransferCreated", "id", "1", "amount", "8"),
			remit.NewEvent("action", "path", "remittance/deposit"),
		},
		GasUsed: 3,
	}
	got, err := remit.ParseDeliverOrError(remit.DeliverOrError(res, nil, false))
	require.NoError(t, err)
	assert.Equal(t, res, got)

	_, err = remit.ParseDeliverOrError(remit.DeliverOrError(nil, errors.Wrap(errors.ErrAmount, "zero"), false))
	assert.True(t, errors.ErrAmount.Is(err), "got %+v", err)
}

func TestEventsToTags(t *testing.T) {
	events := []remit.Event{
		remit.NewEvent("KycStatusUpdated", "account", "AB", "verified", "true"),
	}
	tags := remit.EventsToTags(events)
	assert.Equal(t, []common.KVPair{
		{Key: []byte("KycStatusUpdated.account"), Value: []byte("AB")},
		{Key: []byte("KycStatusUpdated.verified"), Value: []byte("true")},
	}, tags)
	assert.Nil(t, remit.EventsToTags(nil))

	// tags without a type prefix are not events
	tags = append(tags, common.KVPair{Key: []byte("plain"), Value: []byte("x")})
	assert.Equal(t, events, remit.TagsToEvents(tags))
}

func TestNewEvent(t *testing.T) {
	e := remit.NewEvent("x", "a", "1", "b", "2")
	v, ok := e.Attr("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	_, ok = e.Attr("c")
	assert.False(t, ok)

	assert.Panics(t, func() { remit.NewEvent("x", "odd") })
}
