package remit

import (
	"testing"

	"github.com/remitchain/remit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demoMsg struct {
	Num int
}

func (demoMsg) Path() string { return "demo/msg" }

func (m demoMsg) Validate() error {
	if m.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative")
	}
	return nil
}

type otherMsg struct{}

func (otherMsg) Path() string    { return "other/msg" }
func (otherMsg) Validate() error { return nil }

type demoTx struct {
	msg Msg
	err error
}

func (tx demoTx) GetMsg() (Msg, error)    { return tx.msg, tx.err }
func (demoTx) Marshal() ([]byte, error)   { return nil, nil }
func (*demoTx) Unmarshal(bz []byte) error { return nil }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		want    interface{}
		wantErr *errors.Error
	}{
		"pointer msg": {
			tx:   &demoTx{msg: &demoMsg{Num: 3}},
			dest: &demoMsg{},
			want: &demoMsg{Num: 3},
		},
		"value msg": {
			tx:   &demoTx{msg: demoMsg{Num: 4}},
			dest: &demoMsg{},
			want: &demoMsg{Num: 4},
		},
		"invalid msg": {
			tx:      &demoTx{msg: &demoMsg{Num: -1}},
			dest:    &demoMsg{},
			wantErr: errors.ErrInput,
		},
		"destination not a pointer": {
			tx:      &demoTx{msg: &demoMsg{}},
			dest:    demoMsg{},
			wantErr: errors.ErrType,
		},
		"type mismatch": {
			tx:      &demoTx{msg: &otherMsg{}},
			dest:    &demoMsg{},
			wantErr: errors.ErrType,
		},
		"no msg": {
			tx:      &demoTx{},
			dest:    &demoMsg{},
			wantErr: errors.ErrInput,
		},
		"typed nil msg": {
			tx:      &demoTx{msg: (*demoMsg)(nil)},
			dest:    &demoMsg{},
			wantErr: errors.ErrInput,
		},
		"decoding failure": {
			tx:      &demoTx{err: errors.Wrap(errors.ErrMsg, "garbage")},
			dest:    &demoMsg{},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, tc.dest)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo/msg", GetPath(&demoTx{msg: &demoMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&demoTx{err: errors.ErrMsg}))
}

func TestReadOptions(t *testing.T) {
	opts := Options{
		"demo":  []byte(`{"num": 5}`),
		"wrong": []byte(`"text"`),
	}
	var s struct{ Num int }
	require.NoError(t, opts.ReadOptions("demo", &s))
	assert.Equal(t, 5, s.Num)

	// missing keys leave the destination untouched
	require.NoError(t, opts.ReadOptions("missing", &s))
	assert.Equal(t, 5, s.Num)

	assert.Error(t, opts.ReadOptions("wrong", &s))
}
