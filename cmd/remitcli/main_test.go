package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/remitchain/remit/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = ioutil.Discard
	err := app.Run(append([]string{"remitcli"}, args...))
	return out.String(), err
}

func TestKeygenAndAddress(t *testing.T) {
	dir, err := ioutil.TempDir("", "remitcli")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	keyFile := filepath.Join(dir, "key")

	out, err := run(t, "--key", keyFile, "keygen")
	require.NoError(t, err)
	generated, err := remit.ParseAddress(strings.TrimSpace(out))
	require.NoError(t, err)

	key, err := sigs.LoadPrivateKey(keyFile)
	require.NoError(t, err)
	want, err := sigs.SignerAddress(key)
	require.NoError(t, err)
	assert.Equal(t, want, generated)

	out, err = run(t, "--key", keyFile, "address")
	require.NoError(t, err)
	assert.Equal(t, want.String(), strings.TrimSpace(out))

	_, err = run(t, "--key", keyFile, "keygen")
	assert.True(t, errors.ErrDuplicate.Is(err), "got %+v", err)

	_, err = run(t, "--key", keyFile, "keygen", "--force")
	require.NoError(t, err)
	key2, err := sigs.LoadPrivateKey(keyFile)
	require.NoError(t, err)
	assert.NotEqual(t, key, key2)
}

func TestInvalidArguments(t *testing.T) {
	addr := strings.Repeat("AB", 20)
	cases := map[string][]string{
		"deposit missing amount":  {"deposit", addr},
		"deposit bad recipient":   {"deposit", "0x1234", "10"},
		"deposit bad amount":      {"deposit", addr, "ten"},
		"deposit bad rate":        {"deposit", "--fx-rate", "x", addr, "10"},
		"withdraw no id":          {"withdraw"},
		"set-kyc bad flag":        {"set-kyc", addr, "maybe"},
		"send bad destination":    {"send", "zz", "1"},
		"transfer bad id":         {"transfer", "abc"},
		"kyc too many arguments":  {"kyc", addr, addr},
		"pending bad recipient":   {"pending", "12"},
		"balance missing address": {"balance"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, append([]string{"--node", "http://127.0.0.1:1"}, args...)...)
			if !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
		})
	}
}
