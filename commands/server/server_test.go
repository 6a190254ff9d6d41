package server

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const tmGenesis = `{
  "genesis_time": "2019-05-01T10:00:00Z",
  "chain_id": "test-chain-remit",
  "validators": []
}`

// setupHome creates a home directory holding the genesis file written by
// `tendermint init`.
func setupHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "remit-server")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0755))
	require.NoError(t, ioutil.WriteFile(GenesisPath(home), []byte(tmGenesis), 0600))
	return home, func() { os.RemoveAll(home) }
}

func staticOptions(state string) GenOptions {
	return func(args []string) (json.RawMessage, error) {
		return json.RawMessage(state), nil
	}
}

func readGenesis(t *testing.T, home string) GenesisDoc {
	t.Helper()
	raw, err := ioutil.ReadFile(GenesisPath(home))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func TestInitCmd(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()
	logger := log.NewNopLogger()

	err := InitCmd(staticOptions(`{"cash":[]}`), logger, home, false, nil)
	require.NoError(t, err)
	doc := readGenesis(t, home)
	assert.JSONEq(t, `{"cash":[]}`, string(doc["app_state"]))
	assert.JSONEq(t, `"test-chain-remit"`, string(doc["chain_id"]))

	err = InitCmd(staticOptions(`{"cash":[{}]}`), logger, home, false, nil)
	if !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %+v", err)
	}

	err = InitCmd(staticOptions(`{"remittance":{}}`), logger, home, true, nil)
	require.NoError(t, err)
	doc = readGenesis(t, home)
	assert.JSONEq(t, `{"remittance":{}}`, string(doc["app_state"]))
}

func TestInitCmdWithoutTendermint(t *testing.T) {
	home, err := ioutil.TempDir("", "remit-server")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	err = InitCmd(staticOptions(`{}`), log.NewNopLogger(), home, false, nil)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found error, got %+v", err)
	}
}

func TestInitCmdGeneratorFailure(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	gen := func(args []string) (json.RawMessage, error) {
		return nil, errors.Wrap(errors.ErrInput, "bad args")
	}
	err := InitCmd(gen, log.NewNopLogger(), home, false, []string{"x"})
	assert.True(t, errors.ErrInput.Is(err))
}

type recordingInitializer struct {
	opts remit.Options
	err  error
}

func (r *recordingInitializer) FromGenesis(opts remit.Options, kv remit.KVStore) error {
	r.opts = opts
	return r.err
}

func TestValidateGenesis(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()
	require.NoError(t, InitCmd(staticOptions(`{"remittance":{"admin":"0011"}}`), log.NewNopLogger(), home, false, nil))

	ini := &recordingInitializer{}
	require.NoError(t, ValidateGenesis(ini, []string{GenesisPath(home)}))
	assert.JSONEq(t, `{"admin":"0011"}`, string(ini.opts["remittance"]))

	ini = &recordingInitializer{err: errors.Wrap(errors.ErrState, "broken")}
	err := ValidateGenesis(ini, []string{GenesisPath(home)})
	assert.True(t, errors.ErrState.Is(err))

	err = ValidateGenesis(ini, []string{filepath.Join(home, "missing.json")})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestServeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "remit_test_total", Help: "test"})
	require.NoError(t, reg.Register(c))
	c.Inc()

	ln, err := serveMetrics("127.0.0.1:0", reg)
	require.NoError(t, err)
	defer ln.Close()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "remit_test_total 1")
}

func TestStartCmdGeneratorFailure(t *testing.T) {
	failing := func(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
		assert.NotNil(t, reg)
		return nil, errors.Wrap(errors.ErrInput, "no app")
	}
	err := StartCmd(failing, log.NewNopLogger(), "", StartOptions{
		Bind:        "tcp://127.0.0.1:0",
		MetricsAddr: "127.0.0.1:0",
	})
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
}
