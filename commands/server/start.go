package server

import (
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/remitchain/remit/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// StartOptions configures the ABCI server started by StartCmd.
type StartOptions struct {
	// Bind is the address the ABCI socket listens on.
	Bind string
	// Debug returns the call stack with errors.
	Debug bool
	// MetricsAddr is where the prometheus collectors are served. No
	// metrics are collected when empty.
	MetricsAddr string
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags.
// The registerer is nil when metrics are disabled.
type AppGenerator func(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error)

// StartCmd initializes the application and serves it over the ABCI socket
// until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, opts StartOptions) error {
	var (
		reg     prometheus.Registerer
		metrics net.Listener
	)
	if opts.MetricsAddr != "" {
		r := prometheus.NewRegistry()
		ln, err := serveMetrics(opts.MetricsAddr, r)
		if err != nil {
			return err
		}
		logger.Info("Serving metrics", "addr", ln.Addr().String())
		reg, metrics = r, ln
	}

	// Generate the app in the proper dir
	app, err := gen(home, logger, opts.Debug, reg)
	if err != nil {
		if metrics != nil {
			metrics.Close()
		}
		return err
	}

	logger.Info("Starting ABCI app", "bind", opts.Bind)

	svr, err := server.NewServer(opts.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot start server: %s", err)
	}

	cmn.TrapSignal(logger, func() {
		svr.Stop()
		if metrics != nil {
			metrics.Close()
		}
	})
	// TrapSignal exits the process once the cleanup is done.
	select {}
}

// serveMetrics exposes the collectors of reg under /metrics.
func serveMetrics(addr string, reg *prometheus.Registry) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "metrics listener: %s", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go http.Serve(ln, mux)
	return ln, nil
}
