package utils

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/remitchain/remit"
	"github.com/remitchain/remit/errors"
)

// Metrics is a decorator that counts the processed transactions and
// observes how long the handlers take. Counters are labelled with the
// message path, the phase (check or deliver) and the ABCI code of the
// result, zero meaning success.
type Metrics struct {
	txs     *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var _ remit.Decorator = (*Metrics)(nil)

const (
	phaseCheck   = "check"
	phaseDeliver = "deliver"
)

// NewMetrics creates the collectors and registers them.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		txs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "remit",
				Name:      "transactions_total",
				Help:      "Total number of processed transactions by path, phase and result code",
			},
			[]string{"path", "phase", "code"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "remit",
				Name:      "handler_duration_seconds",
				Help:      "Duration of transaction processing in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"path", "phase"},
		),
	}
	for _, c := range []prometheus.Collector{m.txs, m.latency} {
		if err := registry.Register(c); err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

// Check records the outcome of the check phase
func (m *Metrics) Check(ctx remit.Context, store remit.KVStore, tx remit.Tx, next remit.Checker) (*remit.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe(tx, phaseCheck, start, err)
	return res, err
}

// Deliver records the outcome of the deliver phase
func (m *Metrics) Deliver(ctx remit.Context, store remit.KVStore, tx remit.Tx, next remit.Deliverer) (*remit.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe(tx, phaseDeliver, start, err)
	return res, err
}

func (m *Metrics) observe(tx remit.Tx, phase string, start time.Time, err error) {
	path := remit.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(path, phase, strconv.FormatUint(uint64(code), 10)).Inc()
	m.latency.WithLabelValues(path, phase).Observe(time.Since(start).Seconds())
}
