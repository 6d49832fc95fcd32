// internal/dex/pumpfun/metrics.go
package pumpfun

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	sideBuy  = "buy"
	sideSell = "sell"
)

// Metrics collects trade pipeline metrics. A nil *Metrics records nothing.
type Metrics struct {
	trades        *prometheus.CounterVec
	rpcErrors     *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them in reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		trades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pumpfun_trades_total",
			Help: "Trade attempts by side and outcome",
		}, []string{"side", "outcome"}),
		rpcErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pumpfun_rpc_errors_total",
			Help: "RPC failures by pipeline stage",
		}, []string{"stage"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pumpfun_build_duration_seconds",
			Help:    "Time to fetch, quote and sign a trade transaction",
			Buckets: prometheus.LinearBuckets(0, 0.1, 10),
		}, []string{"side"}),
	}

	if reg != nil {
		reg.MustRegister(m.trades, m.rpcErrors, m.buildDuration)
	}
	return m
}

// TrackBuild records the build duration of one transaction.
func (m *Metrics) TrackBuild(side string, start time.Time) {
	if m == nil {
		return
	}
	m.buildDuration.WithLabelValues(side).Observe(time.Since(start).Seconds())
}

// RecordTrade classifies the outcome of a trade attempt by its error.
func (m *Metrics) RecordTrade(side string, err error) {
	if m == nil {
		return
	}
	m.trades.WithLabelValues(side, outcome(err)).Inc()
}

// RecordRPCError counts a failed call to the RPC facility.
func (m *Metrics) RecordRPCError(stage string) {
	if m == nil {
		return
	}
	m.rpcErrors.WithLabelValues(stage).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrCurveComplete):
		return "curve_complete"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrDecode):
		return "decode_error"
	case errors.Is(err, ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, ErrRPC):
		return "rpc_error"
	default:
		return "error"
	}
}
