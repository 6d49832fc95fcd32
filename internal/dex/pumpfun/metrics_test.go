// internal/dex/pumpfun/metrics_test.go
package pumpfun

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.TrackBuild(sideBuy, time.Now())
		m.RecordTrade(sideSell, nil)
		m.RecordRPCError("send")
	})
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{fmt.Errorf("wrap: %w", ErrCurveComplete), "curve_complete"},
		{ErrInvalidInput, "invalid_input"},
		{ErrDecode, "decode_error"},
		{fmt.Errorf("%w: %w", ErrRPC, ErrAccountNotFound), "account_not_found"},
		{ErrRPC, "rpc_error"},
		{errors.New("other"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outcome(tt.err))
	}
}

func TestTradeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	c, mc := newTestClient(t, metrics)

	complete := testCurve
	complete.Complete = true
	mc.On("GetAccountData", mock.Anything, mock.Anything).Return(encodeCurve(t, testCurve), nil).Once()
	mc.On("GetAccountData", mock.Anything, mock.Anything).Return(encodeCurve(t, complete), nil).Once()
	mc.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Return(solana.Signature{}, errors.New("node is behind")).Once()

	ctx := context.Background()
	params := BuyParams{Mint: newMint(), AmountInLamports: 1_000_000, Slippage: 0.1}

	_, err := c.Buy(ctx, params)
	require.ErrorIs(t, err, ErrRPC)
	_, err = c.Buy(ctx, params)
	require.ErrorIs(t, err, ErrCurveComplete)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.trades.WithLabelValues(sideBuy, "rpc_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.trades.WithLabelValues(sideBuy, "curve_complete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.rpcErrors.WithLabelValues("send")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.buildDuration))
}

func TestNewMetricsWithoutRegistry(t *testing.T) {
	m := NewMetrics(nil)
	m.RecordRPCError("balance")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rpcErrors.WithLabelValues("balance")))
}
