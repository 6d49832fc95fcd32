package bot

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-trader/internal/dex/pumpfun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestParseCommand(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	m := mint.String()

	tests := []struct {
		name string
		args []string
		want Command
	}{
		{"buy default slippage", []string{"buy", m, "0.5"}, BuyCommand{Mint: mint, AmountLamports: 500_000_000}},
		{"buy with slippage", []string{"BUY", m, "1", "0.2"}, BuyCommand{Mint: mint, AmountLamports: 1_000_000_000, Slippage: ptr(0.2)}},
		{"sell prompt", []string{"sell", m}, SellCommand{Mint: mint, Mode: SellPrompt}},
		{"sell prompt placeholder", []string{"sell", m, "-", "0.05"}, SellCommand{Mint: mint, Mode: SellPrompt, Slippage: ptr(0.05)}},
		{"sell all", []string{"sell", m, "all"}, SellCommand{Mint: mint, Mode: SellAll}},
		{"sell fixed", []string{"sell", m, "1_000_000"}, SellCommand{Mint: mint, Mode: SellFixed, Amount: 1_000_000}},
		{"curve", []string{"curve", m}, CurveCommand{Mint: mint}},
		{"curvestate alias", []string{"curvestate", m}, CurveCommand{Mint: mint}},
		{"metadata", []string{"metadata", m}, MetadataCommand{Mint: mint}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	m := solana.NewWallet().PublicKey().String()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no args", nil, ErrUsage},
		{"missing mint", []string{"buy"}, ErrUsage},
		{"unknown command", []string{"swap", m}, ErrUsage},
		{"bad mint", []string{"buy", "not-a-key", "1"}, pumpfun.ErrInvalidInput},
		{"buy without amount", []string{"buy", m}, ErrUsage},
		{"buy too many args", []string{"buy", m, "1", "0.1", "x"}, ErrUsage},
		{"buy zero", []string{"buy", m, "0"}, pumpfun.ErrInvalidInput},
		{"buy bad slippage", []string{"buy", m, "1", "abc"}, pumpfun.ErrInvalidInput},
		{"buy slippage out of range", []string{"buy", m, "1", "1.5"}, pumpfun.ErrInvalidInput},
		{"sell zero", []string{"sell", m, "0"}, pumpfun.ErrInvalidInput},
		{"sell garbage amount", []string{"sell", m, "lots"}, pumpfun.ErrInvalidInput},
		{"sell negative slippage", []string{"sell", m, "all", "-0.1"}, pumpfun.ErrInvalidInput},
		{"curve extra args", []string{"curve", m, "1"}, ErrUsage},
		{"metadata extra args", []string{"metadata", m, "1"}, ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommand(tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSOL(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"1", 1_000_000_000},
		{"0.5", 500_000_000},
		{" 0.000000001 ", 1},
		{"0.0000000019", 1}, // sub-lamport digits are truncated
		{"18446744073.709551615", 18_446_744_073_709_551_615},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSOL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "abc", "0", "-1", "0.0000000001", "18446744073.709551616"} {
		_, err := ParseSOL(bad)
		assert.ErrorIs(t, err, pumpfun.ErrInvalidInput, "input %q", bad)
	}
}

func TestFormatSOL(t *testing.T) {
	assert.Equal(t, "1.5", FormatSOL(1_500_000_000))
	assert.Equal(t, "0.000000001", FormatSOL(1))
	assert.Equal(t, "0", FormatSOL(0))
}

func TestFixedAmount(t *testing.T) {
	ctx := context.Background()

	got, err := FixedAmount(0).SelectAmount(ctx, "TEST", 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got)

	got, err = FixedAmount(7).SelectAmount(ctx, "TEST", 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got)
}

func TestCheckSellAmount(t *testing.T) {
	assert.NoError(t, checkSellAmount(1, 1))
	assert.NoError(t, checkSellAmount(5, 10))
	assert.ErrorIs(t, checkSellAmount(0, 10), pumpfun.ErrInvalidInput)
	assert.ErrorIs(t, checkSellAmount(11, 10), pumpfun.ErrInvalidInput)
}
