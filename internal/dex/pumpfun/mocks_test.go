// internal/dex/pumpfun/mocks_test.go
package pumpfun

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rovshanmuradov/pumpfun-trader/internal/blockchain"
	"github.com/rovshanmuradov/pumpfun-trader/internal/wallet"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockBlockchainClient реализует интерфейс blockchain.Client
type MockBlockchainClient struct {
	mock.Mock
}

func (m *MockBlockchainClient) GetAccountData(ctx context.Context, pubkey solana.PublicKey) ([]byte, error) {
	args := m.Called(ctx, pubkey)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockBlockchainClient) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockBlockchainClient) GetRecentBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

func (m *MockBlockchainClient) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts blockchain.TransactionOptions) (solana.Signature, error) {
	args := m.Called(ctx, tx, opts)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *MockBlockchainClient) WaitForTransactionConfirmation(ctx context.Context, signature solana.Signature, commitment rpc.CommitmentType) error {
	args := m.Called(ctx, signature, commitment)
	return args.Error(0)
}

var _ blockchain.Client = (*MockBlockchainClient)(nil)

// Curve with 30 SOL and 1073 tokens of virtual reserves.
var testCurve = CurveState{
	VirtualTokenReserves: 1_073_000_000,
	VirtualSolReserves:   30_000_000_000,
	RealTokenReserves:    793_100_000,
	RealSolReserves:      0,
	TokenTotalSupply:     1_000_000_000,
	Complete:             false,
}

func encodeCurve(t *testing.T, state CurveState) []byte {
	t.Helper()
	data, err := state.Encode()
	require.NoError(t, err)
	require.Len(t, data, CurveStateSize)
	return data
}

// newTestClient создает клиент с моком RPC и случайным кошельком.
func newTestClient(t *testing.T, metrics *Metrics) (*Client, *MockBlockchainClient) {
	t.Helper()
	mc := new(MockBlockchainClient)
	w := wallet.FromPrivateKey(solana.NewWallet().PrivateKey)
	return NewClient(mc, w, zaptest.NewLogger(t), metrics), mc
}

func newMint() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}
