package bot

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rovshanmuradov/pumpfun-trader/internal/blockchain"
	"github.com/rovshanmuradov/pumpfun-trader/internal/dex/pumpfun"
	"github.com/rovshanmuradov/pumpfun-trader/internal/metadata"
	"github.com/rovshanmuradov/pumpfun-trader/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockChain реализует интерфейс blockchain.Client
type MockChain struct {
	mock.Mock
}

func (m *MockChain) GetAccountData(ctx context.Context, pubkey solana.PublicKey) ([]byte, error) {
	args := m.Called(ctx, pubkey)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockChain) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChain) GetRecentBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

func (m *MockChain) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts blockchain.TransactionOptions) (solana.Signature, error) {
	args := m.Called(ctx, tx, opts)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *MockChain) WaitForTransactionConfirmation(ctx context.Context, signature solana.Signature, commitment rpc.CommitmentType) error {
	return m.Called(ctx, signature, commitment).Error(0)
}

var _ blockchain.Client = (*MockChain)(nil)

func encodedCurve(t *testing.T, state pumpfun.CurveState) []byte {
	t.Helper()
	data, err := state.Encode()
	require.NoError(t, err)
	return data
}

// pumpInstructionData возвращает данные инструкции программы pump.fun.
func pumpInstructionData(t *testing.T, tx *solana.Transaction) []byte {
	t.Helper()
	for _, ix := range tx.Message.Instructions {
		if tx.Message.AccountKeys[ix.ProgramIDIndex].Equals(pumpfun.PumpFunProgramID) {
			return ix.Data
		}
	}
	t.Fatal("no pump.fun instruction in transaction")
	return nil
}

// The curve moves between reads; the journal must carry the limit that was signed.
func TestRunnerSellJournalsSignedLimit(t *testing.T) {
	ctx := context.Background()
	chain := new(MockChain)
	mint := solana.NewWallet().PublicKey()
	w := wallet.FromPrivateKey(solana.NewWallet().PrivateKey)

	moved := testCurve
	moved.VirtualSolReserves = 45_000_000_000

	var sent *solana.Transaction
	chain.On("GetAccountData", mock.Anything, mock.Anything).Return(encodedCurve(t, testCurve), nil).Once()
	chain.On("GetAccountData", mock.Anything, mock.Anything).Return(encodedCurve(t, moved), nil)
	chain.On("GetTokenAccountBalance", mock.Anything, mock.Anything).Return(uint64(2_000_000), nil)
	chain.On("GetRecentBlockhash", mock.Anything).Return(testBlockhash, nil)
	chain.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*solana.Transaction) }).
		Return(testSignature, nil)

	meta := new(MockMetadata)
	meta.On("GetTokenMetadata", mock.Anything, mint).Return(&metadata.TokenMetadata{Symbol: "PEPE"}, nil)
	journal := &memJournal{}

	log := zaptest.NewLogger(t)
	runner := NewRunner(testConfig(), log, Options{
		Trader:   pumpfun.NewClient(chain, w, log, nil),
		Metadata: meta,
		Journal:  journal,
		Out:      &bytes.Buffer{},
		Wallet:   w.String(),
	})

	require.NoError(t, runner.Execute(ctx, SellCommand{Mint: mint, Mode: SellAll}))

	require.NotNil(t, sent)
	signedLimit := binary.LittleEndian.Uint64(pumpInstructionData(t, sent)[16:24])

	want, err := pumpfun.QuoteSell(2_000_000, testCurve.Price(), 0.10)
	require.NoError(t, err)
	require.Len(t, journal.records, 1)
	assert.Equal(t, signedLimit, journal.records[0].SolLimit)
	assert.Equal(t, want.MinSolOut, journal.records[0].SolLimit)
	chain.AssertNumberOfCalls(t, "GetAccountData", 1)
}

func TestRunnerBuyJournalsSignedLimit(t *testing.T) {
	ctx := context.Background()
	chain := new(MockChain)
	mint := solana.NewWallet().PublicKey()
	w := wallet.FromPrivateKey(solana.NewWallet().PrivateKey)

	var sent *solana.Transaction
	chain.On("GetAccountData", mock.Anything, mock.Anything).Return(encodedCurve(t, testCurve), nil)
	chain.On("GetRecentBlockhash", mock.Anything).Return(testBlockhash, nil)
	chain.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*solana.Transaction) }).
		Return(testSignature, nil)

	journal := &memJournal{}
	log := zaptest.NewLogger(t)
	runner := NewRunner(testConfig(), log, Options{
		Trader:  pumpfun.NewClient(chain, w, log, nil),
		Journal: journal,
		Out:     &bytes.Buffer{},
	})

	require.NoError(t, runner.Execute(ctx, BuyCommand{Mint: mint, AmountLamports: 1_000_000_000}))

	require.NotNil(t, sent)
	require.Len(t, journal.records, 1)
	assert.Equal(t, binary.LittleEndian.Uint64(pumpInstructionData(t, sent)[16:24]), journal.records[0].SolLimit)
	assert.Equal(t, uint64(1_100_000_000), journal.records[0].SolLimit)
	chain.AssertNumberOfCalls(t, "GetAccountData", 1)
}
