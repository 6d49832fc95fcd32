// ==============================================
// File: internal/dex/pumpfun/pumpfun.go
// ==============================================

package pumpfun

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-trader/internal/blockchain"
	"github.com/rovshanmuradov/pumpfun-trader/internal/wallet"
	"go.uber.org/zap"
)

// Client is the Pump.fun trading client. It is safe for concurrent use.
type Client struct {
	client  blockchain.Client
	wallet  *wallet.Wallet
	logger  *zap.Logger
	metrics *Metrics

	mu      sync.RWMutex
	derived map[solana.PublicKey]DerivedAccounts
}

// NewClient creates a new trading client. metrics may be nil.
// Without a wallet only the read-only queries work; trades and GetBalance fail with ErrInvalidInput.
func NewClient(client blockchain.Client, w *wallet.Wallet, logger *zap.Logger, metrics *Metrics) *Client {
	return &Client{
		client:  client,
		wallet:  w,
		logger:  logger.Named("pumpfun"),
		metrics: metrics,
		derived: make(map[solana.PublicKey]DerivedAccounts),
	}
}

// Wallet returns the signing wallet.
func (c *Client) Wallet() *wallet.Wallet {
	return c.wallet
}

// GetDerivedAccounts returns the cached bonding curve addresses for mint,
// deriving and caching them on first use.
func (c *Client) GetDerivedAccounts(mint solana.PublicKey) DerivedAccounts {
	c.mu.RLock()
	accounts, ok := c.derived[mint]
	c.mu.RUnlock()
	if ok {
		return accounts
	}

	accounts = DeriveBondingCurveAccounts(mint)

	c.mu.Lock()
	c.derived[mint] = accounts
	c.mu.Unlock()

	c.logger.Debug("Derived bonding curve accounts",
		zap.String("mint", mint.String()),
		zap.String("bonding_curve", accounts.BondingCurve.String()),
		zap.String("associated_bonding_curve", accounts.AssociatedBondingCurve.String()))
	return accounts
}

// GetCurveState fetches a fresh snapshot of the mint's bonding curve.
func (c *Client) GetCurveState(ctx context.Context, mint solana.PublicKey) (*CurveState, error) {
	accounts := c.GetDerivedAccounts(mint)
	state, err := FetchCurveState(ctx, c.client, accounts.BondingCurve)
	if err != nil {
		if errors.Is(err, ErrRPC) {
			c.metrics.RecordRPCError("fetch_curve")
		}
		return nil, err
	}
	return state, nil
}

// GetPrice returns the spot price of mint in SOL per token.
func (c *Client) GetPrice(ctx context.Context, mint solana.PublicKey) (float64, error) {
	state, err := c.activeCurveState(ctx, mint)
	if err != nil {
		return 0, err
	}
	return state.Price(), nil
}

// GetBalance returns the wallet's token balance for mint in raw token units.
func (c *Client) GetBalance(ctx context.Context, mint solana.PublicKey) (uint64, error) {
	if err := c.requireWallet(); err != nil {
		return 0, err
	}
	userATA, err := c.wallet.GetATA(mint)
	if err != nil {
		return 0, fmt.Errorf("failed to derive associated token account: %w", err)
	}

	balance, err := c.client.GetTokenAccountBalance(ctx, userATA)
	if err != nil {
		c.metrics.RecordRPCError("balance")
		if errors.Is(err, blockchain.ErrAccountNotFound) {
			return 0, fmt.Errorf("%w: %w: token account %s", ErrRPC, ErrAccountNotFound, userATA)
		}
		return 0, fmt.Errorf("%w: get token balance of %s: %w", ErrRPC, userATA, err)
	}

	c.logger.Debug("Got token balance",
		zap.Uint64("balance", balance),
		zap.String("token_mint", mint.String()),
		zap.String("user_ata", userATA.String()))
	return balance, nil
}

// requireWallet guards every operation that signs or reads the wallet's accounts.
func (c *Client) requireWallet() error {
	if c.wallet == nil {
		return fmt.Errorf("%w: no signing wallet configured", ErrInvalidInput)
	}
	return nil
}

// activeCurveState fetches the curve and applies the terminal completion guard.
func (c *Client) activeCurveState(ctx context.Context, mint solana.PublicKey) (*CurveState, error) {
	state, err := c.GetCurveState(ctx, mint)
	if err != nil {
		return nil, err
	}
	if state.Complete {
		return nil, fmt.Errorf("%w: mint %s has migrated off pump.fun", ErrCurveComplete, mint)
	}
	return state, nil
}
