// internal/bot/runner.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rovshanmuradov/pumpfun-trader/internal/blockchain/solbc"
	"github.com/rovshanmuradov/pumpfun-trader/internal/config"
	"github.com/rovshanmuradov/pumpfun-trader/internal/dex/pumpfun"
	"github.com/rovshanmuradov/pumpfun-trader/internal/logger"
	"github.com/rovshanmuradov/pumpfun-trader/internal/metadata"
	"github.com/rovshanmuradov/pumpfun-trader/internal/ui/prompt"
	"github.com/rovshanmuradov/pumpfun-trader/internal/wallet"
	"go.uber.org/zap"
)

// Trader is the subset of pumpfun.Client the runner drives.
type Trader interface {
	GetDerivedAccounts(mint solana.PublicKey) pumpfun.DerivedAccounts
	GetCurveState(ctx context.Context, mint solana.PublicKey) (*pumpfun.CurveState, error)
	GetBalance(ctx context.Context, mint solana.PublicKey) (uint64, error)
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	ExecuteBuy(ctx context.Context, params pumpfun.BuyParams) (pumpfun.BuyResult, error)
	ExecuteSell(ctx context.Context, params pumpfun.SellParams) (pumpfun.SellResult, error)
	WaitForConfirmation(ctx context.Context, sig solana.Signature) error
}

// MetadataSource fetches token metadata documents.
type MetadataSource interface {
	GetTokenMetadata(ctx context.Context, mint solana.PublicKey) (*metadata.TokenMetadata, error)
}

// Journal records submitted trades.
type Journal interface {
	Record(r logger.TradeRecord) error
}

// Options are the collaborators of a Runner. Selector, Journal and Registry may be nil.
type Options struct {
	Trader   Trader
	Metadata MetadataSource
	Selector AmountSelector
	Journal  Journal
	Registry *prometheus.Registry
	Out      io.Writer
	Wallet   string // public key, for the journal
}

type Runner struct {
	logger   *zap.Logger
	config   *config.Config
	trader   Trader
	meta     MetadataSource
	selector AmountSelector
	journal  Journal
	registry *prometheus.Registry
	out      io.Writer
	wallet   string
	closers  []io.Closer
}

// NewRunner: принимает cfg, logger и зависимости
func NewRunner(cfg *config.Config, logger *zap.Logger, opts Options) *Runner {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		logger:   logger.Named("runner"),
		config:   cfg,
		trader:   opts.Trader,
		meta:     opts.Metadata,
		selector: opts.Selector,
		journal:  opts.Journal,
		registry: opts.Registry,
		out:      out,
		wallet:   opts.Wallet,
	}
}

// Setup собирает Runner из конфигурации: RPC клиент, кошелёк, метаданные, журнал и метрики.
func Setup(cfg *config.Config, log *zap.Logger) (*Runner, error) {
	rpcClient := solbc.NewClient(cfg.RPCURL, log)
	rpcClient.SetConfirmationTimeout(cfg.ConfirmationTimeout)

	var w *wallet.Wallet
	if cfg.Wallet != "" {
		var err error
		if w, err = wallet.NewWallet(cfg.Wallet); err != nil {
			return nil, fmt.Errorf("failed to load wallet: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	trader := pumpfun.NewClient(rpcClient, w, log, pumpfun.NewMetrics(registry))

	opts := Options{
		Trader:   trader,
		Metadata: metadata.NewClient(cfg.MetadataURL, log),
		Selector: prompt.Selector{In: os.Stdin, Out: os.Stdout},
		Registry: registry,
	}
	if w != nil {
		opts.Wallet = w.String()
	}

	var closers []io.Closer
	if cfg.JournalFile != "" {
		journal, err := logger.NewTradeJournal(cfg.JournalFile, 5*time.Second, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open trade journal: %w", err)
		}
		opts.Journal = journal
		closers = append(closers, journal)
	}

	r := NewRunner(cfg, log, opts)
	r.closers = closers
	return r, nil
}

// Execute runs one command.
func (r *Runner) Execute(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r.logger.Debug("Executing command", zap.String("command", cmd.GetType()))

	switch c := cmd.(type) {
	case BuyCommand:
		return r.buy(ctx, c)
	case SellCommand:
		return r.sell(ctx, c)
	case CurveCommand:
		return r.curve(ctx, c)
	case MetadataCommand:
		return r.metadata(ctx, c)
	default:
		return fmt.Errorf("%w: unsupported command %q", ErrUsage, cmd.GetType())
	}
}

// Close освобождает ресурсы Runner.
func (r *Runner) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func (r *Runner) slippage(override *float64) float64 {
	if override != nil {
		return *override
	}
	return r.config.Slippage
}

func (r *Runner) requireTrading() error {
	if err := r.config.RequireWallet(); err != nil {
		return err
	}
	if r.trader == nil {
		return errors.New("trading client is not configured")
	}
	return nil
}
