// internal/bot/trade.go
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-trader/internal/dex/pumpfun"
	"github.com/rovshanmuradov/pumpfun-trader/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (r *Runner) buy(ctx context.Context, c BuyCommand) error {
	if err := r.requireTrading(); err != nil {
		return err
	}
	slippage := r.slippage(c.Slippage)

	r.logger.Info("Buying tokens",
		zap.String("mint", c.Mint.String()),
		zap.String("amount_sol", FormatSOL(c.AmountLamports)),
		zap.Float64("slippage", slippage))

	blockhash, err := r.trader.LatestBlockhash(ctx)
	if err != nil {
		return err
	}

	result, err := r.trader.ExecuteBuy(ctx, pumpfun.BuyParams{
		Mint:               c.Mint,
		AmountInLamports:   c.AmountLamports,
		Slippage:           slippage,
		CreateTokenAccount: r.config.CreateTokenAccount,
		PriorityFee:        r.config.PriorityFee,
		Blockhash:          blockhash,
	})
	if err != nil {
		return fmt.Errorf("buy %s: %w", c.Mint, err)
	}

	// Журнал и лог берут котировку, которая реально подписана
	txLog := logger.WithTransaction(r.logger, result.Signature.String())
	txLog.Info("Buy sent",
		zap.Uint64("expected_tokens", result.Quote.TokenAmountOut),
		zap.Uint64("max_sol_in", result.Quote.MaxSolIn))
	r.record("buy", c.Mint, c.AmountLamports, result.Quote.MaxSolIn, result.Signature)
	fmt.Fprintf(r.out, "Buy sent: %s\n", result.Signature)
	return r.confirm(ctx, txLog, result.Signature)
}

func (r *Runner) sell(ctx context.Context, c SellCommand) error {
	if err := r.requireTrading(); err != nil {
		return err
	}
	slippage := r.slippage(c.Slippage)

	balance, symbol, err := r.balanceAndSymbol(ctx, c.Mint)
	if err != nil {
		return err
	}
	if balance == 0 {
		return fmt.Errorf("%w: no %s tokens to sell", pumpfun.ErrInvalidInput, symbol)
	}

	selector, err := r.selectorFor(c)
	if err != nil {
		return err
	}
	amount, err := selector.SelectAmount(ctx, symbol, balance)
	if err != nil {
		return err
	}
	if err := checkSellAmount(amount, balance); err != nil {
		return err
	}
	closeAccount := amount == balance

	r.logger.Info("Selling tokens",
		zap.String("mint", c.Mint.String()),
		zap.String("symbol", symbol),
		zap.Uint64("amount", amount),
		zap.Uint64("balance", balance),
		zap.Float64("slippage", slippage),
		zap.Bool("close_account", closeAccount))

	blockhash, err := r.trader.LatestBlockhash(ctx)
	if err != nil {
		return err
	}

	result, err := r.trader.ExecuteSell(ctx, pumpfun.SellParams{
		Mint:              c.Mint,
		AmountInTokens:    amount,
		Slippage:          slippage,
		CloseTokenAccount: closeAccount,
		PriorityFee:       r.config.PriorityFee,
		Blockhash:         blockhash,
	})
	if err != nil {
		return fmt.Errorf("sell %s: %w", c.Mint, err)
	}

	txLog := logger.WithTransaction(r.logger, result.Signature.String())
	txLog.Info("Sell sent",
		zap.String("expected_sol", FormatSOL(result.Quote.SolAmountOut)),
		zap.Uint64("min_sol_out", result.Quote.MinSolOut))
	r.record("sell", c.Mint, amount, result.Quote.MinSolOut, result.Signature)
	fmt.Fprintf(r.out, "Sell sent: %s\n", result.Signature)
	return r.confirm(ctx, txLog, result.Signature)
}

// balanceAndSymbol получает баланс и символ токена параллельно.
// Ошибка метаданных не фатальна: вместо символа используется сокращённый адрес.
func (r *Runner) balanceAndSymbol(ctx context.Context, mint solana.PublicKey) (uint64, string, error) {
	var (
		balance uint64
		symbol  = logger.ShortenAddress(mint.String())
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := r.trader.GetBalance(gctx, mint)
		if err != nil {
			return fmt.Errorf("get balance: %w", err)
		}
		balance = b
		return nil
	})
	if r.meta != nil {
		g.Go(func() error {
			md, err := r.meta.GetTokenMetadata(gctx, mint)
			if err != nil {
				r.logger.Warn("Token metadata unavailable", zap.String("mint", mint.String()), zap.Error(err))
				return nil
			}
			if md.Symbol != "" {
				symbol = md.Symbol
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, "", err
	}
	return balance, symbol, nil
}

func (r *Runner) selectorFor(c SellCommand) (AmountSelector, error) {
	switch c.Mode {
	case SellAll:
		return FixedAmount(0), nil
	case SellFixed:
		return FixedAmount(c.Amount), nil
	default:
		if r.selector == nil {
			return nil, fmt.Errorf("%w: no amount given and interactive prompt unavailable", ErrUsage)
		}
		return r.selector, nil
	}
}

func (r *Runner) record(side string, mint solana.PublicKey, amount, solLimit uint64, sig solana.Signature) {
	if r.journal == nil {
		return
	}
	err := r.journal.Record(logger.TradeRecord{
		Time:      time.Now(),
		Wallet:    r.wallet,
		Mint:      mint.String(),
		Side:      side,
		Amount:    amount,
		SolLimit:  solLimit,
		Signature: sig.String(),
	})
	if err != nil {
		r.logger.Warn("Failed to record trade", zap.Error(err))
	}
}

func (r *Runner) confirm(ctx context.Context, txLog *zap.Logger, sig solana.Signature) error {
	if !r.config.WaitForConfirmation {
		return nil
	}
	if err := r.trader.WaitForConfirmation(ctx, sig); err != nil {
		txLog.Warn("Transaction not confirmed", zap.Error(err))
		return err
	}
	txLog.Info("Transaction confirmed")
	fmt.Fprintf(r.out, "Confirmed: %s\n", sig)
	return nil
}
