// =============================
// File: internal/dex/pumpfun/transactions.go
// =============================
package pumpfun

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rovshanmuradov/pumpfun-trader/internal/blockchain"
	"go.uber.org/zap"
)

// submitOptions are the options every trade is sent with.
var submitOptions = blockchain.TransactionOptions{
	SkipPreflight:       false,
	PreflightCommitment: rpc.CommitmentConfirmed,
}

// CreateBuyTransaction собирает и подписывает транзакцию покупки, не отправляя её.
//
// Instruction order: compute unit price (when PriorityFee > 0),
// create ATA idempotently (when CreateTokenAccount), buy.
func (c *Client) CreateBuyTransaction(ctx context.Context, params BuyParams) (*solana.Transaction, error) {
	tx, _, err := c.buildBuy(ctx, params)
	return tx, err
}

// CreateSellTransaction собирает и подписывает транзакцию продажи, не отправляя её.
//
// Instruction order: compute unit price (when PriorityFee > 0), sell,
// close ATA (when CloseTokenAccount).
func (c *Client) CreateSellTransaction(ctx context.Context, params SellParams) (*solana.Transaction, error) {
	tx, _, err := c.buildSell(ctx, params)
	return tx, err
}

// Buy builds a buy transaction and submits it, returning the signature.
func (c *Client) Buy(ctx context.Context, params BuyParams) (solana.Signature, error) {
	result, err := c.ExecuteBuy(ctx, params)
	return result.Signature, err
}

// Sell builds a sell transaction and submits it, returning the signature.
func (c *Client) Sell(ctx context.Context, params SellParams) (solana.Signature, error) {
	result, err := c.ExecuteSell(ctx, params)
	return result.Signature, err
}

// ExecuteBuy is Buy that also reports the quote the submitted transaction was signed with.
func (c *Client) ExecuteBuy(ctx context.Context, params BuyParams) (result BuyResult, err error) {
	defer func() { c.metrics.RecordTrade(sideBuy, err) }()

	tx, quote, err := c.buildBuy(ctx, params)
	if err != nil {
		return BuyResult{}, err
	}
	sig, err := c.submit(ctx, tx, sideBuy)
	if err != nil {
		return BuyResult{}, err
	}
	return BuyResult{Signature: sig, Quote: quote}, nil
}

// ExecuteSell is Sell that also reports the quote the submitted transaction was signed with.
func (c *Client) ExecuteSell(ctx context.Context, params SellParams) (result SellResult, err error) {
	defer func() { c.metrics.RecordTrade(sideSell, err) }()

	tx, quote, err := c.buildSell(ctx, params)
	if err != nil {
		return SellResult{}, err
	}
	sig, err := c.submit(ctx, tx, sideSell)
	if err != nil {
		return SellResult{}, err
	}
	return SellResult{Signature: sig, Quote: quote}, nil
}

func (c *Client) buildBuy(ctx context.Context, params BuyParams) (*solana.Transaction, BuyQuote, error) {
	defer c.metrics.TrackBuild(sideBuy, time.Now())

	if params.AmountInLamports == 0 {
		return nil, BuyQuote{}, fmt.Errorf("%w: buy amount must be positive", ErrInvalidInput)
	}
	if err := ValidateSlippage(params.Slippage); err != nil {
		return nil, BuyQuote{}, err
	}
	if err := c.requireWallet(); err != nil {
		return nil, BuyQuote{}, err
	}

	state, err := c.activeCurveState(ctx, params.Mint)
	if err != nil {
		return nil, BuyQuote{}, err
	}

	quote, err := QuoteBuy(params.AmountInLamports, state.Price(), params.Slippage)
	if err != nil {
		return nil, BuyQuote{}, err
	}

	accounts, err := c.instructionAccounts(params.Mint)
	if err != nil {
		return nil, BuyQuote{}, err
	}

	instructions := c.priorityFeeInstructions(params.PriorityFee)
	if params.CreateTokenAccount {
		createATA, err := c.wallet.CreateATAIdempotentInstruction(params.Mint)
		if err != nil {
			return nil, BuyQuote{}, fmt.Errorf("%w: create associated token account instruction: %v", ErrInvalidInput, err)
		}
		instructions = append(instructions, createATA)
	}
	instructions = append(instructions, BuildBuyInstruction(accounts, quote.TokenAmountOut, quote.MaxSolIn))

	c.logger.Debug("Building buy transaction",
		zap.String("mint", params.Mint.String()),
		zap.Uint64("amount_lamports", params.AmountInLamports),
		zap.Uint64("token_amount_out", quote.TokenAmountOut),
		zap.Uint64("max_sol_in", quote.MaxSolIn),
		zap.Bool("create_ata", params.CreateTokenAccount))

	tx, err := c.signTransaction(instructions, params.Blockhash)
	if err != nil {
		return nil, BuyQuote{}, err
	}
	return tx, quote, nil
}

func (c *Client) buildSell(ctx context.Context, params SellParams) (*solana.Transaction, SellQuote, error) {
	defer c.metrics.TrackBuild(sideSell, time.Now())

	if params.AmountInTokens == 0 {
		return nil, SellQuote{}, fmt.Errorf("%w: sell amount must be positive", ErrInvalidInput)
	}
	if err := ValidateSlippage(params.Slippage); err != nil {
		return nil, SellQuote{}, err
	}
	if err := c.requireWallet(); err != nil {
		return nil, SellQuote{}, err
	}

	state, err := c.activeCurveState(ctx, params.Mint)
	if err != nil {
		return nil, SellQuote{}, err
	}

	quote, err := QuoteSell(params.AmountInTokens, state.Price(), params.Slippage)
	if err != nil {
		return nil, SellQuote{}, err
	}

	accounts, err := c.instructionAccounts(params.Mint)
	if err != nil {
		return nil, SellQuote{}, err
	}

	instructions := c.priorityFeeInstructions(params.PriorityFee)
	instructions = append(instructions, BuildSellInstruction(accounts, params.AmountInTokens, quote.MinSolOut))
	if params.CloseTokenAccount {
		// rent goes back to the wallet
		instructions = append(instructions,
			token.NewCloseAccountInstruction(accounts.AssociatedUser, accounts.User, accounts.User, nil).Build())
	}

	c.logger.Debug("Building sell transaction",
		zap.String("mint", params.Mint.String()),
		zap.Uint64("amount_tokens", params.AmountInTokens),
		zap.Uint64("sol_amount_out", quote.SolAmountOut),
		zap.Uint64("min_sol_out", quote.MinSolOut),
		zap.Bool("close_ata", params.CloseTokenAccount))

	tx, err := c.signTransaction(instructions, params.Blockhash)
	if err != nil {
		return nil, SellQuote{}, err
	}
	return tx, quote, nil
}

// LatestBlockhash returns a recent blockhash to stamp transactions with.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	hash, err := c.client.GetRecentBlockhash(ctx)
	if err != nil {
		c.metrics.RecordRPCError("blockhash")
		return solana.Hash{}, fmt.Errorf("%w: get recent blockhash: %w", ErrRPC, err)
	}
	return hash, nil
}

// WaitForConfirmation blocks until sig reaches confirmed commitment.
func (c *Client) WaitForConfirmation(ctx context.Context, sig solana.Signature) error {
	if err := c.client.WaitForTransactionConfirmation(ctx, sig, rpc.CommitmentConfirmed); err != nil {
		c.metrics.RecordRPCError("confirm")
		return fmt.Errorf("%w: confirm %s: %w", ErrRPC, sig, err)
	}
	return nil
}

func (c *Client) instructionAccounts(mint solana.PublicKey) (InstructionAccounts, error) {
	if err := c.requireWallet(); err != nil {
		return InstructionAccounts{}, err
	}
	derived := c.GetDerivedAccounts(mint)
	userATA, err := c.wallet.GetATA(mint)
	if err != nil {
		return InstructionAccounts{}, fmt.Errorf("failed to derive associated token account: %w", err)
	}
	return InstructionAccounts{
		Mint:                   mint,
		BondingCurve:           derived.BondingCurve,
		AssociatedBondingCurve: derived.AssociatedBondingCurve,
		AssociatedUser:         userATA,
		User:                   c.wallet.PublicKey,
	}, nil
}

func (c *Client) priorityFeeInstructions(priorityFee uint64) []solana.Instruction {
	if priorityFee == 0 {
		return nil
	}
	return []solana.Instruction{
		computebudget.NewSetComputeUnitPriceInstruction(priorityFee).Build(),
	}
}

// signTransaction собирает транзакцию с кошельком в роли плательщика и подписывает её.
func (c *Client) signTransaction(instructions []solana.Instruction, blockhash solana.Hash) (*solana.Transaction, error) {
	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(c.wallet.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if err := c.wallet.SignTransaction(tx); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return tx, nil
}

// submit отправляет подписанную транзакцию с preflight-проверкой.
func (c *Client) submit(ctx context.Context, tx *solana.Transaction, side string) (solana.Signature, error) {
	sig, err := c.client.SendTransactionWithOpts(ctx, tx, submitOptions)
	if err != nil {
		c.metrics.RecordRPCError("send")
		return solana.Signature{}, fmt.Errorf("%w: send %s transaction: %w", ErrRPC, side, err)
	}

	c.logger.Info("Transaction sent",
		zap.String("side", side),
		zap.String("signature", sig.String()))
	return sig, nil
}
