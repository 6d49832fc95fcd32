// Package pumpfun implements a trading client for Pump.fun bonding curves on the Solana blockchain.
//
// This package provides methods for:
// - Deriving the bonding curve and associated bonding curve addresses of a mint.
// - Fetching and decoding bonding curve account data.
// - Quoting buys and sells with slippage bounds.
// - Building, signing and submitting buy and sell transactions.
//
// Key Types and Functions:
//
// - Client struct: trading client holding the RPC facility, wallet and derived address cache.
// - NewClient(): creates the client. Metrics are optional.
// - DecodeCurveState(), FetchCurveState(): bonding curve account codec.
// - QuoteBuy(), QuoteSell(): quote arithmetic, truncating toward zero.
// - BuildBuyInstruction(), BuildSellInstruction(): raw program instructions.
// - CreateBuyTransaction(), CreateSellTransaction(): signed transactions ready to submit.
// - Buy(), Sell(): build and submit in one step.
//
// Detailed information about each function can be found in their respective source files:
//   - pumpfun.go: Client, address cache, price and balance queries.
//   - accounts.go: program-derived address derivation.
//   - bonding_curve.go: curve account decoding and spot price.
//   - token_calc.go: buy and sell quotes.
//   - instructions.go: buy and sell instruction encoding.
//   - transactions.go: transaction assembly and submission.
//   - metrics.go: prometheus collectors for the trade pipeline.
//
// Usage example:
//
//	client := solbc.NewClient(rpcURL, logger)
//	trader := pumpfun.NewClient(client, w, logger, nil)
//	blockhash, err := trader.LatestBlockhash(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sig, err := trader.Buy(ctx, pumpfun.BuyParams{
//	    Mint:               mint,
//	    AmountInLamports:   100_000_000,
//	    Slippage:           0.10,
//	    CreateTokenAccount: true,
//	    PriorityFee:        1_000_000,
//	    Blockhash:          blockhash,
//	})
//
// Errors returned by this package wrap one of ErrDecode, ErrAccountNotFound,
// ErrCurveComplete, ErrRPC or ErrInvalidInput.
package pumpfun
