// =============================
// File: internal/dex/pumpfun/types.go
// =============================
package pumpfun

import (
	"github.com/gagliardetto/solana-go"
)

// CurveState is a snapshot of the on-chain bonding curve account.
type CurveState struct {
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	Complete             bool
}

// DerivedAccounts holds the program-derived addresses of a mint's bonding curve.
type DerivedAccounts struct {
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
}

// BuyQuote is the output of a buy quote: tokens expected and the SOL ceiling in lamports.
type BuyQuote struct {
	TokenAmountOut uint64
	MaxSolIn       uint64
}

// SellQuote is the output of a sell quote: SOL expected and the SOL floor in lamports.
type SellQuote struct {
	SolAmountOut uint64
	MinSolOut    uint64
}

// BuyParams describes a single buy.
type BuyParams struct {
	Mint               solana.PublicKey
	AmountInLamports   uint64
	Slippage           float64 // fraction in [0, 1]
	CreateTokenAccount bool
	PriorityFee        uint64 // micro-lamports per compute unit, 0 disables
	Blockhash          solana.Hash
}

// SellParams describes a single sell.
type SellParams struct {
	Mint              solana.PublicKey
	AmountInTokens    uint64
	Slippage          float64 // fraction in [0, 1]
	CloseTokenAccount bool
	PriorityFee       uint64 // micro-lamports per compute unit, 0 disables
	Blockhash         solana.Hash
}

// BuyResult is a submitted buy together with the quote it was signed with.
type BuyResult struct {
	Signature solana.Signature
	Quote     BuyQuote
}

// SellResult is a submitted sell together with the quote it was signed with.
type SellResult struct {
	Signature solana.Signature
	Quote     SellQuote
}
