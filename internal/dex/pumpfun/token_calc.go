// internal/dex/pumpfun/token_calc.go
package pumpfun

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// unitScale reconciles the 9-decimal SOL unit with the 6-decimal token unit
// when price is expressed in SOL per whole token.
var unitScale = decimal.NewFromInt(1000)

var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// ValidateSlippage checks that slippage is a finite fraction in [0, 1].
func ValidateSlippage(slippage float64) error {
	if math.IsNaN(slippage) || math.IsInf(slippage, 0) || slippage < 0 || slippage > 1 {
		return fmt.Errorf("%w: slippage %v outside [0, 1]", ErrInvalidInput, slippage)
	}
	return nil
}

// QuoteBuy вычисляет количество токенов за amountInLamports и верхнюю границу SOL с учётом проскальзывания.
//
//	token_amount_out = floor(amount / price / 1000)
//	max_sol_in       = floor(amount * (1 + slippage))
func QuoteBuy(amountInLamports uint64, price float64, slippage float64) (BuyQuote, error) {
	if err := ValidateSlippage(slippage); err != nil {
		return BuyQuote{}, err
	}
	p, err := priceDecimal(price)
	if err != nil {
		return BuyQuote{}, err
	}

	amount := fromUint64(amountInLamports)

	tokensOut, err := toUint64(amount.Div(p).Div(unitScale))
	if err != nil {
		return BuyQuote{}, fmt.Errorf("token amount out: %w", err)
	}
	maxSolIn, err := toUint64(amount.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(slippage))))
	if err != nil {
		return BuyQuote{}, fmt.Errorf("max sol in: %w", err)
	}

	return BuyQuote{TokenAmountOut: tokensOut, MaxSolIn: maxSolIn}, nil
}

// QuoteSell вычисляет ожидаемый выход SOL за amountInTokens и нижнюю границу с учётом проскальзывания.
//
//	sol_amount_out = floor(amount * price * 1000)
//	min_sol_out    = sol_amount_out - floor(sol_amount_out * slippage)
func QuoteSell(amountInTokens uint64, price float64, slippage float64) (SellQuote, error) {
	if err := ValidateSlippage(slippage); err != nil {
		return SellQuote{}, err
	}
	p, err := priceDecimal(price)
	if err != nil {
		return SellQuote{}, err
	}

	solOut, err := toUint64(fromUint64(amountInTokens).Mul(p).Mul(unitScale))
	if err != nil {
		return SellQuote{}, fmt.Errorf("sol amount out: %w", err)
	}
	deduction, err := toUint64(fromUint64(solOut).Mul(decimal.NewFromFloat(slippage)))
	if err != nil {
		return SellQuote{}, fmt.Errorf("slippage deduction: %w", err)
	}
	if deduction > solOut {
		return SellQuote{}, fmt.Errorf("%w: slippage deduction %d exceeds sol amount out %d", ErrInvalidInput, deduction, solOut)
	}

	return SellQuote{SolAmountOut: solOut, MinSolOut: solOut - deduction}, nil
}

func priceDecimal(price float64) (decimal.Decimal, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return decimal.Zero, fmt.Errorf("%w: price %v is not positive", ErrInvalidInput, price)
	}
	return decimal.NewFromFloat(price), nil
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// toUint64 truncates toward zero and rejects values outside the u64 range.
func toUint64(d decimal.Decimal) (uint64, error) {
	d = d.Floor()
	if d.IsNegative() || d.GreaterThan(maxUint64) {
		return 0, fmt.Errorf("%w: %s does not fit in u64", ErrInvalidInput, d.String())
	}
	return d.BigInt().Uint64(), nil
}
