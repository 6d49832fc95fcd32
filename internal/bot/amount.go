// internal/bot/amount.go
package bot

import (
	"context"
	"fmt"

	"github.com/rovshanmuradov/pumpfun-trader/internal/dex/pumpfun"
)

// AmountSelector chooses how many raw token units to sell out of balance.
type AmountSelector interface {
	SelectAmount(ctx context.Context, symbol string, balance uint64) (uint64, error)
}

// FixedAmount selects a preset amount. Zero selects the whole balance.
type FixedAmount uint64

func (a FixedAmount) SelectAmount(_ context.Context, _ string, balance uint64) (uint64, error) {
	if a == 0 {
		return balance, nil
	}
	return uint64(a), nil
}

// checkSellAmount enforces 1 <= amount <= balance.
func checkSellAmount(amount, balance uint64) error {
	if amount == 0 {
		return fmt.Errorf("%w: sell amount must be positive", pumpfun.ErrInvalidInput)
	}
	if amount > balance {
		return fmt.Errorf("%w: sell amount %d exceeds balance %d", pumpfun.ErrInvalidInput, amount, balance)
	}
	return nil
}
