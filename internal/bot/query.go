// internal/bot/query.go
package bot

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
)

func (r *Runner) curve(ctx context.Context, c CurveCommand) error {
	if r.trader == nil {
		return fmt.Errorf("trading client is not configured")
	}
	derived := r.trader.GetDerivedAccounts(c.Mint)

	state, err := r.trader.GetCurveState(ctx, c.Mint)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Mint:                     %s\n", c.Mint)
	fmt.Fprintf(r.out, "Bonding curve:            %s\n", derived.BondingCurve)
	fmt.Fprintf(r.out, "Associated bonding curve: %s\n", derived.AssociatedBondingCurve)
	fmt.Fprintf(r.out, "Virtual token reserves:   %d\n", state.VirtualTokenReserves)
	fmt.Fprintf(r.out, "Virtual SOL reserves:     %d\n", state.VirtualSolReserves)
	fmt.Fprintf(r.out, "Real token reserves:      %d\n", state.RealTokenReserves)
	fmt.Fprintf(r.out, "Real SOL reserves:        %d\n", state.RealSolReserves)
	fmt.Fprintf(r.out, "Token total supply:       %d\n", state.TokenTotalSupply)
	fmt.Fprintf(r.out, "Complete:                 %t\n", state.Complete)
	if state.Complete {
		fmt.Fprintln(r.out, "Price:                    n/a (migrated off pump.fun)")
	} else {
		fmt.Fprintf(r.out, "Price:                    %.12f SOL\n", state.Price())
	}
	return nil
}

func (r *Runner) metadata(ctx context.Context, c MetadataCommand) error {
	if r.meta == nil {
		return fmt.Errorf("metadata client is not configured")
	}
	md, err := r.meta.GetTokenMetadata(ctx, c.Mint)
	if err != nil {
		return err
	}

	out, err := sonic.ConfigStd.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	fmt.Fprintln(r.out, string(out))
	return nil
}
