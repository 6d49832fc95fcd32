// =============================
// File: internal/dex/pumpfun/accounts.go
// =============================
package pumpfun

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DeriveBondingCurveAccounts вычисляет адреса bonding curve и её ассоциированного
// токен-аккаунта для заданного минта. Функция чистая: один и тот же минт всегда даёт одну и ту же пару.
func DeriveBondingCurveAccounts(mint solana.PublicKey) DerivedAccounts {
	// PDA bonding curve; bump не сохраняется
	bondingCurve, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(bondingCurveSeed), mint.Bytes()},
		PumpFunProgramID,
	)
	if err != nil {
		// FindProgramAddress fails only when no bump in 255..0 yields an off-curve point.
		panic(fmt.Sprintf("pumpfun: derive bonding curve for %s: %v", mint, err))
	}

	// ATA bonding curve под token program
	associatedBondingCurve, _, err := solana.FindAssociatedTokenAddress(bondingCurve, mint)
	if err != nil {
		panic(fmt.Sprintf("pumpfun: derive associated bonding curve for %s: %v", mint, err))
	}

	return DerivedAccounts{
		BondingCurve:           bondingCurve,
		AssociatedBondingCurve: associatedBondingCurve,
	}
}
