// ==============================================
// File: internal/dex/pumpfun/bonding_curve.go
// ==============================================
package pumpfun

import (
	"context"
	"errors"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-trader/internal/blockchain"
)

// CurveStateSize is the exact byte length of the bonding curve account:
// 8-byte discriminator, five u64 fields and one bool.
const CurveStateSize = 8 + 5*8 + 1

// curveStateLayout mirrors the borsh layout of the account.
type curveStateLayout struct {
	Discriminator        [8]byte
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	Complete             uint8
}

// DecodeCurveState parses raw account bytes into a CurveState.
func DecodeCurveState(data []byte) (*CurveState, error) {
	if len(data) != CurveStateSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrDecode, CurveStateSize, len(data))
	}

	var layout curveStateLayout
	if err := bin.NewBorshDecoder(data).Decode(&layout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if layout.Discriminator != BondingCurveDiscriminator {
		return nil, fmt.Errorf("%w: unexpected discriminator %x", ErrDecode, layout.Discriminator)
	}
	if layout.Complete > 1 {
		return nil, fmt.Errorf("%w: invalid complete flag %d", ErrDecode, layout.Complete)
	}

	return &CurveState{
		VirtualTokenReserves: layout.VirtualTokenReserves,
		VirtualSolReserves:   layout.VirtualSolReserves,
		RealTokenReserves:    layout.RealTokenReserves,
		RealSolReserves:      layout.RealSolReserves,
		TokenTotalSupply:     layout.TokenTotalSupply,
		Complete:             layout.Complete == 1,
	}, nil
}

// Encode serializes the state into the on-chain account layout.
func (s *CurveState) Encode() ([]byte, error) {
	layout := curveStateLayout{
		Discriminator:        BondingCurveDiscriminator,
		VirtualTokenReserves: s.VirtualTokenReserves,
		VirtualSolReserves:   s.VirtualSolReserves,
		RealTokenReserves:    s.RealTokenReserves,
		RealSolReserves:      s.RealSolReserves,
		TokenTotalSupply:     s.TokenTotalSupply,
	}
	if s.Complete {
		layout.Complete = 1
	}
	return bin.MarshalBorsh(&layout)
}

// Price возвращает спотовую цену токена в SOL.
// Formula: (VirtualSolReserves / 10^9) / (VirtualTokenReserves / 10^6).
// Returns 0 for a complete curve or empty reserves: the curve is not quotable.
func (s *CurveState) Price() float64 {
	if s.Complete || s.VirtualTokenReserves == 0 || s.VirtualSolReserves == 0 {
		return 0
	}
	virtualSol := float64(s.VirtualSolReserves) / math.Pow10(solDecimals)
	virtualToken := float64(s.VirtualTokenReserves) / math.Pow10(tokenDecimals)
	return virtualSol / virtualToken
}

// FetchCurveState получает и декодирует аккаунт bonding curve.
func FetchCurveState(ctx context.Context, client blockchain.Client, bondingCurve solana.PublicKey) (*CurveState, error) {
	data, err := client.GetAccountData(ctx, bondingCurve)
	if err != nil {
		if errors.Is(err, blockchain.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: bonding curve %s", ErrAccountNotFound, bondingCurve)
		}
		return nil, fmt.Errorf("%w: get bonding curve account %s: %w", ErrRPC, bondingCurve, err)
	}

	state, err := DecodeCurveState(data)
	if err != nil {
		return nil, fmt.Errorf("bonding curve %s: %w", bondingCurve, err)
	}
	return state, nil
}
