// =============================
// File: internal/dex/pumpfun/errors.go
// =============================
package pumpfun

import "errors"

// Failure kinds surfaced by the trading pipeline. Every error returned from this
// package wraps exactly one of them, so callers can branch with errors.Is.
var (
	// ErrDecode means the curve account bytes do not match the expected layout.
	ErrDecode = errors.New("bonding curve decode error")

	// ErrAccountNotFound means the chain holds no data at the requested address.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCurveComplete means the bonding curve is retired and no longer tradable on pump.fun.
	ErrCurveComplete = errors.New("bonding curve is complete")

	// ErrRPC wraps transport and submission failures from the RPC facility.
	ErrRPC = errors.New("rpc error")

	// ErrInvalidInput means a caller-supplied amount, slippage or price is out of range.
	ErrInvalidInput = errors.New("invalid input")
)
