// internal/dex/pumpfun/bench_test.go
package pumpfun

import (
	"testing"
)

// BenchmarkDecodeCurveState измеряет разбор аккаунта bonding curve
func BenchmarkDecodeCurveState(b *testing.B) {
	data, err := testCurve.Encode()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeCurveState(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkQuoteBuy(b *testing.B) {
	price := testCurve.Price()
	for i := 0; i < b.N; i++ {
		if _, err := QuoteBuy(1_000_000_000, price, 0.1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeriveBondingCurveAccounts(b *testing.B) {
	mint := newMint()
	for i := 0; i < b.N; i++ {
		DeriveBondingCurveAccounts(mint)
	}
}
