package calculator

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Share returns one participant's exact share of amount split n ways.
// No rounding happens here: 200 over 3 is exactly 200/3.
//
// n must be positive; callers rely on expense intake to guarantee at least
// one participant.
func Share(amount decimal.Decimal, n int) *big.Rat {
	if n <= 0 {
		panic("calculator: cannot split an amount across zero participants")
	}
	share := amount.Rat()
	return share.Quo(share, new(big.Rat).SetInt64(int64(n)))
}

// Round converts an exact value to a decimal with the given number of
// places, rounding half away from zero. Use it only when presenting values.
func Round(r *big.Rat, places int32) decimal.Decimal {
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	return num.DivRound(den, places)
}
