package clobtypes

import (
	"math/big"

	"github.com/shopspring/decimal"

	"polymarket-hotpath/apperrors"
)

// SettlementDecimals 结算资产（USDC）的小数位数。
const SettlementDecimals = 6

// maxFixedBits bounds the fixed-point integer to what the exchange
// accepts for amount fields.
const maxFixedBits = 128

// ToFixedPoint converts a decimal monetary amount into the exchange's
// fixed-point integer form: truncate (never round) to 6 fractional
// digits, then scale the mantissa up to an integer. Truncation must
// never overpay relative to the caller's intent.
func ToFixedPoint(d decimal.Decimal) (*big.Int, error) {
	if d.IsNegative() {
		return nil, apperrors.Validationf("amount cannot be negative: %s", d)
	}

	// Truncate toward zero; an already-6-digit amount passes through
	// unchanged, so repeated conversion is stable.
	fixed := d.Truncate(SettlementDecimals).Shift(SettlementDecimals).BigInt()
	if fixed.BitLen() > maxFixedBits {
		return nil, apperrors.Validationf(
			"amount %s does not fit the exchange fixed-point range", d)
	}
	return fixed, nil
}
