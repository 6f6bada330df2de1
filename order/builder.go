package order

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/clobtypes"
	"polymarket-hotpath/policy"
)

// LotSizeScale 数量最多允许的小数位数。
const LotSizeScale = 2

// ResolvedPolicies are the per-order policy values after layering
// overrides on top of the fixed defaults.
type ResolvedPolicies struct {
	TickSize   clobtypes.TickSize
	NegRisk    bool
	FeeRateBps uint32
}

// ResolvePolicies layers per-call overrides over the fixed policy
// defaults. Any slot without an override falls back to the policy, which
// fails for fetch-and-cache slots.
func ResolvePolicies(ov LimitOrderOverrides, pol policy.HotPathPolicies) (ResolvedPolicies, error) {
	var res ResolvedPolicies
	var err error

	if ov.TickSize != nil {
		res.TickSize = *ov.TickSize
	} else if res.TickSize, err = pol.DefaultTickSize(); err != nil {
		return ResolvedPolicies{}, err
	}
	if ov.NegRisk != nil {
		res.NegRisk = *ov.NegRisk
	} else if res.NegRisk, err = pol.DefaultNegRisk(); err != nil {
		return ResolvedPolicies{}, err
	}
	if ov.FeeRateBps != nil {
		res.FeeRateBps = *ov.FeeRateBps
	} else if res.FeeRateBps, err = pol.DefaultFeeRateBps(); err != nil {
		return ResolvedPolicies{}, err
	}
	return res, nil
}

func scaleOf(d decimal.Decimal) int32 {
	if s := -d.Exponent(); s > 0 {
		return s
	}
	return 0
}

// Built is the outcome of a successful Build: the exchange-native record
// plus the defaulted lifetime type and post-only flag for the wire
// payload.
type Built struct {
	Order     clobtypes.Order
	OrderType clobtypes.OrderType
	PostOnly  bool
}

// Build validates the request against the resolved policies and produces
// the exchange-native order record. Validation is pure and local; it can
// be retried safely by the caller.
func Build(req LimitOrderRequest, res ResolvedPolicies, id Identity) (Built, error) {
	orderType := req.OrderType
	if orderType == "" {
		orderType = clobtypes.OrderTypeGTC
	}

	var expiration int64
	if req.Expiration != nil {
		expiration = req.Expiration.Unix()
	}
	if orderType != clobtypes.OrderTypeGTD && expiration > 0 {
		return Built{}, apperrors.Validationf(
			"only GTD orders may have a non-zero expiration, got %s", orderType)
	}
	if expiration < 0 {
		return Built{}, apperrors.Validationf(
			"unable to represent expiration %s as unix seconds", req.Expiration)
	}

	postOnly := req.PostOnly != nil && *req.PostOnly
	if postOnly && orderType != clobtypes.OrderTypeGTC && orderType != clobtypes.OrderTypeGTD {
		return Built{}, apperrors.Validationf(
			"postOnly is only supported for GTC and GTD orders, got %s", orderType)
	}

	price, size := req.Price, req.Size
	if price.IsNegative() {
		return Built{}, apperrors.Validationf(
			"unable to build order due to negative price %s", price)
	}
	if size.Sign() <= 0 {
		return Built{}, apperrors.Validationf(
			"unable to build order due to non-positive size %s", size)
	}
	if scaleOf(size) > LotSizeScale {
		return Built{}, apperrors.Validationf(
			"size %s has %d decimal places; maximum lot size scale is %d",
			size, scaleOf(size), LotSizeScale)
	}

	tick := res.TickSize.Decimal()
	tickScale := res.TickSize.Scale()
	if scaleOf(price) > tickScale {
		return Built{}, apperrors.Validationf(
			"price %s has %d decimal places; tick size %s allows at most %d",
			price, scaleOf(price), tick, tickScale)
	}
	if price.LessThan(tick) || price.GreaterThan(decimal.NewFromInt(1).Sub(tick)) {
		return Built{}, apperrors.Validationf(
			"price %s is outside [%s, %s] for tick size %s",
			price, tick, decimal.NewFromInt(1).Sub(tick), tick)
	}

	// price×size truncated to tickDecimals+2 digits; never round up.
	notional := size.Mul(price).Truncate(tickScale + LotSizeScale)

	var makerDec, takerDec decimal.Decimal
	switch req.Side {
	case clobtypes.Buy:
		makerDec, takerDec = notional, size
	case clobtypes.Sell:
		makerDec, takerDec = size, notional
	default:
		return Built{}, apperrors.Validationf("invalid side: %d", req.Side)
	}

	makerAmount, err := clobtypes.ToFixedPoint(makerDec)
	if err != nil {
		return Built{}, err
	}
	takerAmount, err := clobtypes.ToFixedPoint(takerDec)
	if err != nil {
		return Built{}, err
	}

	var nonce uint64
	if req.Nonce != nil {
		nonce = *req.Nonce
	}
	taker := common.Address{}
	if req.Taker != nil {
		taker = *req.Taker
	}

	return Built{
		OrderType: orderType,
		PostOnly:  postOnly,
		Order: clobtypes.Order{
			Salt:          NewSalt(),
			Maker:         id.Maker,
			Signer:        id.Signer,
			Taker:         taker,
			TokenID:       req.TokenID,
			MakerAmount:   makerAmount,
			TakerAmount:   takerAmount,
			Expiration:    big.NewInt(expiration),
			Nonce:         new(big.Int).SetUint64(nonce),
			FeeRateBps:    new(big.Int).SetUint64(uint64(res.FeeRateBps)),
			Side:          req.Side,
			SignatureType: id.SignatureType,
		},
	}, nil
}
