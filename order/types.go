// Package order turns a caller's limit-order intent plus resolved
// policies into a fully populated order record ready for signing, and
// enforces every business rule along the way.
package order

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"polymarket-hotpath/clobtypes"
)

// LimitOrderRequest 调用方的下单意图，按次消费。
// 可选字段留空时由构建器补默认值。
type LimitOrderRequest struct {
	TokenID    *big.Int
	Side       clobtypes.Side
	Price      decimal.Decimal
	Size       decimal.Decimal
	Nonce      *uint64
	Expiration *time.Time
	Taker      *common.Address
	OrderType  clobtypes.OrderType // empty defaults to GTC
	PostOnly   *bool
}

// NewLimitOrderRequest builds a request with only the required fields.
func NewLimitOrderRequest(tokenID *big.Int, side clobtypes.Side, price, size decimal.Decimal) LimitOrderRequest {
	return LimitOrderRequest{TokenID: tokenID, Side: side, Price: price, Size: size}
}

// LimitOrderOverrides 单次调用的策略覆盖，未设置的字段回落到固定默认值。
type LimitOrderOverrides struct {
	TickSize   *clobtypes.TickSize
	NegRisk    *bool
	FeeRateBps *uint32
	Timestamp  *int64
}

// WithTickSize sets a per-order tick size.
func (o LimitOrderOverrides) WithTickSize(t clobtypes.TickSize) LimitOrderOverrides {
	o.TickSize = &t
	return o
}

// WithNegRisk sets a per-order negative-risk flag.
func (o LimitOrderOverrides) WithNegRisk(v bool) LimitOrderOverrides {
	o.NegRisk = &v
	return o
}

// WithFeeRateBps sets a per-order fee rate in basis points.
func (o LimitOrderOverrides) WithFeeRateBps(v uint32) LimitOrderOverrides {
	o.FeeRateBps = &v
	return o
}

// WithTimestamp pre-fixes the header timestamp for this call.
func (o LimitOrderOverrides) WithTimestamp(ts int64) LimitOrderOverrides {
	o.Timestamp = &ts
	return o
}

// Identity 下单身份：出资地址、签名地址与签名类型。
type Identity struct {
	Maker         common.Address // funder
	Signer        common.Address
	SignatureType clobtypes.SignatureType
}
