// Package clobtypes holds the exchange-native types shared by the order
// builder, signer and client: enums, tick sizes, credentials and the wire
// form of a signed order.
package clobtypes

import (
	"strings"

	"github.com/shopspring/decimal"

	"polymarket-hotpath/apperrors"
)

// ChainID selects the target chain. Only Polygon mainnet is supported.
type ChainID int64

// Polygon 主网链 ID，当前唯一支持的链。
const Polygon ChainID = 137

// Side of an order.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// OrderType is the order lifetime tag accepted by the CLOB.
type OrderType string

const (
	OrderTypeGTC OrderType = "GTC" // good-till-cancelled
	OrderTypeGTD OrderType = "GTD" // good-till-date
	OrderTypeFOK OrderType = "FOK" // fill-or-kill
	OrderTypeFAK OrderType = "FAK" // fill-and-kill
)

// SignatureType tags how the maker address relates to the signing key.
type SignatureType uint8

const (
	SignatureEOA SignatureType = iota
	SignatureProxy
	SignatureGnosisSafe
)

func (t SignatureType) String() string {
	switch t {
	case SignatureEOA:
		return "EOA"
	case SignatureProxy:
		return "PROXY"
	case SignatureGnosisSafe:
		return "GNOSIS_SAFE"
	default:
		return "UNKNOWN"
	}
}

// ParseSignatureType 解析配置文件里的签名类型字符串。
func ParseSignatureType(value string) (SignatureType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "eoa":
		return SignatureEOA, nil
	case "1", "proxy":
		return SignatureProxy, nil
	case "2", "gnosis", "gnosis_safe", "gnosissafe", "safe":
		return SignatureGnosisSafe, nil
	default:
		return 0, apperrors.Validationf(
			"invalid signature_type %q; expected one of: eoa|proxy|gnosis", value)
	}
}

// TickSize is the minimum price increment of an instrument. It also fixes
// the decimal precision of valid prices.
type TickSize string

const (
	TickSize0p1    TickSize = "0.1"
	TickSize0p01   TickSize = "0.01"
	TickSize0p001  TickSize = "0.001"
	TickSize0p0001 TickSize = "0.0001"
)

// ParseTickSize 只接受交易所支持的四档 tick。
func ParseTickSize(value string) (TickSize, error) {
	switch TickSize(strings.TrimSpace(value)) {
	case TickSize0p1, TickSize0p01, TickSize0p001, TickSize0p0001:
		return TickSize(strings.TrimSpace(value)), nil
	default:
		return "", apperrors.Validationf(
			"invalid tick_size %q; expected one of: 0.1|0.01|0.001|0.0001", value)
	}
}

// Decimal returns the tick as an exact decimal.
func (t TickSize) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(string(t))
	if err != nil {
		// Unreachable for the defined constants; a hand-rolled TickSize
		// surfaces as a zero tick and fails price validation downstream.
		return decimal.Zero
	}
	return d
}

// Scale returns the number of fractional digits of the tick.
func (t TickSize) Scale() int32 {
	return -t.Decimal().Exponent()
}

// Credentials is the API key/secret/passphrase triple issued by the
// exchange, scoped to one wallet. Never persisted by this module.
type Credentials struct {
	Key        string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}

// IsZero reports whether no credentials are held.
func (c Credentials) IsZero() bool {
	return c.Key == "" && c.Secret == "" && c.Passphrase == ""
}
