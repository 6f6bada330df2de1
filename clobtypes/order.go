package clobtypes

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Order is the fully resolved, exchange-native order record. Immutable
// once built; it exists only to be hashed, signed and serialized.
type Order struct {
	Salt          *big.Int
	Maker         common.Address
	Signer        common.Address
	Taker         common.Address
	TokenID       *big.Int
	MakerAmount   *big.Int
	TakerAmount   *big.Int
	Expiration    *big.Int
	Nonce         *big.Int
	FeeRateBps    *big.Int
	Side          Side
	SignatureType SignatureType
}

// wireOrder 与后端约定的 JSON 形态：uint256 字段一律十进制字符串。
type wireOrder struct {
	Salt          string `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	Side          string `json:"side"`
	SignatureType int    `json:"signatureType"`
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// MarshalJSON serializes the order in the exchange wire format.
func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireOrder{
		Salt:          bigString(o.Salt),
		Maker:         o.Maker.Hex(),
		Signer:        o.Signer.Hex(),
		Taker:         o.Taker.Hex(),
		TokenID:       bigString(o.TokenID),
		MakerAmount:   bigString(o.MakerAmount),
		TakerAmount:   bigString(o.TakerAmount),
		Expiration:    bigString(o.Expiration),
		Nonce:         bigString(o.Nonce),
		FeeRateBps:    bigString(o.FeeRateBps),
		Side:          o.Side.String(),
		SignatureType: int(o.SignatureType),
	})
}

// SignedOrder is the wire payload for POST /order. Created once per
// submission attempt and discarded after the response.
type SignedOrder struct {
	Order     Order     `json:"order"`
	Signature string    `json:"signature"` // 0x-prefixed hex
	OrderType OrderType `json:"orderType"`
	Owner     string    `json:"owner"` // credential API key
	PostOnly  *bool     `json:"postOnly"`
}

// PostOrderResponse is the exchange response to an order submission.
type PostOrderResponse struct {
	Success     bool     `json:"success"`
	ErrorMsg    string   `json:"errorMsg"`
	OrderID     string   `json:"orderId"`
	OrderHashes []string `json:"orderHashes"`
	Status      string   `json:"status"` // matched, live, delayed, unmatched
}
