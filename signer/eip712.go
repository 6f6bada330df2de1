package signer

import (
	"encoding/hex"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/clobtypes"
)

// EIP-712 签名域常量。域绑定（协议名、版本、链、验证合约）
// 防止同一签名被重放到其他合约、链或 neg-risk 池。
const (
	domainName    = "Polymarket CTF Exchange"
	domainVersion = "1"
)

type contractKey struct {
	chain   clobtypes.ChainID
	negRisk bool
}

// 静态合约表，按 (chainId, negRisk) 选择验证合约。
var exchangeContracts = map[contractKey]common.Address{
	{clobtypes.Polygon, false}: common.HexToAddress("0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E"),
	{clobtypes.Polygon, true}:  common.HexToAddress("0xC5d563A36AE78145C45a50134d48A1215220f80a"),
}

// ExchangeContract resolves the verifying contract for the pair. An
// unmapped pair is a configuration error naming both inputs.
func ExchangeContract(chain clobtypes.ChainID, negRisk bool) (common.Address, error) {
	addr, ok := exchangeContracts[contractKey{chain, negRisk}]
	if !ok {
		return common.Address{}, apperrors.Configf(
			"no exchange contract configured for chain_id=%d neg_risk=%t", chain, negRisk)
	}
	return addr, nil
}

var orderTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Order": {
		{Name: "salt", Type: "uint256"},
		{Name: "maker", Type: "address"},
		{Name: "signer", Type: "address"},
		{Name: "taker", Type: "address"},
		{Name: "tokenId", Type: "uint256"},
		{Name: "makerAmount", Type: "uint256"},
		{Name: "takerAmount", Type: "uint256"},
		{Name: "expiration", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "feeRateBps", Type: "uint256"},
		{Name: "side", Type: "uint8"},
		{Name: "signatureType", Type: "uint8"},
	},
}

// OrderDigest computes the canonical typed-data hash of the order under
// the (chain, negRisk) domain. The domain is recomputed per order, never
// cached across differing pairs.
func OrderDigest(order clobtypes.Order, chain clobtypes.ChainID, negRisk bool) (common.Hash, error) {
	contract, err := ExchangeContract(chain, negRisk)
	if err != nil {
		return common.Hash{}, err
	}

	typedData := apitypes.TypedData{
		Types:       orderTypes,
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:              domainName,
			Version:           domainVersion,
			ChainId:           math.NewHexOrDecimal256(int64(chain)),
			VerifyingContract: contract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"salt":          order.Salt,
			"maker":         order.Maker.Hex(),
			"signer":        order.Signer.Hex(),
			"taker":         order.Taker.Hex(),
			"tokenId":       order.TokenID,
			"makerAmount":   order.MakerAmount,
			"takerAmount":   order.TakerAmount,
			"expiration":    order.Expiration,
			"nonce":         order.Nonce,
			"feeRateBps":    order.FeeRateBps,
			"side":          big.NewInt(int64(order.Side)),
			"signatureType": big.NewInt(int64(order.SignatureType)),
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, apperrors.Validationf("hash typed data: %v", err)
	}
	return common.BytesToHash(hash), nil
}

// SignOrder hashes the order under the domain and signs it with the
// wallet. Returns the 0x-prefixed hex signature for the wire payload.
func SignOrder(w *Wallet, order clobtypes.Order, chain clobtypes.ChainID, negRisk bool) (string, error) {
	digest, err := OrderDigest(order, chain, negRisk)
	if err != nil {
		return "", err
	}
	sig, err := w.SignHash(digest)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(sig), nil
}
