// Package auth builds the two authentication header tiers of the CLOB
// API: L1 proves key ownership with a per-request wallet signature and is
// used only to obtain credentials; L2 authenticates ordinary trading
// calls with previously issued credentials.
package auth

import (
	"encoding/hex"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/clobtypes"
	"polymarket-hotpath/signer"
)

// CLOB 认证域与固定声明文本，须与后端逐字一致。
const (
	clobAuthDomainName = "ClobAuthDomain"
	clobAuthVersion    = "1"
	clobAuthMessage    = "This message attests that I control the given wallet"
)

var clobAuthTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
	},
	"ClobAuth": {
		{Name: "address", Type: "address"},
		{Name: "timestamp", Type: "string"},
		{Name: "nonce", Type: "uint256"},
		{Name: "message", Type: "string"},
	},
}

// L1Headers signs the attestation for (address, timestamp, nonce) and
// returns the header set for the credential endpoints.
func L1Headers(w *signer.Wallet, chainID clobtypes.ChainID, timestamp int64, nonce uint32) (http.Header, error) {
	ts := strconv.FormatInt(timestamp, 10)

	typedData := apitypes.TypedData{
		Types:       clobAuthTypes,
		PrimaryType: "ClobAuth",
		Domain: apitypes.TypedDataDomain{
			Name:    clobAuthDomainName,
			Version: clobAuthVersion,
			ChainId: math.NewHexOrDecimal256(int64(chainID)),
		},
		Message: apitypes.TypedDataMessage{
			"address":   w.Address().Hex(),
			"timestamp": ts,
			"nonce":     new(big.Int).SetUint64(uint64(nonce)),
			"message":   clobAuthMessage,
		},
	}

	digest, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, apperrors.Validationf("hash clob auth message: %v", err)
	}
	sig, err := w.SignHash(common.BytesToHash(digest))
	if err != nil {
		return nil, err
	}

	h := http.Header{}
	h.Set("POLY_ADDRESS", w.Address().Hex())
	h.Set("POLY_SIGNATURE", "0x"+hex.EncodeToString(sig))
	h.Set("POLY_TIMESTAMP", ts)
	h.Set("POLY_NONCE", strconv.FormatUint(uint64(nonce), 10))
	return h, nil
}
