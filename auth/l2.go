package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/clobtypes"
)

// L2Headers builds the credential-backed header set for trading calls.
// The signature is an HMAC-SHA256 of timestamp+method+path+body keyed by
// the url-safe base64 API secret.
func L2Headers(address common.Address, creds clobtypes.Credentials, method, path string, body []byte, timestamp int64) (http.Header, error) {
	ts := strconv.FormatInt(timestamp, 10)

	sig, err := hmacSign(creds.Secret, ts+method+path+string(body))
	if err != nil {
		return nil, err
	}

	h := http.Header{}
	h.Set("POLY_ADDRESS", address.Hex())
	h.Set("POLY_API_KEY", creds.Key)
	h.Set("POLY_PASSPHRASE", creds.Passphrase)
	h.Set("POLY_TIMESTAMP", ts)
	h.Set("POLY_SIGNATURE", sig)
	return h, nil
}

func hmacSign(secret, message string) (string, error) {
	key, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		return "", apperrors.Validationf("api secret is not url-safe base64: %v", err)
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil)), nil
}
