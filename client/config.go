package client

import (
	"net/url"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/clobtypes"
	"polymarket-hotpath/policy"
)

// Config 热路径客户端的引导配置。
type Config struct {
	// Host is the CLOB REST endpoint, e.g. https://clob.polymarket.com.
	Host string
	// ChainID must be Polygon mainnet.
	ChainID clobtypes.ChainID
	// PrivateKey is the hex-encoded signing key. Never logged.
	PrivateKey string
	// SignatureType must be Proxy or GnosisSafe; EOA is rejected.
	SignatureType clobtypes.SignatureType
	// Funder is the on-chain account whose balance funds orders.
	Funder common.Address
	// Nonce optionally pins the credential nonce used for L1 auth.
	Nonce *uint32
	// Policies are the fixed hot-path defaults.
	Policies policy.HotPathPolicies
	// Logger defaults to a no-op logger when nil.
	Logger *zap.Logger
}

func (c Config) validate() (*url.URL, error) {
	host, err := url.Parse(c.Host)
	if err != nil || host.Scheme == "" || host.Host == "" {
		return nil, apperrors.Configf("invalid host %q", c.Host)
	}
	if c.ChainID != clobtypes.Polygon {
		return nil, apperrors.Configf(
			"hotpath currently supports Polygon only, got chain_id=%d", c.ChainID)
	}
	if c.SignatureType == clobtypes.SignatureEOA {
		return nil, apperrors.Configf(
			"hotpath expects proxy signatures (Proxy or GnosisSafe), got EOA")
	}
	if c.Funder == (common.Address{}) {
		return nil, apperrors.Configf(
			"hotpath requires a non-zero funder for proxy signatures")
	}
	if err := c.Policies.Validate(); err != nil {
		return nil, err
	}
	return host, nil
}
