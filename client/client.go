// Package client implements the hot-path CLOB client: credential
// bootstrap over L1 auth, limit order build+sign, and signed-order
// submission with L2 headers. Everything else the exchange offers is out
// of scope; the point of this module is minimum time-to-submission.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/auth"
	"polymarket-hotpath/clobtypes"
	"polymarket-hotpath/metrics"
	"polymarket-hotpath/order"
	"polymarket-hotpath/policy"
	"polymarket-hotpath/signer"
)

// HotPathClient 面向单一 /order 流程的低延迟客户端。
//
// 凭证槽位是唯一的共享可变状态：RefreshCredentials 写、提交路径读，
// 由 credMu 保护，刷新期间的并发提交各自读到新旧凭证之一。
type HotPathClient struct {
	host          *url.URL
	chainID       clobtypes.ChainID
	nonce         uint32
	wallet        *signer.Wallet
	signatureType clobtypes.SignatureType
	funder        common.Address
	policies      policy.HotPathPolicies
	httpClient    *http.Client
	log           *zap.Logger

	credMu      sync.RWMutex
	credentials clobtypes.Credentials
}

// NewDefaultHTTPClient 提供一个带超时的 http.Client。
func NewDefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func newClient(cfg Config, httpClient *http.Client) (*HotPathClient, error) {
	host, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	wallet, err := signer.NewWallet(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = NewDefaultHTTPClient()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	var nonce uint32
	if cfg.Nonce != nil {
		nonce = *cfg.Nonce
	}
	return &HotPathClient{
		host:          host,
		chainID:       cfg.ChainID,
		nonce:         nonce,
		wallet:        wallet,
		signatureType: cfg.SignatureType,
		funder:        cfg.Funder,
		policies:      cfg.Policies,
		httpClient:    httpClient,
		log:           log,
	}, nil
}

// Bootstrap creates a client and acquires credentials with L1 auth.
func Bootstrap(ctx context.Context, cfg Config) (*HotPathClient, error) {
	return BootstrapWithClient(ctx, cfg, nil)
}

// BootstrapWithClient bootstraps with a caller-supplied HTTP client,
// 测试时可注入 httptest。
func BootstrapWithClient(ctx context.Context, cfg Config, httpClient *http.Client) (*HotPathClient, error) {
	c, err := newClient(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	creds, err := c.createOrDeriveAPIKey(ctx)
	if err != nil {
		return nil, err
	}
	c.credentials = creds
	return c, nil
}

// WithCredentials creates a client from already known credentials,
// skipping the bootstrap round-trip.
func WithCredentials(cfg Config, creds clobtypes.Credentials) (*HotPathClient, error) {
	return WithCredentialsAndClient(cfg, creds, nil)
}

// WithCredentialsAndClient is WithCredentials with an injected HTTP client.
func WithCredentialsAndClient(cfg Config, creds clobtypes.Credentials, httpClient *http.Client) (*HotPathClient, error) {
	c, err := newClient(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	c.credentials = creds
	return c, nil
}

// Address returns the signing wallet's address.
func (c *HotPathClient) Address() common.Address { return c.wallet.Address() }

// Credentials returns a snapshot of the held credentials.
func (c *HotPathClient) Credentials() clobtypes.Credentials {
	c.credMu.RLock()
	defer c.credMu.RUnlock()
	return c.credentials
}

// RefreshCredentials reruns the create-or-derive flow and atomically
// replaces the held credentials. Intended as the recovery action after a
// 401/403 observed by the caller.
func (c *HotPathClient) RefreshCredentials(ctx context.Context) (clobtypes.Credentials, error) {
	creds, err := c.createOrDeriveAPIKey(ctx)
	if err != nil {
		return clobtypes.Credentials{}, err
	}
	c.credMu.Lock()
	c.credentials = creds
	c.credMu.Unlock()
	c.log.Info("credentials refreshed", zap.String("address", c.Address().Hex()))
	return creds, nil
}

// SignLimitOrder resolves policies, validates and builds the order
// record, and signs it under the exchange domain. Pure and local; no
// network activity.
func (c *HotPathClient) SignLimitOrder(req order.LimitOrderRequest, ov order.LimitOrderOverrides) (clobtypes.SignedOrder, error) {
	start := time.Now()

	res, err := order.ResolvePolicies(ov, c.policies)
	if err != nil {
		return clobtypes.SignedOrder{}, err
	}
	built, err := order.Build(req, res, order.Identity{
		Maker:         c.funder,
		Signer:        c.wallet.Address(),
		SignatureType: c.signatureType,
	})
	if err != nil {
		return clobtypes.SignedOrder{}, err
	}
	signature, err := signer.SignOrder(c.wallet, built.Order, c.chainID, res.NegRisk)
	if err != nil {
		return clobtypes.SignedOrder{}, err
	}

	metrics.SignLatency.Observe(time.Since(start).Seconds())
	postOnly := built.PostOnly
	return clobtypes.SignedOrder{
		Order:     built.Order,
		Signature: signature,
		OrderType: built.OrderType,
		Owner:     c.Credentials().Key,
		PostOnly:  &postOnly,
	}, nil
}

// PostSignedOrder posts an already-signed order to /order. Separating
// signing latency from network latency is the reason this entry point
// exists; a caller may also pre-fix the header timestamp.
func (c *HotPathClient) PostSignedOrder(ctx context.Context, signed clobtypes.SignedOrder, tsOverride *int64) (clobtypes.PostOrderResponse, error) {
	start := time.Now()

	body, err := json.Marshal(signed)
	if err != nil {
		return clobtypes.PostOrderResponse{}, apperrors.Transportf(err, "encode signed order")
	}
	ts, err := c.resolveTimestamp(tsOverride)
	if err != nil {
		return clobtypes.PostOrderResponse{}, err
	}
	endpoint := c.host.JoinPath("order")
	headers, err := auth.L2Headers(c.wallet.Address(), c.Credentials(), http.MethodPost, endpoint.Path, body, ts)
	if err != nil {
		return clobtypes.PostOrderResponse{}, err
	}

	var resp clobtypes.PostOrderResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, headers, &resp); err != nil {
		metrics.Submissions.WithLabelValues("error").Inc()
		return clobtypes.PostOrderResponse{}, err
	}

	metrics.Submissions.WithLabelValues("ok").Inc()
	metrics.SubmitLatency.Observe(time.Since(start).Seconds())
	c.log.Info("order submitted",
		zap.String("order_id", resp.OrderID),
		zap.String("status", resp.Status),
		zap.Bool("success", resp.Success))
	return resp, nil
}

// PostLimitOrder signs and submits a limit order with the fixed policy
// defaults.
func (c *HotPathClient) PostLimitOrder(ctx context.Context, req order.LimitOrderRequest) (clobtypes.PostOrderResponse, error) {
	return c.PostLimitOrderWithOverrides(ctx, req, order.LimitOrderOverrides{})
}

// PostLimitOrderWithOverrides signs and submits a limit order with
// per-order overrides; unset fields fall back to the fixed defaults.
func (c *HotPathClient) PostLimitOrderWithOverrides(ctx context.Context, req order.LimitOrderRequest, ov order.LimitOrderOverrides) (clobtypes.PostOrderResponse, error) {
	signed, err := c.SignLimitOrder(req, ov)
	if err != nil {
		return clobtypes.PostOrderResponse{}, err
	}
	return c.PostSignedOrder(ctx, signed, ov.Timestamp)
}

// resolveTimestamp 先看单次覆盖，再按时间策略取本地 unix 秒。
// 覆盖值不经过策略校验，这让 PostSignedOrder 的调用方可以预先固定时间戳。
func (c *HotPathClient) resolveTimestamp(override *int64) (int64, error) {
	if override != nil {
		return *override, nil
	}
	if err := c.policies.Time.EnsureSupported(); err != nil {
		return 0, err
	}
	return time.Now().Unix(), nil
}

func (c *HotPathClient) doJSON(ctx context.Context, method string, endpoint *url.URL, body []byte, headers http.Header, out any) error {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return apperrors.Transportf(err, "build %s %s", method, endpoint.Path)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Transportf(err, "execute %s %s", method, endpoint.Path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Transportf(err, "read response from %s", endpoint.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.StatusErr(resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return apperrors.Transportf(err, "decode response from %s", endpoint.Path)
		}
	}
	return nil
}
