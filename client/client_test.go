package client

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/clobtypes"
	"polymarket-hotpath/order"
	"polymarket-hotpath/policy"
)

const testKey = "0000000000000000000000000000000000000000000000000000000000000003"

func testConfig(host string) Config {
	return Config{
		Host:          host,
		ChainID:       clobtypes.Polygon,
		PrivateKey:    testKey,
		SignatureType: clobtypes.SignatureProxy,
		Funder:        common.HexToAddress("0x4444444444444444444444444444444444444444"),
		Policies: policy.HotPathPolicies{
			TickSize:   policy.Fixed(clobtypes.TickSize0p01),
			NegRisk:    policy.Fixed(false),
			FeeRateBps: policy.Fixed(uint32(0)),
			Time:       policy.TimeFixed,
		},
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestBootstrapCreate(t *testing.T) {
	want := clobtypes.Credentials{Key: "fresh", Secret: "c2VjcmV0", Passphrase: "p"}
	var sawL1 atomic.Bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/api-key", r.URL.Path)
		if r.Header.Get("POLY_ADDRESS") != "" &&
			r.Header.Get("POLY_SIGNATURE") != "" &&
			r.Header.Get("POLY_TIMESTAMP") != "" &&
			r.Header.Get("POLY_NONCE") != "" {
			sawL1.Store(true)
		}
		writeJSON(t, w, http.StatusOK, want)
	}))
	defer srv.Close()

	cli, err := BootstrapWithClient(context.Background(), testConfig(srv.URL), srv.Client())
	require.NoError(t, err)
	assert.Equal(t, want, cli.Credentials())
	assert.True(t, sawL1.Load(), "credential call must carry L1 headers")
}

// 创建接口对已注册钱包返回状态错误时必须回退到 derive。
func TestBootstrapFallsBackToDerive(t *testing.T) {
	want := clobtypes.Credentials{Key: "derived", Secret: "c2VjcmV0", Passphrase: "p"}
	var derived atomic.Bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/api-key":
			writeJSON(t, w, http.StatusConflict, map[string]string{"error": "already exists"})
		case "/auth/derive-api-key":
			require.Equal(t, http.MethodGet, r.Method)
			derived.Store(true)
			writeJSON(t, w, http.StatusOK, want)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	cli, err := BootstrapWithClient(context.Background(), testConfig(srv.URL), srv.Client())
	require.NoError(t, err)
	assert.Equal(t, want, cli.Credentials())
	assert.True(t, derived.Load())
}

// 传输与解码错误不触发回退，直接向上传播。
func TestBootstrapNoFallbackOnDecodeError(t *testing.T) {
	var deriveCalls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/api-key":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("not json"))
		case "/auth/derive-api-key":
			deriveCalls.Add(1)
		}
	}))
	defer srv.Close()

	_, err := BootstrapWithClient(context.Background(), testConfig(srv.URL), srv.Client())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindTransport, apperrors.KindOf(err))
	assert.Equal(t, int32(0), deriveCalls.Load())
}

func TestBootstrapNoFallbackOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := BootstrapWithClient(context.Background(), testConfig(srv.URL), nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindTransport, apperrors.KindOf(err))
}

func TestPostLimitOrder(t *testing.T) {
	creds := clobtypes.Credentials{Key: "key-1", Secret: "c2VjcmV0", Passphrase: "p"}
	var gotBody map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/order", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "key-1", r.Header.Get("POLY_API_KEY"))
		require.Equal(t, "p", r.Header.Get("POLY_PASSPHRASE"))
		require.NotEmpty(t, r.Header.Get("POLY_SIGNATURE"))
		require.NotEmpty(t, r.Header.Get("POLY_TIMESTAMP"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(t, w, http.StatusOK, clobtypes.PostOrderResponse{
			Success: true,
			OrderID: "0xorder",
			Status:  "live",
		})
	}))
	defer srv.Close()

	cli, err := WithCredentialsAndClient(testConfig(srv.URL), creds, srv.Client())
	require.NoError(t, err)

	req := order.NewLimitOrderRequest(
		big.NewInt(777), clobtypes.Buy,
		decimal.RequireFromString("0.55"), decimal.RequireFromString("10"))
	resp, err := cli.PostLimitOrder(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "0xorder", resp.OrderID)

	// 线格式抽查：order 与 signature 平级，owner 为 API key。
	require.Contains(t, gotBody, "order")
	require.Contains(t, gotBody, "signature")
	assert.Equal(t, `"key-1"`, string(gotBody["owner"]))
	var o map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(gotBody["order"], &o))
	assert.Equal(t, `"5500000"`, string(o["makerAmount"]))
	assert.Equal(t, `"10000000"`, string(o["takerAmount"]))
	assert.Equal(t, `"BUY"`, string(o["side"]))
}

func TestPostSignedOrderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]string{"error": "invalid order"})
	}))
	defer srv.Close()

	cli, err := WithCredentialsAndClient(testConfig(srv.URL),
		clobtypes.Credentials{Key: "k", Secret: "c2VjcmV0", Passphrase: "p"}, srv.Client())
	require.NoError(t, err)

	req := order.NewLimitOrderRequest(
		big.NewInt(1), clobtypes.Buy,
		decimal.RequireFromString("0.55"), decimal.RequireFromString("1"))
	_, err = cli.PostLimitOrder(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindStatus, apperrors.KindOf(err))
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())
}

func TestRefreshCredentialsSwaps(t *testing.T) {
	next := clobtypes.Credentials{Key: "rotated", Secret: "c2VjcmV0", Passphrase: "p2"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, next)
	}))
	defer srv.Close()

	cli, err := WithCredentialsAndClient(testConfig(srv.URL),
		clobtypes.Credentials{Key: "stale", Secret: "c2VjcmV0", Passphrase: "p"}, srv.Client())
	require.NoError(t, err)
	require.Equal(t, "stale", cli.Credentials().Key)

	got, err := cli.RefreshCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, next, got)
	assert.Equal(t, next, cli.Credentials())
}

func TestConfigRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad host", func(c *Config) { c.Host = "not a url" }},
		{"wrong chain", func(c *Config) { c.ChainID = 1 }},
		{"eoa signature", func(c *Config) { c.SignatureType = clobtypes.SignatureEOA }},
		{"zero funder", func(c *Config) { c.Funder = common.Address{} }},
		{"fetch tick policy", func(c *Config) {
			c.Policies.TickSize = policy.FetchAndCache[clobtypes.TickSize]()
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig("https://clob.polymarket.com")
			c.mutate(&cfg)
			_, err := WithCredentials(cfg, clobtypes.Credentials{Key: "k"})
			require.Error(t, err)
			assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))
		})
	}
}

// 单次时间戳覆盖绕过时间策略；无覆盖时策略必须可用。
func TestResolveTimestamp(t *testing.T) {
	c := &HotPathClient{policies: policy.HotPathPolicies{Time: policy.TimeFetchAndCache}}

	override := int64(1755900000)
	ts, err := c.resolveTimestamp(&override)
	require.NoError(t, err)
	assert.Equal(t, override, ts)

	_, err = c.resolveTimestamp(nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))

	c.policies.Time = policy.TimeFixed
	ts, err = c.resolveTimestamp(nil)
	require.NoError(t, err)
	assert.Greater(t, ts, int64(0))
}
