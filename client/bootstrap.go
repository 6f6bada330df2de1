package client

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/auth"
	"polymarket-hotpath/clobtypes"
	"polymarket-hotpath/metrics"
)

// createOrDeriveAPIKey acquires credentials with a two-step flow: try to
// create a fresh API key, and only on an HTTP-status failure fall back to
// deriving the existing one. Create is not idempotent across restarts (a
// second create for a registered wallet returns a status error) while
// derive is, so the fallback converts the non-idempotent failure into the
// idempotent path. Transport and decode errors propagate without
// fallback.
func (c *HotPathClient) createOrDeriveAPIKey(ctx context.Context) (clobtypes.Credentials, error) {
	creds, err := c.createAPIKey(ctx)
	if err == nil {
		metrics.BootstrapAttempts.WithLabelValues("create", "ok").Inc()
		return creds, nil
	}
	if !apperrors.IsStatus(err) {
		metrics.BootstrapAttempts.WithLabelValues("create", "error").Inc()
		return clobtypes.Credentials{}, err
	}

	metrics.BootstrapAttempts.WithLabelValues("create", "status").Inc()
	c.log.Debug("create api key rejected, deriving instead", zap.Error(err))

	creds, err = c.deriveAPIKey(ctx)
	if err != nil {
		metrics.BootstrapAttempts.WithLabelValues("derive", "error").Inc()
		return clobtypes.Credentials{}, err
	}
	metrics.BootstrapAttempts.WithLabelValues("derive", "ok").Inc()
	return creds, nil
}

func (c *HotPathClient) createAPIKey(ctx context.Context) (clobtypes.Credentials, error) {
	return c.credentialCall(ctx, http.MethodPost, "auth/api-key")
}

func (c *HotPathClient) deriveAPIKey(ctx context.Context) (clobtypes.Credentials, error) {
	return c.credentialCall(ctx, http.MethodGet, "auth/derive-api-key")
}

func (c *HotPathClient) credentialCall(ctx context.Context, method, path string) (clobtypes.Credentials, error) {
	ts, err := c.resolveTimestamp(nil)
	if err != nil {
		return clobtypes.Credentials{}, err
	}
	headers, err := auth.L1Headers(c.wallet, c.chainID, ts, c.nonce)
	if err != nil {
		return clobtypes.Credentials{}, err
	}

	var creds clobtypes.Credentials
	if err := c.doJSON(ctx, method, c.host.JoinPath(path), nil, headers, &creds); err != nil {
		return clobtypes.Credentials{}, err
	}
	return creds, nil
}
