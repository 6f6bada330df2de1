// Package policy models the hot-path defaults that may either be a fixed
// value or a not-yet-supported "fetch and cache" mode. Only fixed values
// resolve today; the fetch variant fails loudly so the real strategy can
// be added later without changing call sites.
package policy

import (
	"polymarket-hotpath/apperrors"
	"polymarket-hotpath/clobtypes"
)

type mode uint8

const (
	modeUnset mode = iota
	modeFixed
	modeFetchAndCache
)

// FixedOrFetch 固定值或“拉取并缓存”两种策略的封闭集合。
// 零值视为未配置，Resolve 时报配置错误。
type FixedOrFetch[T any] struct {
	mode  mode
	value T
}

// Fixed wraps a fixed policy value.
func Fixed[T any](value T) FixedOrFetch[T] {
	return FixedOrFetch[T]{mode: modeFixed, value: value}
}

// FetchAndCache marks the slot as network-resolved. Not implemented.
func FetchAndCache[T any]() FixedOrFetch[T] {
	return FixedOrFetch[T]{mode: modeFetchAndCache}
}

// Resolve returns the fixed value, or an error naming the slot for the
// fetch-and-cache and unset variants.
func (f FixedOrFetch[T]) Resolve(slot string) (T, error) {
	var zero T
	switch f.mode {
	case modeFixed:
		return f.value, nil
	case modeFetchAndCache:
		return zero, apperrors.Configf(
			"%s policy fetch_and_cache is not implemented in hotpath yet", slot)
	default:
		return zero, apperrors.Configf("%s policy is not configured", slot)
	}
}

// TimePolicy controls how header timestamps are sourced. Fixed means no
// /time call; the local unix clock is used.
type TimePolicy uint8

const (
	TimeFixed TimePolicy = iota
	TimeFetchAndCache
)

// EnsureSupported 校验时间策略当前是否可用。
func (p TimePolicy) EnsureSupported() error {
	switch p {
	case TimeFixed:
		return nil
	case TimeFetchAndCache:
		return apperrors.Configf(
			"time policy fetch_and_cache is not implemented in hotpath yet")
	default:
		return apperrors.Configf("unknown time policy %d", p)
	}
}

// HotPathPolicies 下单流程的四个默认策略槽位。
type HotPathPolicies struct {
	TickSize   FixedOrFetch[clobtypes.TickSize]
	NegRisk    FixedOrFetch[bool]
	FeeRateBps FixedOrFetch[uint32]
	Time       TimePolicy
}

// DefaultTickSize resolves the default tick size.
func (p HotPathPolicies) DefaultTickSize() (clobtypes.TickSize, error) {
	return p.TickSize.Resolve("tick_size")
}

// DefaultNegRisk resolves the default negative-risk flag.
func (p HotPathPolicies) DefaultNegRisk() (bool, error) {
	return p.NegRisk.Resolve("neg_risk")
}

// DefaultFeeRateBps resolves the default fee rate in basis points.
func (p HotPathPolicies) DefaultFeeRateBps() (uint32, error) {
	return p.FeeRateBps.Resolve("fee_rate_bps")
}

// Validate resolves all four slots eagerly so misconfiguration is caught
// before any network activity.
func (p HotPathPolicies) Validate() error {
	if err := p.Time.EnsureSupported(); err != nil {
		return err
	}
	if _, err := p.DefaultTickSize(); err != nil {
		return err
	}
	if _, err := p.DefaultNegRisk(); err != nil {
		return err
	}
	if _, err := p.DefaultFeeRateBps(); err != nil {
		return err
	}
	return nil
}
