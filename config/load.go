package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"polymarket-hotpath/clobtypes"
	"polymarket-hotpath/infrastructure/logger"
	"polymarket-hotpath/policy"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env         string         `yaml:"env"`
	Client      ClientConfig   `yaml:"client"`
	Policies    PoliciesConfig `yaml:"policies"`
	Logger      logger.Config  `yaml:"logger"`
	MetricsAddr string         `yaml:"metricsAddr"`
}

// ClientConfig 保存引导客户端所需的签名与连接参数。
type ClientConfig struct {
	Host          string  `yaml:"host"`
	ChainID       int64   `yaml:"chainId"`
	PrivateKey    string  `yaml:"privateKey"`
	SignatureType string  `yaml:"signatureType"` // eoa|proxy|gnosis（eoa 会被拒绝）
	Funder        string  `yaml:"funder"`
	Nonce         *uint32 `yaml:"nonce"`
}

// PoliciesConfig 四个策略槽位的原始字符串形式。
// 每个槽位要么是固定值，要么是 "fetch_and_cache"。
type PoliciesConfig struct {
	TickSize   string `yaml:"tickSize"`   // e.g. "0.01"
	NegRisk    string `yaml:"negRisk"`    // "true" / "false"
	FeeRateBps string `yaml:"feeRateBps"` // e.g. "0"
	Time       string `yaml:"time"`       // "fixed"（默认）
}

// FetchAndCache marks a policy slot as network-resolved. Not implemented.
const FetchAndCache = "fetch_and_cache"

// Load reads YAML config from path and applies basic validation.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides sensitive fields from
// env vars if present.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("PM_PRIVATE_KEY"); v != "" {
		cfg.Client.PrivateKey = v
	}
	if v := os.Getenv("PM_FUNDER"); v != "" {
		cfg.Client.Funder = v
	}
	return cfg, Validate(cfg)
}

// Validate ensures required fields are present and parseable.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if cfg.Client.Host == "" {
		return errors.New("client.host is required")
	}
	if cfg.Client.PrivateKey == "" {
		return errors.New("client.privateKey is required (or PM_PRIVATE_KEY)")
	}
	if _, err := clobtypes.ParseSignatureType(cfg.Client.SignatureType); err != nil {
		return fmt.Errorf("client.signatureType: %w", err)
	}
	if !common.IsHexAddress(cfg.Client.Funder) {
		return fmt.Errorf("client.funder %q is not a hex address", cfg.Client.Funder)
	}
	if _, err := cfg.Policies.Build(); err != nil {
		return fmt.Errorf("policies: %w", err)
	}
	return nil
}

// Build 把字符串形式的槽位解析成策略集合。
// 这里只解析，不做 Fixed/FetchAndCache 的可用性判断，
// 可用性由 policy.Validate 在客户端构造时统一检查。
func (p PoliciesConfig) Build() (policy.HotPathPolicies, error) {
	var out policy.HotPathPolicies

	switch p.TickSize {
	case FetchAndCache:
		out.TickSize = policy.FetchAndCache[clobtypes.TickSize]()
	default:
		tick, err := clobtypes.ParseTickSize(p.TickSize)
		if err != nil {
			return out, fmt.Errorf("tickSize: %w", err)
		}
		out.TickSize = policy.Fixed(tick)
	}

	switch p.NegRisk {
	case FetchAndCache:
		out.NegRisk = policy.FetchAndCache[bool]()
	default:
		v, err := strconv.ParseBool(p.NegRisk)
		if err != nil {
			return out, fmt.Errorf("negRisk %q is not a bool", p.NegRisk)
		}
		out.NegRisk = policy.Fixed(v)
	}

	switch p.FeeRateBps {
	case FetchAndCache:
		out.FeeRateBps = policy.FetchAndCache[uint32]()
	default:
		v, err := strconv.ParseUint(p.FeeRateBps, 10, 32)
		if err != nil {
			return out, fmt.Errorf("feeRateBps %q is not a uint32", p.FeeRateBps)
		}
		out.FeeRateBps = policy.Fixed(uint32(v))
	}

	switch p.Time {
	case "", "fixed":
		out.Time = policy.TimeFixed
	case FetchAndCache:
		out.Time = policy.TimeFetchAndCache
	default:
		return out, fmt.Errorf("time %q must be fixed or %s", p.Time, FetchAndCache)
	}

	return out, nil
}

// FunderAddress 返回解析后的出资地址。
func (c ClientConfig) FunderAddress() common.Address {
	return common.HexToAddress(c.Funder)
}
