package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"polymarket-hotpath/client"
	"polymarket-hotpath/clobtypes"
	"polymarket-hotpath/config"
	"polymarket-hotpath/infrastructure/logger"
	"polymarket-hotpath/metrics"
	"polymarket-hotpath/order"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	token := flag.String("token", "", "instrument token id（十进制）")
	side := flag.String("side", "buy", "buy 或 sell")
	price := flag.String("price", "", "限价（0 与 1 之间，按 tick 对齐）")
	size := flag.String("size", "", "数量（最多 2 位小数）")
	tickSize := flag.String("tickSize", "", "覆盖默认 tick size，留空使用配置")
	negRisk := flag.Bool("negRisk", false, "覆盖默认 neg-risk 标记")
	negRiskSet := flag.Bool("negRiskSet", false, "是否应用 -negRisk 覆盖")
	orderType := flag.String("orderType", "", "GTC/GTD/FOK/FAK，留空默认 GTC")
	postOnly := flag.Bool("postOnly", false, "仅挂单，不吃单")
	expiresIn := flag.Duration("expiresIn", 0, "GTD 订单的有效期，如 30m")
	dryRun := flag.Bool("dryRun", false, "仅构建并签名，不提交")
	metricsAddr := flag.String("metricsAddr", "", "Prometheus metrics 监听地址，留空则关闭")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	zlog, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zlog.Close()

	if *metricsAddr != "" {
		metrics.StartMetricsServer(*metricsAddr)
	}

	cli, err := buildClient(cfg, zlog)
	if err != nil {
		log.Fatalf("引导客户端失败: %v", err)
	}

	req, err := buildRequest(*token, *side, *price, *size, *orderType, *postOnly, *expiresIn)
	if err != nil {
		log.Fatalf("非法请求参数: %v", err)
	}

	var overrides order.LimitOrderOverrides
	if *tickSize != "" {
		tick, err := clobtypes.ParseTickSize(*tickSize)
		if err != nil {
			log.Fatalf("非法 tickSize: %v", err)
		}
		overrides = overrides.WithTickSize(tick)
	}
	if *negRiskSet {
		overrides = overrides.WithNegRisk(*negRisk)
	}

	if *dryRun {
		signed, err := cli.SignLimitOrder(req, overrides)
		if err != nil {
			log.Fatalf("签名失败: %v", err)
		}
		printJSON(signed)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	resp, err := cli.PostLimitOrderWithOverrides(ctx, req, overrides)
	if err != nil {
		zlog.LogError(err, map[string]interface{}{"token_id": *token})
		os.Exit(1)
	}
	zlog.LogSubmission("order_posted", *token, map[string]interface{}{
		"order_id": resp.OrderID,
		"status":   resp.Status,
	})
	printJSON(resp)
}

func buildClient(cfg config.AppConfig, zlog *logger.Logger) (*client.HotPathClient, error) {
	pol, err := cfg.Policies.Build()
	if err != nil {
		return nil, err
	}
	sigType, err := clobtypes.ParseSignatureType(cfg.Client.SignatureType)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return client.Bootstrap(ctx, client.Config{
		Host:          cfg.Client.Host,
		ChainID:       clobtypes.ChainID(cfg.Client.ChainID),
		PrivateKey:    cfg.Client.PrivateKey,
		SignatureType: sigType,
		Funder:        cfg.Client.FunderAddress(),
		Nonce:         cfg.Client.Nonce,
		Policies:      pol,
		Logger:        zlog.Logger,
	})
}

func buildRequest(token, side, price, size, orderType string, postOnly bool, expiresIn time.Duration) (order.LimitOrderRequest, error) {
	tokenID, ok := new(big.Int).SetString(token, 10)
	if !ok {
		return order.LimitOrderRequest{}, fmt.Errorf("token id %q is not a decimal integer", token)
	}
	priceDec, err := decimal.NewFromString(price)
	if err != nil {
		return order.LimitOrderRequest{}, fmt.Errorf("price: %w", err)
	}
	sizeDec, err := decimal.NewFromString(size)
	if err != nil {
		return order.LimitOrderRequest{}, fmt.Errorf("size: %w", err)
	}

	var s clobtypes.Side
	switch strings.ToLower(side) {
	case "buy":
		s = clobtypes.Buy
	case "sell":
		s = clobtypes.Sell
	default:
		return order.LimitOrderRequest{}, fmt.Errorf("side %q must be buy or sell", side)
	}

	req := order.NewLimitOrderRequest(tokenID, s, priceDec, sizeDec)
	req.OrderType = clobtypes.OrderType(strings.ToUpper(orderType))
	if postOnly {
		req.PostOnly = &postOnly
	}
	if expiresIn > 0 {
		exp := time.Now().Add(expiresIn)
		req.Expiration = &exp
	}
	return req, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("编码输出失败: %v", err)
	}
	fmt.Println(string(out))
}
