// 引导（或找回）API 凭证并打印到 stdout。
// 凭证的持久化由调用方自行负责，本模块不落盘。
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"polymarket-hotpath/client"
	"polymarket-hotpath/clobtypes"
	"polymarket-hotpath/config"
	"polymarket-hotpath/infrastructure/logger"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "配置文件路径")
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

	pol, err := cfg.Policies.Build()
	if err != nil {
		log.Fatalf("解析策略失败: %v", err)
	}
	sigType, err := clobtypes.ParseSignatureType(cfg.Client.SignatureType)
	if err != nil {
		log.Fatalf("解析签名类型失败: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	cli, err := client.Bootstrap(ctx, client.Config{
		Host:          cfg.Client.Host,
		ChainID:       clobtypes.ChainID(cfg.Client.ChainID),
		PrivateKey:    cfg.Client.PrivateKey,
		SignatureType: sigType,
		Funder:        cfg.Client.FunderAddress(),
		Nonce:         cfg.Client.Nonce,
		Policies:      pol,
		Logger:        zlog.Logger,
	})
	if err != nil {
		log.Fatalf("引导凭证失败: %v", err)
	}

	out, err := json.MarshalIndent(cli.Credentials(), "", "  ")
	if err != nil {
		log.Fatalf("编码凭证失败: %v", err)
	}
	fmt.Println(string(out))
}
