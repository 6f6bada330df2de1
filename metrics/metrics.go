// Package metrics provides Prometheus metrics for the hot-path client.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SignLatency 构建+签名耗时（纯本地路径）。
	SignLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hotpath_sign_seconds",
		Help:    "Time spent building and signing a limit order.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})

	// SubmitLatency 提交耗时（含网络往返）。
	SubmitLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hotpath_submit_seconds",
		Help:    "Time spent posting a signed order, network included.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	// Submissions 按结果统计的提交次数。
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotpath_submissions_total",
		Help: "Order submissions by result.",
	}, []string{"result"})

	// BootstrapAttempts 按路径（create/derive）统计的凭证获取次数。
	BootstrapAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotpath_bootstrap_total",
		Help: "Credential bootstrap attempts by path and result.",
	}, []string{"path", "result"})
)

// StartMetricsServer 启动Prometheus指标服务器
func StartMetricsServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, nil)
	}()
}
