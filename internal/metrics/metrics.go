// Package metrics 註冊服務使用的 Prometheus 指標。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CacheLookupsTotal 快取查詢次數，result 為 hit 或 miss
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_cache_lookups_total",
			Help: "Total number of suggestion cache lookups by result.",
		},
		[]string{"result"},
	)

	// CacheEvictionsTotal LRU 淘汰次數
	CacheEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suggestion_cache_evictions_total",
			Help: "Total number of entries evicted from the suggestion cache.",
		},
	)

	// CacheEntries 目前快取條目數
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "suggestion_cache_entries",
			Help: "Current number of entries in the suggestion cache.",
		},
	)

	// SuggestionsTotal 推薦結果計數，outcome 為 ok 或錯誤種類
	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestions_total",
			Help: "Total number of suggestion results by outcome.",
		},
		[]string{"outcome", "cached"},
	)

	// ProviderRequestDuration 外部模型呼叫耗時
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Generative provider call duration in seconds.",
			Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"model", "outcome"},
	)

	// HTTPRequestDuration HTTP 請求耗時
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"path", "method", "status_code"},
	)
)

// Handler 提供 /metrics 端點
func Handler() http.Handler {
	return promhttp.Handler()
}
