package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-suggester/internal/core/ai/cache"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ModelStatus 模型初始化狀態
type ModelStatus interface {
	Available() bool
	Model() string
}

// CacheStatsSource 提供快取統計
type CacheStatsSource interface {
	CacheStats() (cache.Stats, bool)
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Model       string                 `json:"model,omitempty"`
	Runtime     map[string]interface{} `json:"runtime"`
	Cache       *cache.Stats           `json:"cache,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg   *config.Config
	model ModelStatus
	stats CacheStatsSource
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, model ModelStatus, stats CacheStatsSource) *Handler {
	return &Handler{cfg: cfg, model: model, stats: stats}
}

// Root 根路徑，回報服務狀態與執行環境
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"environment": h.cfg.EnvironmentMode(),
	})
}

// HealthCheck 健康檢查，附帶執行期與快取資訊
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now(),
		Version:     h.cfg.App.Version,
		Environment: h.cfg.EnvironmentMode(),
		Model:       h.model.Model(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}
	if !h.model.Available() {
		response.Status = "degraded"
	}
	if stats, ok := h.stats.CacheStats(); ok {
		response.Cache = &stats
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("status", response.Status),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 模型未初始化時回報未就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if !h.model.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"error":  common.ErrServiceUnavailable.Message,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"model":  h.model.Model(),
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
