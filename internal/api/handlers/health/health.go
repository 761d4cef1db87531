package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"meal-planner/internal/core/ai/cache"
	"meal-planner/internal/core/ai/queue"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 可檢查連線的依賴（資料儲存）
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueInspector 提供隊列狀態
type QueueInspector interface {
	GetQueueStatus() *queue.Status
}

// CacheInspector 提供快取統計
type CacheInspector interface {
	GetStats() cache.Stats
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Store     string                 `json:"store"`
	AI        bool                   `json:"ai_enabled"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *queue.Status          `json:"queue,omitempty"`
	Cache     *cache.Stats           `json:"cache,omitempty"`
}

// Handler 健康檢查處理程序
type Handler struct {
	version   string
	aiEnabled bool
	store     Pinger
	queue     QueueInspector
	cache     CacheInspector
	timeout   time.Duration
}

// NewHandler 創建健康檢查處理程序，queue 與 cache 可為 nil
func NewHandler(version string, aiEnabled bool, store Pinger, q QueueInspector, c CacheInspector) *Handler {
	return &Handler{
		version:   version,
		aiEnabled: aiEnabled,
		store:     store,
		queue:     q,
		cache:     c,
		timeout:   2 * time.Second,
	}
}

// Register 註冊健康檢查路由
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", h.LivenessCheck)
}

func (h *Handler) pingStore(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.store.Ping(ctx)
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Store:     "ok",
		AI:        h.aiEnabled,
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

	if err := h.pingStore(c.Request.Context()); err != nil {
		common.LogWarn("Store health check failed", zap.Error(err))
		response.Status = "degraded"
		response.Store = "unavailable"
	}
	if h.queue != nil {
		response.Queue = h.queue.GetQueueStatus()
	}
	if h.cache != nil {
		stats := h.cache.GetStats()
		response.Cache = &stats
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("status", response.Status),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：資料儲存可用且隊列運作中
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if err := h.pingStore(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "store unavailable",
		})
		return
	}
	if h.queue != nil && !h.queue.GetQueueStatus().Running {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "queue not running",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
