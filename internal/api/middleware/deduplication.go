package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deduplicator 在時間窗內拒絕相同的 POST 請求（路徑與請求體皆相同）
type Deduplicator struct {
	window   time.Duration
	mu       sync.Mutex
	requests map[string]time.Time
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
	exempt   map[string]struct{}
}

// NewDeduplicator 創建請求去重器並啟動背景清理
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = time.Second
	}
	d := &Deduplicator{
		window:   window,
		requests: make(map[string]time.Time),
		now:      time.Now,
		stop:     make(chan struct{}),
		exempt:   make(map[string]struct{}),
	}
	go d.cleanup(10 * time.Minute)
	return d
}

func (d *Deduplicator) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.prune()
		case <-d.stop:
			return
		}
	}
}

func (d *Deduplicator) prune() {
	now := d.now()
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, t := range d.requests {
		if now.Sub(t) > 10*d.window {
			delete(d.requests, k)
		}
	}
}

// seen 記錄指紋，時間窗內重複時回傳 true
func (d *Deduplicator) seen(fingerprint string) bool {
	now := d.now()
	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// Exempt 不對指定路由去重；用於結果取決於伺服器狀態而非請求體的路由
// 必須在開始處理請求前呼叫
func (d *Deduplicator) Exempt(routes ...string) {
	for _, r := range routes {
		d.exempt[r] = struct{}{}
	}
}

// Close 停止背景清理
func (d *Deduplicator) Close() {
	d.once.Do(func() { close(d.stop) })
}

// Middleware 請求去重中間件
func (d *Deduplicator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if _, ok := d.exempt[c.FullPath()]; ok {
			c.Next()
			return
		}

		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogWarn("Failed to read request body", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
					Code:    common.ErrCodeInvalidRequest,
					Message: common.ErrInvalidRequest.Message,
				})
				return
			}
			hash := sha256.Sum256(body)
			fingerprint += ":" + hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		if d.seen(fingerprint) {
			common.LogWarn("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
				Code:    common.ErrCodeTooManyRequests,
				Message: "Request too frequent",
			})
			return
		}

		c.Next()
	}
}
