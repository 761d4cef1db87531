package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"meal-planner/internal/core/ai/cache"
	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrDisabled AI 服務未啟用
var ErrDisabled = errors.New("AI service is disabled")

// Response AI 回應
type Response struct {
	Content  string
	CacheHit bool
}

// Service AI 服務
type Service struct {
	config       *config.Config
	provider     provider.Provider
	cacheManager *cache.CacheManager
	mu           sync.Mutex
	lastRequest  time.Time
	now          func() time.Time
}

// NewService 創建 AI 服務，p 為 nil 時所有請求回傳 ErrDisabled
func NewService(cfg *config.Config, p provider.Provider, cacheManager *cache.CacheManager) *Service {
	return &Service{
		config:       cfg,
		provider:     p,
		cacheManager: cacheManager,
		now:          time.Now,
	}
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (*Response, error) {
	if s.provider == nil {
		return nil, ErrDisabled
	}

	// 統一 prompt 格式，確保快取 key 一致
	prompt = normalizePrompt(prompt)

	if val, err := s.cacheManager.Get(prompt); err == nil {
		return &Response{Content: val, CacheHit: true}, nil
	}

	if err := s.checkRequestRate(); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, provider.UserPrompt(prompt))
	common.LogAICall(s.provider.GetModel(), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := s.cacheManager.Set(prompt, resp.Content); err != nil {
		common.LogWarn("Failed to cache AI response", zap.Error(err))
	}

	return &Response{Content: resp.Content}, nil
}

// Generate 回傳 AI 產生的文字內容
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.ProcessRequest(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Close 關閉 AI 提供者
func (s *Service) Close() error {
	if s.provider == nil {
		return nil
	}
	return s.provider.Close()
}

// checkRequestRate 檢查請求頻率
func (s *Service) checkRequestRate() error {
	if s.config.AI.MinInterval <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.lastRequest.IsZero() && now.Sub(s.lastRequest) < s.config.AI.MinInterval {
		return common.ErrRateLimited
	}

	s.lastRequest = now
	return nil
}

// normalizePrompt 去除每行前後空白與空行
func normalizePrompt(prompt string) string {
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
