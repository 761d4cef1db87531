package recipe

import (
	"context"
	"fmt"
	"time"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator AI 文字產生介面
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service 食譜 AI 協作服務（擷取、分類、營養分析、推薦）
type Service struct {
	ai Generator
}

// NewService 創建新的食譜服務
func NewService(ai Generator) *Service {
	return &Service{ai: ai}
}

// generateJSON 呼叫 AI 並將回應解析到 v
func (s *Service) generateJSON(ctx context.Context, flow, prompt string, v interface{}) error {
	start := time.Now()
	content, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		common.LogAICall(flow, time.Since(start), err)
		return fmt.Errorf("AI service error: %w", err)
	}

	if err := common.ParseAIJSON(content, v); err != nil {
		common.LogWarn("Unusable AI response",
			zap.String("flow", flow),
			zap.Error(err),
			zap.Int("content_length", len(content)),
		)
		return err
	}

	common.LogAICall(flow, time.Since(start), nil)
	return nil
}
