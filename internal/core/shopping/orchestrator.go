package shopping

import (
	"context"
	"errors"
	"fmt"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// UncategorizedCategory 分類失敗時的預設分類名稱
const UncategorizedCategory = "Uncategorized"

// MsgCategorizationUnavailable 分類服務異常中斷時給使用者的說明
const MsgCategorizationUnavailable = "Could not categorize the shopping list."

// ErrNoCategorizer 未設定分類服務
var ErrNoCategorizer = errors.New("categorization service is not configured")

// Categorizer 外部分類服務
type Categorizer interface {
	CategorizeIngredients(ctx context.Context, items []string) (common.CategorizedList, error)
}

// Status 分類狀態
type Status string

const (
	StatusIdle         Status = "idle"
	StatusCategorizing Status = "categorizing"
	StatusDone         Status = "done"
	StatusFallback     Status = "fallback"
)

// Outcome 一次分類的結果
// Status 為 StatusDone 或 StatusFallback；Fallback 時 Notice 為給使用者的降級說明
type Outcome struct {
	List   common.CategorizedList
	Status Status
	Notice string
	Err    error
}

// FallbackList 將整份清單放入單一 Uncategorized 分類，保留原始順序
func FallbackList(flat []string) common.CategorizedList {
	return common.CategorizedList{
		Categories: []common.CategoryGroup{
			{Category: UncategorizedCategory, Items: append([]string(nil), flat...)},
		},
	}
}

// Categorize 呼叫外部分類服務；清單為空時直接回傳空結果且不呼叫服務
// 任何失敗都以 FallbackList 取代，不會讓購物清單無法使用
func Categorize(ctx context.Context, categorizer Categorizer, flat []string) Outcome {
	if len(flat) == 0 {
		return Outcome{
			List:   common.CategorizedList{Categories: []common.CategoryGroup{}},
			Status: StatusDone,
		}
	}

	var (
		list common.CategorizedList
		err  error
	)
	if categorizer == nil {
		err = common.NewCollaboratorError("categorize", "AI categorization is not available.", ErrNoCategorizer)
	} else {
		list, err = callCategorizer(ctx, categorizer, flat)
	}

	if err != nil {
		common.LogWarn("Categorization failed, falling back to uncategorized list",
			zap.Int("items", len(flat)),
			zap.Error(err),
		)
		return Outcome{
			List:   FallbackList(flat),
			Status: StatusFallback,
			Notice: "AI Categorization Failed: " + common.UserMessage(err),
			Err:    err,
		}
	}

	return Outcome{List: list, Status: StatusDone}
}

// callCategorizer 呼叫分類服務，panic 轉為 CollaboratorError
func callCategorizer(ctx context.Context, categorizer Categorizer, flat []string) (list common.CategorizedList, err error) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("Categorizer panicked",
				zap.Any("panic", r),
				zap.Int("items", len(flat)),
			)
			list = common.CategorizedList{}
			err = common.NewCollaboratorError("categorize", MsgCategorizationUnavailable, fmt.Errorf("categorizer panic: %v", r))
		}
	}()
	return categorizer.CategorizeIngredients(ctx, flat)
}
