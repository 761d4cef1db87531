package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"meal-planner/internal/core/ai/queue"
	"meal-planner/internal/core/recipe"
	"meal-planner/internal/core/shopping"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/store"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Assistant 規劃器使用的 AI 協作服務
type Assistant interface {
	shopping.Categorizer
	ExtractFromURL(ctx context.Context, url string) (*recipe.ExtractionResult, error)
	GetNutritionalInfo(ctx context.Context, ingredients []common.Ingredient, servings int) (*common.NutritionInfo, error)
	RecommendDishes(ctx context.Context, ingredients []string, prompt string) ([]common.Recommendation, error)
}

// Scheduler 背景工作排程
type Scheduler interface {
	Enqueue(name string, job queue.Job) error
}

// Planner 食譜與購物清單狀態
//
// 所有寫入在同一把鎖下整筆取代並先寫入儲存；讀取一律回傳副本。
// 每次購物清單被取代都會產生新的序號，只有最新序號的分類結果會被套用。
type Planner struct {
	cfg       config.PlannerConfig
	store     store.Store
	ai        Assistant
	scheduler Scheduler

	mu           sync.RWMutex
	recipes      []common.Recipe
	selected     map[string]struct{}
	shoppingList []string
	categorized  *common.CategorizedList
	status       shopping.Status
	notice       string
	seq          uint64
	applied      uint64
}

// New 創建規劃器，需呼叫 Load 載入已儲存的狀態
func New(cfg config.PlannerConfig, st store.Store, ai Assistant, scheduler Scheduler) *Planner {
	return &Planner{
		cfg:          cfg,
		store:        st,
		ai:           ai,
		scheduler:    scheduler,
		recipes:      []common.Recipe{},
		selected:     make(map[string]struct{}),
		shoppingList: []string{},
		status:       shopping.StatusIdle,
	}
}

// Load 從儲存載入食譜、購物清單與分類快照
// 有購物清單但沒有分類快照時會排程分類
func (p *Planner) Load(ctx context.Context) error {
	var (
		recipes     []common.Recipe
		list        []string
		categorized common.CategorizedList
	)

	if err := loadKey(ctx, p.store, store.KeyRecipes, &recipes); err != nil {
		return err
	}
	if err := loadKey(ctx, p.store, store.KeyShoppingList, &list); err != nil {
		return err
	}
	hasCategorized := true
	if err := p.store.Load(ctx, store.KeyCategorizedList, &categorized); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to load %s: %w", store.KeyCategorizedList, err)
		}
		hasCategorized = false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if recipes == nil {
		recipes = []common.Recipe{}
	}
	if list == nil {
		list = []string{}
	}
	p.recipes = recipes
	p.shoppingList = list
	p.categorized = nil
	p.status = shopping.StatusIdle
	if hasCategorized && len(list) > 0 {
		p.categorized = &categorized
		p.status = shopping.StatusDone
	}

	common.LogInfo("Planner state loaded",
		zap.Int("recipes", len(recipes)),
		zap.Int("shopping_items", len(list)),
		zap.Bool("categorized", p.categorized != nil),
	)

	if len(list) > 0 && p.categorized == nil {
		p.scheduleCategorizeLocked()
	}
	return nil
}

func loadKey(ctx context.Context, st store.Store, key string, v interface{}) error {
	if err := st.Load(ctx, key, v); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	return nil
}

// save 寫入儲存，失敗時回傳 ErrStoreUnavailable
func (p *Planner) save(ctx context.Context, key string, v interface{}) error {
	if err := p.store.Save(ctx, key, v); err != nil {
		common.LogError("Failed to persist planner state",
			zap.String("key", key),
			zap.Error(err),
		)
		return common.NewError(common.ErrStoreUnavailable.Code, common.ErrStoreUnavailable.Message,
			common.ErrStoreUnavailable.Status, err)
	}
	return nil
}
